// Package discovery lists the source items a run will link. Output order is
// lexicographic by path and stable across platforms.
package discovery

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/arthur-debert/medialink/pkg/errors"
	"github.com/arthur-debert/medialink/pkg/logging"
	"github.com/arthur-debert/medialink/pkg/types"
)

// Options controls what is discovered below Root
type Options struct {
	Root string
	// Recursive walks every level and reports top-level directories.
	// Otherwise only files directly under Root are listed.
	Recursive bool
	// Extensions is the media-extension set, e.g. ".mkv". Matching is
	// case-insensitive. Ignored when Filter is set.
	Extensions []string
	// Filter, when set, replaces the extension set. It is matched against
	// the base name of files and of top-level directories.
	Filter *regexp.Regexp
}

// CompileFilter compiles a user supplied filter expression. An empty
// expression yields a nil filter.
func CompileFilter(expr string) (*regexp.Regexp, error) {
	if expr == "" {
		return nil, nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidFilter, "invalid filter expression").
			WithDetail("filter", expr)
	}
	return re, nil
}

// Discover lists the items below opts.Root. Hidden entries (leading dot)
// and names containing a line break are never reported nor descended into.
func Discover(fsys types.FS, opts Options) (*types.Discovery, error) {
	logger := logging.GetLogger("discovery")
	root := filepath.Clean(opts.Root)
	match := matcher(opts)

	d := &types.Discovery{Root: root}
	if err := walk(fsys, root, root, opts, match, d); err != nil {
		return nil, err
	}

	sort.Slice(d.Files, func(i, j int) bool { return d.Files[i].Path < d.Files[j].Path })
	sort.Slice(d.Dirs, func(i, j int) bool { return d.Dirs[i].Path < d.Dirs[j].Path })

	logger.Debug().
		Str("root", root).
		Bool("recursive", opts.Recursive).
		Int("files", len(d.Files)).
		Int("dirs", len(d.Dirs)).
		Msg("Discovery complete")
	return d, nil
}

func walk(fsys types.FS, root, dir string, opts Options, match func(string) bool, d *types.Discovery) error {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read source directory %s", dir)
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		// the ledger stores one path per line
		if strings.ContainsAny(name, "\r\n") {
			logger := logging.GetLogger("discovery")
			logger.Warn().
				Str("dir", dir).
				Str("name", name).
				Msg("Skipping entry with a line break in its name")
			continue
		}
		path := filepath.Join(dir, name)
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return errors.Wrap(err, errors.ErrInternal, "cannot compute relative path")
		}

		if entry.IsDir() {
			if !opts.Recursive {
				continue
			}
			if dir == root {
				if opts.Filter != nil && !opts.Filter.MatchString(name) {
					continue
				}
				d.Dirs = append(d.Dirs, types.Item{Kind: types.KindDir, Path: path, RelPath: rel})
			}
			if err := walk(fsys, root, path, opts, match, d); err != nil {
				return err
			}
			continue
		}

		if !entry.Type().IsRegular() || !match(name) {
			continue
		}
		d.Files = append(d.Files, types.Item{Kind: types.KindFile, Path: path, RelPath: rel})
	}
	return nil
}

func matcher(opts Options) func(string) bool {
	if opts.Filter != nil {
		return opts.Filter.MatchString
	}
	exts := make(map[string]bool, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = true
	}
	return func(name string) bool {
		return exts[strings.ToLower(filepath.Ext(name))]
	}
}
