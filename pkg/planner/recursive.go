package planner

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/medialink/pkg/errors"
	"github.com/arthur-debert/medialink/pkg/resolver"
	"github.com/arthur-debert/medialink/pkg/types"
)

// runRecursive resolves and creates every top-level directory first, then
// places each file below its directory's resolved destination. Files whose
// top-level directory was skipped are skipped too.
func (p *Planner) runRecursive(d *types.Discovery) error {
	dest := p.opts.Destination
	root, err := p.snapshots.For(dest)
	if err != nil {
		return err
	}

	// source top-level directory name -> destination path, "" when skipped
	tops := make(map[string]string, len(d.Dirs))

	for _, dir := range d.Dirs {
		out := p.resolver.Resolve(root, resolver.Request{
			Source: dir.Path,
			Base:   dir.Name(),
			Kind:   types.KindDir,
			Policy: resolver.PolicyRenameRequired,
		})
		switch out.Action {
		case resolver.ActionAbort:
			p.result.Aborted = true
			return nil
		case resolver.ActionCreate:
			target := filepath.Join(dest, out.Name)
			if err := p.makeDir(target); err != nil {
				if errors.IsErrorCode(err, errors.ErrInterrupted) {
					return err
				}
				p.fail(dir.Path, target, err)
				tops[dir.Name()] = ""
				continue
			}
			tops[dir.Name()] = target
		default:
			p.skip(dir.Path)
			tops[dir.Name()] = ""
		}
	}

	for _, item := range d.Files {
		dir := dest
		if top := item.TopDir(); top != "" {
			topDest, ok := tops[top]
			if !ok || topDest == "" {
				p.skip(item.Path)
				continue
			}
			sub := filepath.Dir(strings.TrimPrefix(item.RelPath, top+string(filepath.Separator)))
			dir = filepath.Join(topDest, sub)
			if err := p.ensureDir(topDest, dir); err != nil {
				if errors.IsErrorCode(err, errors.ErrInterrupted) {
					return err
				}
				p.fail(item.Path, dir, err)
				continue
			}
		}

		snap, err := p.snapshots.For(dir)
		if err != nil {
			return err
		}
		_, ext := splitExt(item.Name())
		out := p.resolver.Resolve(snap, resolver.Request{
			Source:  item.Path,
			Base:    item.Name(),
			Compose: keepExtension(ext),
			Kind:    types.KindFile,
			Policy:  resolver.PolicyRenameRequired,
		})
		switch out.Action {
		case resolver.ActionAbort:
			p.result.Aborted = true
			return nil
		case resolver.ActionCreate:
			if _, err := p.linkFile(item.Path, dir, out.Name, out.Overwrite, ""); err != nil {
				return err
			}
		default:
			p.skip(item.Path)
		}
	}
	return nil
}

// ensureDir creates every directory between base (which exists) and dir,
// ledgering each one it creates.
func (p *Planner) ensureDir(base, dir string) error {
	rel, err := filepath.Rel(base, dir)
	if err != nil || rel == "." {
		return err
	}

	current := base
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		snap, err := p.snapshots.For(current)
		if err != nil {
			return err
		}
		next := filepath.Join(current, part)
		kind, exists := snap.Contains(part)
		switch {
		case exists && kind == types.KindDir:
		case exists:
			return errors.New(errors.ErrDirCreate, "a file is in the way of a directory").
				WithDetail("target", next)
		default:
			if err := p.makeDir(next); err != nil {
				return err
			}
		}
		current = next
	}
	return nil
}
