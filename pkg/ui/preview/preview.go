// Package preview shows what a dry run would change in the destination as a
// unified diff of its listing before and after the run.
package preview

import (
	"path/filepath"
	"sort"

	"github.com/arthur-debert/medialink/pkg/errors"
	"github.com/arthur-debert/medialink/pkg/planner"
	"github.com/arthur-debert/medialink/pkg/types"
	"github.com/pmezard/go-difflib/difflib"
)

// Preview is the planned change to one destination
type Preview struct {
	Destination string   `json:"destination"`
	Before      []string `json:"before"`
	After       []string `json:"after"`
	Planned     []string `json:"planned"`
	// Replaced lists existing files the run would overwrite. They keep
	// their name so the diff cannot show them.
	Replaced []string `json:"replaced"`
	Diff     string   `json:"-"`
}

// Changed reports whether the run would create anything
func (p *Preview) Changed() bool {
	return len(p.Planned) > 0
}

// Build computes the preview of a planner result. Paths are relative to the
// destination; directories end in a slash.
func Build(res *planner.Result) (*Preview, error) {
	p := &Preview{
		Destination: res.Destination,
		Before:      append([]string{}, res.Existing...),
		Planned:     []string{},
		Replaced:    []string{},
	}
	sort.Strings(p.Before)

	seen := make(map[string]bool, len(p.Before))
	for _, name := range p.Before {
		seen[name] = true
	}
	after := append([]string{}, p.Before...)

	for _, entry := range res.Created {
		rel, err := filepath.Rel(res.Destination, entry.Path)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInternal, "planned path %s is outside %s", entry.Path, res.Destination)
		}
		rel = filepath.ToSlash(rel)
		if entry.Kind == types.KindDir {
			rel += "/"
		}
		p.Planned = append(p.Planned, rel)
		if seen[rel] {
			continue
		}
		seen[rel] = true
		after = append(after, rel)
	}
	sort.Strings(after)
	p.After = after

	for _, placement := range res.Placements {
		if !placement.Overwrote {
			continue
		}
		if rel, err := filepath.Rel(res.Destination, placement.Target); err == nil {
			p.Replaced = append(p.Replaced, filepath.ToSlash(rel))
		}
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        lines(p.Before),
		B:        lines(p.After),
		FromFile: res.Destination + " (current)",
		ToFile:   res.Destination + " (after link)",
		Context:  3,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to diff destination listing")
	}
	p.Diff = diff
	return p, nil
}

func lines(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = name + "\n"
	}
	return out
}
