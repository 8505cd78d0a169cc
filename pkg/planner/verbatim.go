package planner

import (
	"github.com/arthur-debert/medialink/pkg/resolver"
	"github.com/arthur-debert/medialink/pkg/types"
)

// runVerbatim links each file under its own name in the destination root.
// Existing names are skipped without asking.
func (p *Planner) runVerbatim(d *types.Discovery) error {
	dest := p.opts.Destination
	snap, err := p.snapshots.For(dest)
	if err != nil {
		return err
	}

	for _, item := range d.Files {
		out := p.resolver.Resolve(snap, resolver.Request{
			Source: item.Path,
			Base:   item.Name(),
			Kind:   types.KindFile,
			Policy: resolver.PolicySkipExisting,
		})
		if out.Action != resolver.ActionCreate {
			p.skip(item.Path)
			continue
		}
		if _, err := p.linkFile(item.Path, dest, out.Name, false, ""); err != nil {
			return err
		}
	}
	return nil
}
