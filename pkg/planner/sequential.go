package planner

import (
	"sort"

	"github.com/arthur-debert/medialink/pkg/resolver"
	"github.com/arthur-debert/medialink/pkg/sequence"
	"github.com/arthur-debert/medialink/pkg/types"
)

// byName orders files by base name, then by path for equal names
func byName(files []types.Item) []types.Item {
	sorted := append([]types.Item(nil), files...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Name() != sorted[j].Name() {
			return sorted[i].Name() < sorted[j].Name()
		}
		return sorted[i].Path < sorted[j].Path
	})
	return sorted
}

// runSequential renames every file into "<base> - sXXeYY.ext" in the
// destination root. The counter advances after each placed file and the
// run stops as soon as it passes its ceiling.
func (p *Planner) runSequential(d *types.Discovery) error {
	counter := p.opts.Counter
	if counter == nil {
		counter = sequence.New()
	}
	dest := p.opts.Destination
	snap, err := p.snapshots.For(dest)
	if err != nil {
		return err
	}

	for _, item := range byName(d.Files) {
		if counter.ReachedCeiling() {
			p.result.Halted = true
			p.logger.Info().
				Str("ceiling", counter.String()).
				Str("next", item.Path).
				Msg("Sequence ceiling reached, stopping")
			return nil
		}

		stem, ext := splitExt(item.Name())
		req := resolver.Request{
			Source:        item.Path,
			Base:          stem,
			Compose:       sequentialName(counter.Format, stem, ext),
			Kind:          types.KindFile,
			Policy:        resolver.PolicyDefaultAccept,
			AlwaysAsk:     p.opts.Interactive,
			AllowReanchor: p.opts.Interactive,
		}

		out := p.resolver.Resolve(snap, req)
		for out.Action == resolver.ActionReanchor {
			p.reanchor(counter, out.Pair)
			out = p.resolver.Resolve(snap, req)
		}

		switch out.Action {
		case resolver.ActionAbort:
			p.result.Aborted = true
			return nil
		case resolver.ActionCreate:
			seq := counter.Format()
			placed, err := p.linkFile(item.Path, dest, out.Name, out.Overwrite, seq)
			if err != nil {
				return err
			}
			if placed {
				counter.Advance()
			}
		default:
			p.skip(item.Path)
		}
	}
	return nil
}

// reanchor applies an operator supplied pair. A rejected pair is reported
// and the counter is left untouched.
func (p *Planner) reanchor(counter *sequence.Counter, pair sequence.Pair) {
	before := counter.Format()
	if err := counter.Override(pair); err != nil {
		p.logger.Warn().Err(err).Msg("Re-anchor rejected")
		p.notify(err.Error())
		return
	}
	p.logger.Info().
		Str("from", before).
		Str("to", counter.Format()).
		Msg("Sequence re-anchored")
	p.notify("Sequence re-anchored at " + counter.Format())
}

func (p *Planner) notify(message string) {
	if p.prompter != nil {
		p.prompter.Notify(message)
	}
}
