// Package planner turns a discovery into hardlinks inside the destination.
//
// A Planner owns the run's mutable state: the destination snapshots, the
// sequence counter and the ledger it records into. Each item goes through
// the resolver for its final name, then the primitive runs inside the
// ledger's critical section and the snapshot learns the new entry, so later
// collision checks always see earlier creations of the same run.
//
// A failing primitive only fails its own item. Skips and aborts are control
// outcomes and never surface as errors.
package planner

import (
	"path/filepath"

	"github.com/arthur-debert/medialink/pkg/errors"
	"github.com/arthur-debert/medialink/pkg/filesystem"
	"github.com/arthur-debert/medialink/pkg/ledger"
	"github.com/arthur-debert/medialink/pkg/logging"
	"github.com/arthur-debert/medialink/pkg/resolver"
	"github.com/arthur-debert/medialink/pkg/sequence"
	"github.com/arthur-debert/medialink/pkg/snapshot"
	"github.com/arthur-debert/medialink/pkg/types"
	"github.com/rs/zerolog"
)

// Strategy selects how source items map to destination names
type Strategy int

const (
	// StrategyVerbatim links top-level files under their own name and
	// silently skips collisions
	StrategyVerbatim Strategy = iota
	// StrategyRecursive mirrors the source tree below renamed top-level
	// directories
	StrategyRecursive
	// StrategySequential renames files into "<name> - sXXeYY.ext"
	StrategySequential
)

// String returns the strategy name used in logs and reports
func (s Strategy) String() string {
	switch s {
	case StrategyVerbatim:
		return "verbatim"
	case StrategyRecursive:
		return "recursive"
	case StrategySequential:
		return "sequential"
	default:
		return "unknown"
	}
}

// Options configures a Planner
type Options struct {
	Strategy    Strategy
	Destination string
	// Counter is required by the sequential strategy
	Counter *sequence.Counter
	// Interactive makes the sequential strategy ask for every file and
	// accept sequence pairs as re-anchoring answers. Without it only
	// collisions prompt.
	Interactive bool
	// DryRun plans without touching the filesystem
	DryRun bool
	// Resolver options: sentinels and blank-answer policy
	Resolver resolver.Options
}

// Placement is one file linked (or planned) by the run
type Placement struct {
	Source    string `json:"source"`
	Target    string `json:"target"`
	Overwrote bool   `json:"overwrote,omitempty"`
	Sequence  string `json:"sequence,omitempty"`
}

// Failure is an item whose primitive failed
type Failure struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Err    error  `json:"-"`
	Reason string `json:"error"`
}

// Result summarizes a run
type Result struct {
	Strategy    string         `json:"strategy"`
	Destination string         `json:"destination"`
	DryRun      bool           `json:"dryRun"`
	Placements  []Placement    `json:"placements"`
	Created     []ledger.Entry `json:"-"`
	Skipped     []string       `json:"skipped"`
	Failures    []Failure      `json:"failures"`
	// Aborted is set when the operator ended the run early
	Aborted bool `json:"aborted"`
	// Halted is set when the sequence ceiling stopped the run with files
	// left over
	Halted bool `json:"halted"`
	// Existing lists the destination entries present before the run
	Existing []string `json:"-"`
}

// Planner runs one strategy over a discovery
type Planner struct {
	fs        types.FS
	prompter  resolver.Prompter
	resolver  *resolver.Resolver
	ledger    *ledger.Ledger
	snapshots *snapshot.Set
	opts      Options
	logger    zerolog.Logger

	result *Result
}

// New creates a planner that records creations into l. prompter may be nil
// for the verbatim strategy.
func New(fsys types.FS, prompter resolver.Prompter, l *ledger.Ledger, opts Options) *Planner {
	opts.Destination = filepath.Clean(opts.Destination)
	return &Planner{
		fs:        fsys,
		prompter:  prompter,
		resolver:  resolver.New(prompter, opts.Resolver),
		ledger:    l,
		snapshots: snapshot.NewSet(fsys),
		opts:      opts,
		logger:    logging.GetLogger("planner"),
	}
}

// Run processes d with the configured strategy. The returned error is only
// set for conditions that end the run as a whole: an unreadable destination
// or a ledger that was sealed by an interrupt.
func (p *Planner) Run(d *types.Discovery) (*Result, error) {
	p.result = &Result{
		Strategy:    p.opts.Strategy.String(),
		Destination: p.opts.Destination,
		DryRun:      p.opts.DryRun,
	}

	root, err := p.snapshots.For(p.opts.Destination)
	if err != nil {
		return nil, err
	}
	p.result.Existing = root.Names()

	p.logger.Info().
		Str("strategy", p.opts.Strategy.String()).
		Str("source", d.Root).
		Str("destination", p.opts.Destination).
		Int("files", len(d.Files)).
		Int("dirs", len(d.Dirs)).
		Bool("dryRun", p.opts.DryRun).
		Msg("Planning run")

	switch p.opts.Strategy {
	case StrategyVerbatim:
		err = p.runVerbatim(d)
	case StrategyRecursive:
		err = p.runRecursive(d)
	case StrategySequential:
		err = p.runSequential(d)
	default:
		err = errors.Newf(errors.ErrInternal, "unknown strategy %d", p.opts.Strategy)
	}

	p.logger.Info().
		Int("created", len(p.result.Created)).
		Int("skipped", len(p.result.Skipped)).
		Int("failed", len(p.result.Failures)).
		Bool("aborted", p.result.Aborted).
		Bool("halted", p.result.Halted).
		Msg("Run finished")
	return p.result, err
}

func (p *Planner) skip(source string) {
	p.result.Skipped = append(p.result.Skipped, source)
}

func (p *Planner) fail(source, target string, err error) {
	p.logger.Error().Err(err).
		Str("source", source).
		Str("target", target).
		Msg("Cannot create entry")
	p.result.Failures = append(p.result.Failures, Failure{
		Source: source,
		Target: target,
		Err:    err,
		Reason: err.Error(),
	})
}

// create runs primitive inside the ledger's critical section and, on success,
// records target everywhere the run keeps track of it. In a dry run primitive
// is never called.
func (p *Planner) create(target string, kind types.EntryKind, primitive func() error) error {
	if p.opts.DryRun {
		p.ledger.Append(target, kind)
	} else if err := p.ledger.Track(target, kind, primitive); err != nil {
		return err
	}
	p.snapshots.Created(target, kind)
	p.result.Created = append(p.result.Created, ledger.Entry{Path: target, Kind: kind})
	return nil
}

// linkFile places source at dir/name. It reports whether the item was
// placed; a LinkError is recorded as a failure of that item only.
func (p *Planner) linkFile(source, dir, name string, overwrite bool, seq string) (bool, error) {
	target := filepath.Join(dir, name)
	err := p.create(target, types.KindFile, func() error {
		if overwrite {
			return filesystem.ReplaceWithLink(p.fs, source, target)
		}
		return filesystem.HardLink(p.fs, source, target)
	})
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrInterrupted) {
			return false, err
		}
		p.fail(source, target, err)
		return false, nil
	}

	p.logger.Info().
		Str("source", source).
		Str("target", target).
		Bool("overwrite", overwrite).
		Bool("dryRun", p.opts.DryRun).
		Msg("Linked")
	p.result.Placements = append(p.result.Placements, Placement{
		Source:    source,
		Target:    target,
		Overwrote: overwrite,
		Sequence:  seq,
	})
	return true, nil
}

// makeDir creates the directory path, whose parent must already exist.
func (p *Planner) makeDir(path string) error {
	err := p.create(path, types.KindDir, func() error {
		return filesystem.MakeDir(p.fs, path)
	})
	if err == nil {
		p.logger.Debug().Str("dir", path).Bool("dryRun", p.opts.DryRun).Msg("Directory created")
	}
	return err
}
