// Package link implements the link command: validate the arguments,
// discover the source, run the planner and persist the ledger exactly once
// however the run ends.
package link

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/medialink/pkg/config"
	"github.com/arthur-debert/medialink/pkg/discovery"
	"github.com/arthur-debert/medialink/pkg/errors"
	"github.com/arthur-debert/medialink/pkg/filesystem"
	"github.com/arthur-debert/medialink/pkg/ledger"
	"github.com/arthur-debert/medialink/pkg/logging"
	"github.com/arthur-debert/medialink/pkg/planner"
	"github.com/arthur-debert/medialink/pkg/resolver"
	"github.com/arthur-debert/medialink/pkg/sequence"
	"github.com/arthur-debert/medialink/pkg/types"
	"github.com/arthur-debert/medialink/pkg/ui/preview"
)

// Options defines the options for the link command
type Options struct {
	FS types.FS
	// Source and Destination are absolute, normalized paths
	Source      string
	Destination string
	Strategy    planner.Strategy
	// Interactive asks for every file in sequential mode
	Interactive bool
	// Sequence is the start token; empty uses link.default_sequence
	Sequence string
	// Filter replaces the media-extension test when set
	Filter string
	DryRun bool
	Config *config.Config
	// LedgerPath is where the undo log is written
	LedgerPath string
	Prompter   resolver.Prompter

	// Signals delivers interrupts; nil installs a SIGINT/SIGTERM handler
	Signals <-chan os.Signal
	// Exit ends the process after an interrupt flush; nil means os.Exit
	Exit func(code int)
}

// Result is what the link command hands to the renderer
type Result struct {
	Plan *planner.Result
	// Preview is set for dry runs
	Preview *preview.Preview
	// LedgerPath is empty for dry runs
	LedgerPath string
}

// Run executes one link run. Argument and sequence errors are returned
// before anything is created. Per-item failures are part of the result,
// not the error.
func Run(opts Options) (result *Result, err error) {
	log := logging.GetLogger("commands.link")
	log.Debug().Str("command", "Link").Msg("Executing command")

	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Config == nil {
		return nil, errors.New(errors.ErrInternal, "link requires a configuration")
	}

	if err := validate(opts); err != nil {
		return nil, err
	}

	var counter *sequence.Counter
	if opts.Strategy == planner.StrategySequential {
		token := opts.Sequence
		if token == "" {
			token = opts.Config.Link.DefaultSequence
		}
		counter, err = sequence.Parse(token)
		if err != nil {
			return nil, err
		}
	}

	filter, err := discovery.CompileFilter(opts.Filter)
	if err != nil {
		return nil, err
	}

	d, err := discovery.Discover(opts.FS, discovery.Options{
		Root:       opts.Source,
		Recursive:  opts.Strategy == planner.StrategyRecursive,
		Extensions: opts.Config.Link.MediaExtensions,
		Filter:     filter,
	})
	if err != nil {
		return nil, err
	}

	l := ledger.New()
	result = &Result{}

	if !opts.DryRun {
		result.LedgerPath = opts.LedgerPath
		flusher := ledger.NewFlusher(l, ledger.NewStore(opts.FS, opts.LedgerPath))
		stop := watchSignals(opts.Signals, flusher, opts.Exit)
		defer stop()
		defer func() {
			if ferr := flusher.Flush("finished"); ferr != nil && err == nil {
				err = ferr
			}
		}()
	}

	p := planner.New(opts.FS, opts.Prompter, l, planner.Options{
		Strategy:    opts.Strategy,
		Destination: opts.Destination,
		Counter:     counter,
		Interactive: opts.Interactive,
		DryRun:      opts.DryRun,
		Resolver:    opts.Config.ResolverOptions(),
	})
	done := logging.LogOperationStart(log, opts.Strategy.String())
	result.Plan, err = p.Run(d)
	done()
	if err != nil {
		log.Error().Err(err).Msg("Link failed")
		return result, err
	}

	if opts.DryRun {
		result.Preview, err = preview.Build(result.Plan)
		if err != nil {
			return result, err
		}
	}

	log.Info().Str("command", "Link").Msg("Command finished")
	return result, nil
}

// validate checks the source and destination before anything else runs. A
// dry run may target a destination that does not exist yet.
func validate(opts Options) error {
	if opts.Source == "" {
		return errors.New(errors.ErrMissingArgument, "a source directory is required")
	}
	if opts.Destination == "" {
		return errors.New(errors.ErrMissingArgument, "a destination directory is required")
	}

	kind, ok, err := statKind(opts.FS, opts.Source)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot access %s", opts.Source)
	}
	if !ok || kind != types.KindDir {
		return errors.Newf(errors.ErrSourceNotFound, "source %s is not an existing directory", opts.Source).
			WithDetail("path", opts.Source)
	}

	kind, ok, err = statKind(opts.FS, opts.Destination)
	if err != nil {
		return errors.Wrapf(err, errors.ErrDestInvalid, "cannot access %s", opts.Destination)
	}
	switch {
	case !ok && opts.DryRun:
		return nil
	case !ok:
		return errors.Newf(errors.ErrDestInvalid, "destination %s does not exist", opts.Destination).
			WithDetail("path", opts.Destination)
	case kind != types.KindDir:
		return errors.Newf(errors.ErrDestInvalid, "destination %s is not a directory", opts.Destination).
			WithDetail("path", opts.Destination)
	}
	return nil
}

// statKind is filesystem.Kind following symlinks, so a linked source or
// destination directory is accepted
func statKind(fsys types.FS, path string) (types.EntryKind, bool, error) {
	info, err := fsys.Stat(path)
	if os.IsNotExist(err) {
		return types.KindFile, false, nil
	}
	if err != nil {
		return types.KindFile, false, err
	}
	if info.IsDir() {
		return types.KindDir, true, nil
	}
	return types.KindFile, true, nil
}

// watchSignals flushes the ledger and exits with the interrupted status when
// a signal arrives. The returned func stops watching.
func watchSignals(sigs <-chan os.Signal, flusher *ledger.Flusher, exit func(int)) func() {
	if exit == nil {
		exit = os.Exit
	}
	var owned chan os.Signal
	if sigs == nil {
		owned = make(chan os.Signal, 1)
		signal.Notify(owned, os.Interrupt, syscall.SIGTERM)
		sigs = owned
	}

	done := make(chan struct{})
	go func() {
		select {
		case sig := <-sigs:
			logger := logging.GetLogger("commands.link")
			logger.Warn().Str("signal", sig.String()).Msg("Interrupted")
			_ = flusher.Flush("interrupted")
			exit(errors.ExitInterrupted)
		case <-done:
		}
	}()

	return func() {
		close(done)
		if owned != nil {
			signal.Stop(owned)
		}
	}
}
