// Package undo implements the undo command on top of pkg/undo.
package undo

import (
	"github.com/arthur-debert/medialink/pkg/errors"
	"github.com/arthur-debert/medialink/pkg/filesystem"
	"github.com/arthur-debert/medialink/pkg/ledger"
	"github.com/arthur-debert/medialink/pkg/logging"
	"github.com/arthur-debert/medialink/pkg/types"
	"github.com/arthur-debert/medialink/pkg/undo"
)

// Options contains options for the undo command
type Options struct {
	FS types.FS

	// LedgerPath is the undo log written by the last link run
	LedgerPath string

	// DryRun lists what would be removed without removing it
	DryRun bool
}

// Undo removes everything the last link run created. It fails with
// NO_PRIOR_RUN when there is no ledger.
func Undo(opts Options) (*undo.Result, error) {
	log := logging.GetLogger("commands.undo")
	log.Debug().Str("command", "Undo").Str("ledger", opts.LedgerPath).Bool("dryRun", opts.DryRun).Msg("Executing command")

	if opts.LedgerPath == "" {
		return nil, errors.New(errors.ErrInternal, "undo requires a ledger path")
	}
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}

	done := logging.LogOperationStart(log, "undo")
	result, err := undo.Run(undo.Options{
		FS:     opts.FS,
		Store:  ledger.NewStore(opts.FS, opts.LedgerPath),
		DryRun: opts.DryRun,
	})
	done()
	if err != nil {
		log.Error().Err(err).Msg("Undo failed")
		return result, err
	}

	log.Info().
		Str("command", "Undo").
		Int("removed", result.Removed()).
		Int("failed", result.Failed).
		Msg("Command finished")
	return result, nil
}
