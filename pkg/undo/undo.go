// Package undo reverses the last run by removing every path its ledger
// recorded.
package undo

import (
	"github.com/arthur-debert/medialink/pkg/errors"
	"github.com/arthur-debert/medialink/pkg/filesystem"
	"github.com/arthur-debert/medialink/pkg/ledger"
	"github.com/arthur-debert/medialink/pkg/logging"
	"github.com/arthur-debert/medialink/pkg/types"
)

// Options configures an undo run
type Options struct {
	FS     types.FS
	Store  *ledger.Store
	DryRun bool
}

// Status tags a Removal
type Status string

const (
	StatusRemoved Status = "removed"
	StatusMissing Status = "missing"
	StatusFailed  Status = "failed"
	StatusPlanned Status = "planned"
)

// Removal reports what happened to one ledger entry
type Removal struct {
	Path   string          `json:"path"`
	Kind   types.EntryKind `json:"-"`
	Status Status          `json:"status"`
	Err    error           `json:"-"`
}

// Result summarizes an undo run
type Result struct {
	LedgerPath string    `json:"ledger"`
	DryRun     bool      `json:"dryRun"`
	Removals   []Removal `json:"removals"`
	Failed     int       `json:"failed"`
	// LedgerDeleted is false after a dry run or when any removal failed
	LedgerDeleted bool `json:"ledgerDeleted"`
}

// Removed counts entries that were actually deleted
func (r *Result) Removed() int {
	n := 0
	for _, rm := range r.Removals {
		if rm.Status == StatusRemoved {
			n++
		}
	}
	return n
}

// Run removes every path recorded in the stored ledger. Directories are
// removed with their contents, files on their own and missing entries are
// ignored. A removal failure is counted and the remaining entries are
// still processed; the ledger is only deleted once every entry is gone, so
// a failed undo can be retried.
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("undo")

	paths, err := opts.Store.Load()
	if err != nil {
		return nil, err
	}

	result := &Result{LedgerPath: opts.Store.Path(), DryRun: opts.DryRun}
	logger.Info().
		Str("ledger", opts.Store.Path()).
		Int("entries", len(paths)).
		Bool("dryRun", opts.DryRun).
		Msg("Undoing last run")

	for _, path := range paths {
		rm := remove(opts.FS, path, opts.DryRun)
		if rm.Status == StatusFailed {
			result.Failed++
			logger.Error().Err(rm.Err).Str("path", path).Msg("Cannot remove entry")
		} else {
			logger.Debug().Str("path", path).Str("status", string(rm.Status)).Msg("Entry processed")
		}
		result.Removals = append(result.Removals, rm)
	}

	if opts.DryRun || result.Failed > 0 {
		if result.Failed > 0 {
			logger.Warn().Int("failed", result.Failed).Msg("Keeping ledger so undo can be retried")
		}
		return result, nil
	}

	if err := opts.Store.Delete(); err != nil {
		return result, err
	}
	result.LedgerDeleted = true
	return result, nil
}

func remove(fsys types.FS, path string, dryRun bool) Removal {
	kind, ok, err := filesystem.Kind(fsys, path)
	if err != nil {
		return Removal{Path: path, Status: StatusFailed, Err: errors.Wrap(err, errors.ErrRemove, "cannot inspect entry").WithDetail("path", path)}
	}
	if !ok {
		return Removal{Path: path, Kind: kind, Status: StatusMissing}
	}
	if dryRun {
		return Removal{Path: path, Kind: kind, Status: StatusPlanned}
	}

	if kind == types.KindDir {
		err = fsys.RemoveAll(path)
	} else {
		err = fsys.Remove(path)
	}
	if err != nil {
		return Removal{Path: path, Kind: kind, Status: StatusFailed, Err: errors.Wrap(err, errors.ErrRemove, "cannot remove entry").WithDetail("path", path)}
	}
	return Removal{Path: path, Kind: kind, Status: StatusRemoved}
}
