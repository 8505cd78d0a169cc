// Package report turns command results into a format-neutral list of
// lines that the text and terminal renderers lay out.
package report

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/medialink/pkg/planner"
	"github.com/arthur-debert/medialink/pkg/undo"
)

// Status is the outcome shown next to one line
type Status string

const (
	StatusLinked    Status = "linked"
	StatusOverwrote Status = "overwrote"
	StatusPlanned   Status = "planned"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
	StatusRemoved   Status = "removed"
	StatusMissing   Status = "missing"
)

// Line is one reported item
type Line struct {
	Status  Status
	Subject string
	Target  string
	Detail  string
}

// Report is a titled list of lines with a closing summary
type Report struct {
	Title   string
	DryRun  bool
	Lines   []Line
	Notes   []string
	Summary string
}

// Count returns how many lines carry status
func (r *Report) Count(status Status) int {
	n := 0
	for _, line := range r.Lines {
		if line.Status == status {
			n++
		}
	}
	return n
}

// FromLink builds the report of a link run
func FromLink(res *planner.Result) *Report {
	r := &Report{
		Title:  fmt.Sprintf("Linking into %s (%s)", res.Destination, res.Strategy),
		DryRun: res.DryRun,
	}

	for _, p := range res.Placements {
		status := StatusLinked
		switch {
		case res.DryRun:
			status = StatusPlanned
		case p.Overwrote:
			status = StatusOverwrote
		}
		r.Lines = append(r.Lines, Line{
			Status:  status,
			Subject: filepath.Base(p.Source),
			Target:  p.Target,
			Detail:  p.Sequence,
		})
	}
	for _, path := range res.Skipped {
		r.Lines = append(r.Lines, Line{Status: StatusSkipped, Subject: filepath.Base(path)})
	}
	for _, f := range res.Failures {
		r.Lines = append(r.Lines, Line{
			Status:  StatusFailed,
			Subject: filepath.Base(f.Source),
			Target:  f.Target,
			Detail:  f.Reason,
		})
	}

	if res.Aborted {
		r.Notes = append(r.Notes, "Run ended on request; remaining items were left alone.")
	}
	if res.Halted {
		r.Notes = append(r.Notes, "Sequence range exhausted; remaining files were not linked.")
	}

	placed := "linked"
	if res.DryRun {
		placed = "planned"
	}
	r.Summary = fmt.Sprintf("%d %s, %d skipped, %d failed",
		len(res.Placements), placed, len(res.Skipped), len(res.Failures))
	return r
}

// FromUndo builds the report of an undo run
func FromUndo(res *undo.Result) *Report {
	r := &Report{
		Title:  "Undoing the last run (" + res.LedgerPath + ")",
		DryRun: res.DryRun,
	}

	missing := 0
	for _, rm := range res.Removals {
		line := Line{Subject: rm.Path}
		switch rm.Status {
		case undo.StatusRemoved:
			line.Status = StatusRemoved
		case undo.StatusMissing:
			line.Status = StatusMissing
			missing++
		case undo.StatusPlanned:
			line.Status = StatusPlanned
		default:
			line.Status = StatusFailed
			if rm.Err != nil {
				line.Detail = rm.Err.Error()
			}
		}
		r.Lines = append(r.Lines, line)
	}

	if res.Failed > 0 {
		r.Notes = append(r.Notes, "The ledger was kept; run undo again once the failures are fixed.")
	}

	if res.DryRun {
		r.Summary = fmt.Sprintf("%d to remove, %d already gone", len(res.Removals)-missing, missing)
	} else {
		r.Summary = fmt.Sprintf("%d removed, %d already gone, %d failed", res.Removed(), missing, res.Failed)
	}
	return r
}
