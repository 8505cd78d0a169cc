package report_test

import (
	"testing"

	"github.com/arthur-debert/medialink/pkg/errors"
	"github.com/arthur-debert/medialink/pkg/planner"
	"github.com/arthur-debert/medialink/pkg/ui/report"
	"github.com/arthur-debert/medialink/pkg/undo"
	"github.com/stretchr/testify/assert"
)

func TestFromLink(t *testing.T) {
	res := &planner.Result{
		Strategy:    "sequential",
		Destination: "/tv",
		Placements: []planner.Placement{
			{Source: "/src/a.mkv", Target: "/tv/a - s01e01.mkv", Sequence: "s01e01"},
			{Source: "/src/b.mkv", Target: "/tv/b - s01e02.mkv", Sequence: "s01e02", Overwrote: true},
		},
		Skipped:  []string{"/src/c.mkv"},
		Failures: []planner.Failure{{Source: "/src/d.mkv", Target: "/tv/d - s01e03.mkv", Reason: "cross device"}},
		Halted:   true,
	}

	r := report.FromLink(res)

	assert.Equal(t, "Linking into /tv (sequential)", r.Title)
	assert.Equal(t, 1, r.Count(report.StatusLinked))
	assert.Equal(t, 1, r.Count(report.StatusOverwrote))
	assert.Equal(t, 1, r.Count(report.StatusSkipped))
	assert.Equal(t, 1, r.Count(report.StatusFailed))
	assert.Equal(t, report.Line{Status: report.StatusLinked, Subject: "a.mkv", Target: "/tv/a - s01e01.mkv", Detail: "s01e01"}, r.Lines[0])
	assert.Equal(t, "cross device", r.Lines[3].Detail)
	assert.Len(t, r.Notes, 1)
	assert.Equal(t, "2 linked, 1 skipped, 1 failed", r.Summary)
}

func TestFromLinkDryRun(t *testing.T) {
	r := report.FromLink(&planner.Result{
		DryRun:     true,
		Placements: []planner.Placement{{Source: "/src/a.mkv", Target: "/tv/a.mkv", Overwrote: true}},
		Aborted:    true,
	})

	assert.True(t, r.DryRun)
	assert.Equal(t, 1, r.Count(report.StatusPlanned))
	assert.Equal(t, "1 planned, 0 skipped, 0 failed", r.Summary)
	assert.Len(t, r.Notes, 1)
}

func TestFromUndo(t *testing.T) {
	res := &undo.Result{
		LedgerPath: "/opt/.medialink-ledger",
		Removals: []undo.Removal{
			{Path: "/tv/a.mkv", Status: undo.StatusRemoved},
			{Path: "/tv/b.mkv", Status: undo.StatusMissing},
			{Path: "/tv/c.mkv", Status: undo.StatusFailed, Err: errors.New(errors.ErrRemove, "permission denied")},
		},
		Failed: 1,
	}

	r := report.FromUndo(res)

	assert.Equal(t, 1, r.Count(report.StatusRemoved))
	assert.Equal(t, 1, r.Count(report.StatusMissing))
	assert.Equal(t, "[REMOVE] permission denied", r.Lines[2].Detail)
	assert.Len(t, r.Notes, 1)
	assert.Equal(t, "1 removed, 1 already gone, 1 failed", r.Summary)
}

func TestFromUndoDryRun(t *testing.T) {
	r := report.FromUndo(&undo.Result{
		DryRun: true,
		Removals: []undo.Removal{
			{Path: "/tv/a.mkv", Status: undo.StatusPlanned},
			{Path: "/tv/b.mkv", Status: undo.StatusMissing},
		},
	})

	assert.Equal(t, 1, r.Count(report.StatusPlanned))
	assert.Empty(t, r.Notes)
	assert.Equal(t, "1 to remove, 1 already gone", r.Summary)
}
