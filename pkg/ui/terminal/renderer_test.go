package terminal_test

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/medialink/pkg/errors"
	"github.com/arthur-debert/medialink/pkg/planner"
	"github.com/arthur-debert/medialink/pkg/ui/preview"
	"github.com/arthur-debert/medialink/pkg/ui/terminal"
	"github.com/arthur-debert/medialink/pkg/undo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderer(t *testing.T) (*terminal.Renderer, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	r, err := terminal.New(&buf)
	require.NoError(t, err)
	return r, &buf
}

func TestRenderLinkResult(t *testing.T) {
	r, buf := newRenderer(t)

	require.NoError(t, r.RenderResult(&planner.Result{
		Strategy:    "recursive",
		Destination: "/tv",
		Placements:  []planner.Placement{{Source: "/src/Show/ep1.mkv", Target: "/tv/Show/ep1.mkv"}},
		Failures:    []planner.Failure{{Source: "/src/Show/ep2.mkv", Target: "/tv/Show/ep2.mkv", Reason: "cross device"}},
		Aborted:     true,
	}))

	out := buf.String()
	assert.Contains(t, out, "Linking into /tv (recursive)")
	assert.Contains(t, out, "ep1.mkv")
	assert.Contains(t, out, "/tv/Show/ep1.mkv")
	assert.Contains(t, out, "cross device")
	assert.Contains(t, out, "Run ended on request")
	assert.Contains(t, out, "1 linked, 0 skipped, 1 failed")
}

func TestRenderUndoResult(t *testing.T) {
	r, buf := newRenderer(t)

	require.NoError(t, r.RenderResult(&undo.Result{
		LedgerPath: "/opt/.medialink-ledger",
		Removals:   []undo.Removal{{Path: "/tv/a.mkv", Status: undo.StatusRemoved}},
	}))

	assert.Contains(t, buf.String(), "/tv/a.mkv")
	assert.Contains(t, buf.String(), "1 removed, 0 already gone, 0 failed")
}

func TestRenderPreview(t *testing.T) {
	r, buf := newRenderer(t)

	require.NoError(t, r.RenderResult(&preview.Preview{
		Destination: "/tv",
		Planned:     []string{"b.mkv"},
		Diff:        "--- /tv (current)\n+++ /tv (after link)\n@@ -1 +1,2 @@\n a.mkv\n+b.mkv\n",
	}))

	out := buf.String()
	assert.Contains(t, out, "@@ -1 +1,2 @@")
	assert.Contains(t, out, " a.mkv\n")
	assert.Contains(t, out, "+b.mkv")
}

func TestRenderError(t *testing.T) {
	r, buf := newRenderer(t)

	require.NoError(t, r.RenderError(errors.New(errors.ErrNoPriorRun, "no prior run")))
	assert.Contains(t, buf.String(), "no prior run")
	assert.Contains(t, buf.String(), "NO_PRIOR_RUN")
}
