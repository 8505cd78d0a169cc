package text_test

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/medialink/pkg/planner"
	"github.com/arthur-debert/medialink/pkg/ui/preview"
	"github.com/arthur-debert/medialink/pkg/ui/text"
	"github.com/arthur-debert/medialink/pkg/undo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, result interface{}) string {
	t.Helper()
	var buf bytes.Buffer
	r, err := text.New(&buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderResult(result))
	return buf.String()
}

func TestRenderLinkResult(t *testing.T) {
	out := render(t, &planner.Result{
		Strategy:    "sequential",
		Destination: "/tv",
		Placements: []planner.Placement{
			{Source: "/src/a.mkv", Target: "/tv/a - s01e01.mkv", Sequence: "s01e01"},
		},
		Skipped: []string{"/src/b.mkv"},
	})

	assert.Equal(t, "Linking into /tv (sequential)\n"+
		"  linked    a.mkv -> /tv/a - s01e01.mkv (s01e01)\n"+
		"  skipped   b.mkv\n"+
		"1 linked, 1 skipped, 0 failed\n", out)
}

func TestRenderUndoResultDryRun(t *testing.T) {
	out := render(t, &undo.Result{
		LedgerPath: "/opt/.medialink-ledger",
		DryRun:     true,
		Removals:   []undo.Removal{{Path: "/tv/a.mkv", Status: undo.StatusPlanned}},
	})

	assert.Contains(t, out, "[dry run]")
	assert.Contains(t, out, "  planned   /tv/a.mkv\n")
	assert.Contains(t, out, "1 to remove, 0 already gone\n")
}

func TestRenderPreview(t *testing.T) {
	out := render(t, &preview.Preview{
		Destination: "/tv",
		Planned:     []string{"a.mkv"},
		Replaced:    []string{"a.mkv"},
		Diff:        "+a.mkv\n",
	})
	assert.Equal(t, "+a.mkv\n~a.mkv (replaced)\n", out)

	out = render(t, &preview.Preview{Destination: "/tv"})
	assert.Equal(t, "Nothing would change in /tv\n", out)
}

func TestRenderErrorAndMessage(t *testing.T) {
	var buf bytes.Buffer
	r, err := text.New(&buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderError(stderrors.New("boom")))
	require.NoError(t, r.RenderMessage("done"))
	assert.Equal(t, "Error: boom\ndone\n", buf.String())
}
