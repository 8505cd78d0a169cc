package styles_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/medialink/pkg/ui/output/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedStylesDefineEveryName(t *testing.T) {
	for _, name := range styles.Names {
		t.Run(name, func(t *testing.T) {
			_, exists := styles.StyleRegistry[name]
			assert.True(t, exists, "style %s should exist in registry", name)
		})
	}
}

func TestGetStyleUnknownName(t *testing.T) {
	assert.Equal(t, "plain", styles.GetStyle("NoSuchStyle").Render("plain"))
}

func TestRenderKeepsText(t *testing.T) {
	assert.Contains(t, styles.Render("Success", "linked"), "linked")
}

func TestLoadStyles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "styles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
colors:
  red:
    light: "#ff0000"
    dark: "#ff0000"
styles:
  Custom:
    bold: true
    foreground: red
`), 0644))

	require.NoError(t, styles.LoadStyles(path))
	t.Cleanup(func() {
		data, err := os.ReadFile("styles.yaml")
		require.NoError(t, err)
		require.NoError(t, styles.LoadStylesFromData(data))
	})

	_, ok := styles.StyleRegistry["Custom"]
	assert.True(t, ok)
	_, ok = styles.StyleRegistry["Header"]
	assert.False(t, ok, "loading replaces the registry")
}

func TestLoadStylesErrors(t *testing.T) {
	assert.Error(t, styles.LoadStyles(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, styles.LoadStylesFromData([]byte("styles: [")))
}
