package types_test

import (
	"testing"

	"github.com/arthur-debert/medialink/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestItemTopDir(t *testing.T) {
	tests := []struct {
		relPath string
		want    string
	}{
		{"a.mkv", ""},
		{"Show/e1.mkv", "Show"},
		{"Show/s1/e1.mkv", "Show"},
		{"Show/s1/extras/e1.mkv", "Show"},
	}
	for _, tt := range tests {
		t.Run(tt.relPath, func(t *testing.T) {
			item := types.Item{Path: "/src/" + tt.relPath, RelPath: tt.relPath}
			assert.Equal(t, tt.want, item.TopDir())
		})
	}
}

func TestItemName(t *testing.T) {
	assert.Equal(t, "e1.mkv", types.Item{Path: "/src/Show/e1.mkv"}.Name())
}

func TestEntryKindString(t *testing.T) {
	assert.Equal(t, "file", types.KindFile.String())
	assert.Equal(t, "dir", types.KindDir.String())
}
