package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/medialink/pkg/errors"
	"github.com/arthur-debert/medialink/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fs := NewOS()
	assert.NotNil(t, fs)

	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "episode.mkv")
	require.NoError(t, fs.WriteFile(src, []byte("frames"), 0644))

	// Hardlinks share the inode, so both names see the same content
	dst := filepath.Join(tmpDir, "out", "episode - s01e01.mkv")
	require.NoError(t, MakeDir(fs, filepath.Dir(dst)))
	require.NoError(t, HardLink(fs, src, dst))

	srcInfo, err := os.Stat(src)
	require.NoError(t, err)
	dstInfo, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, os.SameFile(srcInfo, dstInfo))

	entries, err := fs.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2) // episode.mkv and out/

	require.NoError(t, fs.Remove(dst))
	_, err = fs.Stat(src)
	assert.NoError(t, err, "removing one name must leave the other")
}

func TestHardLinkExistingTarget(t *testing.T) {
	fs := NewOS()
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "a.mkv")
	dst := filepath.Join(tmpDir, "b.mkv")
	require.NoError(t, fs.WriteFile(src, []byte("a"), 0644))
	require.NoError(t, fs.WriteFile(dst, []byte("b"), 0644))

	err := HardLink(fs, src, dst)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLinkFailed))
	assert.True(t, errors.IsLinkError(err))
	assert.Equal(t, dst, errors.GetErrorDetails(err)["target"])
}

func TestReplaceWithLink(t *testing.T) {
	fs := NewOS()
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "a.mkv")
	dst := filepath.Join(tmpDir, "out", "a - s01e01.mkv")
	require.NoError(t, fs.WriteFile(src, []byte("new"), 0644))
	require.NoError(t, MakeDir(fs, filepath.Dir(dst)))
	require.NoError(t, fs.WriteFile(dst, []byte("old"), 0644))

	require.NoError(t, ReplaceWithLink(fs, src, dst))

	srcInfo, err := os.Stat(src)
	require.NoError(t, err)
	dstInfo, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, os.SameFile(srcInfo, dstInfo))

	entries, err := fs.ReadDir(filepath.Dir(dst))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "the staging name is renamed away")
}

func TestReplaceWithLinkMissingSource(t *testing.T) {
	fs := NewOS()
	tmpDir := t.TempDir()
	dst := filepath.Join(tmpDir, "b.mkv")
	require.NoError(t, fs.WriteFile(dst, []byte("old"), 0644))

	err := ReplaceWithLink(fs, filepath.Join(tmpDir, "missing.mkv"), dst)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLinkFailed))
	assert.Equal(t, dst, errors.GetErrorDetails(err)["target"])

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

func TestAferoLink(t *testing.T) {
	fs := NewMemoryFS()
	require.NoError(t, fs.MkdirAll("/src", 0755))
	require.NoError(t, fs.MkdirAll("/dst", 0755))
	require.NoError(t, fs.WriteFile("/src/a.mkv", []byte("frames"), 0644))

	require.NoError(t, HardLink(fs, "/src/a.mkv", "/dst/a.mkv"))
	content, err := fs.ReadFile("/dst/a.mkv")
	require.NoError(t, err)
	assert.Equal(t, []byte("frames"), content)

	t.Run("existing target", func(t *testing.T) {
		err := HardLink(fs, "/src/a.mkv", "/dst/a.mkv")
		assert.True(t, errors.IsErrorCode(err, errors.ErrLinkFailed))
	})

	t.Run("missing parent", func(t *testing.T) {
		err := HardLink(fs, "/src/a.mkv", "/nowhere/a.mkv")
		assert.True(t, errors.IsErrorCode(err, errors.ErrLinkFailed))
	})

	t.Run("directory source", func(t *testing.T) {
		err := HardLink(fs, "/src", "/dst/src")
		assert.True(t, errors.IsErrorCode(err, errors.ErrLinkFailed))
	})
}

func TestKind(t *testing.T) {
	fs := NewMemoryFS()
	require.NoError(t, fs.MkdirAll("/dst/Show", 0755))
	require.NoError(t, fs.WriteFile("/dst/a.mkv", nil, 0644))

	kind, ok, err := Kind(fs, "/dst/Show")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, types.KindDir, kind)

	kind, ok, err = Kind(fs, "/dst/a.mkv")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, types.KindFile, kind)

	_, ok, err = Kind(fs, "/dst/missing")
	require.NoError(t, err)
	assert.False(t, ok)
}
