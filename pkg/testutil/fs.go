package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/arthur-debert/medialink/pkg/types"
	"github.com/stretchr/testify/require"
)

// NewTree creates every path on fsys. Paths ending in "/" become
// directories, everything else a file whose content is its own path.
func NewTree(t *testing.T, fsys types.FS, paths ...string) {
	t.Helper()
	for _, p := range paths {
		if strings.HasSuffix(p, "/") {
			require.NoError(t, fsys.MkdirAll(filepath.Clean(p), 0755))
			continue
		}
		require.NoError(t, fsys.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, fsys.WriteFile(p, []byte(p), 0644))
	}
}

// AssertExists fails the test when path is missing on fsys
func AssertExists(t *testing.T, fsys types.FS, path string) {
	t.Helper()
	_, err := fsys.Stat(path)
	require.NoError(t, err, "expected %s to exist", path)
}

// AssertMissing fails the test when path exists on fsys
func AssertMissing(t *testing.T, fsys types.FS, path string) {
	t.Helper()
	_, err := fsys.Stat(path)
	require.True(t, os.IsNotExist(err), "expected %s to be absent, got %v", path, err)
}

// ReadContent returns the content of path, failing the test on error
func ReadContent(t *testing.T, fsys types.FS, path string) string {
	t.Helper()
	data, err := fsys.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// FaultyFS wraps a types.FS and fails selected operations
type FaultyFS struct {
	types.FS

	mu           sync.Mutex
	linkErrors    map[string]error
	linkDirErrors map[string]error
	removeErrors  map[string]error
	renameErrors  map[string]error
	links         []string
}

// NewFaultyFS wraps inner
func NewFaultyFS(inner types.FS) *FaultyFS {
	return &FaultyFS{
		FS:            inner,
		linkErrors:    make(map[string]error),
		linkDirErrors: make(map[string]error),
		removeErrors:  make(map[string]error),
		renameErrors:  make(map[string]error),
	}
}

// FailLink makes every Link whose new name is target fail with err
func (f *FaultyFS) FailLink(target string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.linkErrors[target] = err
}

// FailLinksIn makes every Link creating a name directly inside dir fail
// with err, whatever the name
func (f *FaultyFS) FailLinksIn(dir string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.linkDirErrors[filepath.Clean(dir)] = err
}

// FailRename makes every Rename onto newpath fail with err
func (f *FaultyFS) FailRename(newpath string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.renameErrors[newpath] = err
}

// FailRemove makes Remove and RemoveAll of path fail with err
func (f *FaultyFS) FailRemove(path string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removeErrors[path] = err
}

// Link fails for injected targets and records successful link targets
func (f *FaultyFS) Link(oldname, newname string) error {
	f.mu.Lock()
	injected, ok := f.linkErrors[newname]
	if !ok {
		injected, ok = f.linkDirErrors[filepath.Dir(newname)]
	}
	f.mu.Unlock()
	if ok {
		return &os.LinkError{Op: "link", Old: oldname, New: newname, Err: injected}
	}
	if err := f.FS.Link(oldname, newname); err != nil {
		return err
	}
	f.mu.Lock()
	f.links = append(f.links, newname)
	f.mu.Unlock()
	return nil
}

// Rename fails for injected destinations
func (f *FaultyFS) Rename(oldpath, newpath string) error {
	f.mu.Lock()
	injected, ok := f.renameErrors[newpath]
	f.mu.Unlock()
	if ok {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: injected}
	}
	return f.FS.Rename(oldpath, newpath)
}

// Remove fails for injected paths
func (f *FaultyFS) Remove(name string) error {
	if err := f.removeError(name); err != nil {
		return err
	}
	return f.FS.Remove(name)
}

// RemoveAll fails for injected paths
func (f *FaultyFS) RemoveAll(path string) error {
	if err := f.removeError(path); err != nil {
		return err
	}
	return f.FS.RemoveAll(path)
}

func (f *FaultyFS) removeError(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.removeErrors[path]; ok {
		return &os.PathError{Op: "remove", Path: path, Err: err}
	}
	return nil
}

// Links returns the targets of every successful Link, in call order
func (f *FaultyFS) Links() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.links...)
}
