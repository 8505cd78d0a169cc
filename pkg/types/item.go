package types

import "path/filepath"

// EntryKind classifies a filesystem entry as a regular file or a directory.
type EntryKind int

const (
	KindFile EntryKind = iota
	KindDir
)

// String returns the lowercase name of the kind
func (k EntryKind) String() string {
	if k == KindDir {
		return "dir"
	}
	return "file"
}

// Item is one discovered source entry. Files carry their path relative to
// the source root; directories are always direct children of the root.
type Item struct {
	Kind    EntryKind
	Path    string // absolute source path
	RelPath string // path relative to the source root
}

// Name returns the base name of the item
func (i Item) Name() string {
	return filepath.Base(i.Path)
}

// TopDir returns the first component of RelPath when the item is nested
// below a top-level directory, or "" when it sits directly under the root.
func (i Item) TopDir() string {
	dir := filepath.Dir(i.RelPath)
	if dir == "." {
		return ""
	}
	for {
		parent := filepath.Dir(dir)
		if parent == "." {
			return dir
		}
		dir = parent
	}
}

// Discovery is the ordered output of source discovery.
type Discovery struct {
	Root  string
	Files []Item
	Dirs  []Item
}
