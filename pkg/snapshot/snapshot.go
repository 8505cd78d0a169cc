// Package snapshot keeps the authority on "does this name already exist"
// for destination directories. A directory is read once, one level deep,
// and then only grows as the run creates entries inside it.
package snapshot

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/medialink/pkg/errors"
	"github.com/arthur-debert/medialink/pkg/logging"
	"github.com/arthur-debert/medialink/pkg/types"
)

// Snapshot maps the entry names of a single directory to their kind.
type Snapshot struct {
	dir     string
	entries map[string]types.EntryKind
}

// Empty returns a snapshot of a directory known to have no entries
func Empty(dir string) *Snapshot {
	return &Snapshot{dir: dir, entries: make(map[string]types.EntryKind)}
}

// Load reads the direct children of dir. A missing directory yields an
// empty snapshot so preview runs can target a destination that does not
// exist yet.
func Load(fsys types.FS, dir string) (*Snapshot, error) {
	logger := logging.GetLogger("snapshot")
	s := Empty(dir)

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("dir", dir).Msg("Destination does not exist, using empty snapshot")
			return s, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read destination %s", dir)
	}

	for _, entry := range entries {
		kind := types.KindFile
		if entry.IsDir() {
			kind = types.KindDir
		}
		s.entries[entry.Name()] = kind
	}

	logger.Debug().
		Str("dir", dir).
		Int("entries", len(s.entries)).
		Msg("Snapshot loaded")
	return s, nil
}

// Dir returns the directory this snapshot describes
func (s *Snapshot) Dir() string {
	return s.dir
}

// Contains looks name up
func (s *Snapshot) Contains(name string) (types.EntryKind, bool) {
	kind, ok := s.entries[name]
	return kind, ok
}

// Record adds name after it has been created
func (s *Snapshot) Record(name string, kind types.EntryKind) {
	s.entries[name] = kind
}

// Len returns the number of known entries
func (s *Snapshot) Len() int {
	return len(s.entries)
}

// Names returns every known entry name in lexical order. Directory names
// carry a trailing slash.
func (s *Snapshot) Names() []string {
	names := make([]string, 0, len(s.entries))
	for name, kind := range s.entries {
		if kind == types.KindDir {
			name += "/"
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Set hands out one snapshot per destination directory, loading each on
// first use. Directories created during the run are registered empty and
// never read.
type Set struct {
	fs        types.FS
	snapshots map[string]*Snapshot
}

// NewSet creates an empty set
func NewSet(fsys types.FS) *Set {
	return &Set{fs: fsys, snapshots: make(map[string]*Snapshot)}
}

// For returns the snapshot of dir, loading it on first access.
func (s *Set) For(dir string) (*Snapshot, error) {
	dir = filepath.Clean(dir)
	if snap, ok := s.snapshots[dir]; ok {
		return snap, nil
	}
	snap, err := Load(s.fs, dir)
	if err != nil {
		return nil, err
	}
	s.snapshots[dir] = snap
	return snap, nil
}

// Created registers path as a freshly created entry: its parent snapshot
// learns the name and, for directories, an empty snapshot is installed.
func (s *Set) Created(path string, kind types.EntryKind) {
	path = filepath.Clean(path)
	parent := filepath.Dir(path)
	if snap, ok := s.snapshots[parent]; ok {
		snap.Record(filepath.Base(path), kind)
	}
	if kind == types.KindDir {
		if _, ok := s.snapshots[path]; !ok {
			s.snapshots[path] = Empty(path)
		}
	}
}
