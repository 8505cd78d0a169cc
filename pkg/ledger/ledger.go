// Package ledger records every path a run creates so the run can be
// undone. The in-memory Ledger is append-only; Store persists it as one
// absolute path per line; Flusher guarantees the ledger is written exactly
// once whichever way the run ends.
package ledger

import (
	"sync"

	"github.com/arthur-debert/medialink/pkg/errors"
	"github.com/arthur-debert/medialink/pkg/types"
)

// Entry is one created filesystem object
type Entry struct {
	Path string
	Kind types.EntryKind
}

// Ledger is the ordered list of paths created by the current run. It is
// safe for use by the planner and an interrupt handler at the same time.
type Ledger struct {
	mu      sync.Mutex
	entries []Entry
	// set once persisted; Track refuses to create anything afterwards
	sealed bool
}

// New returns an empty ledger
func New() *Ledger {
	return &Ledger{}
}

// Track runs create and, only if it succeeds, appends path. Both happen
// under the ledger lock, so a concurrent Flush either sees path or runs
// before create does.
func (l *Ledger) Track(path string, kind types.EntryKind, create func() error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.sealed {
		return errors.New(errors.ErrInterrupted, "run already finished, refusing to create "+path)
	}
	if err := create(); err != nil {
		return err
	}
	l.entries = append(l.entries, Entry{Path: path, Kind: kind})
	return nil
}

// Append records path without running anything. Used by dry runs.
func (l *Ledger) Append(path string, kind types.EntryKind) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{Path: path, Kind: kind})
}

// Sealed reports whether the ledger has been persisted
func (l *Ledger) Sealed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sealed
}

// Entries returns a copy of the recorded entries in creation order
func (l *Ledger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), l.entries...)
}

// Paths returns the recorded paths in creation order
func (l *Ledger) Paths() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	paths := make([]string, len(l.entries))
	for i, e := range l.entries {
		paths[i] = e.Path
	}
	return paths
}

// Len returns the number of recorded entries
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
