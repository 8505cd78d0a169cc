package ledger

import (
	"sync"

	"github.com/arthur-debert/medialink/pkg/logging"
)

// Flusher writes a ledger to its store exactly once. The link command
// defers Flush on the normal path and calls it from the interrupt handler;
// whichever runs first wins and the other returns the same result.
type Flusher struct {
	ledger *Ledger
	store  *Store

	once sync.Once
	err  error
	done bool
}

// NewFlusher binds ledger to store
func NewFlusher(ledger *Ledger, store *Store) *Flusher {
	return &Flusher{ledger: ledger, store: store}
}

// Flush persists the ledger on the first call. Later calls are no-ops
// returning the first call's error.
func (f *Flusher) Flush(reason string) error {
	f.once.Do(func() {
		logger := logging.GetLogger("ledger")
		// Hold the ledger lock so no creation can land between the
		// snapshot and the write.
		f.ledger.mu.Lock()
		defer f.ledger.mu.Unlock()

		paths := make([]string, len(f.ledger.entries))
		for i, e := range f.ledger.entries {
			paths[i] = e.Path
		}
		f.err = f.store.Save(paths)
		f.done = true
		f.ledger.sealed = true

		event := logger.Info()
		if f.err != nil {
			event = logger.Error().Err(f.err)
		}
		event.
			Str("reason", reason).
			Str("path", f.store.Path()).
			Int("entries", len(paths)).
			Msg("Ledger flushed")
	})
	return f.err
}

// Flushed reports whether Flush has run
func (f *Flusher) Flushed() bool {
	f.ledger.mu.Lock()
	defer f.ledger.mu.Unlock()
	return f.done
}
