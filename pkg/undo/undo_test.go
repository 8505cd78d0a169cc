// pkg/undo/undo_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: in-memory filesystem
// PURPOSE: Test removal of ledgered paths and ledger lifecycle

package undo

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/arthur-debert/medialink/pkg/errors"
	"github.com/arthur-debert/medialink/pkg/filesystem"
	"github.com/arthur-debert/medialink/pkg/ledger"
	"github.com/arthur-debert/medialink/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ledgerPath = "/opt/medialink/.medialink-ledger"

func TestRunRemovesEveryEntry(t *testing.T) {
	fs := filesystem.NewMemoryFS()
	testutil.NewTree(t, fs,
		"/dst/keep.mkv",
		"/dst/a - s01e01.mkv",
		"/dst/Show/season/ep1.mkv",
		"/dst/Show/extra.nfo",
	)
	store := ledger.NewStore(fs, ledgerPath)
	require.NoError(t, store.Save([]string{
		"/dst/a - s01e01.mkv",
		"/dst/Show",
		"/dst/Show/season",
		"/dst/Show/season/ep1.mkv",
	}))

	result, err := Run(Options{FS: fs, Store: store})
	require.NoError(t, err)

	testutil.AssertExists(t, fs, "/dst/keep.mkv")
	testutil.AssertMissing(t, fs, "/dst/a - s01e01.mkv")
	testutil.AssertMissing(t, fs, "/dst/Show")
	assert.False(t, store.Exists())

	assert.True(t, result.LedgerDeleted)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 2, result.Removed())
	require.Len(t, result.Removals, 4)
	assert.Equal(t, StatusMissing, result.Removals[2].Status, "removed along with its parent")
}

func TestRunTwiceReportsNoPriorRun(t *testing.T) {
	fs := filesystem.NewMemoryFS()
	testutil.NewTree(t, fs, "/dst/a.mkv", "/dst/b.mkv")
	store := ledger.NewStore(fs, ledgerPath)
	require.NoError(t, store.Save([]string{"/dst/a.mkv"}))

	_, err := Run(Options{FS: fs, Store: store})
	require.NoError(t, err)
	testutil.AssertMissing(t, fs, "/dst/a.mkv")

	_, err = Run(Options{FS: fs, Store: store})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoPriorRun))
	assert.Equal(t, errors.ExitNoPriorRun, errors.ExitCode(err))
	testutil.AssertExists(t, fs, "/dst/b.mkv")
}

func TestRunWithoutLedger(t *testing.T) {
	fs := filesystem.NewMemoryFS()
	_, err := Run(Options{FS: fs, Store: ledger.NewStore(fs, ledgerPath)})
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoPriorRun))
}

func TestRunEmptyLedger(t *testing.T) {
	fs := filesystem.NewMemoryFS()
	store := ledger.NewStore(fs, ledgerPath)
	require.NoError(t, store.Save(nil))

	result, err := Run(Options{FS: fs, Store: store})
	require.NoError(t, err)
	assert.Empty(t, result.Removals)
	assert.True(t, result.LedgerDeleted)
	assert.False(t, store.Exists())
}

func TestRunNeverResolvesRelativeEntries(t *testing.T) {
	fs := filesystem.NewOS()
	tmp := t.TempDir()
	work := filepath.Join(tmp, "work")
	dst := filepath.Join(tmp, "dst")
	require.NoError(t, os.MkdirAll(work, 0755))
	require.NoError(t, os.MkdirAll(dst, 0755))
	unrelated := filepath.Join(work, "bar.mkv")
	require.NoError(t, os.WriteFile(unrelated, []byte("unrelated"), 0644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(work))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	// a name with a line break split across two ledger lines
	ledgerFile := filepath.Join(tmp, "ledger")
	require.NoError(t, os.WriteFile(ledgerFile, []byte(filepath.Join(dst, "foo")+"\nbar.mkv\n"), 0644))

	result, err := Run(Options{FS: fs, Store: ledger.NewStore(fs, ledgerFile)})
	require.NoError(t, err)
	require.Len(t, result.Removals, 1)
	assert.Equal(t, StatusMissing, result.Removals[0].Status)

	_, err = os.Stat(unrelated)
	assert.NoError(t, err, "entries are never resolved against the working directory")
}

func TestRunKeepsLedgerOnFailure(t *testing.T) {
	mem := filesystem.NewMemoryFS()
	testutil.NewTree(t, mem, "/dst/a.mkv", "/dst/b.mkv")
	fs := testutil.NewFaultyFS(mem)
	fs.FailRemove("/dst/a.mkv", syscall.EACCES)

	store := ledger.NewStore(mem, ledgerPath)
	require.NoError(t, store.Save([]string{"/dst/a.mkv", "/dst/b.mkv"}))

	result, err := Run(Options{FS: fs, Store: store})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.False(t, result.LedgerDeleted)
	assert.Equal(t, StatusFailed, result.Removals[0].Status)
	assert.True(t, errors.IsErrorCode(result.Removals[0].Err, errors.ErrRemove))
	assert.Equal(t, StatusRemoved, result.Removals[1].Status)

	testutil.AssertExists(t, mem, "/dst/a.mkv")
	testutil.AssertMissing(t, mem, "/dst/b.mkv")
	assert.True(t, store.Exists())

	// retry succeeds once the cause is gone
	result, err = Run(Options{FS: mem, Store: store})
	require.NoError(t, err)
	assert.True(t, result.LedgerDeleted)
	assert.Equal(t, 1, result.Removed())
	testutil.AssertMissing(t, mem, "/dst/a.mkv")
}

func TestRunDryRun(t *testing.T) {
	fs := filesystem.NewMemoryFS()
	testutil.NewTree(t, fs, "/dst/a.mkv", "/dst/Show/")
	store := ledger.NewStore(fs, ledgerPath)
	require.NoError(t, store.Save([]string{"/dst/a.mkv", "/dst/Show", "/dst/gone.mkv"}))

	result, err := Run(Options{FS: fs, Store: store, DryRun: true})
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.False(t, result.LedgerDeleted)
	assert.Equal(t, []Status{StatusPlanned, StatusPlanned, StatusMissing}, statuses(result))
	testutil.AssertExists(t, fs, "/dst/a.mkv")
	testutil.AssertExists(t, fs, "/dst/Show")
	assert.True(t, store.Exists())
}

func statuses(r *Result) []Status {
	out := make([]Status, len(r.Removals))
	for i, rm := range r.Removals {
		out[i] = rm.Status
	}
	return out
}
