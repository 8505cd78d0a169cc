package ledger

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/medialink/pkg/errors"
	"github.com/arthur-debert/medialink/pkg/logging"
	"github.com/arthur-debert/medialink/pkg/types"
)

// Store persists a single generation of the ledger at a fixed path
type Store struct {
	fs   types.FS
	path string
}

// NewStore creates a store backed by the file at path
func NewStore(fsys types.FS, path string) *Store {
	return &Store{fs: fsys, path: path}
}

// Path returns the location of the ledger file
func (s *Store) Path() string {
	return s.path
}

// Save replaces the stored ledger with paths. The file is written next to
// its final location and renamed into place so a crash never leaves a
// truncated ledger behind.
func (s *Store) Save(paths []string) error {
	logger := logging.GetLogger("ledger")

	var buf bytes.Buffer
	for _, p := range paths {
		buf.WriteString(p)
		buf.WriteByte('\n')
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot create ledger directory %s", dir)
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d", filepath.Base(s.path), os.Getpid()))
	if err := s.fs.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot write ledger %s", tmp)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot replace ledger %s", s.path)
	}

	logger.Debug().
		Str("path", s.path).
		Int("entries", len(paths)).
		Msg("Ledger saved")
	return nil
}

// Load reads the stored ledger. It fails with ErrNoPriorRun when there is
// nothing to undo. Lines that are not absolute paths are dropped so undo
// never resolves an entry against the working directory.
func (s *Store) Load() ([]string, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrNoPriorRun, "no prior run to undo").
				WithDetail("ledger", s.path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read ledger %s", s.path)
	}

	var paths []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if !filepath.IsAbs(line) {
			logger := logging.GetLogger("ledger")
			logger.Warn().
				Str("ledger", s.path).
				Str("entry", line).
				Msg("Ignoring ledger entry that is not an absolute path")
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot parse ledger %s", s.path)
	}
	return paths, nil
}

// Exists reports whether a ledger is stored
func (s *Store) Exists() bool {
	_, err := s.fs.Stat(s.path)
	return err == nil
}

// Delete removes the stored ledger. A missing ledger is not an error.
func (s *Store) Delete() error {
	if err := s.fs.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot delete ledger %s", s.path)
	}
	return nil
}
