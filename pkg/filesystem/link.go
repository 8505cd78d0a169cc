package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/medialink/pkg/errors"
	"github.com/arthur-debert/medialink/pkg/types"
)

// DirPerm is the mode used for every directory medialink creates
const DirPerm os.FileMode = 0755

// HardLink creates dst as a hardlink to src. Failures are returned as
// LinkErrors: ErrCrossDevice when the two paths live on different volumes,
// ErrLinkFailed otherwise. Nothing is copied as a fallback.
func HardLink(fsys types.FS, src, dst string) error {
	if err := fsys.Link(src, dst); err != nil {
		return linkError(err, src, dst)
	}
	return nil
}

func linkError(err error, src, dst string) error {
	code := errors.ErrLinkFailed
	msg := "cannot create hardlink"
	if isEXDEV(err) {
		code = errors.ErrCrossDevice
		msg = "source and destination are on different volumes"
	}
	return errors.Wrap(err, code, msg).
		WithDetail("source", src).
		WithDetail("target", dst)
}

// ReplaceWithLink makes dst a hardlink to src when dst already exists as a
// file. The link is first created under a hidden sibling name and renamed
// over dst, so dst is left untouched when either step fails.
func ReplaceWithLink(fsys types.FS, src, dst string) error {
	tmp := filepath.Join(filepath.Dir(dst), fmt.Sprintf(".%s.medialink-%d", filepath.Base(dst), os.Getpid()))
	_ = fsys.Remove(tmp)

	if err := fsys.Link(src, tmp); err != nil {
		return linkError(err, src, dst)
	}
	if err := fsys.Rename(tmp, dst); err != nil {
		_ = fsys.Remove(tmp)
		return errors.Wrap(err, errors.ErrLinkFailed, "cannot replace existing file").
			WithDetail("source", src).
			WithDetail("target", dst)
	}
	return nil
}

// MakeDir creates path and any missing parents.
func MakeDir(fsys types.FS, path string) error {
	if err := fsys.MkdirAll(path, DirPerm); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "cannot create directory").
			WithDetail("target", path)
	}
	return nil
}

// Kind reports whether path is a directory or a file. ok is false when the
// path does not exist.
func Kind(fsys types.FS, path string) (kind types.EntryKind, ok bool, err error) {
	info, err := fsys.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.KindFile, false, nil
		}
		return types.KindFile, false, err
	}
	if info.IsDir() {
		return types.KindDir, true, nil
	}
	return types.KindFile, true, nil
}
