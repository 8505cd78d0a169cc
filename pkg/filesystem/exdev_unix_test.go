//go:build unix

package filesystem

import (
	"os"
	"syscall"
	"testing"

	"github.com/arthur-debert/medialink/pkg/errors"
	"github.com/arthur-debert/medialink/pkg/types"
	"github.com/stretchr/testify/assert"
)

type exdevFS struct {
	types.FS
}

func (exdevFS) Link(oldname, newname string) error {
	return &os.LinkError{Op: "link", Old: oldname, New: newname, Err: syscall.EXDEV}
}

func TestHardLinkCrossDevice(t *testing.T) {
	err := HardLink(exdevFS{FS: NewMemoryFS()}, "/mnt/a/x.mkv", "/mnt/b/x.mkv")
	assert.True(t, errors.IsErrorCode(err, errors.ErrCrossDevice))
	assert.True(t, errors.IsLinkError(err))
	assert.ErrorIs(t, err, syscall.EXDEV)
}
