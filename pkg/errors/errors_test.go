// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, classification and exit codes

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/medialink/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "empty_range",
			code:    errors.ErrEmptyRange,
			message: "empty range",
			wantStr: "[EMPTY_RANGE] empty range",
		},
		{
			name:    "no_prior_run",
			code:    errors.ErrNoPriorRun,
			message: "no prior run",
			wantStr: "[NO_PRIOR_RUN] no prior run",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestWrap(t *testing.T) {
	base := stderrors.New("invalid cross-device link")
	err := errors.Wrapf(base, errors.ErrCrossDevice, "cannot link %s", "a.mkv")

	require.NotNil(t, err)
	assert.Equal(t, "[CROSS_DEVICE] cannot link a.mkv: invalid cross-device link", err.Error())
	assert.True(t, stderrors.Is(err, base))
	assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "nothing"))
}

func TestIsMatchesByCode(t *testing.T) {
	err := errors.New(errors.ErrSeasonLocked, "season locked")
	wrapped := fmt.Errorf("override: %w", err)

	assert.True(t, stderrors.Is(wrapped, errors.New(errors.ErrSeasonLocked, "other message")))
	assert.False(t, stderrors.Is(wrapped, errors.New(errors.ErrBeyondRange, "season locked")))
	assert.True(t, errors.IsErrorCode(wrapped, errors.ErrSeasonLocked))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrLinkFailed, "link failed").
		WithDetail("source", "/src/a.mkv").
		WithDetail("target", "/dst/a.mkv")

	details := errors.GetErrorDetails(err)
	assert.Equal(t, "/src/a.mkv", details["source"])
	assert.Equal(t, "/dst/a.mkv", details["target"])
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestClassification(t *testing.T) {
	for _, code := range []errors.ErrorCode{
		errors.ErrInvalidToken, errors.ErrSeasonMismatch, errors.ErrEmptyRange,
		errors.ErrSeasonLocked, errors.ErrBeyondRange,
	} {
		assert.True(t, errors.IsValidation(errors.New(code, "x")), code)
		assert.False(t, errors.IsLinkError(errors.New(code, "x")), code)
	}
	for _, code := range []errors.ErrorCode{errors.ErrLinkFailed, errors.ErrCrossDevice, errors.ErrDirCreate} {
		assert.True(t, errors.IsLinkError(errors.New(code, "x")), code)
		assert.False(t, errors.IsValidation(errors.New(code, "x")), code)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, errors.ExitOK},
		{errors.New(errors.ErrMissingArgument, "x"), errors.ExitMissingArgument},
		{errors.New(errors.ErrSourceNotFound, "x"), errors.ExitSourceNotFound},
		{errors.New(errors.ErrDestInvalid, "x"), errors.ExitDestInvalid},
		{errors.New(errors.ErrEmptyRange, "x"), errors.ExitInvalidSequence},
		{errors.New(errors.ErrInvalidToken, "x"), errors.ExitInvalidSequence},
		{errors.New(errors.ErrNoPriorRun, "x"), errors.ExitNoPriorRun},
		{errors.New(errors.ErrInterrupted, "x"), errors.ExitInterrupted},
		{stderrors.New("boom"), errors.ExitFailure},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, errors.ExitCode(tt.err), "%v", tt.err)
	}
}
