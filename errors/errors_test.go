package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrInvalidOverride, "empty prefix")
	assert.Equal(t, "[INVALID_OVERRIDE] empty prefix", err.Error())

	wrapped := Wrap(fmt.Errorf("disk full"), ErrSinkWrite, "write failed")
	assert.Equal(t, "[SINK_WRITE] write failed: disk full", wrapped.Error())
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrSinkWrite, "noop"))
	assert.Nil(t, Wrapf(nil, ErrSinkWrite, "noop %d", 1))
}

func TestCodesSurviveWrapping(t *testing.T) {
	base := Newf(ErrDuplicateOverride, "prefix %q already set", "app")
	outer := fmt.Errorf("configure: %w", base)

	assert.True(t, IsErrorCode(outer, ErrDuplicateOverride))
	assert.False(t, IsErrorCode(outer, ErrInvalidOverride))
	assert.Equal(t, ErrDuplicateOverride, GetErrorCode(outer))
	assert.Equal(t, ErrUnknown, GetErrorCode(errors.New("plain")))
	assert.True(t, errors.Is(outer, New(ErrDuplicateOverride, "")))
}

func TestDetails(t *testing.T) {
	err := New(ErrConfigParse, "bad level").WithDetail("value", "loud")
	details := GetErrorDetails(fmt.Errorf("outer: %w", err))
	require.NotNil(t, details)
	assert.Equal(t, "loud", details["value"])
	assert.Nil(t, GetErrorDetails(errors.New("plain")))
}
