package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	base := errors.New("disk full")
	wrapped := WrapError(base, "failed to save screenshot")

	assert.ErrorIs(t, wrapped, base)
	assert.Contains(t, wrapped.Error(), "failed to save screenshot")

	assert.Nil(t, WrapError(nil, "ignored"))
}

func TestConfigurationError(t *testing.T) {
	err := NewConfigurationError("monitor", "urls", "no URLs configured")

	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Contains(t, err.Error(), "monitor")
	assert.Contains(t, err.Error(), "urls")
}

func TestStoreErrorUnwrap(t *testing.T) {
	base := errors.New("permission denied")
	err := NewStoreError("save", "screenshot-2024-01-01-00-00-00-example-com.png", base)

	assert.ErrorIs(t, err, base)
	assert.Contains(t, err.Error(), "save")
}

func TestDimensionMismatchError(t *testing.T) {
	err := &DimensionMismatchError{WidthA: 1280, HeightA: 900, WidthB: 1280, HeightB: 1200}
	assert.Contains(t, err.Error(), "1280x900")
	assert.Contains(t, err.Error(), "1280x1200")
}
