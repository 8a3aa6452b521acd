package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FlatBartender/bis-solver/internal/errors"
)

func TestWrapPreservesCode(t *testing.T) {
	base := errors.FailedPrecondition("leftover items").WithMeta("count", 2)
	wrapped := errors.Wrap(base, "solve failed")

	assert.Equal(t, errors.CodeFailedPrecondition, wrapped.Code)
	assert.Equal(t, 2, errors.GetMeta(wrapped)["count"])
	assert.True(t, errors.IsFailedPrecondition(wrapped))
	assert.Contains(t, wrapped.Error(), "leftover items")
}

func TestWrapForeignError(t *testing.T) {
	wrapped := errors.Wrapf(fmt.Errorf("boom"), "reading %s", "catalog.json")

	assert.Equal(t, errors.CodeInternal, errors.GetCode(wrapped))
	assert.Equal(t, "INTERNAL: reading catalog.json: boom", wrapped.Error())
}

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", errors.NotFoundf("run %s", "abc"))

	assert.True(t, errors.Is(err, errors.NotFound("")))
	assert.False(t, errors.Is(err, errors.InvalidArgument("")))
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
	assert.Nil(t, errors.Wrap(nil, "nothing"))
}
