package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByCode(t *testing.T) {
	err := NotFoundf("slot %q", "nope")
	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrValidation))

	wrapped := fmt.Errorf("rendering: %w", err)
	assert.True(t, Is(wrapped, ErrNotFound))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NotFoundf("x").HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, Validationf("x").HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, ErrInternal.HTTPStatus())
}

func TestWrapKeepsCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(cause, CodeInternal, "writing snapshot")
	assert.Equal(t, "writing snapshot: disk full", err.Error())
	assert.Equal(t, cause, Unwrap(err))
}
