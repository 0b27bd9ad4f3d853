package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/catalogdash/catalogdash/internal/errors"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	Success(w, map[string]string{"status": "ok"}, zerolog.Nop())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]any{"status": "ok"}, body["data"])
}

func TestHandleErrorDomainError(t *testing.T) {
	w := httptest.NewRecorder()
	HandleError(w, domainerrors.ValidationWithDetails("validation failed",
		map[string]string{"type-filter": "must be one of: All Movie 'TV Show'"}), zerolog.Nop())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "validation failed", body["error"])
	assert.Contains(t, body["details"], "type-filter")
}

func TestHandleErrorNotFound(t *testing.T) {
	w := httptest.NewRecorder()
	HandleError(w, domainerrors.NotFoundf("unknown slot %q", "x"), zerolog.Nop())
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleErrorUnknownError(t *testing.T) {
	w := httptest.NewRecorder()
	HandleError(w, errors.New("boom"), zerolog.Nop())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "internal server error", body["error"])
}
