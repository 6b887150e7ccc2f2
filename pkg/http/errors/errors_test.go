package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondValidationErrorUses422(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondValidationError(rec, ErrCodeMissingField, "All fields must be filled and non-empty.", "email")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrCodeMissingField, body.Error)
	assert.Equal(t, "email", body.Field)
}

func TestRespondErrorOmitsEmptyField(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondNotFound(rec, ErrCodeNotFound, "Story not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), `"field"`)
}
