package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelperHTTPCodes(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, InternalError(errors.New("boom")).HTTPCode)
	assert.Equal(t, http.StatusBadRequest, NewBadRequestError("bad").HTTPCode)
	assert.Equal(t, http.StatusUnauthorized, NewUnauthorizedError("no").HTTPCode)
	assert.Equal(t, http.StatusForbidden, NewForbiddenError("no").HTTPCode)
	assert.Equal(t, http.StatusNotFound, NewNotFoundError("jobs", "gone").HTTPCode)
	assert.Equal(t, http.StatusConflict, NewConflictError("auth", "taken").HTTPCode)
}

func TestMarshalJSONHidesInternals(t *testing.T) {
	appErr := Wrap(errors.New("pq: connection refused"), CodeDatabaseError, "jobs", "Lookup failed", 500)
	appErr.WithDetails(map[string]string{"id": "abc"})

	raw, err := json.Marshal(appErr)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "Lookup failed", decoded["message"])
	assert.Equal(t, "jobs", decoded["domain"])
	assert.NotContains(t, string(raw), "connection refused")
	assert.NotContains(t, string(raw), "500")
}

func TestUpstreamErrorNamesSubsystem(t *testing.T) {
	err := UpstreamError("openai", errors.New("rate limited"))

	assert.Equal(t, CodeExternalServiceError, err.Code)
	assert.Equal(t, "openai", err.Domain)
	assert.Contains(t, err.Message, "openai")
	assert.Contains(t, err.Message, "rate limited")
}

func TestUnwrapPreservesCause(t *testing.T) {
	cause := errors.New("original")
	wrapped := InternalError(cause)

	assert.True(t, errors.Is(wrapped, cause))

	var appErr *AppError
	assert.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, CodeInternalError, appErr.Code)
}
