package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toiletBack/internal/models"
)

func TestWriteErrorStatuses(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{models.ErrToiletNotFound, http.StatusNotFound},
		{models.ErrWilayaNotFound, http.StatusNotFound},
		{models.ErrSessionNotFound, http.StatusNotFound},
		{models.ErrForbidden, http.StatusForbidden},
		{models.ErrSessionEnded, http.StatusUnprocessableEntity},
		{models.ErrInvalidCredentials, http.StatusUnauthorized},
		{models.ErrDuplicateEmail, http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		rec := httptest.NewRecorder()
		writeError(rec, "test", c.err)
		assert.Equal(t, c.status, rec.Code, "error %v", c.err)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	}
}

func TestWriteErrorValidationPayload(t *testing.T) {
	v := models.NewValidationError()
	v.Add("lat", "must be between -90 and 90")
	v.Add("per_page", "must be between 1 and 100")

	rec := httptest.NewRecorder()
	writeError(rec, "test", v)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "validation failed", body.Message)
	assert.Contains(t, body.Errors, "lat")
	assert.Contains(t, body.Errors, "per_page")
}

func TestWriteErrorUsesConfiguredLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := errorLog
	SetErrorLog(log.New(&buf, "ERROR\t", 0))
	defer SetErrorLog(prev)

	rec := httptest.NewRecorder()
	writeError(rec, "ListFavorites", errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "ERROR\tListFavorites error: boom")

	// Mapped errors are the caller's fault, nothing is logged.
	buf.Reset()
	writeError(httptest.NewRecorder(), "GetToiletByID", models.ErrToiletNotFound)
	assert.Empty(t, buf.String())
}

func TestWriteErrorDoesNotLeakInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, "test", errors.New("dial tcp 10.0.0.5:3306: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}
