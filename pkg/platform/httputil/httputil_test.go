package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "janseva/pkg/domain-errors"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestWriteErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, dErrors.New(dErrors.CodeNotFound, "scheme not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not_found","error_description":"scheme not found"}`, rec.Body.String())
}

func TestWriteErrorWrapped(t *testing.T) {
	rec := httptest.NewRecorder()
	err := fmt.Errorf("handling request: %w", dErrors.New(dErrors.CodeValidation, "benefit amount must be positive"))
	WriteError(rec, err)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Description string `json:"error_description"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "benefit amount must be positive", body.Description)
}

func TestWriteErrorInternalHidesDescription(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, dErrors.New(dErrors.CodeInternal, "pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal_error"}`, rec.Body.String())
}

func TestDecode(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Rural Housing Grant"}`))
		rec := httptest.NewRecorder()

		v, ok := Decode[payload](rec, req)
		require.True(t, ok)
		assert.Equal(t, "Rural Housing Grant", v.Name)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
		rec := httptest.NewRecorder()

		_, ok := Decode[payload](rec, req)
		require.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
