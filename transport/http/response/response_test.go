package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"todoapp/shared/failure"
	"todoapp/transport/http/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	return body
}

func TestWithJSON(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithJSON(recorder, http.StatusCreated, map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	body := decode(t, recorder)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]any{"id": "1"}, body["data"])
}

func TestWithList(t *testing.T) {
	tests := []struct {
		name      string
		items     []string
		wantCount float64
	}{
		{name: "with items", items: []string{"a", "b"}, wantCount: 2},
		{name: "nil list renders empty array", items: nil, wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			response.WithList(recorder, http.StatusOK, tt.items)

			body := decode(t, recorder)
			assert.Equal(t, true, body["success"])
			assert.Equal(t, tt.wantCount, body["count"])
			assert.NotNil(t, body["data"])
		})
	}
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantError  string
		wantFields map[string]any
	}{
		{
			name:      "not found keeps its message",
			err:       failure.NotFound("todo not found"),
			wantCode:  http.StatusNotFound,
			wantError: "todo not found",
		},
		{
			name:     "validation failure is field keyed",
			err:      failure.FieldError("non_field_errors", "End date cannot be before start date."),
			wantCode: http.StatusBadRequest,
			wantFields: map[string]any{
				"non_field_errors": []any{"End date cannot be before start date."},
			},
		},
		{
			name:      "plain bad request",
			err:       failure.BadRequestFromString("update request cannot be empty"),
			wantCode:  http.StatusBadRequest,
			wantError: "update request cannot be empty",
		},
		{
			name:      "unexpected errors do not leak",
			err:       errors.New("pq: connection refused on 10.0.0.3"),
			wantCode:  http.StatusInternalServerError,
			wantError: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			response.WithError(recorder, tt.err)

			assert.Equal(t, tt.wantCode, recorder.Code)

			body := decode(t, recorder)
			assert.Equal(t, false, body["success"])

			if tt.wantFields != nil {
				assert.Equal(t, tt.wantFields, body["errors"])
				assert.NotContains(t, body, "error")

				return
			}

			assert.Equal(t, tt.wantError, body["error"])
		})
	}
}

func TestWithMessage(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithMessage(recorder, http.StatusOK, "Todo deleted successfully")

	body := decode(t, recorder)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Todo deleted successfully", body["message"])
}

func TestWithRequestLimitExceeded(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithRequestLimitExceeded(recorder)

	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.Equal(t, false, decode(t, recorder)["success"])
}
