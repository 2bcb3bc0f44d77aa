package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vikash02022000/FinSight/internal/columns"
)

func TestAppErrorWrapping(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStorageError("failed to write workbook", cause).WithContext("path", "/tmp/out.xlsx")

	assert.Equal(t, "[STORAGE] failed to write workbook: disk full", err.Error())
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "/tmp/out.xlsx", err.Context["path"])

	var app *AppError
	require.True(t, errors.As(fmt.Errorf("outer: %w", err), &app))
	assert.Equal(t, ErrTypeStorage, app.Type)
}

func newHandler() *ErrorHandler {
	return NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), false)
}

func TestErrorToProblemMapping(t *testing.T) {
	h := newHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/mirror", nil)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"unreadable input", NewUnreadableInputError("not a workbook", nil), http.StatusBadRequest, TypeUnreadableInput},
		{"validation", NewValidationError("bad upload"), http.StatusBadRequest, TypeValidation},
		{"storage", NewStorageError("io failed", nil), http.StatusInternalServerError, TypeInternal},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout, TypeTimeout},
		{"unknown", errors.New("mystery"), http.StatusInternalServerError, TypeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problem := h.ErrorToProblem(tt.err, req)
			assert.Equal(t, tt.wantStatus, problem.Status)
			assert.Equal(t, tt.wantType, problem.Type)
			assert.Equal(t, "/api/mirror", problem.Instance)
		})
	}
}

func TestErrorToProblemMissingColumns(t *testing.T) {
	h := newHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/mirror", nil)
	err := fmt.Errorf("resolution: %w", &columns.MissingColumnsError{
		Roles: []columns.Role{columns.RoleDate, columns.RoleTotal},
	})

	problem := h.ErrorToProblem(err, req)
	assert.Equal(t, http.StatusUnprocessableEntity, problem.Status)
	assert.Equal(t, TypeMissingColumns, problem.Type)
	assert.Equal(t, []string{"date", "total"}, problem.Extensions["missing_roles"])
}

func TestHandleErrorRendersProblem(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/mirror", nil)

	newHandler().HandleError(rec, req, NewValidationError("bad upload"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, TypeValidation, body["type"])
	assert.Equal(t, "bad upload", body["detail"])
	assert.Equal(t, float64(http.StatusBadRequest), body["status"])
}

func TestProblemDetailsMarshalFlattensExtensions(t *testing.T) {
	problem := NewProblemDetails(http.StatusUnprocessableEntity, TypeMissingColumns,
		"Required Columns Missing", "missing required columns", "/api/mirror").
		WithExtension("missing_roles", []string{"quantity"})

	data, err := json.Marshal(problem)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "Required Columns Missing", body["title"])
	assert.Equal(t, []interface{}{"quantity"}, body["missing_roles"])
}
