package errors

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/Vikash02022000/FinSight/internal/columns"
)

// ErrorHandler converts service errors to RFC 7807 responses in one place so
// handlers never hand-roll status codes.
type ErrorHandler struct {
	logger       *slog.Logger
	includeStack bool
}

// NewErrorHandler creates an error handler. includeStack should only be set
// in development.
func NewErrorHandler(logger *slog.Logger, includeStack bool) *ErrorHandler {
	return &ErrorHandler{
		logger:       logger.With(slog.String("component", "error_handler")),
		includeStack: includeStack,
	}
}

// HandleError logs the error and responds with its problem representation.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	reqID := middleware.GetReqID(r.Context())

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	problem := h.ErrorToProblem(err, r)
	problem.WithExtension("trace_id", reqID)
	if h.includeStack {
		problem.WithExtension("stack", string(debug.Stack()))
	}

	render.Render(w, r, problem)
}

// ErrorToProblem maps an error to RFC 7807 Problem Details.
func (h *ErrorHandler) ErrorToProblem(err error, r *http.Request) *ProblemDetails {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewProblemDetails(http.StatusGatewayTimeout, TypeTimeout,
			"Request Timeout", "The request took too long to process and was cancelled", r.URL.Path)
	}

	var missing *columns.MissingColumnsError
	if errors.As(err, &missing) {
		roles := make([]string, len(missing.Roles))
		for i, role := range missing.Roles {
			roles[i] = string(role)
		}
		return NewProblemDetails(http.StatusUnprocessableEntity, TypeMissingColumns,
			"Required Columns Missing", missing.Error(), r.URL.Path).
			WithExtension("missing_roles", roles)
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrTypeUnreadableInput:
			return NewProblemDetails(http.StatusBadRequest, TypeUnreadableInput,
				"Unreadable Input", appErr.Message, r.URL.Path)
		case ErrTypeValidation, ErrTypeMissingColumns:
			return NewProblemDetails(http.StatusBadRequest, TypeValidation,
				"Validation Failed", appErr.Message, r.URL.Path)
		case ErrTypeStorage:
			return NewProblemDetails(http.StatusInternalServerError, TypeInternal,
				"Storage Error", appErr.Message, r.URL.Path)
		}
	}

	return NewProblemDetails(http.StatusInternalServerError, TypeInternal,
		"Internal Server Error", "An unexpected error occurred while processing the request", r.URL.Path)
}
