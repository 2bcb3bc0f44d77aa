package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apperrors "github.com/Vikash02022000/FinSight/internal/errors"
	"github.com/Vikash02022000/FinSight/internal/services"
	"github.com/Vikash02022000/FinSight/internal/spreadsheet"
)

// outputFilename matches what the upload UI historically served for
// download.
const outputFilename = "output_trades_with_mirrors.xlsx"

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// MirrorHandler handles trade-sheet upload and mirroring requests.
type MirrorHandler struct {
	service        MirrorServiceInterface
	logger         *slog.Logger
	errorHandler   *apperrors.ErrorHandler
	maxUploadBytes int64
}

// NewMirrorHandler creates a mirror handler.
func NewMirrorHandler(service MirrorServiceInterface, logger *slog.Logger, errorHandler *apperrors.ErrorHandler, maxUploadBytes int64) *MirrorHandler {
	return &MirrorHandler{
		service:        service,
		logger:         logger.With(slog.String("handler", "mirror")),
		errorHandler:   errorHandler,
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns the mirror routes.
func (h *MirrorHandler) Routes() chi.Router {
	r := chi.NewRouter()
	// POST /         -> JSON envelope: mapping, warnings, counts, preview
	// POST /workbook -> transformed .xlsx as an attachment
	r.Post("/", h.MirrorJSON)
	r.Post("/workbook", h.MirrorWorkbook)
	return r
}

// MirrorJSON handles POST /api/mirror. The response describes the
// transformation (detected columns, warnings, row counts and a bounded
// preview) without shipping the whole table back.
func (h *MirrorHandler) MirrorJSON(w http.ResponseWriter, r *http.Request) {
	result, ok := h.process(w, r)
	if !ok {
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"success": true,
		"result":  result,
	})
}

// MirrorWorkbook handles POST /api/mirror/workbook and streams the combined
// workbook back as a download.
func (h *MirrorHandler) MirrorWorkbook(w http.ResponseWriter, r *http.Request) {
	result, ok := h.process(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", outputFilename))
	if err := spreadsheet.Write(result.Table, w); err != nil {
		// Headers are gone at this point; all we can do is log.
		h.logger.ErrorContext(r.Context(), "failed to stream workbook",
			slog.String("error", err.Error()))
	}
}

// process parses the multipart upload and runs the pipeline. On failure it
// renders the error itself and reports ok=false.
func (h *MirrorHandler) process(w http.ResponseWriter, r *http.Request) (*services.MirrorResult, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r, apperrors.NewValidationError(
			"multipart field \"file\" with an .xlsx workbook is required"))
		return nil, false
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".xlsx") {
		h.errorHandler.HandleError(w, r, apperrors.NewValidationError(
			fmt.Sprintf("unsupported file type %q; upload an .xlsx workbook", filepath.Ext(header.Filename))))
		return nil, false
	}

	h.logger.InfoContext(r.Context(), "processing uploaded workbook",
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size))

	result, err := h.service.Process(r.Context(), file)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return nil, false
	}
	return result, true
}
