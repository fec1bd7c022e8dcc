package importer

import (
	"errors"
	"net/http"

	appErrors "github.com/frahmantamala/talento-plus/internal"
	"github.com/frahmantamala/talento-plus/internal/transport"
)

const defaultMaxUploadBytes = 10 << 20

type Handler struct {
	*transport.BaseHandler
	Service        ServiceAPI
	MaxUploadBytes int64
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{
		BaseHandler:    baseHandler,
		Service:        service,
		MaxUploadBytes: maxUploadBytes,
	}
}

// ImportEmployees handles POST /employees/import with the workbook in the
// multipart field "file".
func (h *Handler) ImportEmployees(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.MaxUploadBytes {
		h.WriteError(w, http.StatusRequestEntityTooLarge, "spreadsheet is too large")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.WriteError(w, http.StatusRequestEntityTooLarge, "spreadsheet is too large")
			return
		}
		h.WriteError(w, http.StatusBadRequest, "expected multipart form with a file field")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.WriteAppError(w, appErrors.NewValidationFieldError("file", "file is required", appErrors.ErrCodeInvalidSpreadsheet))
		return
	}
	defer file.Close()

	h.Logger.Info("import upload received", "filename", header.Filename, "size", header.Size)

	result, err := h.Service.ImportEmployees(r.Context(), file)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}
