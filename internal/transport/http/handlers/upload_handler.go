package handlers

import (
	"errors"
	"net/http"

	"github.com/zetedec/lanchat/internal/service"
)

type UploadHandler struct {
	uploadService *service.UploadService
	maxBytes      int64
}

func NewUploadHandler(uploadService *service.UploadService, maxUploadMB int64) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		maxBytes:      maxUploadMB << 20,
	}
}

// Upload accepts a multipart "file" field, stores it and returns the durable
// URL plus the tagged content ready to send as a message.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Uploaded file is too large")
			return
		}
		writeError(w, http.StatusBadRequest, "MISSING_FILE", "No file uploaded")
		return
	}
	defer file.Close()

	result, err := h.uploadService.Save(header.Filename, file)
	if err != nil {
		writeServiceError(w, "upload", err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}
