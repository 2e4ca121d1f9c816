package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/ekaraca/vspecs/internal/apperror"
)

// maxUploadBytes caps image uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// ImageUploader is what the upload handler needs from the image host
// integration.
type ImageUploader interface {
	Upload(ctx context.Context, filename string, file io.Reader) (string, error)
}

// UploadHandler forwards multipart image uploads to the external host and
// returns the hosted URL.
type UploadHandler struct {
	uploader ImageUploader
	logger   *slog.Logger
}

// NewUploadHandler creates an UploadHandler.
func NewUploadHandler(uploader ImageUploader, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{uploader: uploader, logger: logger}
}

// HandleUpload accepts a multipart form with an "image" file field.
//
// HTTP: POST /api/upload → {"url": "https://..."}
// 400 if no file is attached; 500 if the host rejects it.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, apperror.ValidationFailed("image", "an image file is required"))
		return
	}
	defer file.Close()

	url, err := h.uploader.Upload(r.Context(), header.Filename, file)
	if err != nil {
		h.logger.Error("image upload failed",
			slog.String("filename", header.Filename),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
