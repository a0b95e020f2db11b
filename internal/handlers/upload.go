package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"docqa/internal/contextutil"
	"docqa/internal/ingest"
	"docqa/internal/validate"
)

// UploadHandler handles document uploads.
type UploadHandler struct {
	pipeline  *ingest.Pipeline
	uploadDir string
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(pipeline *ingest.Pipeline, uploadDir string) *UploadHandler {
	return &UploadHandler{
		pipeline:  pipeline,
		uploadDir: uploadDir,
	}
}

// UploadResponse represents the response after a successful upload.
type UploadResponse struct {
	DocumentID    string `json:"document_id"`
	Filename      string `json:"filename"`
	ChunksCreated int    `json:"chunks_created"`
	Status        string `json:"status"`
	UploadedAt    string `json:"uploaded_at"`
}

// Upload accepts a multipart form with a "file" part plus optional "tags"
// (comma separated) and "description" fields, and ingests the document.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if err := r.ParseMultipartForm(validate.MaxFileSizeBytes); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, "A file is required")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	filename, err := validate.Filename(header.Filename)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	if _, err := validate.Extension(filename); err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	if err := validate.FileSize(header.Size); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	tags := splitTagsField(r.FormValue("tags"))
	description := strings.TrimSpace(r.FormValue("description"))

	// Store under a unique name so two uploads of the same file never clash.
	storedName := fmt.Sprintf("%s_%s", uuid.New().String(), filename)
	path := filepath.Join(h.uploadDir, storedName)

	if err := saveUpload(file, path); err != nil {
		logger.ErrorContext(ctx, "failed to save upload", "filename", filename, "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to save uploaded file")
		return
	}

	chunks, err := h.pipeline.Ingest(ctx, path, filename, tags, description)
	if err != nil {
		// Failed ingestions leave no file behind.
		_ = os.Remove(path)
		writeServiceError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, UploadResponse{
		DocumentID:    chunks[0].DocumentID,
		Filename:      filename,
		ChunksCreated: len(chunks),
		Status:        "indexed",
		UploadedAt:    chunks[0].UploadedAt.UTC().Format(time.RFC3339),
	})
}

func saveUpload(src io.Reader, path string) error {
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		_ = dst.Close()
	}()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func splitTagsField(raw string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
