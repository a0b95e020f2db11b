package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"docqa/internal/extract"
	"docqa/internal/ingest"
	"docqa/internal/vectorindex"
	"docqa/internal/vectorindex/mocks"
)

func multipartUpload(t *testing.T, filename, content string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("failed to write field: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	return &body, writer.FormDataContentType()
}

func newUploadHandler(t *testing.T, index vectorindex.Index) *UploadHandler {
	t.Helper()
	pipeline := ingest.NewPipeline(extract.NewExtractor(), ingest.NewChunker(1000, 200), index)
	return NewUploadHandler(pipeline, t.TempDir())
}

func TestUploadSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockIndex := mocks.NewMockIndex(ctrl)

	var inserted []vectorindex.Chunk
	mockIndex.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, chunks []vectorindex.Chunk) (int, error) {
			inserted = chunks
			return len(chunks), nil
		})

	handler := newUploadHandler(t, mockIndex)

	content := strings.Repeat("some document text. ", 10)
	body, contentType := multipartUpload(t, "my notes.txt", content, map[string]string{
		"tags":        "work, important",
		"description": "meeting notes",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	handler.Upload(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp UploadResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Filename != "my_notes.txt" {
		t.Errorf("filename = %q, want sanitized %q", resp.Filename, "my_notes.txt")
	}
	if resp.DocumentID == "" {
		t.Error("document id should be set")
	}
	if resp.ChunksCreated != len(inserted) || resp.ChunksCreated == 0 {
		t.Errorf("chunks_created = %d, inserted = %d", resp.ChunksCreated, len(inserted))
	}
	if resp.Status != "indexed" {
		t.Errorf("status = %q", resp.Status)
	}

	if len(inserted) == 0 {
		t.Fatal("expected chunks to be inserted")
	}
	if len(inserted[0].Tags) != 2 || inserted[0].Tags[0] != "work" {
		t.Errorf("tags = %v", inserted[0].Tags)
	}
	if inserted[0].Description != "meeting notes" {
		t.Errorf("description = %q", inserted[0].Description)
	}
}

func TestUploadUnsupportedFormat(t *testing.T) {
	ctrl := gomock.NewController(t)
	handler := newUploadHandler(t, mocks.NewMockIndex(ctrl))

	body, contentType := multipartUpload(t, "malware.exe", strings.Repeat("x", 100), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	handler.Upload(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d, want 415", w.Code)
	}
}

func TestUploadMissingFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	handler := newUploadHandler(t, mocks.NewMockIndex(ctrl))

	body, contentType := multipartUpload(t, "", "", map[string]string{"tags": "x"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	handler.Upload(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestUploadFileTooSmall(t *testing.T) {
	ctrl := gomock.NewController(t)
	handler := newUploadHandler(t, mocks.NewMockIndex(ctrl))

	body, contentType := multipartUpload(t, "tiny.txt", "abc", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	handler.Upload(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestUploadEmptyDocument(t *testing.T) {
	ctrl := gomock.NewController(t)
	handler := newUploadHandler(t, mocks.NewMockIndex(ctrl))

	// Big enough to pass size validation but containing no extractable text.
	body, contentType := multipartUpload(t, "blank.txt", strings.Repeat(" ", 100), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	handler.Upload(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", w.Code)
	}
}
