// Package extract converts uploaded document files into plain text blocks.
package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"docqa/internal/service"
)

// allowedExtensions is the fixed set of supported file extensions, sorted.
var allowedExtensions = []string{".epub", ".md", ".pdf", ".txt", ".xls", ".xlsx"}

// AllowedExtensions returns the supported file extensions in sorted order.
func AllowedExtensions() []string {
	out := make([]string, len(allowedExtensions))
	copy(out, allowedExtensions)
	return out
}

// IsSupported reports whether ext (including the leading dot, any case) is supported.
func IsSupported(ext string) bool {
	ext = strings.ToLower(ext)
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// UnsupportedFormatError returns the error for a disallowed extension, naming the allowed set.
func UnsupportedFormatError(ext string) error {
	return fmt.Errorf("%w: %s (allowed: %s)", service.ErrUnsupportedFormat, ext, strings.Join(allowedExtensions, ", "))
}

// Extractor extracts plain text blocks from document files, dispatching by
// the declared filename's extension.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract reads the file at path and returns its text as an ordered sequence
// of blocks. PDF yields one block per page, spreadsheets one block per sheet,
// and the remaining formats a single block. The declared filename, not the
// path, decides the format.
func (e *Extractor) Extract(path, filename string) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || !IsSupported(ext) {
		return nil, UnsupportedFormatError(ext)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read file: %v", service.ErrUnreadableContent, err)
	}

	blocks, err := e.ExtractBytes(content, ext)
	if err != nil {
		// Format errors pass through; anything else becomes a user-facing
		// "file unreadable" error.
		if errors.Is(err, service.ErrUnsupportedFormat) || errors.Is(err, service.ErrUnreadableContent) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", service.ErrUnreadableContent, err)
	}
	return blocks, nil
}

// ExtractBytes extracts text blocks from content based on the given extension.
// ext must include the leading dot (e.g. ".pdf").
func (e *Extractor) ExtractBytes(content []byte, ext string) ([]string, error) {
	switch strings.ToLower(ext) {
	case ".pdf":
		return extractPDF(content)
	case ".txt":
		block, err := extractPlain(content)
		if err != nil {
			return nil, err
		}
		return []string{block}, nil
	case ".md":
		block, err := extractMarkdown(content)
		if err != nil {
			return nil, err
		}
		return []string{block}, nil
	case ".epub":
		block, err := extractEPUB(content)
		if err != nil {
			return nil, err
		}
		return []string{block}, nil
	case ".xlsx", ".xls":
		return extractExcel(content)
	default:
		return nil, UnsupportedFormatError(ext)
	}
}
