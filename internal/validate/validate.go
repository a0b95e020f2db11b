// Package validate rejects bad uploads and queries before any processing happens.
package validate

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"docqa/internal/extract"
	"docqa/internal/service"
)

const (
	// MaxFileSizeMB is the largest accepted upload.
	MaxFileSizeMB = 35
	// MaxFileSizeBytes is MaxFileSizeMB in bytes.
	MaxFileSizeBytes = MaxFileSizeMB * 1024 * 1024
	// MinFileSizeBytes rejects empty and near-empty files.
	MinFileSizeBytes = 10

	// MinQueryLength and MaxQueryLength bound question text after trimming.
	MinQueryLength = 3
	MaxQueryLength = 1000

	// maxBaseNameLength caps the filename (without extension) after sanitizing.
	maxBaseNameLength = 200
)

var (
	dangerousFilenameChars = regexp.MustCompile(`[<>:"|?*\x00-\x1f]`)
	whitespaceRun          = regexp.MustCompile(`\s+`)
)

// SanitizeFilename removes dangerous characters from a filename, collapses
// whitespace runs to underscores, and caps the base name length.
func SanitizeFilename(filename string) string {
	safe := dangerousFilenameChars.ReplaceAllString(filename, "_")
	safe = whitespaceRun.ReplaceAllString(safe, "_")

	ext := filepath.Ext(safe)
	name := strings.TrimSuffix(safe, ext)
	if len(name) > maxBaseNameLength {
		name = name[:maxBaseNameLength]
	}
	return name + ext
}

// Filename validates and sanitizes an uploaded filename.
func Filename(filename string) (string, error) {
	if strings.TrimSpace(filename) == "" {
		return "", &service.ValidationError{Field: "filename", Message: "filename cannot be empty"}
	}
	safe := SanitizeFilename(filename)
	if safe == "" || safe == "." {
		return "", &service.ValidationError{Field: "filename", Message: "filename is not valid"}
	}
	return safe, nil
}

// Extension checks the filename's extension against the allowed set and
// returns it lowercased.
func Extension(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return "", &service.ValidationError{Field: "filename", Message: "file must have an extension"}
	}
	if !extract.IsSupported(ext) {
		return "", extract.UnsupportedFormatError(ext)
	}
	return ext, nil
}

// FileSize checks that an upload's size in bytes is within bounds.
func FileSize(size int64) error {
	if size < MinFileSizeBytes {
		return &service.ValidationError{
			Field:   "file",
			Message: fmt.Sprintf("file is empty or too small (minimum: %d bytes)", MinFileSizeBytes),
		}
	}
	if size > MaxFileSizeBytes {
		return &service.ValidationError{
			Field:   "file",
			Message: fmt.Sprintf("file too large (%.2f MB, maximum: %d MB)", float64(size)/(1024*1024), MaxFileSizeMB),
		}
	}
	return nil
}

// Query validates question text, returning the trimmed query.
func Query(query string) (string, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return "", &service.ValidationError{Field: "question", Message: "question cannot be empty"}
	}
	if len(trimmed) < MinQueryLength {
		return "", &service.ValidationError{
			Field:   "question",
			Message: fmt.Sprintf("question is too short (minimum: %d characters)", MinQueryLength),
		}
	}
	if len(trimmed) > MaxQueryLength {
		return "", &service.ValidationError{
			Field:   "question",
			Message: fmt.Sprintf("question is too long (maximum: %d characters)", MaxQueryLength),
		}
	}
	return trimmed, nil
}
