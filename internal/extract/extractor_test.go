package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"docqa/internal/service"
)

func TestIsSupported(t *testing.T) {
	tests := []struct {
		ext      string
		expected bool
	}{
		{".pdf", true},
		{".txt", true},
		{".md", true},
		{".epub", true},
		{".xlsx", true},
		{".xls", true},
		{".PDF", true},
		{".docx", false},
		{".exe", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			if got := IsSupported(tt.ext); got != tt.expected {
				t.Errorf("IsSupported(%q) = %v, want %v", tt.ext, got, tt.expected)
			}
		})
	}
}

func TestExtractPlainText(t *testing.T) {
	e := NewExtractor()

	blocks, err := e.ExtractBytes([]byte("hello world\nsecond line"), ".txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0] != "hello world\nsecond line" {
		t.Errorf("unexpected content: %q", blocks[0])
	}
}

func TestExtractPlainTextInvalidUTF8(t *testing.T) {
	e := NewExtractor()

	blocks, err := e.ExtractBytes([]byte{'o', 'k', 0xff, 0xfe}, ".txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(blocks[0], "ok") {
		t.Errorf("expected valid prefix preserved, got %q", blocks[0])
	}
	if !strings.Contains(blocks[0], "�") {
		t.Errorf("expected replacement character, got %q", blocks[0])
	}
}

func TestExtractMarkdown(t *testing.T) {
	e := NewExtractor()

	md := "# Title\n\nSome *emphasized* text with a [link](http://example.com).\n\n- first item\n- second item\n"
	blocks, err := e.ExtractBytes([]byte(md), ".md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}

	text := blocks[0]
	for _, want := range []string{"Title", "emphasized", "link", "first item", "second item"} {
		if !strings.Contains(text, want) {
			t.Errorf("extracted text should contain %q, got %q", want, text)
		}
	}
	for _, unwanted := range []string{"#", "*", "](", "http://example.com"} {
		if strings.Contains(text, unwanted) {
			t.Errorf("extracted text should not contain markup %q, got %q", unwanted, text)
		}
	}
}

func TestExtractEPUB(t *testing.T) {
	e := NewExtractor()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"mimetype":          "application/epub+zip",
		"OEBPS/ch1.xhtml":   `<html><head><style>p{color:red}</style></head><body><p>Chapter one text.</p></body></html>`,
		"OEBPS/ch2.xhtml":   `<html><body><h1>Two</h1><p>Chapter two text.</p><script>alert(1)</script></body></html>`,
		"OEBPS/toc.ncx":     `<ncx/>`,
		"META-INF/container.xml": `<container/>`,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create zip entry: %v", err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}

	blocks, err := e.ExtractBytes(buf.Bytes(), ".epub")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}

	text := blocks[0]
	if !strings.Contains(text, "Chapter one text.") || !strings.Contains(text, "Chapter two text.") {
		t.Errorf("missing chapter text: %q", text)
	}
	if strings.Contains(text, "alert") || strings.Contains(text, "color:red") {
		t.Errorf("script/style content leaked into text: %q", text)
	}
}

func TestExtractEPUBNotAZip(t *testing.T) {
	e := NewExtractor()

	_, err := e.ExtractBytes([]byte("definitely not a zip archive"), ".epub")
	if !errors.Is(err, service.ErrUnreadableContent) {
		t.Errorf("expected ErrUnreadableContent, got %v", err)
	}
}

func TestExtractEPUBNoChapters(t *testing.T) {
	e := NewExtractor()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("mimetype")
	_, _ = w.Write([]byte("application/epub+zip"))
	_ = zw.Close()

	_, err := e.ExtractBytes(buf.Bytes(), ".epub")
	if !errors.Is(err, service.ErrUnreadableContent) {
		t.Errorf("expected ErrUnreadableContent, got %v", err)
	}
}

func TestExtractExcel(t *testing.T) {
	e := NewExtractor()

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "Data"); err != nil {
		t.Fatalf("failed to rename sheet: %v", err)
	}
	_ = f.SetCellValue("Data", "A1", "name")
	_ = f.SetCellValue("Data", "B1", "count")
	_ = f.SetCellValue("Data", "A2", "widgets")
	_ = f.SetCellValue("Data", "B2", 42)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("failed to write workbook: %v", err)
	}

	blocks, err := e.ExtractBytes(buf.Bytes(), ".xlsx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block per non-empty sheet, got %d", len(blocks))
	}
	if !strings.Contains(blocks[0], "name\tcount") {
		t.Errorf("expected tab-joined header row, got %q", blocks[0])
	}
	if !strings.Contains(blocks[0], "widgets\t42") {
		t.Errorf("expected data row, got %q", blocks[0])
	}
}

func TestExtractPDFGarbage(t *testing.T) {
	e := NewExtractor()

	_, err := e.ExtractBytes([]byte("this is not a pdf"), ".pdf")
	if !errors.Is(err, service.ErrUnreadableContent) {
		t.Errorf("expected ErrUnreadableContent, got %v", err)
	}
}

func TestExtractUnsupportedExtension(t *testing.T) {
	e := NewExtractor()

	_, err := e.ExtractBytes([]byte("content"), ".docx")
	if !errors.Is(err, service.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestExtractDispatchesByFilename(t *testing.T) {
	e := NewExtractor()

	dir := t.TempDir()
	path := filepath.Join(dir, "stored-under-uuid")
	if err := os.WriteFile(path, []byte("plain text content"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	blocks, err := e.Extract(path, "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 1 || blocks[0] != "plain text content" {
		t.Errorf("unexpected blocks: %v", blocks)
	}

	if _, err := e.Extract(path, "notes.docx"); !errors.Is(err, service.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat for declared .docx, got %v", err)
	}
}
