package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path"
	"strings"

	"golang.org/x/net/html"

	"docqa/internal/service"
)

// extractEPUB extracts readable text from an EPUB file. An EPUB is a zip
// archive whose content documents are XHTML; entries are visited in archive
// order, markup is stripped, and non-empty chapters are joined with blank
// lines into a single block. An EPUB with zero extractable chapters is
// considered corrupt.
func extractEPUB(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("%w: open EPUB: not a zip archive: %v", service.ErrUnreadableContent, err)
	}

	var chapters []string
	for _, f := range zr.File {
		if !isEPUBDocument(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			continue
		}
		var buf bytes.Buffer
		_, readErr := buf.ReadFrom(rc)
		_ = rc.Close()
		if readErr != nil {
			continue
		}
		text := stripHTML(buf.Bytes())
		if text != "" {
			chapters = append(chapters, text)
		}
	}

	if len(chapters) == 0 {
		return "", fmt.Errorf("%w: EPUB contains no readable chapters", service.ErrUnreadableContent)
	}
	return strings.Join(chapters, "\n\n"), nil
}

// isEPUBDocument reports whether the archive entry is a content document.
func isEPUBDocument(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".xhtml", ".html", ".htm":
		return true
	}
	return false
}

// stripHTML returns the concatenated text nodes of an (X)HTML document,
// skipping script and style elements. Returns "" for unparseable input.
func stripHTML(content []byte) string {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return ""
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if b.Len() > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(b.String())
}
