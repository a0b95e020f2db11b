package extract

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"docqa/internal/service"
)

// extractPDF returns one text block per page, in page order. The parser
// panics on some malformed files, so the whole extraction runs under a
// recover guard.
func extractPDF(content []byte) (blocks []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			blocks = nil
			err = fmt.Errorf("%w: parse PDF: %v", service.ErrUnreadableContent, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("%w: open PDF: %v", service.ErrUnreadableContent, err)
	}

	numPages := r.NumPage()
	blocks = make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: extract page %d: %v", service.ErrUnreadableContent, i, err)
		}
		blocks = append(blocks, text)
	}
	return blocks, nil
}
