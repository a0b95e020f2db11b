package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"docqa/internal/service"
)

// extractExcel returns one text block per sheet: rows joined by newlines,
// cells within a row by tabs. Empty sheets are skipped.
func extractExcel(content []byte) ([]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%w: open spreadsheet: %v", service.ErrUnreadableContent, err)
	}
	defer f.Close()

	var blocks []string
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("%w: read sheet %q: %v", service.ErrUnreadableContent, sheet, err)
		}
		var b strings.Builder
		for _, row := range rows {
			b.WriteString(strings.Join(row, "\t"))
			b.WriteByte('\n')
		}
		block := strings.TrimSpace(b.String())
		if block != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks, nil
}
