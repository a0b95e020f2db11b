package ingest

import "strings"

// Boundary preference for splitting, tried in order.
var separators = []string{"\n\n", "\n", ". ", " "}

// Splitter breaks text into chunks of at most Size runes, with Overlap runes
// carried over between consecutive chunks. Splits prefer natural boundaries
// (paragraph, line, sentence, word) and fall back to a hard cut.
type Splitter struct {
	Size    int
	Overlap int
}

// NewSplitter creates a splitter. Overlap must be smaller than Size.
func NewSplitter(size, overlap int) *Splitter {
	return &Splitter{Size: size, Overlap: overlap}
}

// Split returns the chunks of text. Whitespace-only text yields no chunks.
func (s *Splitter) Split(text string) []string {
	runes := []rune(text)

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + s.Size
		if end >= len(runes) {
			if piece := strings.TrimSpace(string(runes[start:])); piece != "" {
				chunks = append(chunks, piece)
			}
			break
		}

		cut := s.findBoundary(runes, start, end)

		if piece := strings.TrimSpace(string(runes[start:cut])); piece != "" {
			chunks = append(chunks, piece)
		}

		next := cut - s.Overlap
		if next <= start {
			// Always make forward progress, even when the overlap would
			// swallow the whole chunk.
			next = cut
		}
		start = next
	}

	return chunks
}

// findBoundary picks the split position in (start, end]. It prefers the last
// occurrence of the strongest separator within the window; a window with no
// separator at all is cut hard at end.
func (s *Splitter) findBoundary(runes []rune, start, end int) int {
	window := string(runes[start:end])
	for _, sep := range separators {
		idx := strings.LastIndex(window, sep)
		if idx <= 0 {
			continue
		}
		// Cut after the separator so it stays with the leading chunk.
		return start + len([]rune(window[:idx+len(sep)]))
	}
	return end
}
