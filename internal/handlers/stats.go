package handlers

import (
	"math"
	"net/http"
	"sort"

	"docqa/internal/contextutil"
	"docqa/internal/vectorindex"
)

// StatsHandler serves collection statistics and the reset endpoint.
type StatsHandler struct {
	index vectorindex.Index
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(index vectorindex.Index) *StatsHandler {
	return &StatsHandler{index: index}
}

// StatsResponse reports index-wide statistics.
type StatsResponse struct {
	vectorindex.CollectionStats
	TotalDocuments int            `json:"total_documents"`
	ByFileType     map[string]int `json:"by_file_type"`
}

// Stats returns collection statistics with a per-file-type breakdown.
func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.index.Stats(ctx)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	docs, err := h.index.AllDocuments(ctx)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	byFileType := make(map[string]int)
	for _, doc := range docs {
		byFileType[doc.FileType]++
	}

	writeJSON(ctx, w, http.StatusOK, StatsResponse{
		CollectionStats: stats,
		TotalDocuments:  len(docs),
		ByFileType:      byFileType,
	})
}

const (
	topTagsLimit          = 10
	largestDocumentsLimit = 5
)

// TagCount is one entry of the tag frequency breakdown.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// DocumentSize identifies a document by size for the largest-documents list.
type DocumentSize struct {
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
	FileSize   int64  `json:"file_size"`
}

// AdvancedStatsResponse reports corpus-level breakdowns.
type AdvancedStatsResponse struct {
	TotalDocuments   int            `json:"total_documents"`
	TotalChunks      int            `json:"total_chunks"`
	AvgChunksPerDoc  float64        `json:"avg_chunks_per_doc"`
	ByFileType       map[string]int `json:"by_file_type"`
	TopTags          []TagCount     `json:"top_tags"`
	LargestDocuments []DocumentSize `json:"largest_documents"`
}

// Advanced returns file type distribution, the most frequent tags, and the
// largest documents.
func (h *StatsHandler) Advanced(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	docs, err := h.index.AllDocuments(ctx)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	byFileType := make(map[string]int)
	tagCounts := make(map[string]int)
	totalChunks := 0
	for _, doc := range docs {
		byFileType[doc.FileType]++
		totalChunks += doc.ChunkCount
		for _, tag := range doc.Tags {
			tagCounts[tag]++
		}
	}

	topTags := make([]TagCount, 0, len(tagCounts))
	for tag, count := range tagCounts {
		topTags = append(topTags, TagCount{Tag: tag, Count: count})
	}
	sort.Slice(topTags, func(i, j int) bool {
		if topTags[i].Count != topTags[j].Count {
			return topTags[i].Count > topTags[j].Count
		}
		return topTags[i].Tag < topTags[j].Tag
	})
	if len(topTags) > topTagsLimit {
		topTags = topTags[:topTagsLimit]
	}

	bySize := make([]vectorindex.Document, len(docs))
	copy(bySize, docs)
	sort.Slice(bySize, func(i, j int) bool {
		return bySize[i].FileSize > bySize[j].FileSize
	})
	if len(bySize) > largestDocumentsLimit {
		bySize = bySize[:largestDocumentsLimit]
	}
	largest := make([]DocumentSize, len(bySize))
	for i, doc := range bySize {
		largest[i] = DocumentSize{
			DocumentID: doc.ID,
			Filename:   doc.Filename,
			FileSize:   doc.FileSize,
		}
	}

	avgChunks := 0.0
	if len(docs) > 0 {
		avgChunks = math.Round(float64(totalChunks)/float64(len(docs))*100) / 100
	}

	writeJSON(ctx, w, http.StatusOK, AdvancedStatsResponse{
		TotalDocuments:   len(docs),
		TotalChunks:      totalChunks,
		AvgChunksPerDoc:  avgChunks,
		ByFileType:       byFileType,
		TopTags:          topTags,
		LargestDocuments: largest,
	})
}

// ResetResponse confirms a collection reset.
type ResetResponse struct {
	Status string `json:"status"`
}

// Reset drops every document from the index.
func (h *StatsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if err := h.index.Reset(ctx); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	logger.InfoContext(ctx, "collection reset")
	writeJSON(ctx, w, http.StatusOK, ResetResponse{Status: "reset"})
}
