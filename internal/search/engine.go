// Package search implements retrieval over the document collection: a
// hybrid cross-document engine combining lexical matching with embedding
// similarity, and an LLM-driven in-document searcher.
package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"docmind-backend/internal/documents"
	"docmind-backend/internal/embedding"
	"docmind-backend/internal/shared/metrics"
)

var (
	// ErrInvalidQuery rejects empty or whitespace-only search queries.
	ErrInvalidQuery = errors.New("search query is required")
	// ErrInvalidInput rejects in-document searches with missing text or query.
	ErrInvalidInput = errors.New("document text and query are required")
)

// similarityThreshold is the minimum (exclusive) cosine similarity for a
// document to count as a semantic candidate.
const similarityThreshold = 0.3

const defaultLimit = 10

// Result is a document projection returned by the engine. Similarity is set
// only for semantic hits.
type Result struct {
	DocumentID    string    `json:"documentId"`
	FileName      string    `json:"fileName"`
	FileType      string    `json:"fileType"`
	FileSize      int64     `json:"fileSize"`
	SummaryText   *string   `json:"summaryText"`
	Keywords      []string  `json:"keywords"`
	UploadDate    time.Time `json:"uploadDate"`
	LastProcessed time.Time `json:"lastProcessed"`
	Similarity    *float64  `json:"similarity,omitempty"`
}

// Engine ranks an owner's documents against a query.
type Engine struct {
	Repo     documents.Repo
	Embedder *embedding.Provider
}

// Search combines a lexical full-text pass with an embedding-similarity pass
// and returns the deduplicated union, truncated to limit.
//
// When the same document matches both passes, the lexical record is kept and
// the semantic annotation is dropped: first occurrence wins in the union.
// This mirrors the union order, not a "richest record wins" policy.
func (e *Engine) Search(ctx context.Context, ownerID, query string, limit int) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInvalidQuery
	}
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner id required", ErrInvalidQuery)
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	metrics.IncSearchPerformed()
	queryEmbedding := e.Embedder.Embed(ctx, query)

	lexical, err := e.Repo.SearchText(ctx, ownerID, query, limit)
	if err != nil {
		return nil, fmt.Errorf("lexical search: %w", err)
	}

	all, err := e.Repo.AllByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}

	type scored struct {
		doc        documents.Document
		similarity float64
	}
	var semantic []scored
	for _, doc := range all {
		sim := embedding.Cosine(queryEmbedding, doc.Embedding)
		if sim > similarityThreshold {
			semantic = append(semantic, scored{doc: doc, similarity: sim})
		}
	}
	sort.SliceStable(semantic, func(i, j int) bool {
		return semantic[i].similarity > semantic[j].similarity
	})
	if len(semantic) > limit {
		semantic = semantic[:limit]
	}

	seen := make(map[string]struct{}, len(lexical)+len(semantic))
	results := make([]Result, 0, len(lexical)+len(semantic))
	for _, doc := range lexical {
		if _, ok := seen[doc.ID]; ok {
			continue
		}
		seen[doc.ID] = struct{}{}
		results = append(results, toResult(doc, nil))
	}
	for _, s := range semantic {
		if _, ok := seen[s.doc.ID]; ok {
			continue
		}
		seen[s.doc.ID] = struct{}{}
		sim := s.similarity
		results = append(results, toResult(s.doc, &sim))
	}

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func toResult(doc documents.Document, similarity *float64) Result {
	keywords := doc.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return Result{
		DocumentID:    doc.ID,
		FileName:      doc.FileName,
		FileType:      string(doc.FileType),
		FileSize:      doc.FileSize,
		SummaryText:   doc.SummaryText,
		Keywords:      keywords,
		UploadDate:    doc.UploadDate,
		LastProcessed: doc.LastProcessed,
		Similarity:    similarity,
	}
}
