// Package insights computes and caches AI-derived document artifacts:
// summaries and keyword lists.
package insights

import (
	"context"
	"errors"
	"strings"
	"time"

	"docmind-backend/internal/documents"
	"docmind-backend/internal/llm"
	"docmind-backend/internal/shared/metrics"
	"docmind-backend/internal/shared/telemetry"
)

// ErrEmptyInput is returned when a document has no text to analyze.
var ErrEmptyInput = errors.New("no text to analyze")

// Service implements get-or-compute caching for derived artifacts. An
// artifact is computed at most once per document and then served from the
// stored field for the document's lifetime; there is no TTL.
//
// Two concurrent requests for the same uncached artifact may both invoke the
// model; last write wins on persistence. Artifacts are derived and
// idempotent to recompute, so this relaxed behavior is acceptable and avoids
// holding a lock across the model call.
type Service struct {
	Repo documents.Repo
	LLM  llm.Client
}

// Summary returns the document's summary, computing and persisting it on
// first request. The second return value reports whether the value was
// served from cache.
func (s *Service) Summary(ctx context.Context, ownerID, documentID string) (string, bool, error) {
	doc, err := s.Repo.GetByOwner(ctx, ownerID, documentID)
	if err != nil {
		return "", false, err
	}

	if doc.HasSummary() {
		return *doc.SummaryText, true, nil
	}

	if strings.TrimSpace(doc.ContentText) == "" {
		return "", false, ErrEmptyInput
	}

	summary, err := s.LLM.Generate(ctx, summaryPrompt(doc.ContentText))
	if err != nil {
		return "", false, err
	}
	summary = strings.TrimSpace(summary)

	processedAt := time.Now().UTC()
	if err := s.Repo.UpdateSummary(ctx, ownerID, documentID, summary, processedAt); err != nil {
		return "", false, err
	}

	metrics.IncArtifactComputed()
	telemetry.Info("insights.summary_computed", map[string]any{
		"document_id": documentID,
		"owner_id":    ownerID,
		"chars":       len(summary),
	})

	return summary, false, nil
}

// Keywords returns the document's keyword list, computing and persisting it
// on first request.
func (s *Service) Keywords(ctx context.Context, ownerID, documentID string) ([]string, bool, error) {
	doc, err := s.Repo.GetByOwner(ctx, ownerID, documentID)
	if err != nil {
		return nil, false, err
	}

	if doc.HasKeywords() {
		return doc.Keywords, true, nil
	}

	if strings.TrimSpace(doc.ContentText) == "" {
		return nil, false, ErrEmptyInput
	}

	raw, err := s.LLM.Generate(ctx, keywordsPrompt(doc.ContentText))
	if err != nil {
		return nil, false, err
	}

	keywords := parseKeywords(raw, maxKeywords)

	processedAt := time.Now().UTC()
	if err := s.Repo.UpdateKeywords(ctx, ownerID, documentID, keywords, processedAt); err != nil {
		return nil, false, err
	}

	metrics.IncArtifactComputed()
	telemetry.Info("insights.keywords_computed", map[string]any{
		"document_id": documentID,
		"owner_id":    ownerID,
		"count":       len(keywords),
	})

	return keywords, false, nil
}

// parseKeywords splits a comma-separated model response into a trimmed,
// bounded keyword list.
func parseKeywords(raw string, max int) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if kw := strings.TrimSpace(p); kw != "" {
			out = append(out, kw)
		}
		if len(out) >= max {
			break
		}
	}
	return out
}
