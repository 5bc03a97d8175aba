package search

import (
	"context"
	"errors"
	"testing"

	"docmind-backend/internal/llm"
)

func TestSearchInDocumentParsesWellFormedSegment(t *testing.T) {
	searcher := &DocumentSearcher{LLM: &fakeLLM{reply: "SEGMENT 1: 4-9 - fox jump - Importance: 7"}}

	segments, err := searcher.Search(context.Background(), "The quick brown fox", "fox")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	seg := segments[0]
	if seg.Text != "quick" {
		t.Fatalf("text = %q, want %q", seg.Text, "quick")
	}
	if seg.Importance != 7 {
		t.Fatalf("importance = %d, want 7", seg.Importance)
	}
	if seg.Description != "fox jump" {
		t.Fatalf("description = %q, want %q", seg.Description, "fox jump")
	}
}

func TestSearchInDocumentSkipsMalformedLines(t *testing.T) {
	reply := "garbage\nSEGMENT 1: 0-3 - opener - Importance: 9\nSEGMENT oops: nonsense - x - y\n"
	searcher := &DocumentSearcher{LLM: &fakeLLM{reply: reply}}

	segments, err := searcher.Search(context.Background(), "The quick brown fox", "opener")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("expected exactly the valid record, got %d", len(segments))
	}
	if segments[0].Text != "The" {
		t.Fatalf("text = %q, want %q", segments[0].Text, "The")
	}
}

func TestSearchInDocumentDefaultImportance(t *testing.T) {
	searcher := &DocumentSearcher{LLM: &fakeLLM{reply: "SEGMENT 1: 0-3 - opener - no rating here"}}

	segments, err := searcher.Search(context.Background(), "The quick brown fox", "opener")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Importance != defaultImportance {
		t.Fatalf("importance = %d, want default %d", segments[0].Importance, defaultImportance)
	}
}

func TestSearchInDocumentClampsOutOfRangeOffsets(t *testing.T) {
	reply := "SEGMENT 1: 10-9999 - tail - Importance: 4\nSEGMENT 2: 50-40 - inverted - Importance: 8"
	searcher := &DocumentSearcher{LLM: &fakeLLM{reply: reply}}

	segments, err := searcher.Search(context.Background(), "The quick brown fox", "tail")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment (inverted span dropped), got %d", len(segments))
	}
	if segments[0].Text != "brown fox" {
		t.Fatalf("text = %q, want %q", segments[0].Text, "brown fox")
	}
	if segments[0].End != len("The quick brown fox") {
		t.Fatalf("end = %d, want clamped %d", segments[0].End, len("The quick brown fox"))
	}
}

func TestSearchInDocumentSortsByImportanceStable(t *testing.T) {
	reply := "SEGMENT 1: 0-3 - low - Importance: 2\n" +
		"SEGMENT 2: 4-9 - first high - Importance: 8\n" +
		"SEGMENT 3: 10-15 - second high - Importance: 8\n"
	searcher := &DocumentSearcher{LLM: &fakeLLM{reply: reply}}

	segments, err := searcher.Search(context.Background(), "The quick brown fox", "q")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}
	if segments[0].Description != "first high" || segments[1].Description != "second high" {
		t.Fatalf("ties must keep input order, got %q then %q", segments[0].Description, segments[1].Description)
	}
	if segments[2].Description != "low" {
		t.Fatalf("lowest importance should sort last, got %q", segments[2].Description)
	}
}

func TestSearchInDocumentRejectsEmptyInputs(t *testing.T) {
	searcher := &DocumentSearcher{LLM: &fakeLLM{reply: "x"}}

	if _, err := searcher.Search(context.Background(), "", "query"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty text, got %v", err)
	}
	if _, err := searcher.Search(context.Background(), "text", "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty query, got %v", err)
	}
}

func TestSearchInDocumentPropagatesUpstreamErrors(t *testing.T) {
	searcher := &DocumentSearcher{LLM: &fakeLLM{err: llm.ErrRateLimited}}
	if _, err := searcher.Search(context.Background(), "text", "query"); !errors.Is(err, llm.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}

	searcher = &DocumentSearcher{LLM: &fakeLLM{err: llm.ErrUpstream}}
	if _, err := searcher.Search(context.Background(), "text", "query"); !errors.Is(err, llm.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestParseSegmentsEmptyResponse(t *testing.T) {
	segments := parseSegments("no structured lines at all", "document body")
	if len(segments) != 0 {
		t.Fatalf("expected no segments, got %d", len(segments))
	}
}
