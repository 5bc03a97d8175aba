package insights

import (
	"context"
	"errors"
	"testing"
	"time"

	"docmind-backend/internal/documents"
	"docmind-backend/internal/llm"
)

type fakeLLM struct {
	reply string
	err   error
	calls int
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func seedDocument(t *testing.T, repo *documents.MemoryRepo, ownerID, content string) string {
	t.Helper()
	doc := documents.Document{
		ID:            "doc-" + ownerID,
		OwnerID:       ownerID,
		FileName:      "file.txt",
		FileType:      "txt",
		FileSize:      int64(len(content)),
		ContentText:   content,
		Embedding:     []float64{0.1, 0.2, 0.3, 0.9},
		UploadDate:    time.Now().UTC(),
		LastProcessed: time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("seed document: %v", err)
	}
	return doc.ID
}

func TestSummaryComputedOnceThenCached(t *testing.T) {
	repo := documents.NewMemoryRepo()
	docID := seedDocument(t, repo, "owner-1", "a long document body")
	client := &fakeLLM{reply: "a concise summary"}
	svc := &Service{Repo: repo, LLM: client}

	summary, cached, err := svc.Summary(context.Background(), "owner-1", docID)
	if err != nil {
		t.Fatalf("first Summary: %v", err)
	}
	if cached {
		t.Fatal("first call should not be cached")
	}
	if summary != "a concise summary" {
		t.Fatalf("unexpected summary: %q", summary)
	}

	summary, cached, err = svc.Summary(context.Background(), "owner-1", docID)
	if err != nil {
		t.Fatalf("second Summary: %v", err)
	}
	if !cached {
		t.Fatal("second call should be cached")
	}
	if summary != "a concise summary" {
		t.Fatalf("unexpected cached summary: %q", summary)
	}
	if client.calls != 1 {
		t.Fatalf("expected exactly one model call, got %d", client.calls)
	}
}

func TestSummaryUpdatesLastProcessed(t *testing.T) {
	repo := documents.NewMemoryRepo()
	docID := seedDocument(t, repo, "owner-1", "body")
	before, err := repo.GetByOwner(context.Background(), "owner-1", docID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	svc := &Service{Repo: repo, LLM: &fakeLLM{reply: "s"}}
	if _, _, err := svc.Summary(context.Background(), "owner-1", docID); err != nil {
		t.Fatalf("Summary: %v", err)
	}

	after, err := repo.GetByOwner(context.Background(), "owner-1", docID)
	if err != nil {
		t.Fatalf("get after: %v", err)
	}
	if !after.LastProcessed.After(before.LastProcessed) && !after.LastProcessed.Equal(before.LastProcessed) {
		t.Fatal("lastProcessed should not move backwards")
	}
	if !after.HasSummary() {
		t.Fatal("summary should be persisted")
	}
}

func TestKeywordsParsedAndCached(t *testing.T) {
	repo := documents.NewMemoryRepo()
	docID := seedDocument(t, repo, "owner-1", "body about databases")
	client := &fakeLLM{reply: " databases , indexing,, storage engines , "}
	svc := &Service{Repo: repo, LLM: client}

	keywords, cached, err := svc.Keywords(context.Background(), "owner-1", docID)
	if err != nil {
		t.Fatalf("Keywords: %v", err)
	}
	if cached {
		t.Fatal("first call should not be cached")
	}
	want := []string{"databases", "indexing", "storage engines"}
	if len(keywords) != len(want) {
		t.Fatalf("keywords = %v, want %v", keywords, want)
	}
	for i := range want {
		if keywords[i] != want[i] {
			t.Fatalf("keywords[%d] = %q, want %q", i, keywords[i], want[i])
		}
	}

	if _, cached, err = svc.Keywords(context.Background(), "owner-1", docID); err != nil || !cached {
		t.Fatalf("second call cached=%v err=%v, want cached=true", cached, err)
	}
	if client.calls != 1 {
		t.Fatalf("expected exactly one model call, got %d", client.calls)
	}
}

func TestKeywordsCapped(t *testing.T) {
	repo := documents.NewMemoryRepo()
	docID := seedDocument(t, repo, "owner-1", "body")
	client := &fakeLLM{reply: "a,b,c,d,e,f,g,h,i,j,k,l"}
	svc := &Service{Repo: repo, LLM: client}

	keywords, _, err := svc.Keywords(context.Background(), "owner-1", docID)
	if err != nil {
		t.Fatalf("Keywords: %v", err)
	}
	if len(keywords) != maxKeywords {
		t.Fatalf("expected %d keywords, got %d", maxKeywords, len(keywords))
	}
}

func TestArtifactErrorsPropagateWithoutCaching(t *testing.T) {
	repo := documents.NewMemoryRepo()
	docID := seedDocument(t, repo, "owner-1", "body")
	client := &fakeLLM{err: llm.ErrRateLimited}
	svc := &Service{Repo: repo, LLM: client}

	if _, _, err := svc.Summary(context.Background(), "owner-1", docID); !errors.Is(err, llm.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}

	// Failure must not persist anything: next call hits the model again.
	client.err = nil
	client.reply = "recovered"
	summary, cached, err := svc.Summary(context.Background(), "owner-1", docID)
	if err != nil {
		t.Fatalf("recovered Summary: %v", err)
	}
	if cached || summary != "recovered" {
		t.Fatalf("expected fresh compute after failure, cached=%v summary=%q", cached, summary)
	}
}

func TestSummaryUnknownDocument(t *testing.T) {
	svc := &Service{Repo: documents.NewMemoryRepo(), LLM: &fakeLLM{reply: "s"}}
	if _, _, err := svc.Summary(context.Background(), "owner-1", "missing"); !errors.Is(err, documents.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
