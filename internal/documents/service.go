package documents

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"docmind-backend/internal/analyze"
	"docmind-backend/internal/embedding"
	"docmind-backend/internal/extract"
	"docmind-backend/internal/shared/metrics"
	"docmind-backend/internal/shared/telemetry"
	"docmind-backend/internal/shared/util"
)

// Service contains business logic for documents.
type Service struct {
	Repo     Repo
	Embedder *embedding.Provider
	// MaxContentLength overrides extract.MaxContentLength when positive.
	MaxContentLength int
}

// Upload runs the full ingestion pipeline: type detection, extraction,
// normalization, validation, content analysis, embedding, persistence. The
// document is only persisted once every step has succeeded, so no partial
// record is ever left behind.
func (s *Service) Upload(ctx context.Context, ownerID, fileName string, fileSize int64, data []byte) (Document, analyze.Stats, error) {
	if ownerID == "" || fileName == "" {
		return Document{}, analyze.Stats{}, fmt.Errorf("%w: owner and file name required", ErrInvalidInput)
	}

	safeName, err := util.SanitizeFileName(fileName)
	if err != nil {
		return Document{}, analyze.Stats{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	fileType, err := extract.TypeFromFilename(fileName)
	if err != nil {
		return Document{}, analyze.Stats{}, err
	}

	raw, err := extract.Extract(data, fileType)
	if err != nil {
		return Document{}, analyze.Stats{}, err
	}

	content := extract.Clean(raw)
	if err := extract.Validate(content, s.MaxContentLength); err != nil {
		return Document{}, analyze.Stats{}, err
	}

	stats := analyze.Analyze(content)
	vector := s.Embedder.Embed(ctx, content)

	now := time.Now().UTC()
	doc := Document{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		FileName:      safeName,
		FileType:      fileType,
		FileSize:      fileSize,
		ContentText:   content,
		Embedding:     vector,
		UploadDate:    now,
		LastProcessed: now,
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, analyze.Stats{}, err
	}

	metrics.IncDocumentUploaded()
	telemetry.Info("document.uploaded", map[string]any{
		"document_id": doc.ID,
		"owner_id":    ownerID,
		"file_type":   string(fileType),
		"file_size":   fileSize,
		"chars":       len(content),
		"words":       stats.WordCount,
	})

	return doc, stats, nil
}

// Get returns one of the owner's documents.
func (s *Service) Get(ctx context.Context, ownerID, documentID string) (Document, error) {
	if ownerID == "" || documentID == "" {
		return Document{}, fmt.Errorf("%w: owner and document id required", ErrInvalidInput)
	}
	return s.Repo.GetByOwner(ctx, ownerID, documentID)
}

// List returns a page of the owner's documents plus the total count.
func (s *Service) List(ctx context.Context, ownerID string, limit, offset int) ([]Document, int, error) {
	if ownerID == "" {
		return nil, 0, fmt.Errorf("%w: owner id required", ErrInvalidInput)
	}
	return s.Repo.ListByOwner(ctx, ownerID, limit, offset)
}

// Delete removes one of the owner's documents.
func (s *Service) Delete(ctx context.Context, ownerID, documentID string) error {
	if ownerID == "" || documentID == "" {
		return fmt.Errorf("%w: owner and document id required", ErrInvalidInput)
	}
	return s.Repo.Delete(ctx, ownerID, documentID)
}

// DeleteOwner removes every document belonging to an owner; used when the
// owning identity is removed.
func (s *Service) DeleteOwner(ctx context.Context, ownerID string) (int, error) {
	if ownerID == "" {
		return 0, fmt.Errorf("%w: owner id required", ErrInvalidInput)
	}
	removed, err := s.Repo.DeleteByOwner(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	telemetry.Info("documents.cascade_delete", map[string]any{
		"owner_id": ownerID,
		"removed":  removed,
	})
	return removed, nil
}
