package documents

import (
	"context"
	"time"
)

// Repo defines persistence operations for documents. Every read and write is
// owner-scoped: no operation can touch another owner's documents.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetByOwner(ctx context.Context, ownerID, documentID string) (Document, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]Document, int, error)
	AllByOwner(ctx context.Context, ownerID string) ([]Document, error)
	SearchText(ctx context.Context, ownerID, query string, limit int) ([]Document, error)
	UpdateSummary(ctx context.Context, ownerID, documentID, summary string, processedAt time.Time) error
	UpdateKeywords(ctx context.Context, ownerID, documentID string, keywords []string, processedAt time.Time) error
	Delete(ctx context.Context, ownerID, documentID string) error
	DeleteByOwner(ctx context.Context, ownerID string) (int, error)
}
