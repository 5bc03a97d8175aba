package documents

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo, used in tests and when
// no database is configured.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Document // ownerID -> documents
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]Document),
	}
}

// Create stores a document for its owner.
func (r *MemoryRepo) Create(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[doc.OwnerID] = append(r.data[doc.OwnerID], doc)
	return nil
}

// GetByOwner returns a document by ID for an owner.
func (r *MemoryRepo) GetByOwner(ctx context.Context, ownerID, documentID string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	docs := r.data[ownerID]
	for i := range docs {
		if docs[i].ID == documentID {
			return cloneDocument(docs[i]), nil
		}
	}
	return Document{}, ErrNotFound
}

// ListByOwner returns an owner's documents, newest first, honoring
// limit/offset, plus the total count before paging.
func (r *MemoryRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]Document, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	ownerDocs := r.data[ownerID]
	total := len(ownerDocs)
	docs := make([]Document, 0, total)
	for _, d := range ownerDocs {
		docs = append(docs, cloneDocument(d))
	}
	r.mu.RUnlock()

	if total == 0 || offset >= total {
		return []Document{}, total, nil
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].UploadDate.After(docs[j].UploadDate)
	})

	end := len(docs)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	return docs[offset:end], total, nil
}

// AllByOwner returns every document for an owner, in insertion order.
func (r *MemoryRepo) AllByOwner(ctx context.Context, ownerID string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	docs := make([]Document, 0, len(r.data[ownerID]))
	for _, d := range r.data[ownerID] {
		docs = append(docs, cloneDocument(d))
	}
	return docs, nil
}

// SearchText matches documents whose content contains every query term,
// case-insensitively.
func (r *MemoryRepo) SearchText(ctx context.Context, ownerID, query string, limit int) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return []Document{}, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Document
	for _, d := range r.data[ownerID] {
		content := strings.ToLower(d.ContentText)
		matched := true
		for _, term := range terms {
			if !strings.Contains(content, term) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, cloneDocument(d))
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

// UpdateSummary persists the summary artifact and bumps lastProcessed.
func (r *MemoryRepo) UpdateSummary(ctx context.Context, ownerID, documentID, summary string, processedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	docs := r.data[ownerID]
	for i := range docs {
		if docs[i].ID == documentID {
			docs[i].SummaryText = &summary
			docs[i].LastProcessed = processedAt
			r.data[ownerID] = docs
			return nil
		}
	}
	return ErrNotFound
}

// UpdateKeywords persists the keywords artifact and bumps lastProcessed.
func (r *MemoryRepo) UpdateKeywords(ctx context.Context, ownerID, documentID string, keywords []string, processedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	docs := r.data[ownerID]
	for i := range docs {
		if docs[i].ID == documentID {
			docs[i].Keywords = append([]string(nil), keywords...)
			docs[i].LastProcessed = processedAt
			r.data[ownerID] = docs
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes a single document for an owner.
func (r *MemoryRepo) Delete(ctx context.Context, ownerID, documentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	docs := r.data[ownerID]
	for i := range docs {
		if docs[i].ID == documentID {
			r.data[ownerID] = append(docs[:i], docs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// DeleteByOwner removes every document for an owner and reports how many
// were deleted.
func (r *MemoryRepo) DeleteByOwner(ctx context.Context, ownerID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := len(r.data[ownerID])
	delete(r.data, ownerID)
	return removed, nil
}

func cloneDocument(d Document) Document {
	out := d
	if d.SummaryText != nil {
		s := *d.SummaryText
		out.SummaryText = &s
	}
	out.Keywords = append([]string(nil), d.Keywords...)
	out.Embedding = append([]float64(nil), d.Embedding...)
	return out
}

var _ Repo = (*MemoryRepo)(nil)
