package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"docmind-backend/internal/extract"
)

// PGRepo implements Repo using Postgres. Keywords and embedding are stored
// as JSONB; the lexical pass uses the GIN full-text index created by the
// documents migration.
type PGRepo struct {
	DB *sql.DB
}

const documentColumns = `id, owner_id, file_name, file_type, file_size, content_text, summary_text, keywords, embedding, upload_date, last_processed`

// Create inserts a new document.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (
    id,
    owner_id,
    file_name,
    file_type,
    file_size,
    content_text,
    summary_text,
    keywords,
    embedding,
    upload_date,
    last_processed
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	keywordsJSON, err := json.Marshal(doc.Keywords)
	if err != nil {
		return fmt.Errorf("marshal keywords: %w", err)
	}
	embeddingJSON, err := json.Marshal(doc.Embedding)
	if err != nil {
		return fmt.Errorf("marshal embedding: %w", err)
	}

	var summary sql.NullString
	if doc.SummaryText != nil {
		summary = sql.NullString{String: *doc.SummaryText, Valid: true}
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.OwnerID,
		doc.FileName,
		string(doc.FileType),
		doc.FileSize,
		doc.ContentText,
		summary,
		keywordsJSON,
		embeddingJSON,
		doc.UploadDate,
		doc.LastProcessed,
	)
	return err
}

// GetByOwner fetches a document by ID for an owner.
func (r *PGRepo) GetByOwner(ctx context.Context, ownerID, documentID string) (Document, error) {
	query := `
SELECT ` + documentColumns + `
FROM documents
WHERE owner_id = $1 AND id = $2
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, ownerID, documentID)
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// ListByOwner lists documents newest-first with limit/offset plus the total
// count for pagination.
func (r *PGRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]Document, int, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents WHERE owner_id = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
SELECT ` + documentColumns + `
FROM documents
WHERE owner_id = $1
ORDER BY upload_date DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	docs, err := collectDocuments(rows)
	if err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

// AllByOwner returns every document for an owner.
func (r *PGRepo) AllByOwner(ctx context.Context, ownerID string) ([]Document, error) {
	query := `
SELECT ` + documentColumns + `
FROM documents
WHERE owner_id = $1
ORDER BY upload_date DESC`

	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDocuments(rows)
}

// SearchText runs the lexical full-text pass over an owner's documents.
func (r *PGRepo) SearchText(ctx context.Context, ownerID, query string, limit int) ([]Document, error) {
	if limit <= 0 {
		limit = 10
	}
	sqlQuery := `
SELECT ` + documentColumns + `
FROM documents
WHERE owner_id = $1
  AND to_tsvector('simple', content_text) @@ plainto_tsquery('simple', $2)
ORDER BY upload_date DESC
LIMIT $3`

	rows, err := r.DB.QueryContext(ctx, sqlQuery, ownerID, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDocuments(rows)
}

// UpdateSummary persists the summary artifact and bumps last_processed.
func (r *PGRepo) UpdateSummary(ctx context.Context, ownerID, documentID, summary string, processedAt time.Time) error {
	const query = `
UPDATE documents
SET summary_text = $1, last_processed = $2
WHERE owner_id = $3 AND id = $4`
	res, err := r.DB.ExecContext(ctx, query, summary, processedAt, ownerID, documentID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// UpdateKeywords persists the keywords artifact and bumps last_processed.
func (r *PGRepo) UpdateKeywords(ctx context.Context, ownerID, documentID string, keywords []string, processedAt time.Time) error {
	keywordsJSON, err := json.Marshal(keywords)
	if err != nil {
		return fmt.Errorf("marshal keywords: %w", err)
	}
	const query = `
UPDATE documents
SET keywords = $1, last_processed = $2
WHERE owner_id = $3 AND id = $4`
	res, err := r.DB.ExecContext(ctx, query, keywordsJSON, processedAt, ownerID, documentID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes a single document for an owner.
func (r *PGRepo) Delete(ctx context.Context, ownerID, documentID string) error {
	const query = `DELETE FROM documents WHERE owner_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, ownerID, documentID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeleteByOwner removes every document for an owner, cascading a user
// deletion.
func (r *PGRepo) DeleteByOwner(ctx context.Context, ownerID string) (int, error) {
	const query = `DELETE FROM documents WHERE owner_id = $1`
	res, err := r.DB.ExecContext(ctx, query, ownerID)
	if err != nil {
		return 0, err
	}
	removed, _ := res.RowsAffected()
	return int(removed), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var fileType string
	var summary sql.NullString
	var keywordsJSON, embeddingJSON []byte
	if err := row.Scan(
		&doc.ID,
		&doc.OwnerID,
		&doc.FileName,
		&fileType,
		&doc.FileSize,
		&doc.ContentText,
		&summary,
		&keywordsJSON,
		&embeddingJSON,
		&doc.UploadDate,
		&doc.LastProcessed,
	); err != nil {
		return Document{}, err
	}
	doc.FileType = extract.FileType(fileType)
	if summary.Valid {
		doc.SummaryText = &summary.String
	}
	if len(keywordsJSON) > 0 {
		if err := json.Unmarshal(keywordsJSON, &doc.Keywords); err != nil {
			return Document{}, fmt.Errorf("unmarshal keywords: %w", err)
		}
	}
	if len(embeddingJSON) > 0 {
		if err := json.Unmarshal(embeddingJSON, &doc.Embedding); err != nil {
			return Document{}, fmt.Errorf("unmarshal embedding: %w", err)
		}
	}
	return doc, nil
}

func collectDocuments(rows *sql.Rows) ([]Document, error) {
	var out []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
