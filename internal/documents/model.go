package documents

import (
	"time"

	"docmind-backend/internal/extract"
)

// Document represents an uploaded document owned by a user. ContentText is
// immutable after upload; SummaryText and Keywords are derived artifacts
// populated at most once unless explicitly recomputed.
type Document struct {
	ID            string
	OwnerID       string
	FileName      string
	FileType      extract.FileType
	FileSize      int64
	ContentText   string
	SummaryText   *string
	Keywords      []string
	Embedding     []float64
	UploadDate    time.Time
	LastProcessed time.Time
}

// HasSummary reports whether the summary artifact has been computed.
func (d Document) HasSummary() bool {
	return d.SummaryText != nil
}

// HasKeywords reports whether the keywords artifact has been computed.
func (d Document) HasKeywords() bool {
	return len(d.Keywords) > 0
}
