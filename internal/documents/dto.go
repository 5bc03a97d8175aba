package documents

import (
	"math"
	"strconv"
	"time"

	"docmind-backend/internal/analyze"
)

// UploadResponse is returned after a successful upload, echoing the content
// analysis computed during ingestion.
type UploadResponse struct {
	DocumentID string        `json:"documentId"`
	FileName   string        `json:"fileName"`
	FileType   string        `json:"fileType"`
	FileSize   string        `json:"fileSize"`
	UploadDate time.Time     `json:"uploadDate"`
	Analysis   analyze.Stats `json:"analysis"`
}

// ListItem is the list projection: contentText and embedding are omitted to
// keep payloads small; cached artifacts are included.
type ListItem struct {
	DocumentID    string    `json:"documentId"`
	FileName      string    `json:"fileName"`
	FileType      string    `json:"fileType"`
	FileSize      int64     `json:"fileSize"`
	SummaryText   *string   `json:"summaryText"`
	Keywords      []string  `json:"keywords"`
	UploadDate    time.Time `json:"uploadDate"`
	LastProcessed time.Time `json:"lastProcessed"`
}

// DetailResponse is the single-document projection; the embedding vector is
// never exposed.
type DetailResponse struct {
	DocumentID    string    `json:"documentId"`
	FileName      string    `json:"fileName"`
	FileType      string    `json:"fileType"`
	FileSize      int64     `json:"fileSize"`
	ContentText   string    `json:"contentText"`
	SummaryText   *string   `json:"summaryText"`
	Keywords      []string  `json:"keywords"`
	UploadDate    time.Time `json:"uploadDate"`
	LastProcessed time.Time `json:"lastProcessed"`
}

func toUploadResponse(doc Document, stats analyze.Stats) UploadResponse {
	return UploadResponse{
		DocumentID: doc.ID,
		FileName:   doc.FileName,
		FileType:   string(doc.FileType),
		FileSize:   FormatFileSize(doc.FileSize),
		UploadDate: doc.UploadDate,
		Analysis:   stats,
	}
}

func toListItem(doc Document) ListItem {
	return ListItem{
		DocumentID:    doc.ID,
		FileName:      doc.FileName,
		FileType:      string(doc.FileType),
		FileSize:      doc.FileSize,
		SummaryText:   doc.SummaryText,
		Keywords:      keywordsOrEmpty(doc.Keywords),
		UploadDate:    doc.UploadDate,
		LastProcessed: doc.LastProcessed,
	}
}

func toDetailResponse(doc Document) DetailResponse {
	return DetailResponse{
		DocumentID:    doc.ID,
		FileName:      doc.FileName,
		FileType:      string(doc.FileType),
		FileSize:      doc.FileSize,
		ContentText:   doc.ContentText,
		SummaryText:   doc.SummaryText,
		Keywords:      keywordsOrEmpty(doc.Keywords),
		UploadDate:    doc.UploadDate,
		LastProcessed: doc.LastProcessed,
	}
}

func keywordsOrEmpty(keywords []string) []string {
	if keywords == nil {
		return []string{}
	}
	return keywords
}

// FormatFileSize renders a byte count as a human-readable label.
func FormatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	sizes := []string{"Bytes", "KB", "MB", "GB"}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i < 0 {
		i = 0
	}
	if i >= len(sizes) {
		i = len(sizes) - 1
	}
	value := float64(bytes) / math.Pow(1024, float64(i))
	rounded := math.Round(value*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + sizes[i]
}
