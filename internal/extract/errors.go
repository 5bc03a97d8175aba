package extract

import "errors"

var (
	// ErrUnsupportedType is returned when the declared file type is not pdf, docx, or txt.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrExtraction is returned when the underlying parser cannot produce text.
	ErrExtraction = errors.New("text extraction failed")
	// ErrEmptyContent is returned when extraction yields no text after cleaning.
	ErrEmptyContent = errors.New("document content is empty")
	// ErrContentTooLarge is returned when cleaned text exceeds the configured maximum.
	ErrContentTooLarge = errors.New("document content too large")
)
