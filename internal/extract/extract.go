package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// FileType identifies a supported document format.
type FileType string

const (
	TypePDF  FileType = "pdf"
	TypeDOCX FileType = "docx"
	TypeTXT  FileType = "txt"
)

// MaxContentLength bounds the cleaned text stored for a document.
const MaxContentLength = 1_000_000

// SupportedTypes lists the extraction formats accepted on upload.
var SupportedTypes = []FileType{TypePDF, TypeDOCX, TypeTXT}

// TypeFromFilename derives the file type from the name's extension.
func TypeFromFilename(fileName string) (FileType, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	switch FileType(ext) {
	case TypePDF, TypeDOCX, TypeTXT:
		return FileType(ext), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}
}

// Extract pulls plain text from raw file bytes according to the declared type.
// PDF extraction uses github.com/ledongthuc/pdf; DOCX walks word/document.xml.
func Extract(data []byte, fileType FileType) (string, error) {
	switch fileType {
	case TypePDF:
		return extractPDF(data)
	case TypeDOCX:
		return extractDOCX(data)
	case TypeTXT:
		return extractTXT(data), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, fileType)
	}
}

// Clean normalizes extracted text: runs of non-newline whitespace collapse to
// a single space, runs of blank lines collapse to a single newline, and the
// result is trimmed. Applied to every extractor's output before storage.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text))
	pendingSpace := false
	pendingNewlines := 0
	for _, r := range text {
		switch {
		case r == '\n' || r == '\r':
			pendingNewlines++
			pendingSpace = false
		case r == ' ' || r == '\t' || r == '\v' || r == '\f':
			pendingSpace = true
		default:
			if pendingNewlines > 0 && b.Len() > 0 {
				b.WriteByte('\n')
			}
			if pendingSpace && pendingNewlines == 0 && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingNewlines = 0
			pendingSpace = false
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate rejects empty or oversized cleaned text. maxLength <= 0 falls back
// to MaxContentLength.
func Validate(text string, maxLength int) error {
	if maxLength <= 0 {
		maxLength = MaxContentLength
	}
	if text == "" {
		return ErrEmptyContent
	}
	if len(text) > maxLength {
		return fmt.Errorf("%w: %d chars exceeds maximum %d", ErrContentTooLarge, len(text), maxLength)
	}
	return nil
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty docx data", ErrExtraction)
	}
	readerAt := bytes.NewReader(data)
	zr, err := zip.NewReader(readerAt, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	var docFile *zip.File
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("%w: document.xml not found", ErrExtraction)
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	return stripDocxXML(string(raw)), nil
}

// extractTXT decodes bytes as UTF-8 best-effort; invalid sequences are
// replaced rather than rejected, so plain-text extraction never fails.
func extractTXT(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), string(utf8.RuneError))
}

func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
