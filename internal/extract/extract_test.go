package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestTypeFromFilename(t *testing.T) {
	cases := []struct {
		name     string
		fileName string
		want     FileType
		wantErr  bool
	}{
		{"pdf", "report.pdf", TypePDF, false},
		{"docx upper", "Notes.DOCX", TypeDOCX, false},
		{"txt", "readme.txt", TypeTXT, false},
		{"exe rejected", "virus.exe", "", true},
		{"no extension", "README", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := TypeFromFilename(tc.fileName)
			if tc.wantErr {
				if !errors.Is(err, ErrUnsupportedType) {
					t.Fatalf("expected ErrUnsupportedType, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestClean(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"spec example", "a   b\n\n\nc ", "a b\nc"},
		{"tabs collapse", "a\t\tb", "a b"},
		{"leading trailing", "  hello  ", "hello"},
		{"crlf blank lines", "one\r\n\r\ntwo", "one\ntwo"},
		{"empty", "", ""},
		{"whitespace only", "  \n\t ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clean(tc.in); got != tc.want {
				t.Fatalf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestExtractTXTNeverFails(t *testing.T) {
	text, err := Extract([]byte("hello world"), TypeTXT)
	if err != nil {
		t.Fatalf("txt extract: %v", err)
	}
	if Clean(text) != "hello world" {
		t.Fatalf("unexpected text: %q", text)
	}

	// Invalid UTF-8 is replaced, not rejected.
	text, err = Extract([]byte{0xff, 0xfe, 'h', 'i'}, TypeTXT)
	if err != nil {
		t.Fatalf("txt extract invalid utf8: %v", err)
	}
	if !strings.Contains(text, "hi") {
		t.Fatalf("expected decodable tail, got %q", text)
	}
}

func TestExtractDOCX(t *testing.T) {
	data := buildDocx(t, "<w:document xmlns:w=\"ns\"><w:body><w:p><w:r><w:t>first paragraph</w:t></w:r></w:p><w:p><w:r><w:t>second</w:t></w:r></w:p></w:body></w:document>")

	text, err := Extract(data, TypeDOCX)
	if err != nil {
		t.Fatalf("docx extract: %v", err)
	}
	cleaned := Clean(text)
	if cleaned != "first paragraph\nsecond" {
		t.Fatalf("unexpected docx text: %q", cleaned)
	}
}

func TestExtractDOCXMissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	if _, err := Extract(buf.Bytes(), TypeDOCX); !errors.Is(err, ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}

func TestExtractCorruptPDF(t *testing.T) {
	if _, err := Extract([]byte("not a pdf"), TypePDF); !errors.Is(err, ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}

func TestExtractUnsupportedType(t *testing.T) {
	if _, err := Extract([]byte("x"), FileType("xlsx")); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate("", 0); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
	if err := Validate(strings.Repeat("x", 11), 10); !errors.Is(err, ErrContentTooLarge) {
		t.Fatalf("expected ErrContentTooLarge, got %v", err)
	}
	if err := Validate("fine", 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create document.xml: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write document.xml: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}
