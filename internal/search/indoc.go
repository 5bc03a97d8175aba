package search

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"docmind-backend/internal/llm"
	"docmind-backend/internal/shared/telemetry"
)

// Segment is one position-anchored result inside a document.
type Segment struct {
	Start       int    `json:"start"`
	End         int    `json:"end"`
	Text        string `json:"text"`
	Description string `json:"description"`
	Importance  int    `json:"importance"`
}

const (
	segmentMarker     = "SEGMENT"
	defaultImportance = 5
)

var (
	positionPattern   = regexp.MustCompile(`(\d+)-(\d+)`)
	importancePattern = regexp.MustCompile(`Importance:\s*(\d+)`)
)

// DocumentSearcher locates query-relevant spans inside a single document by
// asking the generative capability and parsing its free-text response into
// structured records.
type DocumentSearcher struct {
	LLM llm.Client
}

// Search prompts the model once and returns parsed segments sorted by
// descending importance. Capability errors (rate limit, upstream failure)
// propagate; parser-level noise never does.
func (s *DocumentSearcher) Search(ctx context.Context, documentText, query string) ([]Segment, error) {
	if strings.TrimSpace(documentText) == "" || strings.TrimSpace(query) == "" {
		return nil, ErrInvalidInput
	}

	response, err := s.LLM.Generate(ctx, inDocumentPrompt(documentText, query))
	if err != nil {
		return nil, err
	}

	return parseSegments(response, documentText), nil
}

func inDocumentPrompt(documentText, query string) string {
	return fmt.Sprintf(`Find and analyze the sections of the document below that are relevant to the query %q.

Document:
%s

Query: %s

Respond with one line per relevant section, using exactly this format:
SEGMENT 1: [start]-[end] - [description] - Importance: [1-10]
SEGMENT 2: [start]-[end] - [description] - Importance: [1-10]
...

Start and end are character offsets into the document. Importance is an
integer from 1 to 10.`, query, documentText, query)
}

// parseSegments scans the model response line by line, tolerating formatting
// noise: malformed lines are skipped, and any unexpected panic yields an
// empty result set rather than an error.
func parseSegments(response, documentText string) (segments []Segment) {
	defer func() {
		if rec := recover(); rec != nil {
			telemetry.Error("search.parse_panic", map[string]any{
				"error": fmt.Sprint(rec),
			})
			segments = []Segment{}
		}
	}()

	segments = []Segment{}
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(line, segmentMarker) || !strings.Contains(line, " - ") {
			continue
		}

		parts := strings.SplitN(line, " - ", 3)
		if len(parts) < 3 {
			continue
		}

		positionField := strings.TrimSpace(strings.Replace(parts[0], segmentMarker, "", 1))
		match := positionPattern.FindStringSubmatch(positionField)
		if match == nil {
			continue
		}
		start, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		end, err := strconv.Atoi(match[2])
		if err != nil {
			continue
		}

		start, end, ok := clampSpan(start, end, len(documentText))
		if !ok {
			continue
		}

		importance := defaultImportance
		if m := importancePattern.FindStringSubmatch(parts[2]); m != nil {
			if parsed, err := strconv.Atoi(m[1]); err == nil {
				importance = parsed
			}
		}

		segments = append(segments, Segment{
			Start:       start,
			End:         end,
			Text:        documentText[start:end],
			Description: strings.TrimSpace(parts[1]),
			Importance:  importance,
		})
	}

	// Ties retain their input order.
	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].Importance > segments[j].Importance
	})
	return segments
}

// clampSpan bounds offsets to the document; spans that are empty or inverted
// after clamping are dropped.
func clampSpan(start, end, length int) (int, int, bool) {
	if start < 0 {
		start = 0
	}
	if end > length {
		end = length
	}
	if start >= end {
		return 0, 0, false
	}
	return start, end, true
}
