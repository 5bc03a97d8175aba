// Package analyze computes structural statistics over normalized document text.
package analyze

import (
	"math"
	"strings"
)

// Reading speed assumed for the reading-time estimate, in words per minute.
const wordsPerMinute = 200

// Stats summarizes the structure of a piece of text.
type Stats struct {
	CharacterCount     int     `json:"characterCount"`
	WordCount          int     `json:"wordCount"`
	LineCount          int     `json:"lineCount"`
	ParagraphCount     int     `json:"paragraphCount"`
	AverageWordLength  float64 `json:"averageWordLength"`
	ReadingTimeMinutes int     `json:"readingTimeMinutes"`
}

// Analyze is a pure function of text; it never fails and returns a zeroed
// Stats for empty input.
func Analyze(text string) Stats {
	if text == "" {
		return Stats{}
	}

	words := strings.Fields(text)
	stats := Stats{
		CharacterCount: len(text),
		WordCount:      len(words),
		LineCount:      len(strings.Split(text, "\n")),
		ParagraphCount: countParagraphs(text),
	}

	if len(words) > 0 {
		total := 0
		for _, w := range words {
			total += len(w)
		}
		avg := float64(total) / float64(len(words))
		stats.AverageWordLength = math.Round(avg*100) / 100
		stats.ReadingTimeMinutes = int(math.Ceil(float64(len(words)) / wordsPerMinute))
	}

	return stats
}

// countParagraphs counts blocks separated by one-or-more blank lines,
// excluding blocks that are empty after trimming.
func countParagraphs(text string) int {
	count := 0
	for _, block := range splitBlankLines(text) {
		if strings.TrimSpace(block) != "" {
			count++
		}
	}
	return count
}

func splitBlankLines(text string) []string {
	var blocks []string
	var current strings.Builder
	blankRun := false
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			blankRun = true
			continue
		}
		if blankRun && current.Len() > 0 {
			blocks = append(blocks, current.String())
			current.Reset()
		}
		blankRun = false
		if current.Len() > 0 {
			current.WriteByte('\n')
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		blocks = append(blocks, current.String())
	}
	return blocks
}
