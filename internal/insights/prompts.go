package insights

import "fmt"

const (
	maxSummaryWords = 500
	maxKeywords     = 10
)

func summaryPrompt(text string) string {
	return fmt.Sprintf(`Summarize the following text. The summary must not exceed %d words and should cover the main ideas of the text:

%s

Summary:`, maxSummaryWords, text)
}

func keywordsPrompt(text string) string {
	return fmt.Sprintf(`Extract the %d most important keywords or key phrases from the following text.
Return only the keywords as a comma-separated list, with no extra explanation:

%s`, maxKeywords, text)
}
