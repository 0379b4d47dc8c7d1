package harvest

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// FormatReport renders a batch report for terminal output: the summary
// line, the failed URLs, and a sample of the first record.
func FormatReport(r *BatchReport) string {
	var b strings.Builder
	b.WriteString(r.Summary())

	if len(r.FailedURLs) > 0 {
		b.WriteString("\n\nFailed:")
		for _, u := range r.FailedURLs {
			b.WriteString("\n  " + string(u))
		}
	}

	if len(r.Records) > 0 {
		b.WriteString("\n\n")
		b.WriteString(FormatRecord(r.Records[0]))
	}

	return b.String()
}

// FormatRecord renders a short description of a record.
// Uses title if available, falls back to URL.
func FormatRecord(rec *Record) string {
	header := rec.Title
	if header == "" {
		header = rec.URL
	}
	lines := []string{
		"## Article: " + header,
		"URL: " + rec.URL,
	}
	if rec.Category != "" {
		lines = append(lines, "Category: "+string(rec.Category))
	}
	lines = append(lines, fmt.Sprintf("Content length: %d", utf8.RuneCountInString(rec.Content)))
	return strings.Join(lines, "\n")
}
