package harvest_test

import (
	"testing"
	"time"

	"github.com/fwojciec/harvest"
	"github.com/stretchr/testify/assert"
)

func TestFormatRecord(t *testing.T) {
	t.Parallel()

	t.Run("formats record with title and category", func(t *testing.T) {
		t.Parallel()

		rec := &harvest.Record{
			Title:    "My Great Idea",
			URL:      "https://www.indiehackers.com/post/my-great-idea",
			Content:  "Hello",
			Category: harvest.CategoryStartup,
		}

		expected := "## Article: My Great Idea\n" +
			"URL: https://www.indiehackers.com/post/my-great-idea\n" +
			"Category: 创业\n" +
			"Content length: 5"
		assert.Equal(t, expected, harvest.FormatRecord(rec))
	})

	t.Run("uses URL when title is empty", func(t *testing.T) {
		t.Parallel()

		rec := &harvest.Record{URL: "https://example.com/post/x", Content: "日本語"}

		expected := "## Article: https://example.com/post/x\n" +
			"URL: https://example.com/post/x\n" +
			"Content length: 3"
		assert.Equal(t, expected, harvest.FormatRecord(rec))
	})
}

func TestFormatReport(t *testing.T) {
	t.Parallel()

	t.Run("renders summary only for empty report", func(t *testing.T) {
		t.Parallel()

		r := &harvest.BatchReport{}

		assert.Equal(t, "discovered 0, succeeded 0, skipped 0 (paywalled), failed 0 in 0s", harvest.FormatReport(r))
	})

	t.Run("lists failed URLs and sample record", func(t *testing.T) {
		t.Parallel()

		r := &harvest.BatchReport{
			Discovered: 3,
			Succeeded:  1,
			Skipped:    1,
			Failed:     1,
			FailedURLs: []harvest.ArticleReference{"https://example.com/post/b"},
			Records: []*harvest.Record{
				{Title: "A", URL: "https://example.com/post/a", Content: "abc"},
			},
			Duration: 1500 * time.Millisecond,
		}

		expected := "discovered 3, succeeded 1, skipped 1 (paywalled), failed 1 in 1.5s\n\n" +
			"Failed:\n  https://example.com/post/b\n\n" +
			"## Article: A\nURL: https://example.com/post/a\nContent length: 3"
		assert.Equal(t, expected, harvest.FormatReport(r))
	})
}
