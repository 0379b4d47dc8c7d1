package harvest_test

import (
	"testing"

	"github.com/fwojciec/harvest"
	"github.com/stretchr/testify/assert"
)

func TestTitleFromURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{"uses segment after post", "https://www.indiehackers.com/post/my-great-idea", "My Great Idea"},
		{"ignores trailing slash", "https://www.indiehackers.com/post/my-great-idea/", "My Great Idea"},
		{"ignores query string", "https://example.com/post/launch-day?ref=home", "Launch Day"},
		{"lowercases the rest of each word", "https://example.com/post/my-API-idea", "My Api Idea"},
		{"replaces underscores", "https://example.com/post/side_project", "Side Project"},
		{"uses last segment without post prefix", "https://example.com/blog/2024/hello-world", "Hello World"},
		{"falls back to host", "https://example.com/", "example.com"},
		{"never returns empty", "", "Untitled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, harvest.TitleFromURL(tt.url))
		})
	}
}

func TestOutcome(t *testing.T) {
	t.Parallel()

	outcomes := []harvest.Outcome{
		&harvest.Extracted{SourceURL: "https://example.com/post/a"},
		&harvest.Paywalled{SourceURL: "https://example.com/post/a"},
		&harvest.Failed{SourceURL: "https://example.com/post/a"},
	}

	for _, o := range outcomes {
		assert.Equal(t, "https://example.com/post/a", o.URL())
	}
}
