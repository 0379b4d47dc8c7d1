package main_test

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/fwojciec/harvest"
	main "github.com/fwojciec/harvest/cmd/harvest"
	"github.com/fwojciec/harvest/crawl"
	"github.com/fwojciec/harvest/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipeline(outcomes map[string]harvest.Outcome) *crawl.Pipeline {
	links := []harvest.ArticleReference{
		"https://example.com/post/ok",
		"https://example.com/post/locked",
		"https://example.com/post/broken",
	}
	return &crawl.Pipeline{
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*harvest.RawDocument, error) {
				if url == "https://example.com/post/broken" {
					return nil, &harvest.FetchError{URL: url, Status: http.StatusBadGateway}
				}
				return &harvest.RawDocument{URL: url, Status: http.StatusOK, Body: []byte("<html></html>")}, nil
			},
		},
		Links: &mock.LinkExtractor{
			ExtractLinksFn: func(listing []byte, baseURL, pathPrefix string) ([]harvest.ArticleReference, error) {
				return links, nil
			},
		},
		Processor: &mock.DocumentProcessor{
			ProcessFn: func(doc *harvest.RawDocument) harvest.Outcome {
				return outcomes[doc.URL]
			},
		},
		ListingURL: "https://example.com/",
		Retry:      crawl.NoDelayPolicy(1),
	}
}

func TestRunCmd(t *testing.T) {
	t.Parallel()

	outcomes := map[string]harvest.Outcome{
		"https://example.com/post/ok": &harvest.Extracted{
			Title:     "Shipping my first SaaS",
			Body:      "We launched.",
			SourceURL: "https://example.com/post/ok",
			FetchedAt: time.Now(),
		},
		"https://example.com/post/locked": &harvest.Paywalled{SourceURL: "https://example.com/post/locked"},
	}

	t.Run("prints progress and report", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   stderr,
			Pipeline: newTestPipeline(outcomes),
		}

		err := (&main.RunCmd{}).Run(deps)

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "Found 3 articles")
		assert.Contains(t, out, "Shipping my first SaaS")
		assert.Contains(t, out, "paywalled https://example.com/post/locked")
		assert.Contains(t, out, "discovered 3, succeeded 1, skipped 1 (paywalled), failed 1")
		assert.Contains(t, out, "Failed:\n  https://example.com/post/broken")
		assert.Contains(t, out, "## Article: Shipping my first SaaS")
		assert.Contains(t, stderr.String(), "failed https://example.com/post/broken")
	})

	t.Run("quiet hides progress", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Pipeline: newTestPipeline(outcomes),
		}

		err := (&main.RunCmd{Quiet: true}).Run(deps)

		require.NoError(t, err)
		assert.NotContains(t, stdout.String(), "Found 3 articles")
		assert.Contains(t, stdout.String(), "discovered 3")
	})

	t.Run("reports invalid listing url", func(t *testing.T) {
		t.Parallel()

		p := newTestPipeline(outcomes)
		p.ListingURL = "not a url"
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   stderr,
			Pipeline: p,
		}

		err := (&main.RunCmd{}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
		assert.Contains(t, stderr.String(), "invalid listing URL")
	})

	t.Run("requires a pipeline", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
		}

		err := (&main.RunCmd{}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, harvest.EINTERNAL, harvest.ErrorCode(err))
	})
}
