package goquery_test

import (
	"testing"
	"time"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 9, 8, 30, 0, 0, time.UTC)

func newExtractor(opts ...goquery.ContentOption) *goquery.ContentExtractor {
	opts = append(opts, goquery.WithClock(func() time.Time { return fixedNow }))
	return goquery.NewContentExtractor(opts...)
}

func TestContentExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("uses most current layout", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><body>
<h1 class="firestore-post__title"> Launching My SaaS </h1>
<div class="firestore-post__main"><p>First paragraph.</p></div>
</body></html>`)

		result := newExtractor().Extract(doc, "https://www.indiehackers.com/post/launching-my-saas")

		assert.Equal(t, "Launching My SaaS", result.Title)
		assert.Equal(t, "First paragraph.", result.Body)
		assert.Equal(t, "<p>First paragraph.</p>", result.BodyHTML)
		assert.Equal(t, "https://www.indiehackers.com/post/launching-my-saas", result.SourceURL)
		assert.Equal(t, fixedNow, result.FetchedAt)
	})

	t.Run("falls through to third body selector", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><body>
<h1 class="post-title">Title</h1>
<div class="post-page__body"> Hello World </div>
<div class="post-page__main">Later layout</div>
</body></html>`)

		result := newExtractor().Extract(doc, "https://www.indiehackers.com/post/x")

		assert.Equal(t, "Hello World", result.Body)
	})

	t.Run("derives title and reads third body selector when no title matches", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><body>
<h2 class="subtitle">Not a title</h2>
<div class="post-page__body"> Hello World </div>
</body></html>`)

		result := newExtractor().Extract(doc, "https://www.indiehackers.com/post/my-great-idea")

		assert.Equal(t, "My Great Idea", result.Title)
		assert.Equal(t, "Hello World", result.Body)
		assert.Equal(t, "https://www.indiehackers.com/post/my-great-idea", result.SourceURL)
	})

	t.Run("prefers earlier selector over document order", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><body>
<article><h1>Generic</h1></article>
<h1 class="post-title">Specific</h1>
</body></html>`)

		result := newExtractor().Extract(doc, "https://www.indiehackers.com/post/x")

		assert.Equal(t, "Specific", result.Title)
	})

	t.Run("skips selector whose first match is blank", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><body>
<h1 class="firestore-post__title">   </h1>
<div class="post-header"><h1>Header Title</h1></div>
</body></html>`)

		result := newExtractor().Extract(doc, "https://www.indiehackers.com/post/x")

		assert.Equal(t, "Header Title", result.Title)
	})

	t.Run("derives title from URL when no selector matches", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><body><div class="post-content">Body</div></body></html>`)

		result := newExtractor().Extract(doc, "https://www.indiehackers.com/post/my-great-idea")

		assert.Equal(t, "My Great Idea", result.Title)
	})

	t.Run("uses placeholder when no body selector matches", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><body><h1 class="post-title">Title</h1></body></html>`)

		result := newExtractor().Extract(doc, "https://www.indiehackers.com/post/x")

		assert.Equal(t, harvest.NoContentFound, result.Body)
		assert.Empty(t, result.BodyHTML)
	})

	t.Run("uses custom chains", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><body><h2 class="headline">Custom</h2><section>Text</section></body></html>`)

		e := newExtractor(
			goquery.WithTitleChain(harvest.SelectorChain{Field: "title", Selectors: []string{"h2.headline"}}),
			goquery.WithBodyChain(harvest.SelectorChain{Field: "body", Selectors: []string{"section"}}),
		)
		result := e.Extract(doc, "https://www.indiehackers.com/post/x")

		assert.Equal(t, "Custom", result.Title)
		assert.Equal(t, "Text", result.Body)
	})

	t.Run("ignores invalid selectors", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><body><h1 class="post-title">Title</h1></body></html>`)

		e := newExtractor(goquery.WithTitleChain(harvest.SelectorChain{
			Field:     "title",
			Selectors: []string{"h1[", "h1.post-title"},
		}))
		result := e.Extract(doc, "https://www.indiehackers.com/post/x")

		assert.Equal(t, "Title", result.Title)
	})
}

// countingExtractor records whether Extract was called.
type countingExtractor struct {
	calls int
}

func (e *countingExtractor) Extract(_ *gq.Document, url string) *harvest.Extracted {
	e.calls++
	return &harvest.Extracted{Title: "T", Body: "B", SourceURL: url}
}

func TestProcessor_Process(t *testing.T) {
	t.Parallel()

	t.Run("returns paywalled without extracting", func(t *testing.T) {
		t.Parallel()

		extractor := &countingExtractor{}
		p := goquery.NewProcessor(goquery.NewPaywallDetector(harvest.DefaultPaywallMarker), extractor)

		outcome := p.Process(&harvest.RawDocument{
			URL:  "https://www.indiehackers.com/post/premium",
			Body: []byte(`<h1 class="post-title">Premium</h1><span>IH+ Subscribers Only</span>`),
		})

		paywalled, ok := outcome.(*harvest.Paywalled)
		require.True(t, ok)
		assert.Equal(t, "https://www.indiehackers.com/post/premium", paywalled.SourceURL)
		assert.Zero(t, extractor.calls)
	})

	t.Run("extracts free articles", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewProcessor(goquery.NewPaywallDetector(harvest.DefaultPaywallMarker), newExtractor())

		outcome := p.Process(&harvest.RawDocument{
			URL:  "https://www.indiehackers.com/post/free",
			Body: []byte(`<h1 class="post-title">Free</h1><div class="post-content">Text</div>`),
		})

		extracted, ok := outcome.(*harvest.Extracted)
		require.True(t, ok)
		assert.Equal(t, "Free", extracted.Title)
		assert.Equal(t, "Text", extracted.Body)
	})

	t.Run("skips paywall check when detector is nil", func(t *testing.T) {
		t.Parallel()

		extractor := &countingExtractor{}
		p := goquery.NewProcessor(nil, extractor)

		outcome := p.Process(&harvest.RawDocument{
			URL:  "https://www.indiehackers.com/post/premium",
			Body: []byte(`<span>IH+ Subscribers Only</span>`),
		})

		_, ok := outcome.(*harvest.Extracted)
		assert.True(t, ok)
		assert.Equal(t, 1, extractor.calls)
	})
}
