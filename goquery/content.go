package goquery

import (
	"bytes"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/harvest"
)

// Extractor recovers title and body from a parsed article page.
type Extractor interface {
	Extract(doc *goquery.Document, url string) *harvest.Extracted
}

var _ Extractor = (*ContentExtractor)(nil)

// ContentExtractor extracts article fields by trying each selector of a
// chain in order. For every selector only the first match is considered,
// and it wins if its trimmed text is non-empty.
type ContentExtractor struct {
	title harvest.SelectorChain
	body  harvest.SelectorChain
	now   func() time.Time
}

// ContentOption configures a ContentExtractor.
type ContentOption func(*ContentExtractor)

// WithTitleChain overrides harvest.DefaultTitleChain.
func WithTitleChain(chain harvest.SelectorChain) ContentOption {
	return func(e *ContentExtractor) {
		e.title = chain
	}
}

// WithBodyChain overrides harvest.DefaultBodyChain.
func WithBodyChain(chain harvest.SelectorChain) ContentOption {
	return func(e *ContentExtractor) {
		e.body = chain
	}
}

// WithClock sets the function used to stamp FetchedAt.
func WithClock(now func() time.Time) ContentOption {
	return func(e *ContentExtractor) {
		e.now = now
	}
}

// NewContentExtractor creates a new ContentExtractor.
func NewContentExtractor(opts ...ContentOption) *ContentExtractor {
	e := &ContentExtractor{
		title: harvest.DefaultTitleChain(),
		body:  harvest.DefaultBodyChain(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the article fields found in doc. A title miss falls back
// to harvest.TitleFromURL and a body miss to harvest.NoContentFound.
func (e *ContentExtractor) Extract(doc *goquery.Document, url string) *harvest.Extracted {
	result := &harvest.Extracted{
		SourceURL: url,
		FetchedAt: e.now().UTC(),
	}

	if _, text, ok := firstMatch(doc, e.title); ok {
		result.Title = text
	} else {
		result.Title = harvest.TitleFromURL(url)
	}

	if sel, text, ok := firstMatch(doc, e.body); ok {
		result.Body = text
		if h, err := sel.Html(); err == nil {
			result.BodyHTML = strings.TrimSpace(h)
		}
	} else {
		result.Body = harvest.NoContentFound
	}

	return result
}

// firstMatch returns the first match of the first selector in chain whose
// trimmed text is non-empty.
func firstMatch(doc *goquery.Document, chain harvest.SelectorChain) (*goquery.Selection, string, bool) {
	for _, selector := range chain.Selectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if text := strings.TrimSpace(sel.Text()); text != "" {
			return sel, text, true
		}
	}
	return nil, "", false
}

var _ harvest.DocumentProcessor = (*Processor)(nil)

// Processor parses a fetched page once, rejects paywalled pages, and hands
// the rest to an Extractor.
type Processor struct {
	paywall   *PaywallDetector
	extractor Extractor
}

// NewProcessor creates a Processor. A nil paywall disables the check.
func NewProcessor(paywall *PaywallDetector, extractor Extractor) *Processor {
	return &Processor{paywall: paywall, extractor: extractor}
}

// Process implements harvest.DocumentProcessor. Paywalled pages are never
// passed to the extractor.
func (p *Processor) Process(raw *harvest.RawDocument) harvest.Outcome {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw.Body))
	if err != nil {
		return &harvest.Failed{
			SourceURL: raw.URL,
			Cause:     harvest.Errorf(harvest.EINVALID, "failed to parse HTML of %s: %v", raw.URL, err),
		}
	}

	if p.paywall != nil && p.paywall.IsPaywalled(doc) {
		return &harvest.Paywalled{SourceURL: raw.URL}
	}

	return p.extractor.Extract(doc, raw.URL)
}
