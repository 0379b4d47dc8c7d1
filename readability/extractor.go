// Package readability reads article metadata with go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/harvest"
	"github.com/go-shiori/go-readability"
)

var _ harvest.MetadataExtractor = (*Extractor)(nil)

// Extractor reads the byline, excerpt and site name of an article.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractMetadata parses the page with the readability algorithm.
func (e *Extractor) ExtractMetadata(html string) (*harvest.Metadata, error) {
	if strings.TrimSpace(html) == "" {
		return nil, harvest.Errorf(harvest.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(html), nil)
	if err != nil {
		return nil, harvest.Errorf(harvest.EINTERNAL, "readability: %v", err)
	}

	return &harvest.Metadata{
		Author:   strings.TrimSpace(article.Byline),
		Excerpt:  strings.TrimSpace(article.Excerpt),
		SiteName: strings.TrimSpace(article.SiteName),
	}, nil
}
