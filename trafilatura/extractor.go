// Package trafilatura reads article metadata with go-trafilatura.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/harvest"
	"github.com/markusmobius/go-trafilatura"
)

var _ harvest.MetadataExtractor = (*Extractor)(nil)

// Extractor reads author, description and site name from page markup.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates an Extractor with the readability fallback enabled.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback: true,
		},
	}
}

// ExtractMetadata parses the page and returns whatever metadata it declares.
func (e *Extractor) ExtractMetadata(html string) (*harvest.Metadata, error) {
	if strings.TrimSpace(html) == "" {
		return nil, harvest.Errorf(harvest.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(html), e.opts)
	if err != nil {
		return nil, harvest.Errorf(harvest.EINTERNAL, "trafilatura: %v", err)
	}

	return &harvest.Metadata{
		Author:   strings.TrimSpace(result.Metadata.Author),
		Excerpt:  strings.TrimSpace(result.Metadata.Description),
		SiteName: strings.TrimSpace(result.Metadata.Sitename),
	}, nil
}
