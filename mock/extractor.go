package mock

import "github.com/fwojciec/harvest"

var _ harvest.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of harvest.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(listing []byte, baseURL, pathPrefix string) ([]harvest.ArticleReference, error)
}

func (e *LinkExtractor) ExtractLinks(listing []byte, baseURL, pathPrefix string) ([]harvest.ArticleReference, error) {
	return e.ExtractLinksFn(listing, baseURL, pathPrefix)
}

var _ harvest.DocumentProcessor = (*DocumentProcessor)(nil)

// DocumentProcessor is a mock implementation of harvest.DocumentProcessor.
type DocumentProcessor struct {
	ProcessFn func(doc *harvest.RawDocument) harvest.Outcome
}

func (p *DocumentProcessor) Process(doc *harvest.RawDocument) harvest.Outcome {
	return p.ProcessFn(doc)
}

var _ harvest.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor is a mock implementation of harvest.MetadataExtractor.
type MetadataExtractor struct {
	ExtractMetadataFn func(html string) (*harvest.Metadata, error)
}

func (e *MetadataExtractor) ExtractMetadata(html string) (*harvest.Metadata, error) {
	return e.ExtractMetadataFn(html)
}

var _ harvest.Converter = (*Converter)(nil)

// Converter is a mock implementation of harvest.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ harvest.Classifier = (*Classifier)(nil)

// Classifier is a mock implementation of harvest.Classifier.
type Classifier struct {
	ClassifyFn func(text string) harvest.Category
}

func (c *Classifier) Classify(text string) harvest.Category {
	return c.ClassifyFn(text)
}
