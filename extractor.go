package harvest

// Metadata holds supplementary article details found in page markup.
type Metadata struct {
	Author   string
	Excerpt  string
	SiteName string
}

// MetadataExtractor reads article metadata from raw HTML.
type MetadataExtractor interface {
	ExtractMetadata(html string) (*Metadata, error)
}

var _ MetadataExtractor = MetadataChain(nil)

// MetadataChain runs extractors in order and fills each empty field from
// the first extractor that provides it. Extractor errors are skipped.
type MetadataChain []MetadataExtractor

func (c MetadataChain) ExtractMetadata(html string) (*Metadata, error) {
	var md Metadata
	var lastErr error
	for _, e := range c {
		m, err := e.ExtractMetadata(html)
		if err != nil {
			lastErr = err
			continue
		}
		if md.Author == "" {
			md.Author = m.Author
		}
		if md.Excerpt == "" {
			md.Excerpt = m.Excerpt
		}
		if md.SiteName == "" {
			md.SiteName = m.SiteName
		}
		if md.Author != "" && md.Excerpt != "" && md.SiteName != "" {
			break
		}
	}
	if md == (Metadata{}) && lastErr != nil {
		return nil, lastErr
	}
	return &md, nil
}
