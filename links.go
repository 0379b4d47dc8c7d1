package harvest

// ArticleReference is the normalized absolute URL of an article page.
type ArticleReference string

// Default listing layout values.
const (
	DefaultListingURL        = "https://www.indiehackers.com/"
	DefaultPathPrefix        = "/post/"
	DefaultContainerSelector = "div.ember-view"
	DefaultPaywallMarker     = "IH+ Subscribers Only"
)

// LinkExtractor finds article links on a listing page.
type LinkExtractor interface {
	// ExtractLinks returns the distinct article URLs found in listing, in
	// document order. Relative hrefs are resolved against the origin of
	// baseURL and only URLs whose path starts with pathPrefix are kept.
	// An empty or unparseable listing yields no links and no error.
	ExtractLinks(listing []byte, baseURL, pathPrefix string) ([]ArticleReference, error)
}
