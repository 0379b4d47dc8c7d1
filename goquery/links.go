// Package goquery implements listing and article page parsing with
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/harvest"
)

var _ harvest.LinkExtractor = (*ListingParser)(nil)

// ListingParser extracts article links from a listing page. Each container
// element contributes at most its first link.
type ListingParser struct {
	container string
	paywall   *PaywallDetector
}

// ListingOption configures a ListingParser.
type ListingOption func(*ListingParser)

// WithContainerSelector sets the selector for per-article containers.
// Defaults to harvest.DefaultContainerSelector.
func WithContainerSelector(selector string) ListingOption {
	return func(p *ListingParser) {
		p.container = selector
	}
}

// WithListingPaywall sets the detector used to skip subscriber-only teasers.
func WithListingPaywall(d *PaywallDetector) ListingOption {
	return func(p *ListingParser) {
		p.paywall = d
	}
}

// NewListingParser creates a new ListingParser.
func NewListingParser(opts ...ListingOption) *ListingParser {
	p := &ListingParser{
		container: harvest.DefaultContainerSelector,
		paywall:   NewPaywallDetector(harvest.DefaultPaywallMarker),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ExtractLinks implements harvest.LinkExtractor. Containers carrying the
// paywall marker are skipped. Links to other sites or outside pathPrefix
// are dropped. Results are deduplicated by exact URL in document order.
func (p *ListingParser) ExtractLinks(listing []byte, baseURL, pathPrefix string) ([]harvest.ArticleReference, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, harvest.Errorf(harvest.EINVALID, "invalid base URL %q", baseURL)
	}
	origin := &url.URL{Scheme: base.Scheme, Host: base.Host}

	if len(bytes.TrimSpace(listing)) == 0 {
		return nil, nil
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(listing))
	if err != nil {
		return nil, nil
	}

	seen := make(map[string]struct{})
	var links []harvest.ArticleReference

	doc.Find(p.container).Each(func(_ int, container *goquery.Selection) {
		if p.paywall != nil && p.paywall.Contains(container) {
			return
		}

		href, ok := container.Find("a[href]").First().Attr("href")
		if !ok {
			return
		}

		resolved := resolveURL(origin, href)
		if resolved == nil {
			return
		}
		if !sameSite(resolved.Host, origin.Host) || !strings.HasPrefix(resolved.Path, pathPrefix) {
			return
		}

		link := resolved.String()
		if _, dup := seen[link]; dup {
			return
		}
		seen[link] = struct{}{}
		links = append(links, harvest.ArticleReference(link))
	})

	return links, nil
}

// resolveURL makes href absolute against origin with dot segments removed.
// Fragments are stripped for deduplication. Returns nil for non-HTTP links.
func resolveURL(origin *url.URL, href string) *url.URL {
	href = strings.TrimSpace(href)
	if href == "" || isNonHTTPLink(href) {
		return nil
	}
	ref, err := url.Parse(href)
	if err != nil {
		return nil
	}

	if ref.Scheme != "" && ref.Scheme != "http" && ref.Scheme != "https" {
		return nil
	}
	// ResolveReference also removes dot segments from absolute hrefs.
	resolved := origin.ResolveReference(ref)
	resolved.Fragment = ""
	resolved.RawFragment = ""
	return resolved
}

// sameSite reports whether two hosts name the same site, ignoring case and
// a leading "www.".
func sameSite(a, b string) bool {
	a = strings.TrimPrefix(strings.ToLower(a), "www.")
	b = strings.TrimPrefix(strings.ToLower(b), "www.")
	return a == b
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(href)
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
