package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// PaywallDetector reports whether a page or fragment is restricted to
// subscribers. A page is paywalled when any of its text nodes, trimmed of
// surrounding whitespace, equals the marker.
type PaywallDetector struct {
	marker string
}

// NewPaywallDetector creates a detector for marker.
func NewPaywallDetector(marker string) *PaywallDetector {
	return &PaywallDetector{marker: strings.TrimSpace(marker)}
}

// IsPaywalled reports whether doc contains the marker text.
func (d *PaywallDetector) IsPaywalled(doc *goquery.Document) bool {
	return d.Contains(doc.Selection)
}

// Contains reports whether any node in sel contains the marker text.
func (d *PaywallDetector) Contains(sel *goquery.Selection) bool {
	if d.marker == "" {
		return false
	}
	for _, n := range sel.Nodes {
		if d.hasMarker(n) {
			return true
		}
	}
	return false
}

func (d *PaywallDetector) hasMarker(n *html.Node) bool {
	if n.Type == html.TextNode && strings.TrimSpace(n.Data) == d.marker {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if d.hasMarker(c) {
			return true
		}
	}
	return false
}
