package harvest

import (
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NoContentFound is the body placeholder used when no body selector matched.
const NoContentFound = "No content found"

// Outcome is the result of processing a fetched article page.
// It is one of *Extracted, *Paywalled or *Failed.
type Outcome interface {
	URL() string
	outcome()
}

// Extracted holds the title and body recovered from an article page.
type Extracted struct {
	Title     string
	Body      string
	BodyHTML  string
	SourceURL string
	FetchedAt time.Time
}

func (e *Extracted) URL() string { return e.SourceURL }
func (*Extracted) outcome()      {}

// Paywalled marks an article that is restricted to subscribers.
type Paywalled struct {
	SourceURL string
}

func (p *Paywalled) URL() string { return p.SourceURL }
func (*Paywalled) outcome()      {}

// Failed marks an article that could not be fetched or processed.
type Failed struct {
	SourceURL string
	Cause     error
}

func (f *Failed) URL() string { return f.SourceURL }
func (*Failed) outcome()      {}

// DocumentProcessor turns a fetched page into an Outcome.
type DocumentProcessor interface {
	Process(doc *RawDocument) Outcome
}

// TitleFromURL derives a readable title from an article URL.
// The path segment after "/post/" is used when present, otherwise the last
// path segment. Hyphens and underscores become spaces and words are title
// cased. The result is never empty.
func TitleFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "Untitled"
	}

	slug := u.Path
	if i := strings.LastIndex(slug, "/post/"); i >= 0 {
		slug = slug[i+len("/post/"):]
	}
	slug = strings.Trim(slug, "/")
	if i := strings.LastIndex(slug, "/"); i >= 0 {
		slug = slug[i+1:]
	}

	slug = strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	words := strings.Fields(slug)
	if len(words) == 0 {
		if u.Host != "" {
			return u.Host
		}
		return "Untitled"
	}

	return cases.Title(language.Und).String(strings.Join(words, " "))
}
