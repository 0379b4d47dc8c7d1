package harvest

import (
	"context"
	"time"
)

// RawDocument is the response body of a single successful page fetch.
type RawDocument struct {
	URL       string
	Status    int
	Body      []byte
	FetchedAt time.Time
}

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch performs one GET request for the URL.
	// Non-200 responses and transport failures are returned as *FetchError.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*RawDocument, error)

	// Close releases idle connections held by the fetcher.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
