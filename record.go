package harvest

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"
)

// KnowledgeBaseBodyLimit is the maximum number of body runes sent to the
// knowledge base before truncation.
const KnowledgeBaseBodyLimit = 2000

// Record is a fully processed article ready for the sinks.
type Record struct {
	ID                string    `json:"id,omitempty"`
	Title             string    `json:"title"`
	URL               string    `json:"url"`
	Content           string    `json:"content"`
	TranslatedContent string    `json:"translated_content,omitempty"`
	Markdown          string    `json:"markdown,omitempty"`
	Category          Category  `json:"category,omitempty"`
	Author            string    `json:"author,omitempty"`
	Excerpt           string    `json:"excerpt,omitempty"`
	ContentHash       string    `json:"content_hash,omitempty"`
	CrawledAt         time.Time `json:"crawl_time"`
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "record URL required")
	}
	if r.Title == "" {
		return Errorf(EINVALID, "record title required")
	}
	return nil
}

// KnowledgeBody returns the text stored in the knowledge base: the
// translated content when present, truncated to KnowledgeBaseBodyLimit.
func (r *Record) KnowledgeBody() string {
	body := r.TranslatedContent
	if body == "" {
		body = r.Content
	}
	return TruncateBody(body, KnowledgeBaseBodyLimit)
}

// TruncateBody shortens s to at most limit runes, appending "..." when
// anything was cut.
func TruncateBody(s string, limit int) string {
	if limit < 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}

// KnowledgeBase stores processed records.
type KnowledgeBase interface {
	// Write stores the record. Records whose URL is already stored are
	// ignored.
	Write(ctx context.Context, r *Record) error
}

// RecordService is a KnowledgeBase that can also be queried.
type RecordService interface {
	KnowledgeBase

	// FindRecordByURL retrieves a record by its URL.
	// Returns ENOTFOUND if the record does not exist.
	FindRecordByURL(ctx context.Context, url string) (*Record, error)

	// FindRecords retrieves records matching the filter, newest first.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*Record, error)
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	Category *Category `json:"category"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RecordSaver persists a completed batch of records.
type RecordSaver interface {
	// Save replaces previously saved contents with records.
	Save(ctx context.Context, records []*Record) error
}

// Archive persists a batch of records as a single artifact.
type Archive interface {
	RecordSaver

	// Load reads the archived records.
	// Returns ENOTFOUND if nothing has been archived yet.
	Load(ctx context.Context) ([]*Record, error)
}

var _ RecordSaver = MultiSaver(nil)

// MultiSaver saves to every saver in order. All savers run even when one
// fails; the failures are joined.
type MultiSaver []RecordSaver

func (m MultiSaver) Save(ctx context.Context, records []*Record) error {
	var errs []error
	for _, s := range m {
		if err := s.Save(ctx, records); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
