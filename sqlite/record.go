package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/bloom"
	"github.com/google/uuid"
)

// Seen-URL filter sizing.
const (
	expectedRecords   = 10000
	falsePositiveRate = 0.01
)

var recordColumns = []string{"id", "url", "title", "category", "body", "author", "content_hash", "crawl_time"}

// Compile-time interface verification.
var _ harvest.RecordService = (*KnowledgeBase)(nil)

// KnowledgeBase implements harvest.RecordService using SQLite.
// Each URL is stored at most once; later writes for it are ignored.
type KnowledgeBase struct {
	db   *DB
	seen *bloom.Filter
	now  func() time.Time
}

// NewKnowledgeBase creates a new KnowledgeBase.
func NewKnowledgeBase(db *DB) *KnowledgeBase {
	return &KnowledgeBase{
		db:   db,
		seen: bloom.NewFilter(expectedRecords, falsePositiveRate),
		now:  time.Now,
	}
}

// Warm loads the URLs of stored records into the seen filter so that
// repeated runs skip the insert for known articles.
func (kb *KnowledgeBase) Warm(ctx context.Context) error {
	query, args, err := sq.Select("url").From("records").ToSql()
	if err != nil {
		return err
	}
	rows, err := kb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return err
		}
		kb.seen.Add(url)
	}
	return rows.Err()
}

// Write stores the record with its body truncated for the knowledge base.
// An ID is generated when missing. If the URL is already stored, r.ID is
// set to the stored record's ID and nothing is written.
func (kb *KnowledgeBase) Write(ctx context.Context, r *harvest.Record) error {
	if err := r.Validate(); err != nil {
		return err
	}

	// A negative filter answer is definite, so only positives hit the table.
	if kb.seen.Test(r.URL) {
		existing, err := kb.FindRecordByURL(ctx, r.URL)
		if err == nil {
			r.ID = existing.ID
			return nil
		}
		if harvest.ErrorCode(err) != harvest.ENOTFOUND {
			return err
		}
	}

	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	crawledAt := r.CrawledAt
	if crawledAt.IsZero() {
		crawledAt = kb.now()
	}

	query, args, err := sq.Insert("records").
		Columns(recordColumns...).
		Values(r.ID, r.URL, r.Title, string(r.Category), r.KnowledgeBody(), r.Author, r.ContentHash,
			formatTime(crawledAt)).
		Suffix("ON CONFLICT(url) DO NOTHING").
		ToSql()
	if err != nil {
		return err
	}
	res, err := kb.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	kb.seen.Add(r.URL)

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		existing, err := kb.FindRecordByURL(ctx, r.URL)
		if err != nil {
			return err
		}
		r.ID = existing.ID
	}
	return nil
}

// FindRecordByURL retrieves a record by URL.
// The returned Content holds the stored, possibly truncated, body.
func (kb *KnowledgeBase) FindRecordByURL(ctx context.Context, url string) (*harvest.Record, error) {
	query, args, err := sq.Select(recordColumns...).
		From("records").
		Where(sq.Eq{"url": url}).
		ToSql()
	if err != nil {
		return nil, err
	}

	rec, err := scanRecord(kb.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, harvest.Errorf(harvest.ENOTFOUND, "record not found")
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// FindRecords retrieves records matching the filter, newest first.
func (kb *KnowledgeBase) FindRecords(ctx context.Context, filter harvest.RecordFilter) ([]*harvest.Record, error) {
	builder := sq.Select(recordColumns...).
		From("records").
		OrderBy("crawl_time DESC", "rowid DESC")

	if filter.Category != nil {
		builder = builder.Where(sq.Eq{"category": string(*filter.Category)})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		// SQLite requires LIMIT whenever OFFSET is present.
		if filter.Limit <= 0 {
			builder = builder.Limit(math.MaxInt64)
		}
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := kb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*harvest.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func scanRecord(s scanner) (*harvest.Record, error) {
	var rec harvest.Record
	var category, crawlTime string

	if err := s.Scan(&rec.ID, &rec.URL, &rec.Title, &category, &rec.Content, &rec.Author,
		&rec.ContentHash, &crawlTime); err != nil {
		return nil, err
	}
	rec.Category = harvest.Category(category)

	var err error
	rec.CrawledAt, err = parseTime("crawl_time", crawlTime)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
