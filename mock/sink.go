package mock

import (
	"context"

	"github.com/fwojciec/harvest"
)

var _ harvest.Translator = (*Translator)(nil)

// Translator is a mock implementation of harvest.Translator.
type Translator struct {
	TranslateFn func(ctx context.Context, text string) (string, error)
}

func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	return t.TranslateFn(ctx, text)
}

var _ harvest.RecordService = (*RecordService)(nil)

// RecordService is a mock implementation of harvest.RecordService.
type RecordService struct {
	WriteFn           func(ctx context.Context, r *harvest.Record) error
	FindRecordByURLFn func(ctx context.Context, url string) (*harvest.Record, error)
	FindRecordsFn     func(ctx context.Context, filter harvest.RecordFilter) ([]*harvest.Record, error)
}

func (s *RecordService) Write(ctx context.Context, r *harvest.Record) error {
	return s.WriteFn(ctx, r)
}

func (s *RecordService) FindRecordByURL(ctx context.Context, url string) (*harvest.Record, error) {
	return s.FindRecordByURLFn(ctx, url)
}

func (s *RecordService) FindRecords(ctx context.Context, filter harvest.RecordFilter) ([]*harvest.Record, error) {
	return s.FindRecordsFn(ctx, filter)
}

var _ harvest.Archive = (*Archive)(nil)

// Archive is a mock implementation of harvest.Archive.
type Archive struct {
	SaveFn func(ctx context.Context, records []*harvest.Record) error
	LoadFn func(ctx context.Context) ([]*harvest.Record, error)
}

func (a *Archive) Save(ctx context.Context, records []*harvest.Record) error {
	return a.SaveFn(ctx, records)
}

func (a *Archive) Load(ctx context.Context) ([]*harvest.Record, error) {
	return a.LoadFn(ctx)
}
