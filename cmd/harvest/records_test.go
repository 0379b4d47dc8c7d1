package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/harvest"
	main "github.com/fwojciec/harvest/cmd/harvest"
	"github.com/fwojciec/harvest/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordsCmd(t *testing.T) {
	t.Parallel()

	t.Run("lists records with filter", func(t *testing.T) {
		t.Parallel()

		var got harvest.RecordFilter
		svc := &mock.RecordService{
			FindRecordsFn: func(ctx context.Context, filter harvest.RecordFilter) ([]*harvest.Record, error) {
				got = filter
				return []*harvest.Record{
					{Title: "First", URL: "https://example.com/post/first", Category: harvest.CategoryTechnology, Content: "abc"},
					{Title: "Second", URL: "https://example.com/post/second", Category: harvest.CategoryTechnology},
				}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Records: svc}

		err := (&main.RecordsCmd{Category: "技术", Limit: 5, Offset: 2}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, got.Category)
		assert.Equal(t, harvest.CategoryTechnology, *got.Category)
		assert.Equal(t, 5, got.Limit)
		assert.Equal(t, 2, got.Offset)
		assert.Contains(t, stdout.String(), "## Article: First\nURL: https://example.com/post/first\nCategory: 技术\nContent length: 3")
		assert.Contains(t, stdout.String(), "## Article: Second")
	})

	t.Run("no category filter when unset", func(t *testing.T) {
		t.Parallel()

		var got harvest.RecordFilter
		svc := &mock.RecordService{
			FindRecordsFn: func(ctx context.Context, filter harvest.RecordFilter) ([]*harvest.Record, error) {
				got = filter
				return nil, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Records: svc}

		err := (&main.RecordsCmd{Limit: 20}).Run(deps)

		require.NoError(t, err)
		assert.Nil(t, got.Category)
		assert.Contains(t, stdout.String(), "No records found")
	})

	t.Run("reports lookup errors", func(t *testing.T) {
		t.Parallel()

		svc := &mock.RecordService{
			FindRecordsFn: func(ctx context.Context, filter harvest.RecordFilter) ([]*harvest.Record, error) {
				return nil, errors.New("database locked")
			},
		}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Records: svc}

		err := (&main.RecordsCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("requires a knowledge base", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

		err := (&main.RecordsCmd{}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})
}
