package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/harvest"
)

var _ harvest.KnowledgeBase = (*LoggingKnowledgeBase)(nil)

// LoggingKnowledgeBase wraps a KnowledgeBase with write logging.
type LoggingKnowledgeBase struct {
	next   harvest.KnowledgeBase
	logger *slog.Logger
}

// NewLoggingKnowledgeBase creates a new LoggingKnowledgeBase.
func NewLoggingKnowledgeBase(next harvest.KnowledgeBase, logger *slog.Logger) *LoggingKnowledgeBase {
	return &LoggingKnowledgeBase{next: next, logger: logger}
}

// Write delegates to the wrapped knowledge base and logs the record.
func (kb *LoggingKnowledgeBase) Write(ctx context.Context, r *harvest.Record) (err error) {
	defer func(begin time.Time) {
		kb.logger.Debug("knowledge base write",
			"url", r.URL,
			"id", r.ID,
			"category", string(r.Category),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return kb.next.Write(ctx, r)
}
