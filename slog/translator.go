package slog

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/harvest"
)

var _ harvest.Translator = (*LoggingTranslator)(nil)

// LoggingTranslator wraps a Translator with logging.
type LoggingTranslator struct {
	next   harvest.Translator
	logger *slog.Logger
}

// NewLoggingTranslator creates a new LoggingTranslator.
func NewLoggingTranslator(next harvest.Translator, logger *slog.Logger) *LoggingTranslator {
	return &LoggingTranslator{next: next, logger: logger}
}

// Translate delegates to the wrapped translator and logs input and output sizes.
func (t *LoggingTranslator) Translate(ctx context.Context, text string) (out string, err error) {
	defer func(begin time.Time) {
		t.logger.Debug("translate",
			"runes_in", utf8.RuneCountInString(text),
			"runes_out", utf8.RuneCountInString(out),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return t.next.Translate(ctx, text)
}
