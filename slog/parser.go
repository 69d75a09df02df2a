package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/ao3doc"
)

// Ensure LoggingParser implements ao3doc.WorkParser.
var _ ao3doc.WorkParser = (*LoggingParser)(nil)

// LoggingParser wraps a WorkParser with logging.
type LoggingParser struct {
	next   ao3doc.WorkParser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next ao3doc.WorkParser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// ParseWork delegates to the wrapped parser and logs the result.
// The failing field is logged for extraction errors.
func (p *LoggingParser) ParseWork(html string) (work *ao3doc.Work, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"bytes", len(html),
			"duration", time.Since(begin),
		}
		if work != nil {
			attrs = append(attrs, "title", work.Title, "paragraphs", len(work.Body))
		}
		if err != nil {
			attrs = append(attrs, "field", ao3doc.ErrorField(err), "err", err)
		}
		p.logger.Info("parse", attrs...)
	}(time.Now())
	return p.next.ParseWork(html)
}
