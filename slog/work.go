package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ao3doc"
)

// Ensure LoggingWorkService implements ao3doc.WorkService.
var _ ao3doc.WorkService = (*LoggingWorkService)(nil)

// LoggingWorkService wraps a WorkService with logging.
type LoggingWorkService struct {
	next   ao3doc.WorkService
	logger *slog.Logger
}

// NewLoggingWorkService creates a new LoggingWorkService.
func NewLoggingWorkService(next ao3doc.WorkService, logger *slog.Logger) *LoggingWorkService {
	return &LoggingWorkService{next: next, logger: logger}
}

func (s *LoggingWorkService) SaveWork(ctx context.Context, work *ao3doc.Work) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save work",
			"id", work.ID,
			"words", work.Words,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveWork(ctx, work)
}

func (s *LoggingWorkService) FindWorkByID(ctx context.Context, id string) (work *ao3doc.Work, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find work",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindWorkByID(ctx, id)
}

func (s *LoggingWorkService) FindWorks(ctx context.Context, filter ao3doc.WorkFilter) (records []*ao3doc.WorkRecord, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find works",
			"count", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindWorks(ctx, filter)
}

func (s *LoggingWorkService) DeleteWork(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete work",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteWork(ctx, id)
}
