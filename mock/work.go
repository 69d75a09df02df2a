package mock

import (
	"context"

	"github.com/fwojciec/ao3doc"
)

var _ ao3doc.WorkService = (*WorkService)(nil)

// WorkService is a mock implementation of ao3doc.WorkService.
type WorkService struct {
	SaveWorkFn     func(ctx context.Context, work *ao3doc.Work) error
	FindWorkByIDFn func(ctx context.Context, id string) (*ao3doc.Work, error)
	FindWorksFn    func(ctx context.Context, filter ao3doc.WorkFilter) ([]*ao3doc.WorkRecord, error)
	DeleteWorkFn   func(ctx context.Context, id string) error
}

func (s *WorkService) SaveWork(ctx context.Context, work *ao3doc.Work) error {
	return s.SaveWorkFn(ctx, work)
}

func (s *WorkService) FindWorkByID(ctx context.Context, id string) (*ao3doc.Work, error) {
	return s.FindWorkByIDFn(ctx, id)
}

func (s *WorkService) FindWorks(ctx context.Context, filter ao3doc.WorkFilter) ([]*ao3doc.WorkRecord, error) {
	return s.FindWorksFn(ctx, filter)
}

func (s *WorkService) DeleteWork(ctx context.Context, id string) error {
	return s.DeleteWorkFn(ctx, id)
}
