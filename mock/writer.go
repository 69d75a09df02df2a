package mock

import (
	"context"

	"github.com/fwojciec/ao3doc"
)

var _ ao3doc.WorkWriter = (*WorkWriter)(nil)

// WorkWriter is a mock implementation of ao3doc.WorkWriter.
type WorkWriter struct {
	WriteWorkFn func(ctx context.Context, work *ao3doc.Work) error
}

func (w *WorkWriter) WriteWork(ctx context.Context, work *ao3doc.Work) error {
	return w.WriteWorkFn(ctx, work)
}

var _ ao3doc.WorkEncoder = (*WorkEncoder)(nil)

// WorkEncoder is a mock implementation of ao3doc.WorkEncoder.
type WorkEncoder struct {
	ExtFn    func() string
	EncodeFn func(work *ao3doc.Work) ([]byte, error)
}

func (e *WorkEncoder) Ext() string {
	return e.ExtFn()
}

func (e *WorkEncoder) Encode(work *ao3doc.Work) ([]byte, error) {
	return e.EncodeFn(work)
}
