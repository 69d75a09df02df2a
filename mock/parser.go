package mock

import "github.com/fwojciec/ao3doc"

var _ ao3doc.WorkParser = (*WorkParser)(nil)

// WorkParser is a mock implementation of ao3doc.WorkParser.
type WorkParser struct {
	ParseWorkFn func(html string) (*ao3doc.Work, error)
}

func (p *WorkParser) ParseWork(html string) (*ao3doc.Work, error) {
	return p.ParseWorkFn(html)
}
