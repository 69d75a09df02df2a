package mock

import "github.com/fwojciec/ao3doc"

var _ ao3doc.Converter = (*Converter)(nil)

// Converter is a mock implementation of ao3doc.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
