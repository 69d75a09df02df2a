package main

import (
	"encoding/json"

	"github.com/fwojciec/ao3doc"
	"github.com/fwojciec/ao3doc/etree"
	"github.com/fwojciec/ao3doc/fs"
)

// jsonEncoder renders works as indented JSON.
type jsonEncoder struct{}

func (jsonEncoder) Ext() string { return ".json" }

func (jsonEncoder) Encode(work *ao3doc.Work) ([]byte, error) {
	b, err := json.MarshalIndent(work, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// newEncoder returns the encoder for an output format name.
func newEncoder(format, baseURL string) (ao3doc.WorkEncoder, error) {
	switch format {
	case "", "markdown":
		return fs.MarkdownEncoder{BaseURL: baseURL}, nil
	case "json":
		return jsonEncoder{}, nil
	case "xml":
		return etree.NewEncoder(), nil
	}
	return nil, ao3doc.Errorf(ao3doc.EINVALID, "unknown format %q", format)
}
