// Package etree renders works as XML documents.
package etree

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/fwojciec/ao3doc"
)

var _ ao3doc.WorkEncoder = (*Encoder)(nil)

// Encoder implements ao3doc.WorkEncoder for XML.
type Encoder struct {
	// Indent is the number of spaces per level. Zero writes compact XML.
	Indent int
}

// NewEncoder creates an Encoder that indents with two spaces.
func NewEncoder() *Encoder {
	return &Encoder{Indent: 2}
}

// Ext returns the file extension for XML output.
func (e *Encoder) Ext() string { return ".xml" }

// Encode renders the work as an XML document rooted at <work>.
func (e *Encoder) Encode(work *ao3doc.Work) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("work")
	root.CreateAttr("id", work.ID)

	root.CreateElement("title").SetText(work.Title)
	root.CreateElement("author").SetText(work.Author)

	meta := root.CreateElement("meta")
	meta.CreateElement("published").SetText(work.Published)
	meta.CreateElement("updated").SetText(work.Updated)
	meta.CreateElement("language").SetText(work.Language)
	meta.CreateElement("words").SetText(strconv.Itoa(work.Words))
	meta.CreateElement("hits").SetText(strconv.Itoa(work.Hits))
	meta.CreateElement("kudos").SetText(strconv.Itoa(work.Kudos))
	meta.CreateElement("comments").SetText(strconv.Itoa(work.Comments))
	meta.CreateElement("bookmarks").SetText(strconv.Itoa(work.Bookmarks))

	progress := meta.CreateElement("progress")
	progress.CreateAttr("current", strconv.Itoa(work.Progress.Current))
	total := "?"
	if work.Progress.Total > 0 {
		total = strconv.Itoa(work.Progress.Total)
	}
	progress.CreateAttr("total", total)

	writeTags(root, "ratings", work.Ratings)
	writeTags(root, "warnings", work.Warnings)
	writeTags(root, "fandoms", work.Fandoms)
	writeTags(root, "relationships", work.Relationships)
	writeTags(root, "characters", work.Characters)
	writeTags(root, "tags", work.Tags)

	if work.Summary != "" {
		root.CreateElement("summary").SetText(work.Summary)
	}

	chapters := root.CreateElement("chapters")
	for _, c := range work.Chapters {
		el := chapters.CreateElement("chapter")
		el.CreateAttr("id", c.ID)
		el.SetText(c.Name)
	}

	body := root.CreateElement("body")
	for _, p := range work.Body {
		para := body.CreateElement("p")
		for _, span := range p {
			name, err := spanElement(span.Kind)
			if err != nil {
				return nil, err
			}
			para.CreateElement(name).SetText(span.Text)
		}
	}

	if e.Indent > 0 {
		doc.Indent(e.Indent)
	}
	return doc.WriteToBytes()
}

func writeTags(parent *etree.Element, name string, tags []ao3doc.Tag) {
	if len(tags) == 0 {
		return
	}
	list := parent.CreateElement(name)
	for _, t := range tags {
		el := list.CreateElement("tag")
		el.CreateAttr("href", t.Link)
		el.SetText(t.Name)
	}
}

func spanElement(kind ao3doc.SpanKind) (string, error) {
	switch kind {
	case ao3doc.SpanText:
		return "text", nil
	case ao3doc.SpanBold:
		return "b", nil
	case ao3doc.SpanItalic:
		return "i", nil
	}
	return "", ao3doc.Errorf(ao3doc.EINVALID, "unknown span kind %q", kind)
}

// Format returns the XML for a work as a string.
func Format(work *ao3doc.Work) (string, error) {
	b, err := NewEncoder().Encode(work)
	if err != nil {
		return "", fmt.Errorf("failed to encode work %s: %w", work.ID, err)
	}
	return string(b), nil
}
