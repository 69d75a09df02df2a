package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/ao3doc"
)

// Ensure Parser implements ao3doc.WorkParser at compile time.
var _ ao3doc.WorkParser = (*Parser)(nil)

// Parser assembles a Work from a work page by running every field
// extractor in a fixed order. The first failing field aborts the parse.
// Parser is safe for concurrent use.
type Parser struct {
	registry  *Registry
	converter ao3doc.Converter
}

// Option configures a Parser.
type Option func(*Parser)

// WithRegistry sets the selectors used to locate fields.
// Defaults to DefaultRegistry().
func WithRegistry(r *Registry) Option {
	return func(p *Parser) {
		p.registry = r
	}
}

// WithConverter sets the converter used to render the summary as Markdown.
// Without a converter the summary is kept as plain text.
func WithConverter(c ao3doc.Converter) Option {
	return func(p *Parser) {
		p.converter = c
	}
}

// NewParser creates a new Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		registry: DefaultRegistry(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseWork parses html and extracts the work.
func (p *Parser) ParseWork(html string) (*ao3doc.Work, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, ao3doc.Errorf(ao3doc.EINVALID, "failed to parse HTML: %v", err)
	}
	return p.ParseDocument(doc)
}

// step extracts one field into the work under construction.
type step struct {
	field string
	run   func(doc *goquery.Document, q Query, w *ao3doc.Work) error
}

// checklist is the extraction order. Mandatory fields come first in the
// order their errors are reported; optional fields follow the body.
var checklist = []step{
	{ao3doc.FieldTitle, func(doc *goquery.Document, q Query, w *ao3doc.Work) (err error) {
		w.Title, err = ExtractText(doc, q)
		return err
	}},
	{ao3doc.FieldAuthor, func(doc *goquery.Document, q Query, w *ao3doc.Work) (err error) {
		w.Author, err = ExtractText(doc, q)
		return err
	}},
	{ao3doc.FieldPublished, func(doc *goquery.Document, q Query, w *ao3doc.Work) (err error) {
		w.Published, err = ExtractText(doc, q)
		return err
	}},
	{ao3doc.FieldUpdated, func(doc *goquery.Document, q Query, w *ao3doc.Work) (err error) {
		w.Updated, err = ExtractText(doc, q)
		return err
	}},
	{ao3doc.FieldLanguage, func(doc *goquery.Document, q Query, w *ao3doc.Work) (err error) {
		w.Language, err = ExtractText(doc, q)
		return err
	}},
	{ao3doc.FieldWords, func(doc *goquery.Document, q Query, w *ao3doc.Work) (err error) {
		w.Words, err = ExtractInt(doc, q)
		return err
	}},
	{ao3doc.FieldHits, func(doc *goquery.Document, q Query, w *ao3doc.Work) (err error) {
		w.Hits, err = ExtractInt(doc, q)
		return err
	}},
	{ao3doc.FieldTags, func(doc *goquery.Document, q Query, w *ao3doc.Work) (err error) {
		w.Tags, err = ExtractTags(doc, q)
		return err
	}},
	{ao3doc.FieldCharacters, func(doc *goquery.Document, q Query, w *ao3doc.Work) (err error) {
		w.Characters, err = ExtractTags(doc, q)
		return err
	}},
	{ao3doc.FieldWarnings, func(doc *goquery.Document, q Query, w *ao3doc.Work) (err error) {
		w.Warnings, err = ExtractTags(doc, q)
		return err
	}},
	{ao3doc.FieldRelationships, func(doc *goquery.Document, q Query, w *ao3doc.Work) (err error) {
		w.Relationships, err = ExtractTags(doc, q)
		return err
	}},
	{ao3doc.FieldRatings, func(doc *goquery.Document, q Query, w *ao3doc.Work) (err error) {
		w.Ratings, err = ExtractTags(doc, q)
		return err
	}},
	{ao3doc.FieldChapters, func(doc *goquery.Document, q Query, w *ao3doc.Work) error {
		w.Chapters = ExtractChapters(doc, q)
		return nil
	}},
	{ao3doc.FieldBody, func(doc *goquery.Document, q Query, w *ao3doc.Work) (err error) {
		w.Body, err = ExtractBody(doc, q)
		return err
	}},
	{ao3doc.FieldFandoms, func(doc *goquery.Document, q Query, w *ao3doc.Work) error {
		w.Fandoms = ExtractOptionalTags(doc, q)
		return nil
	}},
	{ao3doc.FieldChapterProgress, func(doc *goquery.Document, q Query, w *ao3doc.Work) (err error) {
		w.Progress, err = ExtractProgress(doc, q)
		return err
	}},
	{ao3doc.FieldKudos, func(doc *goquery.Document, q Query, w *ao3doc.Work) (err error) {
		w.Kudos, err = ExtractOptionalInt(doc, q)
		return err
	}},
	{ao3doc.FieldComments, func(doc *goquery.Document, q Query, w *ao3doc.Work) (err error) {
		w.Comments, err = ExtractOptionalInt(doc, q)
		return err
	}},
	{ao3doc.FieldBookmarks, func(doc *goquery.Document, q Query, w *ao3doc.Work) (err error) {
		w.Bookmarks, err = ExtractOptionalInt(doc, q)
		return err
	}},
}

// ParseDocument extracts the work from an already parsed document.
// The document is only read.
func (p *Parser) ParseDocument(doc *goquery.Document) (*ao3doc.Work, error) {
	var w ao3doc.Work
	for _, s := range checklist {
		if err := s.run(doc, p.registry.Query(s.field), &w); err != nil {
			return nil, err
		}
	}

	summary, err := p.extractSummary(doc, p.registry.Query(ao3doc.FieldSummary))
	if err != nil {
		return nil, err
	}
	w.Summary = summary

	return &w, nil
}

// extractSummary returns the work summary, converted to Markdown when the
// parser has a converter. A work without a summary yields "".
func (p *Parser) extractSummary(doc *goquery.Document, q Query) (string, error) {
	sel := doc.FindMatcher(q.matcher).First()
	if sel.Length() == 0 {
		return "", nil
	}
	if p.converter == nil {
		return strings.TrimSpace(sel.Text()), nil
	}

	inner, err := sel.Html()
	if err != nil {
		return "", ao3doc.InvalidFormat(q.Field, err)
	}
	if strings.TrimSpace(inner) == "" {
		return "", nil
	}
	md, err := p.converter.Convert(inner)
	if err != nil {
		return "", ao3doc.InvalidFormat(q.Field, err)
	}
	return strings.TrimSpace(md), nil
}
