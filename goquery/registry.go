package goquery

import (
	"fmt"
	"sort"

	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/ao3doc"
)

// DefaultSelectors maps each scraped field to the CSS selector locating it
// on a work page.
var DefaultSelectors = map[string]string{
	ao3doc.FieldTitle:         "#workskin .preface.group h2.title.heading",
	ao3doc.FieldAuthor:        "#workskin .preface.group h3.byline.heading",
	ao3doc.FieldPublished:     "dl.work.meta.group dd.published",
	ao3doc.FieldUpdated:       "dl.work.meta.group dd.status",
	ao3doc.FieldLanguage:      "dl.work.meta.group dd.language",
	ao3doc.FieldWords:         "dl.work.meta.group dd.words",
	ao3doc.FieldHits:          "dl.work.meta.group dd.hits",
	ao3doc.FieldTags:          "dl.work.meta.group dd.freeform.tags a.tag",
	ao3doc.FieldCharacters:    "dl.work.meta.group dd.character.tags a.tag",
	ao3doc.FieldWarnings:      "dl.work.meta.group dd.warning.tags a.tag",
	ao3doc.FieldRelationships: "dl.work.meta.group dd.relationship.tags a.tag",
	ao3doc.FieldRatings:       "dl.work.meta.group dd.rating.tags a.tag",
	ao3doc.FieldChapters:      "#chapter_index select#selected_id option",
	ao3doc.FieldBody:          "#chapters .userstuff p",

	ao3doc.FieldFandoms:         "dl.work.meta.group dd.fandom.tags a.tag",
	ao3doc.FieldSummary:         "#workskin .preface .summary blockquote.userstuff",
	ao3doc.FieldChapterProgress: "dl.work.meta.group dd.chapters",
	ao3doc.FieldKudos:           "dl.work.meta.group dd.kudos",
	ao3doc.FieldComments:        "dl.work.meta.group dd.comments",
	ao3doc.FieldBookmarks:       "dl.work.meta.group dd.bookmarks",
}

// defaultRegistry is compiled during package initialization so a broken
// default selector fails the process at start.
var defaultRegistry = MustNewRegistry(nil)

// DefaultRegistry returns the registry compiled from DefaultSelectors.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Query is a compiled selector bound to the field it extracts.
type Query struct {
	Field    string
	Selector string
	matcher  cascadia.Selector
}

// Registry maps field names to compiled queries.
// A Registry is immutable after construction and safe for concurrent use.
type Registry struct {
	queries map[string]Query
}

// NewRegistry compiles DefaultSelectors with overrides applied on top.
// Overrides may only name known fields. Returns EINVALID for an unknown
// field or a selector that does not compile.
func NewRegistry(overrides map[string]string) (*Registry, error) {
	selectors := make(map[string]string, len(DefaultSelectors))
	for field, s := range DefaultSelectors {
		selectors[field] = s
	}
	for field, s := range overrides {
		if _, ok := selectors[field]; !ok {
			return nil, ao3doc.Errorf(ao3doc.EINVALID, "unknown field %q", field)
		}
		selectors[field] = s
	}

	queries := make(map[string]Query, len(selectors))
	for field, s := range selectors {
		m, err := cascadia.Compile(s)
		if err != nil {
			return nil, ao3doc.Errorf(ao3doc.EINVALID, "invalid selector for %s: %v", field, err)
		}
		queries[field] = Query{Field: field, Selector: s, matcher: m}
	}
	return &Registry{queries: queries}, nil
}

// MustNewRegistry is like NewRegistry but panics on error.
func MustNewRegistry(overrides map[string]string) *Registry {
	r, err := NewRegistry(overrides)
	if err != nil {
		panic(err)
	}
	return r
}

// Query returns the compiled query for field.
// It panics if field is not registered; field names are fixed at compile time.
func (r *Registry) Query(field string) Query {
	q, ok := r.queries[field]
	if !ok {
		panic(fmt.Sprintf("goquery: no query registered for field %q", field))
	}
	return q
}

// Fields returns the registered field names in sorted order.
func (r *Registry) Fields() []string {
	fields := make([]string, 0, len(r.queries))
	for f := range r.queries {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}
