package ao3doc

import (
	"context"
	"time"
)

// Field names used as registry keys and attached to extraction errors.
const (
	FieldTitle         = "title"
	FieldAuthor        = "author"
	FieldPublished     = "date_published"
	FieldUpdated       = "date_updated"
	FieldLanguage      = "language"
	FieldWords         = "word_count"
	FieldHits          = "hit_count"
	FieldTags          = "tags"
	FieldCharacters    = "characters"
	FieldWarnings      = "warnings"
	FieldRelationships = "relationships"
	FieldRatings       = "ratings"
	FieldChapters      = "chapters"
	FieldBody          = "body"
	FieldParagraph     = "paragraph"

	FieldFandoms         = "fandoms"
	FieldSummary         = "summary"
	FieldChapterProgress = "chapter_progress"
	FieldKudos           = "kudos"
	FieldComments        = "comments"
	FieldBookmarks       = "bookmarks"
)

// Work represents one scraped work: its metadata, classification tags,
// chapter index and body text.
type Work struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Author        string      `json:"author"`
	Published     string      `json:"datePublished"`
	Updated       string      `json:"dateUpdated"`
	Language      string      `json:"language"`
	Words         int         `json:"wordCount"`
	Hits          int         `json:"hitCount"`
	Tags          []Tag       `json:"tags"`
	Characters    []Tag       `json:"characters"`
	Relationships []Tag       `json:"relationships"`
	Warnings      []Tag       `json:"warnings"`
	Ratings       []Tag       `json:"ratings"`
	Chapters      []Chapter   `json:"chapters"`
	Body          []Paragraph `json:"body"`

	Fandoms   []Tag           `json:"fandoms,omitempty"`
	Summary   string          `json:"summary,omitempty"`
	Progress  ChapterProgress `json:"chapterProgress"`
	Kudos     int             `json:"kudos"`
	Comments  int             `json:"comments"`
	Bookmarks int             `json:"bookmarks"`
}

// Validate returns an error if the work contains invalid fields.
func (w *Work) Validate() error {
	if w.ID == "" {
		return Errorf(EINVALID, "work ID required")
	}
	if w.Title == "" {
		return Errorf(EINVALID, "work title required")
	}
	return nil
}

// Tag is a linked classification label such as a character or a warning.
type Tag struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

// Chapter is one entry of a work's chapter index.
type Chapter struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// ChapterProgress holds the "current/total" chapter counts.
// Total is 0 when the author has not fixed the number of chapters.
type ChapterProgress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// Complete reports whether every planned chapter has been posted.
func (p ChapterProgress) Complete() bool {
	return p.Total > 0 && p.Current >= p.Total
}

// SpanKind identifies the inline style of a Span.
type SpanKind string

// Inline styles recognized inside body paragraphs.
const (
	SpanText   SpanKind = "text"
	SpanBold   SpanKind = "bold"
	SpanItalic SpanKind = "italic"
)

// Span is one contiguous run of plain or styled text within a paragraph.
type Span struct {
	Kind SpanKind `json:"kind"`
	Text string   `json:"text"`
}

// Text returns a plain text span.
func Text(s string) Span { return Span{Kind: SpanText, Text: s} }

// Bold returns a bold span.
func Bold(s string) Span { return Span{Kind: SpanBold, Text: s} }

// Italic returns an italic span.
func Italic(s string) Span { return Span{Kind: SpanItalic, Text: s} }

// Paragraph is an ordered sequence of spans.
type Paragraph []Span

// WorkParser turns the HTML of a work page into a Work.
type WorkParser interface {
	// ParseWork extracts every field of the work from html.
	// The first failing field is returned as an *Error; no partial
	// Work is ever returned.
	ParseWork(html string) (*Work, error)
}

// WorkService represents a service for persisting scraped works.
type WorkService interface {
	// SaveWork stores a work, replacing any stored copy with the same ID.
	SaveWork(ctx context.Context, work *Work) error

	// FindWorkByID retrieves a stored work by its archive ID.
	// Returns ENOTFOUND if the work has not been saved.
	FindWorkByID(ctx context.Context, id string) (*Work, error)

	// FindWorks retrieves stored works matching the filter.
	FindWorks(ctx context.Context, filter WorkFilter) ([]*WorkRecord, error)

	// DeleteWork removes a stored work.
	// Returns ENOTFOUND if the work has not been saved.
	DeleteWork(ctx context.Context, id string) error
}

// WorkRecord is the stored summary of a saved work.
type WorkRecord struct {
	ID          string    `json:"id"`
	WorkID      string    `json:"workId"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Words       int       `json:"wordCount"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// WorkFilter represents a filter for FindWorks.
type WorkFilter struct {
	Author *string `json:"author"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// WorkWriter writes works to an export destination.
type WorkWriter interface {
	WriteWork(ctx context.Context, work *Work) error
}

// WorkEncoder renders a work into an export format.
type WorkEncoder interface {
	// Ext returns the file extension for the format, including the dot.
	Ext() string
	Encode(work *Work) ([]byte, error)
}
