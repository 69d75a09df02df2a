// Package goquery implements work page extraction on top of goquery and
// compiled cascadia selectors.
package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/ao3doc"
)

// ExtractText returns the trimmed text of the first node matching q.
// Returns ElementNotFound if nothing matches.
func ExtractText(doc *goquery.Document, q Query) (string, error) {
	sel := doc.FindMatcher(q.matcher).First()
	if sel.Length() == 0 {
		return "", ao3doc.ElementNotFound(q.Field)
	}
	return strings.TrimSpace(sel.Text()), nil
}

// ExtractInt parses the first node matching q as a non-negative integer.
// Thousands separators are stripped before parsing. Returns InvalidFormat
// both when the text does not parse and when nothing matches; in the latter
// case the error wraps ao3doc.ErrNoMatch.
func ExtractInt(doc *goquery.Document, q Query) (int, error) {
	sel := doc.FindMatcher(q.matcher).First()
	if sel.Length() == 0 {
		return 0, ao3doc.InvalidFormat(q.Field, ao3doc.ErrNoMatch)
	}
	return parseCount(q.Field, sel.Text())
}

// ExtractOptionalInt is like ExtractInt but returns 0 when nothing matches.
// The archive omits some counters (kudos, bookmarks) while they are zero.
func ExtractOptionalInt(doc *goquery.Document, q Query) (int, error) {
	sel := doc.FindMatcher(q.matcher).First()
	if sel.Length() == 0 {
		return 0, nil
	}
	return parseCount(q.Field, sel.Text())
}

// ExtractTags returns one Tag per node matching q, in document order.
// Nodes without an href are skipped. Returns NoItemsFound if no tag remains.
func ExtractTags(doc *goquery.Document, q Query) ([]ao3doc.Tag, error) {
	tags := collectTags(doc, q)
	if len(tags) == 0 {
		return nil, ao3doc.NoItemsFound(q.Field)
	}
	return tags, nil
}

// ExtractOptionalTags is like ExtractTags but an empty result is valid.
func ExtractOptionalTags(doc *goquery.Document, q Query) []ao3doc.Tag {
	return collectTags(doc, q)
}

func collectTags(doc *goquery.Document, q Query) []ao3doc.Tag {
	var tags []ao3doc.Tag
	doc.FindMatcher(q.matcher).Each(func(_ int, sel *goquery.Selection) {
		link, exists := sel.Attr("href")
		if !exists || link == "" {
			return
		}
		tags = append(tags, ao3doc.Tag{
			Name: strings.TrimSpace(sel.Text()),
			Link: link,
		})
	})
	return tags
}

// ExtractChapters returns one Chapter per option node matching q, in
// document order. Options without a value are skipped. A work with a single
// chapter has no chapter menu, so an empty result is not an error.
func ExtractChapters(doc *goquery.Document, q Query) []ao3doc.Chapter {
	chapters := []ao3doc.Chapter{}
	doc.FindMatcher(q.matcher).Each(func(_ int, sel *goquery.Selection) {
		id, exists := sel.Attr("value")
		if !exists {
			return
		}
		chapters = append(chapters, ao3doc.Chapter{
			Name: strings.TrimSpace(sel.Text()),
			ID:   id,
		})
	})
	return chapters
}

// ExtractProgress parses the "current/total" chapter counter. A total of
// "?" yields 0. A missing counter yields the zero value.
func ExtractProgress(doc *goquery.Document, q Query) (ao3doc.ChapterProgress, error) {
	sel := doc.FindMatcher(q.matcher).First()
	if sel.Length() == 0 {
		return ao3doc.ChapterProgress{}, nil
	}

	current, total, ok := strings.Cut(strings.TrimSpace(sel.Text()), "/")
	if !ok {
		return ao3doc.ChapterProgress{}, ao3doc.InvalidFormat(q.Field, nil)
	}

	var p ao3doc.ChapterProgress
	var err error
	if p.Current, err = parseCount(q.Field, current); err != nil {
		return ao3doc.ChapterProgress{}, err
	}
	if strings.TrimSpace(total) == "?" {
		return p, nil
	}
	if p.Total, err = parseCount(q.Field, total); err != nil {
		return ao3doc.ChapterProgress{}, err
	}
	return p, nil
}

// parseCount strips thousands separators and parses a non-negative integer.
func parseCount(field, raw string) (int, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	n, err := strconv.ParseUint(s, 10, strconv.IntSize-1)
	if err != nil {
		return 0, ao3doc.InvalidFormat(field, err)
	}
	return int(n), nil
}
