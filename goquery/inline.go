package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/ao3doc"
	"golang.org/x/net/html"
)

// inlineStyles maps element tags to the span kind they produce.
// Elements not listed here are ignored.
var inlineStyles = map[string]ao3doc.SpanKind{
	"strong": ao3doc.SpanBold,
	"b":      ao3doc.SpanBold,
	"em":     ao3doc.SpanItalic,
	"i":      ao3doc.SpanItalic,
}

// Classify maps one child node of a paragraph to the span it contributes.
// ok is false when the node is ignored: comments, whitespace-only text,
// empty styled elements and any element outside the inline style table.
//
// A styled element contributes all of its descendant text, so nested
// styles collapse into the outermost one.
func Classify(n *html.Node) (span ao3doc.Span, ok bool) {
	switch n.Type {
	case html.TextNode:
		text := strings.TrimSpace(n.Data)
		if text == "" {
			return ao3doc.Span{}, false
		}
		return ao3doc.Text(text), true
	case html.ElementNode:
		kind, styled := inlineStyles[n.Data]
		if !styled {
			return ao3doc.Span{}, false
		}
		text := strings.TrimSpace(goquery.NewDocumentFromNode(n).Text())
		if text == "" {
			return ao3doc.Span{}, false
		}
		return ao3doc.Span{Kind: kind, Text: text}, true
	default:
		return ao3doc.Span{}, false
	}
}

// ParseParagraph returns the spans of the paragraph held by sel, in
// document order. Returns NoItemsFound for a paragraph without any
// extractable text.
func ParseParagraph(sel *goquery.Selection) (ao3doc.Paragraph, error) {
	var para ao3doc.Paragraph
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		if span, ok := Classify(child.Get(0)); ok {
			para = append(para, span)
		}
	})
	if len(para) == 0 {
		return nil, ao3doc.NoItemsFound(ao3doc.FieldParagraph)
	}
	return para, nil
}

// ExtractBody parses every paragraph matching q. The first malformed
// paragraph aborts extraction. Returns NoItemsFound if nothing matches.
func ExtractBody(doc *goquery.Document, q Query) ([]ao3doc.Paragraph, error) {
	var body []ao3doc.Paragraph
	var err error
	doc.FindMatcher(q.matcher).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var para ao3doc.Paragraph
		if para, err = ParseParagraph(sel); err != nil {
			return false
		}
		body = append(body, para)
		return true
	})
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, ao3doc.NoItemsFound(q.Field)
	}
	return body, nil
}
