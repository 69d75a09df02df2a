package ao3doc

import (
	"strconv"
	"strings"
	"unicode"
)

// Markdown renders the paragraph as a single line of Markdown.
// Spans are separated by a space unless the next span opens with punctuation.
func (p Paragraph) Markdown() string {
	var sb strings.Builder
	for i, span := range p {
		if i > 0 && !startsWithPunct(span.Text) {
			sb.WriteByte(' ')
		}
		switch span.Kind {
		case SpanBold:
			sb.WriteString("**" + span.Text + "**")
		case SpanItalic:
			sb.WriteString("*" + span.Text + "*")
		default:
			sb.WriteString(span.Text)
		}
	}
	return sb.String()
}

func startsWithPunct(s string) bool {
	for _, r := range s {
		return unicode.IsPunct(r) && r != '(' && r != '"' && r != '\''
	}
	return false
}

// FormatWork formats a work as a Markdown document: a heading, a metadata
// list, the summary when present, then the body paragraphs separated by
// blank lines.
func FormatWork(w *Work) string {
	var sb strings.Builder
	sb.WriteString("# " + w.Title + "\n\n")
	sb.WriteString("by " + w.Author + "\n\n")

	writeItem := func(label, value string) {
		if value == "" {
			return
		}
		sb.WriteString("- " + label + ": " + value + "\n")
	}
	writeItem("Rating", tagNames(w.Ratings))
	writeItem("Warnings", tagNames(w.Warnings))
	writeItem("Fandoms", tagNames(w.Fandoms))
	writeItem("Relationships", tagNames(w.Relationships))
	writeItem("Characters", tagNames(w.Characters))
	writeItem("Tags", tagNames(w.Tags))
	writeItem("Language", w.Language)
	writeItem("Published", w.Published)
	writeItem("Updated", w.Updated)
	writeItem("Words", strconv.Itoa(w.Words))
	writeItem("Chapters", formatProgress(w.Progress))
	writeItem("Hits", strconv.Itoa(w.Hits))

	if w.Summary != "" {
		sb.WriteString("\n## Summary\n\n" + w.Summary + "\n")
	}

	parts := make([]string, 0, len(w.Body))
	for _, p := range w.Body {
		parts = append(parts, p.Markdown())
	}
	sb.WriteString("\n" + strings.Join(parts, "\n\n") + "\n")

	return sb.String()
}

func tagNames(tags []Tag) string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}

func formatProgress(p ChapterProgress) string {
	if p.Current == 0 {
		return ""
	}
	total := "?"
	if p.Total > 0 {
		total = strconv.Itoa(p.Total)
	}
	return strconv.Itoa(p.Current) + "/" + total
}
