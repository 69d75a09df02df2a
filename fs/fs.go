// Package fs writes scraped works to the local filesystem.
package fs

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/ao3doc"
	"gopkg.in/yaml.v3"
)

// WorkPath returns the file name for a work with the given extension.
// Example: 12345, ".md" → 12345.md
func WorkPath(id, ext string) (string, error) {
	if id == "" {
		return "", ao3doc.Errorf(ao3doc.EINVALID, "work ID required")
	}
	if strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return "", fmt.Errorf("path traversal detected: %q", id)
	}
	return id + ext, nil
}

type frontmatter struct {
	ID       string   `yaml:"id"`
	Source   string   `yaml:"source,omitempty"`
	Title    string   `yaml:"title"`
	Author   string   `yaml:"author"`
	Rating   string   `yaml:"rating,omitempty"`
	Fandoms  []string `yaml:"fandoms,omitempty"`
	Words    int      `yaml:"words"`
	Complete bool     `yaml:"complete"`
	Fetched  string   `yaml:"fetched"`
}

// MarkdownEncoder renders works as Markdown with YAML frontmatter.
type MarkdownEncoder struct {
	// BaseURL is used for the source link. Empty omits it.
	BaseURL string
	// Now returns the fetch date. Defaults to time.Now.
	Now func() time.Time
}

// Ext returns the file extension for Markdown output.
func (e MarkdownEncoder) Ext() string { return ".md" }

// Encode renders the work.
func (e MarkdownEncoder) Encode(work *ao3doc.Work) ([]byte, error) {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}

	fm := frontmatter{
		ID:       work.ID,
		Title:    work.Title,
		Author:   work.Author,
		Words:    work.Words,
		Complete: work.Progress.Complete(),
		Fetched:  now().Format("2006-01-02"),
	}
	if e.BaseURL != "" {
		fm.Source = ao3doc.WorkURL(e.BaseURL, work.ID)
	}
	if len(work.Ratings) > 0 {
		fm.Rating = work.Ratings[0].Name
	}
	for _, f := range work.Fandoms {
		fm.Fandoms = append(fm.Fandoms, f.Name)
	}

	var b bytes.Buffer
	b.WriteString("---\n")
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	b.WriteString("---\n\n")
	b.WriteString(ao3doc.FormatWork(work))
	return b.Bytes(), nil
}
