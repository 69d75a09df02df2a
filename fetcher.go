package ao3doc

import (
	"context"
	"net/url"
	"strings"
)

// DefaultBaseURL is the archive the scraper talks to unless configured otherwise.
const DefaultBaseURL = "https://archiveofourown.org"

// NotFoundMarker is present in the body of the archive's error page,
// which is served for unknown or restricted works.
const NotFoundMarker = "system errors error-404 region"

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch returns the page body for url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// WorkURL returns the page URL of a work. Adult-content confirmation is
// skipped so the work body is served directly.
func WorkURL(baseURL, id string) string {
	return strings.TrimSuffix(baseURL, "/") + "/works/" + url.PathEscape(id) + "?view_adult=true"
}

// CheckPage returns InvalidWorkID if html is the archive's not-found page.
// The check looks only at the body, so it holds whatever the HTTP status was.
func CheckPage(id, html string) error {
	if strings.Contains(html, NotFoundMarker) {
		return InvalidWorkID(id)
	}
	return nil
}
