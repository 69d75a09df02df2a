package scrape_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/fwojciec/ao3doc"
	"github.com/fwojciec/ao3doc/goquery"
	ao3http "github.com/fwojciec/ao3doc/http"
	"github.com/fwojciec/ao3doc/mock"
	"github.com/fwojciec/ao3doc/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const notFoundPage = `<html><body><div class="system errors error-404 region">Error 404</div></body></html>`

func staticFetcher(html string, err error) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return html, err
		},
	}
}

func titleParser() *mock.WorkParser {
	return &mock.WorkParser{
		ParseWorkFn: func(html string) (*ao3doc.Work, error) {
			return &ao3doc.Work{Title: html}, nil
		},
	}
}

func TestScraper_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("fetches work URL and sets ID", func(t *testing.T) {
		t.Parallel()

		var fetched string
		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					fetched = url
					return "page", nil
				},
			},
			Parser:  titleParser(),
			BaseURL: "https://ao3.test",
		}

		work, err := s.Scrape(context.Background(), "123")

		require.NoError(t, err)
		assert.Equal(t, "https://ao3.test/works/123?view_adult=true", fetched)
		assert.Equal(t, "123", work.ID)
		assert.Equal(t, "page", work.Title)
	})

	t.Run("uses default base URL", func(t *testing.T) {
		t.Parallel()

		var fetched string
		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					fetched = url
					return "page", nil
				},
			},
			Parser: titleParser(),
		}

		_, err := s.Scrape(context.Background(), "1")

		require.NoError(t, err)
		assert.Equal(t, ao3doc.WorkURL(ao3doc.DefaultBaseURL, "1"), fetched)
	})

	t.Run("not found page is invalid work ID", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{Fetcher: staticFetcher(notFoundPage, nil), Parser: titleParser()}

		_, err := s.Scrape(context.Background(), "999")

		assert.Equal(t, ao3doc.EINVALIDID, ao3doc.ErrorCode(err))
	})

	t.Run("not found page wins over transport error", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher: staticFetcher(notFoundPage, errors.New("HTTP 404")),
			Parser:  titleParser(),
		}

		_, err := s.Scrape(context.Background(), "999")

		assert.Equal(t, ao3doc.EINVALIDID, ao3doc.ErrorCode(err))
	})

	t.Run("wraps transport error as network", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("connection refused")
		s := &scrape.Scraper{Fetcher: staticFetcher("", cause), Parser: titleParser()}

		_, err := s.Scrape(context.Background(), "1")

		assert.Equal(t, ao3doc.ENETWORK, ao3doc.ErrorCode(err))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("keeps application errors from fetcher", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher: staticFetcher("", ao3doc.Errorf(ao3doc.EINVALID, "bad url")),
			Parser:  titleParser(),
		}

		_, err := s.Scrape(context.Background(), "1")

		assert.Equal(t, ao3doc.EINVALID, ao3doc.ErrorCode(err))
	})

	t.Run("returns parse error", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher: staticFetcher("page", nil),
			Parser: &mock.WorkParser{
				ParseWorkFn: func(html string) (*ao3doc.Work, error) {
					return nil, ao3doc.ElementNotFound(ao3doc.FieldTitle)
				},
			},
		}

		work, err := s.Scrape(context.Background(), "1")

		assert.Nil(t, work)
		assert.Equal(t, ao3doc.ENOTFOUND, ao3doc.ErrorCode(err))
		assert.Equal(t, ao3doc.FieldTitle, ao3doc.ErrorField(err))
	})

	t.Run("rejects empty ID", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{Fetcher: staticFetcher("page", nil), Parser: titleParser()}

		_, err := s.Scrape(context.Background(), "")

		assert.Equal(t, ao3doc.EINVALIDID, ao3doc.ErrorCode(err))
	})
}

func TestScraper_Scrape_overHTTP(t *testing.T) {
	t.Parallel()

	fixture, err := os.ReadFile("../goquery/testdata/work.html")
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/works/1":
			w.Write(fixture)
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(notFoundPage))
		}
	}))
	t.Cleanup(srv.Close)

	s := &scrape.Scraper{
		Fetcher: ao3http.NewFetcher(),
		Parser:  goquery.NewParser(),
		BaseURL: srv.URL,
	}

	t.Run("parses served work", func(t *testing.T) {
		t.Parallel()

		work, err := s.Scrape(context.Background(), "1")

		require.NoError(t, err)
		assert.Equal(t, "1", work.ID)
		assert.Equal(t, "The Long Way Home", work.Title)
		assert.Equal(t, 12345, work.Words)
	})

	t.Run("404 status with error page is invalid work ID", func(t *testing.T) {
		t.Parallel()

		_, err := s.Scrape(context.Background(), "2")

		assert.Equal(t, ao3doc.EINVALIDID, ao3doc.ErrorCode(err))
	})
}

func TestScraper_ScrapeAll(t *testing.T) {
	t.Parallel()

	t.Run("scrapes distinct IDs in input order", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var fetches int
		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					mu.Lock()
					fetches++
					mu.Unlock()
					return url, nil
				},
			},
			Parser:      titleParser(),
			BaseURL:     "https://ao3.test",
			Concurrency: 2,
		}

		result, err := s.ScrapeAll(context.Background(), []string{"3", "1", "3", "2"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 3, fetches)
		assert.Zero(t, result.Failed)
		var ids []string
		for _, w := range result.Works {
			ids = append(ids, w.ID)
		}
		assert.Equal(t, []string{"3", "1", "2"}, ids)
	})

	t.Run("reports failures without stopping", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					if url == ao3doc.WorkURL(ao3doc.DefaultBaseURL, "bad") {
						return notFoundPage, nil
					}
					return "ok", nil
				},
			},
			Parser: titleParser(),
		}

		var events []scrape.ProgressEvent
		result, err := s.ScrapeAll(context.Background(), []string{"1", "bad", "2"}, func(e scrape.ProgressEvent) {
			events = append(events, e)
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Failed)
		assert.Len(t, result.Works, 2)

		require.Len(t, events, 5)
		assert.Equal(t, scrape.ProgressStarted, events[0].Type)
		assert.Equal(t, 3, events[0].Total)
		assert.Equal(t, scrape.ProgressFinished, events[4].Type)

		var failed []scrape.ProgressEvent
		for _, e := range events[1:4] {
			if e.Type == scrape.ProgressFailed {
				failed = append(failed, e)
			}
		}
		require.Len(t, failed, 1)
		assert.Equal(t, "bad", failed[0].ID)
		assert.Equal(t, ao3doc.EINVALIDID, ao3doc.ErrorCode(failed[0].Error))
	})

	t.Run("saves and writes scraped works", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		saved := map[string]bool{}
		written := map[string]bool{}
		s := &scrape.Scraper{
			Fetcher: staticFetcher("ok", nil),
			Parser:  titleParser(),
			Works: &mock.WorkService{
				SaveWorkFn: func(ctx context.Context, work *ao3doc.Work) error {
					mu.Lock()
					defer mu.Unlock()
					saved[work.ID] = true
					return nil
				},
			},
			Writer: &mock.WorkWriter{
				WriteWorkFn: func(ctx context.Context, work *ao3doc.Work) error {
					mu.Lock()
					defer mu.Unlock()
					written[work.ID] = true
					return nil
				},
			},
		}

		_, err := s.ScrapeAll(context.Background(), []string{"1", "2"}, nil)

		require.NoError(t, err)
		assert.Equal(t, map[string]bool{"1": true, "2": true}, saved)
		assert.Equal(t, map[string]bool{"1": true, "2": true}, written)
	})

	t.Run("counts save failure", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher: staticFetcher("ok", nil),
			Parser:  titleParser(),
			Works: &mock.WorkService{
				SaveWorkFn: func(ctx context.Context, work *ao3doc.Work) error {
					return errors.New("disk full")
				},
			},
		}

		result, err := s.ScrapeAll(context.Background(), []string{"1"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Failed)
		assert.Empty(t, result.Works)
	})

	t.Run("returns context error when cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		s := &scrape.Scraper{Fetcher: staticFetcher("ok", nil), Parser: titleParser()}

		result, err := s.ScrapeAll(ctx, []string{"1", "2"}, nil)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 2, result.Failed)
	})
}
