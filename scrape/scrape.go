// Package scrape coordinates fetching, parsing and storing of works.
package scrape

import (
	"context"
	"errors"

	"github.com/fwojciec/ao3doc"
	"github.com/fwojciec/ao3doc/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of works fetched at once by ScrapeAll.
const DefaultConcurrency = 4

// Scraper turns work IDs into parsed works.
type Scraper struct {
	Fetcher ao3doc.Fetcher
	Parser  ao3doc.WorkParser
	BaseURL string

	// Optional sinks used by ScrapeAll.
	Works  ao3doc.WorkService
	Writer ao3doc.WorkWriter

	Concurrency int
}

// Result holds the outcome of a ScrapeAll call.
type Result struct {
	// Works holds successfully scraped works in input order.
	Works  []*ao3doc.Work
	Failed int
}

// ProgressEvent reports progress during a batch scrape.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	ID        string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

// Scrape fetches and parses a single work.
//
// A not-found page yields EINVALIDID whatever the transport reported.
// Other transport failures are returned as ENETWORK.
func (s *Scraper) Scrape(ctx context.Context, id string) (*ao3doc.Work, error) {
	if id == "" {
		return nil, ao3doc.InvalidWorkID(id)
	}

	baseURL := s.BaseURL
	if baseURL == "" {
		baseURL = ao3doc.DefaultBaseURL
	}

	html, err := s.Fetcher.Fetch(ctx, ao3doc.WorkURL(baseURL, id))
	if checkErr := ao3doc.CheckPage(id, html); checkErr != nil {
		return nil, checkErr
	}
	if err != nil {
		var e *ao3doc.Error
		if errors.As(err, &e) {
			return nil, err
		}
		return nil, ao3doc.Network(err)
	}

	work, err := s.Parser.ParseWork(html)
	if err != nil {
		return nil, err
	}
	work.ID = id
	return work, nil
}

type scrapeResult struct {
	position int
	id       string
	work     *ao3doc.Work
	err      error
}

// ScrapeAll scrapes each distinct ID, saving and writing results when
// Works and Writer are set. A failed work is reported through progress
// and counted in the result; it does not stop the batch.
// The returned error is non-nil only when ctx is done.
func (s *Scraper) ScrapeAll(ctx context.Context, ids []string, progress ProgressFunc) (*Result, error) {
	ids = bloom.Dedupe(ids)

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(ids)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan scrapeResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, id := range ids {
			g.Go(func() error {
				work, err := s.process(gctx, id)
				resultCh <- scrapeResult{position: i, id: id, work: work, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed int
	works := make([]*ao3doc.Work, total)
	result := &Result{}
	for r := range resultCh {
		completed++
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: completed,
			Total:     total,
			ID:        r.id,
		}
		if r.err != nil {
			result.Failed++
			event.Type = ProgressFailed
			event.Error = r.err
		} else {
			works[r.position] = r.work
		}
		if progress != nil {
			progress(event)
		}
	}

	for _, w := range works {
		if w != nil {
			result.Works = append(result.Works, w)
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return result, ctx.Err()
}

func (s *Scraper) process(ctx context.Context, id string) (*ao3doc.Work, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	work, err := s.Scrape(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.Works != nil {
		if err := s.Works.SaveWork(ctx, work); err != nil {
			return nil, err
		}
	}
	if s.Writer != nil {
		if err := s.Writer.WriteWork(ctx, work); err != nil {
			return nil, err
		}
	}
	return work, nil
}
