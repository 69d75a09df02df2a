package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/ao3doc"
	"github.com/fwojciec/ao3doc/fs"
	"github.com/fwojciec/ao3doc/scrape"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	encoder, err := newEncoder(c.Format, deps.BaseURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ao3doc.ErrorMessage(err))
		return err
	}

	scraper := deps.Scraper
	if c.Save {
		scraper.Works = deps.Works
	}

	var store *fs.FileStore
	if c.Out != "" {
		store = fs.NewFileStore(filepath.Dir(c.Out), filepath.Base(c.Out), encoder)
		scraper.Writer = store
	}

	result, err := scraper.ScrapeAll(deps.Ctx, c.IDs, func(e scrape.ProgressEvent) {
		if e.Type == scrape.ProgressFailed {
			fmt.Fprintf(deps.Stderr, "error: work %s: %s\n", e.ID, ao3doc.ErrorMessage(e.Error))
		}
	})
	if err != nil {
		if store != nil {
			_ = store.Abort()
		}
		return err
	}

	if store != nil {
		if err := store.Commit(); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Fprintf(deps.Stdout, "Wrote %d works to %s\n", len(result.Works), c.Out)
	} else {
		for i, w := range result.Works {
			out, err := encoder.Encode(w)
			if err != nil {
				return err
			}
			if i > 0 {
				fmt.Fprintln(deps.Stdout)
			}
			deps.Stdout.Write(out)
		}
	}

	if result.Failed > 0 {
		return fmt.Errorf("%d of %d works failed", result.Failed, result.Failed+len(result.Works))
	}
	return nil
}
