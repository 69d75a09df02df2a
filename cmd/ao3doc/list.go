package main

import (
	"fmt"

	"github.com/fwojciec/ao3doc"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := ao3doc.WorkFilter{Limit: c.Limit}
	if c.Author != "" {
		filter.Author = &c.Author
	}

	records, err := deps.Works.FindWorks(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ao3doc.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No works found. Use 'ao3doc fetch --save <id>' to add one.")
		return nil
	}

	for _, r := range records {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %d words  %s\n",
			r.WorkID, r.Title, r.Author, r.Words, r.FetchedAt.Format("2006-01-02"))
	}

	return nil
}
