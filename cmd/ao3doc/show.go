package main

import (
	"fmt"

	"github.com/fwojciec/ao3doc"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	encoder, err := newEncoder(c.Format, deps.BaseURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ao3doc.ErrorMessage(err))
		return err
	}

	work, err := deps.Works.FindWorkByID(deps.Ctx, c.ID)
	if ao3doc.ErrorCode(err) == ao3doc.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: work %q not found. Use 'ao3doc fetch --save %s' first.\n", c.ID, c.ID)
		return err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ao3doc.ErrorMessage(err))
		return err
	}

	out, err := encoder.Encode(work)
	if err != nil {
		return err
	}
	_, err = deps.Stdout.Write(out)
	return err
}
