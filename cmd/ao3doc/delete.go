package main

import (
	"fmt"

	"github.com/fwojciec/ao3doc"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return ao3doc.Errorf(ao3doc.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Works.DeleteWork(deps.Ctx, c.ID); ao3doc.ErrorCode(err) == ao3doc.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: work %q not found. Use 'ao3doc list' to see saved works.\n", c.ID)
		return err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ao3doc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted work %q\n", c.ID)
	return nil
}
