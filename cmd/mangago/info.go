package main

import (
	"fmt"

	"github.com/jmbacasno/mangago"
)

// Run executes the info command.
func (c *InfoCmd) Run(deps *Dependencies) error {
	list, err := deps.Scraper.List(deps.Ctx, c.Code, nil)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mangago.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, renderSummary(list))

	for _, entry := range list.Entries {
		title := entry.Title
		if title == "" {
			title = "(untitled)"
		}
		if entry.AddDate != "" {
			fmt.Fprintf(deps.Stdout, "  %s  added %s\n", title, entry.AddDate)
			continue
		}
		fmt.Fprintf(deps.Stdout, "  %s\n", title)
	}

	return nil
}
