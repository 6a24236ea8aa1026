package main

import (
	"fmt"

	"github.com/jmbacasno/mangago"
	"github.com/jmbacasno/mangago/scrape"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	pageProgress := func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Fetching %d page(s)...\n", event.Total)
		case scrape.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  page fetch failed, keeping %d page(s): %v\n", event.Completed, event.Error)
		}
	}

	list, err := deps.Scraper.List(deps.Ctx, c.Code, pageProgress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mangago.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, renderSummary(list))

	if len(list.Entries) == 0 {
		fmt.Fprintln(deps.Stdout, "Reading list is empty. Nothing to export.")
		return nil
	}

	if !c.SkipDetails {
		detailProgress := func(event scrape.ProgressEvent) {
			switch event.Type {
			case scrape.ProgressStarted:
				fmt.Fprintf(deps.Stdout, "Fetching %d detail page(s)...\n", event.Total)
			case scrape.ProgressFailed:
				fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
			}
		}

		result := deps.Scraper.Hydrate(deps.Ctx, list, detailProgress)
		fmt.Fprintf(deps.Stdout, "Fetched details for %d of %d entries\n", result.Hydrated, len(list.Entries))
	}

	path, err := deps.Writer.WriteList(deps.Ctx, list)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mangago.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %s\n", path)
	return nil
}
