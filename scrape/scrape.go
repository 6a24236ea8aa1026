// Package scrape orchestrates the assembly of a full reading list.
// It sequences page acquisition (external, via mangago.Fetcher) with
// parsing (pure, via mangago.Parser) through three phases: header,
// pagination, and per-entry detail hydration.
package scrape

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jmbacasno/mangago"
	"golang.org/x/sync/errgroup"
)

// DefaultBaseURL is the listing site all page URLs are built against.
const DefaultBaseURL = "https://www.mangago.me"

// DefaultConcurrency bounds the hydration worker pool when the caller does
// not configure one.
const DefaultConcurrency = 4

// Scraper drives a Fetcher and Parser across all pages of a reading list.
type Scraper struct {
	Fetcher mangago.Fetcher
	Parser  mangago.Parser

	// Limiter, when set, throttles every page and detail fetch.
	Limiter mangago.Limiter

	// BaseURL overrides DefaultBaseURL, mainly for tests.
	BaseURL string

	// Timeout, when positive, bounds each individual fetch. Exceeding it
	// fails that page or entry, never the whole run.
	Timeout time.Duration

	// Concurrency bounds the hydration worker pool.
	Concurrency int
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports progress as pages or detail documents are processed.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressFunc is a callback for reporting progress. It may be invoked from
// multiple hydration workers, but never concurrently.
type ProgressFunc func(event ProgressEvent)

// HydrateResult summarizes a hydration pass.
type HydrateResult struct {
	Hydrated int
	Failed   int
	Skipped  int
}

// PageURL returns the listing URL for one page of a reading list.
func (s *Scraper) PageURL(code string, page int) string {
	base := s.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return fmt.Sprintf("%s/home/mangalist/%s/?filter=&page=%d", base, code, page)
}

// List fetches and parses every page of the reading list identified by
// code, returning the list with its entries in page order then in-page
// document order.
//
// Page 1 supplies the header and the first batch of entries; failing to
// obtain or parse it fails the whole call. From page 2 on, a failed fetch
// stops advancing but keeps everything already parsed: the caller gets a
// partial list and a ProgressFailed event, not an error.
func (s *Scraper) List(ctx context.Context, code string, progress ProgressFunc) (*mangago.MangaList, error) {
	firstURL := s.PageURL(code, 1)

	html, err := s.fetch(ctx, firstURL)
	if err != nil {
		return nil, fmt.Errorf("fetching first page: %w", err)
	}

	list, err := s.Parser.ParseListInfo(html, firstURL)
	if err != nil {
		return nil, err
	}

	entries, err := s.Parser.ParseListEntries(html)
	if err != nil {
		return nil, err
	}
	list.Entries = entries

	emit(progress, ProgressEvent{Type: ProgressStarted, Completed: 1, Total: list.Pages, URL: firstURL})

	for page := 2; page <= list.Pages; page++ {
		pageURL := s.PageURL(code, page)

		html, err := s.fetch(ctx, pageURL)
		if err != nil {
			emit(progress, ProgressEvent{Type: ProgressFailed, Completed: page - 1, Total: list.Pages, URL: pageURL, Error: err})
			break
		}

		entries, err := s.Parser.ParseListEntries(html)
		if err != nil {
			emit(progress, ProgressEvent{Type: ProgressFailed, Completed: page - 1, Total: list.Pages, URL: pageURL, Error: err})
			break
		}

		list.Entries = append(list.Entries, entries...)
		emit(progress, ProgressEvent{Type: ProgressCompleted, Completed: page, Total: list.Pages, URL: pageURL})
	}

	emit(progress, ProgressEvent{Type: ProgressFinished, Completed: len(list.Entries), Total: list.Pages})

	return list, nil
}

// Hydrate fetches every entry's detail page and attaches the parsed Manga
// record. Entries are pre-allocated with known indices, so each worker
// writes only its own entry's Manga slot and no shared accumulator exists.
//
// Failures are scoped per entry: a failed fetch or parse leaves that
// entry's Manga nil and does not stop the remaining workers.
func (s *Scraper) Hydrate(ctx context.Context, list *mangago.MangaList, progress ProgressFunc) *HydrateResult {
	total := len(list.Entries)
	emit(progress, ProgressEvent{Type: ProgressStarted, Total: total})

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var (
		mu        sync.Mutex
		completed atomic.Int64
		result    HydrateResult
	)

	report := func(event ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		emit(progress, event)
	}

	var g errgroup.Group
	g.SetLimit(concurrency)

	for _, entry := range list.Entries {
		if entry.URL == "" {
			result.Skipped++
			done := int(completed.Add(1))
			report(ProgressEvent{Type: ProgressFailed, Completed: done, Total: total,
				Error: mangago.Errorf(mangago.EINVALID, "entry %q has no detail URL", entry.Title)})
			continue
		}

		entry := entry
		g.Go(func() error {
			manga, err := s.hydrateEntry(ctx, entry.URL)
			done := int(completed.Add(1))
			if err != nil {
				mu.Lock()
				result.Failed++
				mu.Unlock()
				report(ProgressEvent{Type: ProgressFailed, Completed: done, Total: total, URL: entry.URL, Error: err})
				return nil
			}

			// Single writer for this slot: the worker hydrating this entry.
			entry.Manga = manga

			mu.Lock()
			result.Hydrated++
			mu.Unlock()
			report(ProgressEvent{Type: ProgressCompleted, Completed: done, Total: total, URL: entry.URL})
			return nil
		})
	}

	_ = g.Wait()

	emit(progress, ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})

	return &result
}

func (s *Scraper) hydrateEntry(ctx context.Context, url string) (*mangago.Manga, error) {
	html, err := s.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return s.Parser.ParseManga(html, url)
}

// fetch applies the rate limit and the per-fetch timeout around one
// Fetcher call.
func (s *Scraper) fetch(ctx context.Context, url string) (string, error) {
	if s.Limiter != nil {
		if err := s.Limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	return s.Fetcher.Fetch(ctx, url)
}

func emit(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}
