package scrape_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jmbacasno/mangago"
	"github.com/jmbacasno/mangago/goquery"
	"github.com/jmbacasno/mangago/mock"
	"github.com/jmbacasno/mangago/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listPage1 = `<!DOCTYPE html>
<html>
<body>
<div class="w-title"><h1>Favorites</h1></div>
<div class="user-profile"><h2>reader</h2><p>Create: 2021-03-15</p></div>
<div class="pagination" total="2"></div>
<div class="manga note-and-order">
	<div class="comment"><a href="https://www.mangago.me/read-manga/alpha/">Alpha</a></div>
</div>
<div class="manga note-and-order">
	<div class="comment"><a href="https://www.mangago.me/read-manga/beta/">Beta</a></div>
</div>
</body>
</html>`

const listPage2 = `<!DOCTYPE html>
<html>
<body>
<div class="manga note-and-order">
	<div class="comment"><a href="https://www.mangago.me/read-manga/gamma/">Gamma</a></div>
</div>
</body>
</html>`

func TestScraperList(t *testing.T) {
	t.Parallel()

	t.Run("assembles a two page list in order", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				switch url {
				case "https://www.mangago.me/home/mangalist/12345/?filter=&page=1":
					return listPage1, nil
				case "https://www.mangago.me/home/mangalist/12345/?filter=&page=2":
					return listPage2, nil
				}
				return "", errors.New("unexpected url: " + url)
			},
		}
		s := &scrape.Scraper{Fetcher: fetcher, Parser: goquery.NewParser()}

		list, err := s.List(context.Background(), "12345", nil)

		require.NoError(t, err)
		assert.Equal(t, "Favorites", list.Title)
		assert.Equal(t, 2, list.Pages)
		require.Len(t, list.Entries, 3)
		assert.Equal(t, "Alpha", list.Entries[0].Title)
		assert.Equal(t, "Beta", list.Entries[1].Title)
		assert.Equal(t, "Gamma", list.Entries[2].Title)
	})

	t.Run("keeps page one entries when a later page fails", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if url == "https://www.mangago.me/home/mangalist/12345/?filter=&page=1" {
					return listPage1, nil
				}
				return "", errors.New("connection reset")
			},
		}
		s := &scrape.Scraper{Fetcher: fetcher, Parser: goquery.NewParser()}

		var failures []scrape.ProgressEvent
		progress := func(event scrape.ProgressEvent) {
			if event.Type == scrape.ProgressFailed {
				failures = append(failures, event)
			}
		}

		list, err := s.List(context.Background(), "12345", progress)

		require.NoError(t, err)
		assert.Equal(t, 2, list.Pages)
		require.Len(t, list.Entries, 2)
		assert.Equal(t, "Alpha", list.Entries[0].Title)
		require.Len(t, failures, 1)
		assert.Contains(t, failures[0].Error.Error(), "connection reset")
	})

	t.Run("fails when the first page cannot be fetched", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", errors.New("browser crashed")
			},
		}
		s := &scrape.Scraper{Fetcher: fetcher, Parser: goquery.NewParser()}

		_, err := s.List(context.Background(), "12345", nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "fetching first page")
	})

	t.Run("propagates hard header errors", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return `<div class="user-profile"><p>no dates here</p></div>`, nil
			},
		}
		s := &scrape.Scraper{Fetcher: fetcher, Parser: goquery.NewParser()}

		_, err := s.List(context.Background(), "12345", nil)

		require.Error(t, err)
		assert.Equal(t, mangago.EUNPROCESSABLE, mangago.ErrorCode(err))
	})
}

func TestScraperHydrate(t *testing.T) {
	t.Parallel()

	t.Run("attaches records per entry and isolates failures", func(t *testing.T) {
		t.Parallel()

		list := &mangago.MangaList{Entries: []*mangago.MangaListEntry{
			{Title: "Alpha", URL: "https://example.com/alpha"},
			{Title: "Beta", URL: "https://example.com/beta"},
			{Title: "NoURL"},
			{Title: "Gamma", URL: "https://example.com/gamma"},
		}}

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if url == "https://example.com/beta" {
					return "", errors.New("timeout")
				}
				return "<html></html>", nil
			},
		}
		parser := &mock.Parser{
			ParseMangaFn: func(_ string, url string) (*mangago.Manga, error) {
				return &mangago.Manga{Title: url, URL: url}, nil
			},
		}
		s := &scrape.Scraper{Fetcher: fetcher, Parser: parser}

		result := s.Hydrate(context.Background(), list, nil)

		assert.Equal(t, 2, result.Hydrated)
		assert.Equal(t, 1, result.Failed)
		assert.Equal(t, 1, result.Skipped)

		require.NotNil(t, list.Entries[0].Manga)
		assert.Equal(t, "https://example.com/alpha", list.Entries[0].Manga.URL)
		assert.Nil(t, list.Entries[1].Manga)
		assert.Nil(t, list.Entries[2].Manga)
		require.NotNil(t, list.Entries[3].Manga)
		assert.Equal(t, "https://example.com/gamma", list.Entries[3].Manga.URL)
	})

	t.Run("honors the concurrency bound", func(t *testing.T) {
		t.Parallel()

		entries := make([]*mangago.MangaListEntry, 8)
		for i := range entries {
			entries[i] = &mangago.MangaListEntry{URL: "https://example.com/m"}
		}
		list := &mangago.MangaList{Entries: entries}

		var inFlight, peak atomic.Int64
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				n := inFlight.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				inFlight.Add(-1)
				return "<html></html>", nil
			},
		}
		parser := &mock.Parser{
			ParseMangaFn: func(_ string, url string) (*mangago.Manga, error) {
				return &mangago.Manga{URL: url}, nil
			},
		}
		s := &scrape.Scraper{Fetcher: fetcher, Parser: parser, Concurrency: 2}

		result := s.Hydrate(context.Background(), list, nil)

		assert.Equal(t, 8, result.Hydrated)
		assert.LessOrEqual(t, peak.Load(), int64(2))
	})

	t.Run("progress events are serialized", func(t *testing.T) {
		t.Parallel()

		entries := make([]*mangago.MangaListEntry, 6)
		for i := range entries {
			entries[i] = &mangago.MangaListEntry{URL: "https://example.com/m"}
		}
		list := &mangago.MangaList{Entries: entries}

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "<html></html>", nil
			},
		}
		parser := &mock.Parser{
			ParseMangaFn: func(_ string, url string) (*mangago.Manga, error) {
				return &mangago.Manga{URL: url}, nil
			},
		}
		s := &scrape.Scraper{Fetcher: fetcher, Parser: parser, Concurrency: 3}

		var mu sync.Mutex
		var completed int
		s.Hydrate(context.Background(), list, func(event scrape.ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			if event.Type == scrape.ProgressCompleted {
				completed++
			}
		})

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 6, completed)
	})

	t.Run("per fetch timeout fails only the slow entry", func(t *testing.T) {
		t.Parallel()

		list := &mangago.MangaList{Entries: []*mangago.MangaListEntry{
			{Title: "Slow", URL: "https://example.com/slow"},
			{Title: "Fast", URL: "https://example.com/fast"},
		}}

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				if url == "https://example.com/slow" {
					<-ctx.Done()
					return "", ctx.Err()
				}
				return "<html></html>", nil
			},
		}
		parser := &mock.Parser{
			ParseMangaFn: func(_ string, url string) (*mangago.Manga, error) {
				return &mangago.Manga{URL: url}, nil
			},
		}
		s := &scrape.Scraper{Fetcher: fetcher, Parser: parser, Timeout: 20 * time.Millisecond}

		result := s.Hydrate(context.Background(), list, nil)

		assert.Equal(t, 1, result.Hydrated)
		assert.Equal(t, 1, result.Failed)
		assert.Nil(t, list.Entries[0].Manga)
		require.NotNil(t, list.Entries[1].Manga)
	})
}

func TestScraperPageURL(t *testing.T) {
	t.Parallel()

	s := &scrape.Scraper{}

	assert.Equal(t,
		"https://www.mangago.me/home/mangalist/abc123/?filter=&page=7",
		s.PageURL("abc123", 7),
	)
}
