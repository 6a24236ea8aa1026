package mangago

import "context"

// MangaList represents one reading list: its metadata plus the ordered
// entries collected across all of its pages.
type MangaList struct {
	Title        string            `json:"title"`
	URL          string            `json:"url"`
	Creator      string            `json:"creator"`
	CreationDate string            `json:"creation_date"`
	LastUpdate   string            `json:"last_update"`
	Description  string            `json:"description"`
	Tags         []string          `json:"tags"`
	Pages        int               `json:"pages"`
	Entries      []*MangaListEntry `json:"entries"`
}

// MangaListEntry is a single list entry: the stub parsed from a listing
// page, plus the full Manga record once the detail page has been fetched.
//
// Manga is nil until hydration and is written at most once, only by the
// task hydrating this specific entry.
type MangaListEntry struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Comment string `json:"comment"`
	AddDate string `json:"add_date"`
	Manga   *Manga `json:"manga"`
}

// Parser extracts typed records from fetched list and detail page HTML.
// Implementations must be pure: same document in, same record out, no
// network access, no retained state.
type Parser interface {
	// ParseListInfo extracts list-level metadata from a page 1 document.
	// A missing creation date or a malformed pagination count is a hard
	// error (EUNPROCESSABLE); every other field degrades to its zero value.
	ParseListInfo(html string, url string) (*MangaList, error)

	// ParseListEntries extracts the ordered entry stubs from one listing
	// page. Entries with no extractable fields are still returned in
	// position so the result mirrors the source listing.
	ParseListEntries(html string) ([]*MangaListEntry, error)

	// ParseManga extracts the full record from one detail page document.
	ParseManga(html string, url string) (*Manga, error)
}

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// content.
type Fetcher interface {
	// Fetch navigates to the URL, waits for the page to render, and
	// returns the rendered HTML. The context controls timeout and
	// cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases browser resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// Limiter throttles outbound page fetches.
type Limiter interface {
	// Wait blocks until the rate limit allows another request.
	// Returns an error if the context is canceled before then.
	Wait(ctx context.Context) error
}

// ListWriter persists a fully assembled list to some destination and
// returns the location it was written to.
type ListWriter interface {
	WriteList(ctx context.Context, list *MangaList) (path string, err error)
}
