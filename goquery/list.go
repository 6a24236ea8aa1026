package goquery

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jmbacasno/mangago"
)

// Ensure Parser implements mangago.Parser at compile time.
var _ mangago.Parser = (*Parser)(nil)

var (
	creationDateRE = regexp.MustCompile(`Create: (\d{4}-\d{2}-\d{2})`)
	lastUpdateRE   = regexp.MustCompile(`Last update: (\d{4}-\d{2}-\d{2})`)
)

// Parser extracts mangago records from fetched HTML documents.
// Parsing is pure; the only injected dependency is the clock used to
// resolve relative add-date text, so tests can pin the anchor.
type Parser struct {
	now func() time.Time
}

// NewParser creates a Parser that resolves relative add-dates against the
// system clock.
func NewParser() *Parser {
	return &Parser{now: time.Now}
}

// NewParserAt creates a Parser with a fixed "now" anchor.
func NewParserAt(now time.Time) *Parser {
	return &Parser{now: func() time.Time { return now }}
}

// ParseListInfo extracts list-level metadata from a page 1 document.
//
// Every field degrades to its zero value when its source markup is missing,
// with two exceptions that fail the whole document: a profile block whose
// text carries no "Create:" date, and a pagination block whose total
// attribute is not a positive integer. The creation date is load-bearing
// for list identity; a malformed page count would silently truncate the
// list.
func (p *Parser) ParseListInfo(html string, url string) (*mangago.MangaList, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, mangago.Errorf(mangago.EINVALID, "failed to parse HTML: %v", err)
	}

	list := &mangago.MangaList{URL: url, Pages: 1}

	list.Title = strippedText(doc.Find("div.w-title h1").First(), "")

	profile := doc.Find("div.user-profile").First()
	if profile.Length() > 0 {
		list.Creator = strippedText(profile.Find("h2").First(), "")

		if info := strippedText(profile, ""); info != "" {
			m := creationDateRE.FindStringSubmatch(info)
			if m == nil {
				return nil, mangago.Errorf(mangago.EUNPROCESSABLE, "list creation date not found in profile block")
			}
			list.CreationDate = m[1]

			if m := lastUpdateRE.FindStringSubmatch(info); m != nil {
				list.LastUpdate = m[1]
			}
		}
	}

	description := doc.Find("div.description").First()
	if description.Length() > 0 {
		list.Description = normalizeNBSP(strippedText(description, " "))

		// Tags live in the content block structurally following the
		// description, not in a globally unique container.
		nextSibling(description, "div.content").Find("a.tag").Each(func(_ int, a *goquery.Selection) {
			list.Tags = append(list.Tags, strippedText(a, ""))
		})
	}

	if pagination := doc.Find("div.pagination").First(); pagination.Length() > 0 {
		total, _ := pagination.Attr("total")
		n, err := strconv.Atoi(strings.TrimSpace(total))
		if err != nil || n < 1 {
			return nil, mangago.Errorf(mangago.EUNPROCESSABLE, "pagination block has invalid total %q", total)
		}
		list.Pages = n
	}

	return list, nil
}

// ParseListEntries extracts the ordered entry stubs from one listing page.
//
// An entry container missing every extractable field is still appended with
// zero-value fields so positions keep mirroring the source listing.
func (p *Parser) ParseListEntries(html string) ([]*mangago.MangaListEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, mangago.Errorf(mangago.EINVALID, "failed to parse HTML: %v", err)
	}

	var entries []*mangago.MangaListEntry

	doc.Find("div.manga.note-and-order").Each(func(_ int, container *goquery.Selection) {
		entry := &mangago.MangaListEntry{}

		if link := container.Find("div.comment").First().Find("a").First(); link.Length() > 0 {
			entry.Title = strippedText(link, "")
			entry.URL, _ = link.Attr("href")
		}

		// Comments keep explicit line breaks; they are the one free-text
		// field where newlines are preserved rather than space-joined.
		if quote := container.Find("blockquote").First(); quote.Length() > 0 {
			entry.Comment = strippedText(quote, "\n")
		}

		if footer := container.Find("div.mangalist_item_ft.clear").First(); footer.Length() > 0 {
			left := footer.Find(`.left[style="color:#BDBDBD"]`).First()
			if dateText := strippedText(left, ""); dateText != "" {
				entry.AddDate = mangago.NormalizeTimestamp(dateText, p.now())
			}
		}

		entries = append(entries, entry)
	})

	return entries, nil
}
