package goquery

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jmbacasno/mangago"
)

var (
	releasedYearRE = regexp.MustCompile(`(\d{4}) released.`)
	votesRE        = regexp.MustCompile(`(\d+)`)
)

// detailRules maps recognized details-table labels to their extraction
// rules. Rules are evaluated in this order and the first label contained in
// a row's label text wins; unknown labels are ignored.
var detailRules = []struct {
	label   string
	extract func(row, label *goquery.Selection, m *mangago.Manga)
}{
	{"Status:", extractStatus},
	{"Author:", extractAuthor},
	{"Genre(s):", extractGenres},
	{"Alternative:", extractAlternatives},
}

// ParseManga extracts the full record from one detail page document.
// Every field is optional: unmatched markup leaves the field at its zero
// value. Only the title has a non-empty fallback, because downstream export
// assumes a printable title.
func (p *Parser) ParseManga(html string, url string) (*mangago.Manga, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, mangago.Errorf(mangago.EINVALID, "failed to parse HTML: %v", err)
	}

	manga := &mangago.Manga{URL: url}

	manga.Title = strippedText(doc.Find("h1").First(), "")
	if manga.Title == "" {
		manga.Title = mangago.UnknownTitle
	}

	if img := doc.Find("div.left.cover").First().Find("img").First(); img.Length() > 0 {
		if src, ok := img.Attr("src"); ok && src != "" {
			manga.CoverURL = src
		}
	}

	doc.Find("div.manga_right table").First().Find("tr").Each(func(_ int, row *goquery.Selection) {
		label := row.Find("label").First()
		if label.Length() == 0 {
			return
		}
		labelText := strippedText(label, "")
		for _, rule := range detailRules {
			if strings.Contains(labelText, rule.label) {
				rule.extract(row, label, manga)
				return
			}
		}
	})

	if rating := doc.Find("span.rating_num").First(); rating.Length() > 0 {
		if text := strippedText(rating, ""); text != "" {
			if v, err := strconv.ParseFloat(text, 64); err == nil {
				rounded := math.Round(v*10) / 10
				manga.Rating = &rounded
			}
		}

		// Votes sit in the link right after the rating span; without a
		// rating there is nothing to anchor the lookup on.
		if votes := nextSibling(rating, "a"); votes.Length() > 0 {
			if m := votesRE.FindStringSubmatch(strippedText(votes, "")); m != nil {
				n, _ := strconv.Atoi(m[1])
				manga.Votes = &n
			}
		}
	}

	if summary := doc.Find("div.manga_summary").First(); summary.Length() > 0 {
		removeSubtree(summary, "div.expand")
		manga.Summary = strippedText(summary, "")
	}

	return manga, nil
}

func extractStatus(_, label *goquery.Selection, m *mangago.Manga) {
	m.Status = strippedText(nextSibling(label, "span"), "")
}

func extractAuthor(row, _ *goquery.Selection, m *mangago.Manga) {
	m.Author = strippedText(row.Find("a").First(), "")

	if text := strippedText(row, ""); text != "" {
		if match := releasedYearRE.FindStringSubmatch(text); match != nil {
			year, _ := strconv.Atoi(match[1])
			m.ReleasedYear = &year
		}
	}
}

func extractGenres(row, _ *goquery.Selection, m *mangago.Manga) {
	row.Find("a").Each(func(_ int, a *goquery.Selection) {
		m.Genres = append(m.Genres, strippedText(a, ""))
	})
}

func extractAlternatives(row, _ *goquery.Selection, m *mangago.Manga) {
	text := strings.ReplaceAll(strippedText(row, ""), "Alternative:", "")
	if text == "" {
		return
	}
	for _, alt := range strings.Split(text, "; ") {
		m.Alternatives = append(m.Alternatives, strings.TrimSpace(alt))
	}
}
