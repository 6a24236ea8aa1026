// Package goquery implements the mangago parsers on top of
// PuerkitoBio/goquery. All query operations are total: an unmatched
// selector yields an empty selection or empty string, never an error.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// strippedText returns the text content of a selection with each text node
// trimmed of surrounding whitespace, empty nodes dropped, and the remainder
// joined with sep. Nodes are visited in document order.
//
// This mirrors the whitespace handling the listing site's markup was
// written against: decorative indentation between tags never leaks into
// extracted values, while newlines inside a single text node survive.
func strippedText(sel *goquery.Selection, sep string) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	var parts []string
	for _, n := range sel.Nodes {
		collectText(n, &parts)
	}
	return strings.Join(parts, sep)
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			*parts = append(*parts, t)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// nextSibling returns the first following sibling of sel that matches the
// selector. An empty selection is returned when there is none.
func nextSibling(sel *goquery.Selection, selector string) *goquery.Selection {
	return sel.NextAllFiltered(selector).First()
}

// removeSubtree excises every node matching the selector from sel before
// further text extraction. Used to strip decorative inline controls, such
// as an "expand" toggle, so their captions never leak into extracted prose.
func removeSubtree(sel *goquery.Selection, selector string) {
	sel.Find(selector).Remove()
}

// normalizeNBSP replaces non-breaking spaces with ordinary spaces.
func normalizeNBSP(s string) string {
	return strings.ReplaceAll(s, " ", " ")
}
