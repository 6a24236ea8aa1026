package mock

import "github.com/jmbacasno/mangago"

var _ mangago.Parser = (*Parser)(nil)

// Parser is a mock implementation of mangago.Parser.
type Parser struct {
	ParseListInfoFn    func(html string, url string) (*mangago.MangaList, error)
	ParseListEntriesFn func(html string) ([]*mangago.MangaListEntry, error)
	ParseMangaFn       func(html string, url string) (*mangago.Manga, error)
}

func (p *Parser) ParseListInfo(html string, url string) (*mangago.MangaList, error) {
	return p.ParseListInfoFn(html, url)
}

func (p *Parser) ParseListEntries(html string) ([]*mangago.MangaListEntry, error) {
	return p.ParseListEntriesFn(html)
}

func (p *Parser) ParseManga(html string, url string) (*mangago.Manga, error) {
	return p.ParseMangaFn(html, url)
}
