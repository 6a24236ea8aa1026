// Package mangago exports Mangago.me reading lists as typed records.
// It fetches the paginated list pages and per-manga detail pages with a
// headless browser, extracts and normalizes the loosely structured markup
// into MangaList/MangaListEntry/Manga values, and writes them out as JSON
// or CSV.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, fs/).
package mangago
