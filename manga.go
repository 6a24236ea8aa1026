package mangago

// UnknownTitle is the placeholder used when a detail page carries no title.
// Every export path assumes a non-empty manga title, so absence falls back
// to this fixed value instead of the usual empty string.
const UnknownTitle = "Unknown Title"

// Manga represents a fully parsed detail page for a single title.
// It is created once by the detail parser and never mutated afterwards.
//
// Fields whose source text is absent or unparseable keep their zero value:
// empty string, nil slice, or nil pointer. Only Title falls back to
// UnknownTitle.
type Manga struct {
	Title        string   `json:"title"`
	URL          string   `json:"url"`
	CoverURL     string   `json:"cover_url"`
	Author       string   `json:"author"`
	Genres       []string `json:"genres"`
	Alternatives []string `json:"alternatives"`
	Summary      string   `json:"summary"`
	Status       string   `json:"status"`
	ReleasedYear *int     `json:"released_year"`
	Rating       *float64 `json:"rating"`
	Votes        *int     `json:"votes"`
}
