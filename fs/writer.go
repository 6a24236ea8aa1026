package fs

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jmbacasno/mangago"
)

// Ensure both writers implement mangago.ListWriter at compile time.
var (
	_ mangago.ListWriter = (*JSONWriter)(nil)
	_ mangago.ListWriter = (*CSVWriter)(nil)
)

// JSONWriter writes a list as an indented JSON file, one nested object
// mirroring the MangaList record. Newlines inside comments and summaries
// are preserved verbatim.
type JSONWriter struct {
	dir string
	now func() time.Time
}

// NewJSONWriter creates a JSONWriter that writes into dir.
func NewJSONWriter(dir string) *JSONWriter {
	return &JSONWriter{dir: dir, now: time.Now}
}

// NewJSONWriterAt is like NewJSONWriter with a fixed clock for
// deterministic filenames.
func NewJSONWriterAt(dir string, now time.Time) *JSONWriter {
	return &JSONWriter{dir: dir, now: func() time.Time { return now }}
}

// WriteList writes the list and returns the path of the created file.
func (w *JSONWriter) WriteList(ctx context.Context, list *mangago.MangaList) (string, error) {
	if list == nil {
		return "", mangago.Errorf(mangago.EINVALID, "list required")
	}

	path, f, err := createExportFile(w.dir, list.Title, "json", w.now())
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(list); err != nil {
		return "", err
	}

	return path, nil
}

// csvColumns is the flattened per-entry column layout. List-valued fields
// are joined with "; " and newlines are replaced with spaces, so one entry
// is always one physical row.
var csvColumns = []string{
	"manga_title",
	"manga_url",
	"manga_cover_url",
	"manga_author",
	"manga_genres",
	"manga_alternatives",
	"manga_summary",
	"manga_status",
	"manga_released_year",
	"manga_rating",
	"manga_votes",
	"entry_comment",
	"entry_add_date",
}

// CSVWriter writes a list as a CSV file with one row per entry.
type CSVWriter struct {
	dir string
	now func() time.Time
}

// NewCSVWriter creates a CSVWriter that writes into dir.
func NewCSVWriter(dir string) *CSVWriter {
	return &CSVWriter{dir: dir, now: time.Now}
}

// NewCSVWriterAt is like NewCSVWriter with a fixed clock for deterministic
// filenames.
func NewCSVWriterAt(dir string, now time.Time) *CSVWriter {
	return &CSVWriter{dir: dir, now: func() time.Time { return now }}
}

// WriteList writes the list and returns the path of the created file.
func (w *CSVWriter) WriteList(ctx context.Context, list *mangago.MangaList) (string, error) {
	if list == nil {
		return "", mangago.Errorf(mangago.EINVALID, "list required")
	}

	path, f, err := createExportFile(w.dir, list.Title, "csv", w.now())
	if err != nil {
		return "", err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(csvColumns); err != nil {
		return "", err
	}

	for _, entry := range list.Entries {
		if err := cw.Write(entryRow(entry)); err != nil {
			return "", err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", err
	}

	return path, nil
}

func entryRow(entry *mangago.MangaListEntry) []string {
	row := make([]string, 0, len(csvColumns))

	if m := entry.Manga; m != nil {
		row = append(row,
			m.Title,
			m.URL,
			m.CoverURL,
			m.Author,
			strings.Join(m.Genres, "; "),
			strings.Join(m.Alternatives, "; "),
			flatten(m.Summary),
			m.Status,
			formatInt(m.ReleasedYear),
			formatRating(m.Rating),
			formatInt(m.Votes),
		)
	} else {
		for i := 0; i < 11; i++ {
			row = append(row, "")
		}
	}

	row = append(row, flatten(entry.Comment), entry.AddDate)
	return row
}

// flatten replaces newlines with spaces; CSV rows must stay single-line
// even though the JSON export keeps line breaks.
func flatten(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

func formatInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func formatRating(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}

func createExportFile(dir string, title string, ext string, now time.Time) (string, *os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", nil, err
	}
	path := filepath.Join(dir, Filename(title, ext, now))
	f, err := os.Create(path)
	if err != nil {
		return "", nil, err
	}
	return path, f, nil
}
