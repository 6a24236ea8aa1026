// Package fs writes assembled reading lists to disk as JSON or CSV files.
package fs

import (
	"strings"
	"time"
)

// forbidden holds characters that are unsafe in filenames on at least one
// supported platform.
const forbidden = `/\?%*:|"<>`

// SanitizeFilename makes a list title safe to use as a filename: forbidden
// and control characters become "-", the result is truncated to 255
// characters and trimmed of surrounding whitespace.
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r < 0x20 || r == 0x7f || strings.ContainsRune(forbidden, r) {
			b.WriteRune('-')
			continue
		}
		b.WriteRune(r)
	}

	runes := []rune(b.String())
	if len(runes) > 255 {
		runes = runes[:255]
	}

	return strings.TrimSpace(string(runes))
}

// Filename builds the export filename for a list title:
// {sanitized title}_{timestamp}.{ext}.
func Filename(title string, ext string, now time.Time) string {
	return SanitizeFilename(title) + "_" + now.Format("2006-01-02-15-04-05") + "." + ext
}
