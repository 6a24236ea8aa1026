package mangago

import (
	"regexp"
	"strconv"
	"time"
)

// Listing pages date entries either absolutely ("15 03,2021") or relatively
// ("3 days ago"). The patterns are tried in this order; first match wins.
var (
	absoluteDateRE = regexp.MustCompile(`(\d{2}) (\d{2}),(\d{4})`)
	daysAgoRE      = regexp.MustCompile(`(\d+) days?`)
	hoursAgoRE     = regexp.MustCompile(`(\d+) hours?`)
	minutesAgoRE   = regexp.MustCompile(`(\d+) minutes?`)
	secondsAgoRE   = regexp.MustCompile(`(\d+) seconds?`)
)

// NormalizeTimestamp converts a raw add-date token into an ISO "YYYY-MM-DD"
// date string. Relative tokens are resolved against the supplied anchor
// time, which is injected rather than read from the system clock so results
// are reproducible.
//
// Only the date component survives a relative conversion: "5 hours" at
// 02:00 lands on the previous day because the subtraction crosses midnight.
// Unrecognized text returns the empty string, never an error.
func NormalizeTimestamp(text string, now time.Time) string {
	if m := absoluteDateRE.FindStringSubmatch(text); m != nil {
		return m[3] + "-" + m[2] + "-" + m[1]
	}
	if m := daysAgoRE.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return isoDate(now.AddDate(0, 0, -n))
	}
	if m := hoursAgoRE.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return isoDate(now.Add(-time.Duration(n) * time.Hour))
	}
	if m := minutesAgoRE.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return isoDate(now.Add(-time.Duration(n) * time.Minute))
	}
	if m := secondsAgoRE.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return isoDate(now.Add(-time.Duration(n) * time.Second))
	}
	return ""
}

func isoDate(t time.Time) string {
	return t.Format("2006-01-02")
}
