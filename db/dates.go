package db

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Accepted input forms for free-form dates, tried in order. Ambiguous
// day/month values resolve to the first matching layout.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02/01/2006",
}

// excel serial day 0 is 1899-12-30
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ToISODate normalizes a free-form date to YYYY-MM-DD. Besides the textual
// layouts it accepts a bare number as an Excel serial date, which is how
// date cells surface when a registry was edited by hand.
func ToISODate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if isBlank(s) {
		return "", fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d.Format("2006-01-02"), nil
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		return excelEpoch.Add(time.Duration(serial * 24 * float64(time.Hour))).Format("2006-01-02"), nil
	}
	return "", fmt.Errorf("unrecognized date %q", s)
}

// nowStamp is the full timestamp format used by the loan, maintenance and
// decommission logs.
func nowStamp() string { return time.Now().Format("2006-01-02 15:04:05") }

// isBlank treats pandas leftovers ("nan", "NaT") in old registries as
// empty cells.
func isBlank(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "nan") || strings.EqualFold(s, "nat")
}

// sameKey compares property numbers the way the registries are matched:
// trimmed and case-insensitive.
func sameKey(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// normKey folds a column name for alias matching: diacritics stripped,
// lowercased, separators removed.
func normKey(s string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		switch r {
		case ' ', '_', '-', '.', '/':
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
