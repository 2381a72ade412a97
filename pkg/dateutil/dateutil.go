package dateutil

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date layout used in case files.
const DateLayout = "2006-01-02"

// DaysPerYear is the fixed year length used for all age and duration math.
const DaysPerYear = 365.25

var parseLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
}

// ParseDate parses an ISO date (or one of a few tolerated layouts). Blank or
// unparseable input reports ok=false rather than an error.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a date in DateLayout; the zero time renders as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// YearsBetween returns (to - from) in 365.25-day years. The result is negative
// when to precedes from.
func YearsBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24 / DaysPerYear
}

// AddFractionalYears shifts a date by whole calendar years, then adds the
// fractional remainder as 365.25-day year fractions.
func AddFractionalYears(date time.Time, years float64) time.Time {
	whole := math.Floor(years)
	frac := years - whole
	shifted := date.AddDate(int(whole), 0, 0)
	days := frac * DaysPerYear
	return shifted.Add(time.Duration(days * 24 * float64(time.Hour)))
}

// FormatYears formats a year count with one decimal place.
func FormatYears(years float64) string {
	return strconv.FormatFloat(years, 'f', 1, 64)
}
