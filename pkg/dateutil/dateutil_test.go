package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
		ok   bool
	}{
		{"iso", "2020-03-15", date(2020, 3, 15), true},
		{"padded", "  2020-03-15 ", date(2020, 3, 15), true},
		{"rfc3339", "2020-03-15T10:30:00Z", date(2020, 3, 15), true},
		{"us", "03/15/2020", date(2020, 3, 15), true},
		{"blank", "", time.Time{}, false},
		{"garbage", "not a date", time.Time{}, false},
		{"invalid day", "2020-02-30", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "", FormatDate(time.Time{}))
	assert.Equal(t, "2021-01-09", FormatDate(date(2021, 1, 9)))
}

func TestYearsBetween(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want float64
		tol  float64
	}{
		{"1 year", date(2020, 1, 1), date(2021, 1, 1), 366.0 / DaysPerYear, 1e-12},
		{"4 years", date(2020, 1, 1), date(2024, 1, 1), 1461.0 / DaysPerYear, 1e-12},
		{"half year", date(2024, 1, 1), date(2024, 7, 1), 0.5, 0.01},
		{"zero", date(2025, 8, 1), date(2025, 8, 1), 0, 0},
		{"negative", date(2021, 1, 1), date(2020, 1, 1), -366.0 / DaysPerYear, 1e-12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, YearsBetween(tt.from, tt.to), tt.tol)
		})
	}
}

func TestAddFractionalYears(t *testing.T) {
	dob := date(1980, 5, 1)

	whole := AddFractionalYears(dob, 67)
	assert.True(t, date(2047, 5, 1).Equal(whole))

	half := AddFractionalYears(dob, 67.5)
	// 0.5 * 365.25 days = 182 days and 15 hours
	want := date(2047, 5, 1).Add(182*24*time.Hour + 15*time.Hour)
	assert.True(t, want.Equal(half), "got %s want %s", half, want)

	zero := AddFractionalYears(dob, 0)
	assert.True(t, dob.Equal(zero))
}

func TestFormatYears(t *testing.T) {
	assert.Equal(t, "40.0", FormatYears(39.99))
	assert.Equal(t, "12.3", FormatYears(12.34))
	assert.Equal(t, "0.0", FormatYears(0))
}
