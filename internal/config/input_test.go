package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/econloss/loss-calculator/internal/calculation"
	"github.com/econloss/loss-calculator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAsOf = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_YAML(t *testing.T) {
	path := writeTemp(t, "case.yaml", `case_info:
  plaintiff: "Sam Doe"
  dob: 1975-05-05
  date_of_injury: "2019-06-01"
  date_of_trial: "2023-02-01"
  retirement_age: 66.5
earnings:
  base_earnings: 55000
  residual_earnings: "12,000"
  wle: 14
  wage_growth: "3.5%"
  discount_rate: 4
  fringe_rate: 18
household_services:
  active: yes
  hours_per_week: 6
  hourly_rate: 16
life_care_plan:
  - id: pt
    category_id: therapy
    base_cost: 1500
    freq_type: one-time
    duration: 1
    start_year: 1
    cpi: 3
past_actuals:
  2020: 9000
  2021: "$11,500"
`)

	c, warnings, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "Sam Doe", c.Info.Plaintiff)
	assert.Equal(t, "1975-05-05", c.Info.DOB)
	assert.Equal(t, 66.5, c.Info.RetirementAge)
	assert.Equal(t, 12000.0, c.Earnings.ResidualEarnings)
	assert.Equal(t, 3.5, c.Earnings.WageGrowth)
	assert.True(t, c.Household.Active)
	require.Len(t, c.LifeCare, 1)
	assert.Equal(t, domain.FreqOneTime, c.LifeCare[0].FreqType)
	assert.Equal(t, 1, c.LifeCare[0].RecurrenceInterval)
	assert.Equal(t, map[int]string{2020: "9000", 2021: "$11,500"}, c.PastActuals)
	// absent scenario table falls back to the defaults
	assert.Equal(t, domain.DefaultScenarioSet(), c.Scenarios)
}

func TestLoadFromFile_JSONCamelCase(t *testing.T) {
	path := writeTemp(t, "case.json", `{
  "caseInfo": {"dob": "1980-01-01", "dateOfInjury": "2020-01-01", "dateOfTrial": "2022-01-01", "retirementAge": 65},
  "earningsParams": {"baseEarnings": 40000, "wle": "oops", "discountRate": 3},
  "isUnionMode": true,
  "lcpItems": [{"id": "a", "baseCost": 100, "freqType": "weekly", "duration": 0}],
  "scenarios": []
}`)

	c, warnings, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "2020-01-01", c.Info.DateOfInjury)
	assert.Equal(t, 65.0, c.Info.RetirementAge)
	assert.Equal(t, 40000.0, c.Earnings.BaseEarnings)
	assert.Equal(t, 0.0, c.Earnings.WLE)
	assert.Equal(t, 3.0, c.Earnings.DiscountRate)
	assert.True(t, c.UnionMode)
	require.Len(t, c.LifeCare, 1)
	assert.Equal(t, domain.FreqAnnual, c.LifeCare[0].FreqType)
	assert.Equal(t, 1, c.LifeCare[0].Duration)
	assert.Empty(t, c.Scenarios, "an explicit empty table is kept")

	require.Len(t, warnings, 3)
	assert.Contains(t, warnings[0], "earnings.wle")
	assert.Contains(t, warnings[1], "life_care_plan.0.freq_type")
	assert.Contains(t, warnings[2], "duration 0 raised to 1")
}

func TestLoadFromFile_FlatCSV(t *testing.T) {
	path := writeTemp(t, "case.csv", `field,value
# comment rows are ignored
dob,1980-01-01
dateOfInjury,2020-01-01
case_info.date_of_trial,2022-07-01
base_earnings,"60,000"
earnings.discount_rate,4
hhs_active,true
hours_per_week,10
union_mode,false
lcp.1.id,second
lcp.1.base_cost,200
lcp.0.id,first
lcp.0.base_cost,100
lcp.0.freq_type,recurring
lcp.0.recurrence_interval,2
past_actuals.2021,18000
scenarios.0.id,low
scenarios.0.discount_rate,6
`)

	c, warnings, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "1980-01-01", c.Info.DOB)
	assert.Equal(t, "2020-01-01", c.Info.DateOfInjury)
	assert.Equal(t, "2022-07-01", c.Info.DateOfTrial)
	assert.Equal(t, 60000.0, c.Earnings.BaseEarnings)
	assert.True(t, c.Household.Active)
	assert.Equal(t, 10.0, c.Household.HoursPerWeek)
	require.Len(t, c.LifeCare, 2)
	assert.Equal(t, "first", c.LifeCare[0].ID)
	assert.Equal(t, domain.FreqRecurring, c.LifeCare[0].FreqType)
	assert.Equal(t, 2, c.LifeCare[0].RecurrenceInterval)
	assert.Equal(t, "second", c.LifeCare[1].ID)
	assert.Equal(t, "18000", c.PastActuals[2021])
	require.Len(t, c.Scenarios, 1)
	assert.Equal(t, "low", c.Scenarios[0].ID)
	require.NotNil(t, c.Scenarios[0].DiscountRate)
	assert.Equal(t, 6.0, *c.Scenarios[0].DiscountRate)
	assert.Nil(t, c.Scenarios[0].WageGrowth)
}

func TestLoadFromFile_Errors(t *testing.T) {
	parser := NewInputParser()

	_, _, err := parser.LoadFromFile("nonexistent_file.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")

	_, _, err = parser.LoadFromFile(writeTemp(t, "case.txt", "x"))
	assert.ErrorIs(t, err, ErrUnsupportedFileType)

	_, _, err = parser.LoadFromFile(writeTemp(t, "bad.yaml", "case_info:\n\tdob: \"x\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")

	_, _, err = parser.LoadFromFile(writeTemp(t, "bad.json", "{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse JSON")
}

func TestLoadFromFile_EmptyFileIsDefaults(t *testing.T) {
	c, warnings, err := NewInputParser().LoadFromFile(writeTemp(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, DefaultCase(), c)
}

func TestSaveToFile_RoundTrip(t *testing.T) {
	orig := CreateExampleCase()
	want := calculation.Compute(orig, testAsOf)

	for _, name := range []string{"case.yaml", "case.yml", "case.json", "case.csv"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			require.NoError(t, SaveToFile(orig, path))

			loaded, warnings, err := NewInputParser().LoadFromFile(path)
			require.NoError(t, err)
			assert.Empty(t, warnings)
			assert.Equal(t, orig, loaded)
			assert.Equal(t, want, calculation.Compute(loaded, testAsOf))
		})
	}
}

func TestSaveToFile_EmptyScenarioTableRoundTrip(t *testing.T) {
	orig := CreateExampleCase()
	orig.Scenarios = domain.ScenarioSet{}
	want := calculation.Compute(orig, testAsOf)
	require.Empty(t, want.Scenarios)

	for _, name := range []string{"case.yaml", "case.json", "case.csv"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, SaveToFile(orig, path))

			loaded, warnings, err := NewInputParser().LoadFromFile(path)
			require.NoError(t, err)
			assert.Empty(t, warnings)
			assert.Empty(t, loaded.Scenarios, "an empty table must not fall back to the defaults")
			assert.Equal(t, orig, loaded)
			assert.Equal(t, want, calculation.Compute(loaded, testAsOf))
		})
	}
}

func TestParseFlatCSV_ScenarioMarker(t *testing.T) {
	rec, err := ParseFlatCSV(strings.NewReader("field,value\nscenarios,\n"))
	require.NoError(t, err)
	assert.Equal(t, []any{}, rec["scenarios"])

	// indexed rows win over the marker
	rec, err = ParseFlatCSV(strings.NewReader("scenarios,\nscenarios.0.id,low\n"))
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"id": "low"}}, rec["scenarios"])
}

func TestSaveToFile_UnsupportedType(t *testing.T) {
	err := SaveToFile(CreateExampleCase(), filepath.Join(t.TempDir(), "case.xml"))
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestFromRecord_Defaults(t *testing.T) {
	c, warnings := FromRecord(map[string]any{})
	assert.Empty(t, warnings)
	assert.Equal(t, DefaultCase(), c)
}

func TestFromRecord_SectionNotMapping(t *testing.T) {
	c, warnings := FromRecord(map[string]any{"earnings": "nope", "life_care_plan": 5})
	assert.Equal(t, DefaultCase().Earnings, c.Earnings)
	assert.Empty(t, c.LifeCare)
	assert.Len(t, warnings, 2)
}

func TestFromRecord_ScenarioOverrides(t *testing.T) {
	c, warnings := FromRecord(map[string]any{
		"scenarios": []any{
			map[string]any{"id": "a", "label": "A", "wage_growth": "2.5", "wle": ""},
			map[string]any{"id": "b", "discount_rate": "n/a"},
		},
	})
	require.Len(t, c.Scenarios, 2)
	require.NotNil(t, c.Scenarios[0].WageGrowth)
	assert.Equal(t, 2.5, *c.Scenarios[0].WageGrowth)
	assert.Nil(t, c.Scenarios[0].WLE)
	assert.Nil(t, c.Scenarios[1].DiscountRate)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "scenarios.1.discount_rate")
}

func TestToNumber(t *testing.T) {
	tests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{12, 12, true},
		{4.5, 4.5, true},
		{"4.5%", 4.5, true},
		{"$1,234.50", 1234.5, true},
		{"  7 ", 7, true},
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
	}
	for _, tt := range tests {
		got, ok := toNumber(tt.in)
		assert.Equal(t, tt.ok, ok, "%v", tt.in)
		assert.Equal(t, tt.want, got, "%v", tt.in)
	}
}

func TestLookup(t *testing.T) {
	m := map[string]any{"dateOfInjury": "a", "Base-Earnings": 1}
	v, ok := lookup(m, "date_of_injury")
	assert.True(t, ok)
	assert.Equal(t, "a", v)
	v, ok = lookup(m, "base_earnings")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	_, ok = lookup(m, "wle")
	assert.False(t, ok)
}
