package seasons

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func testConfig() []Season {
	return []Season{
		{
			Tag:       "high",
			MinNights: 5,
			Ranges: []MonthDayRange{
				{Start: "07-01", End: "08-31"},
				{Start: "12-20", End: "01-02"},
			},
		},
		{
			Tag:       "mid",
			MinNights: 4,
			Ranges: []MonthDayRange{
				{Start: "06-01", End: "06-30"},
			},
		},
		{Tag: "low", MinNights: 3},
	}
}

func TestActiveTagsPlainRange(t *testing.T) {
	c := NewClassifier(testConfig(), "low")

	assert.Equal(t, []Tag{"high"}, c.ActiveTags(date(t, "2025-07-15")))
	assert.Equal(t, []Tag{"mid"}, c.ActiveTags(date(t, "2025-06-10")))
	assert.Empty(t, c.ActiveTags(date(t, "2025-04-10")))
}

func TestActiveTagsWrapAroundYearBoundary(t *testing.T) {
	c := NewClassifier([]Season{
		{Tag: "high", Ranges: []MonthDayRange{{Start: "12-20", End: "01-02"}}},
	}, "low")

	for _, day := range []string{"2025-12-25", "2026-01-01", "2026-01-02", "2025-12-20"} {
		assert.Equal(t, []Tag{"high"}, c.ActiveTags(date(t, day)), day)
	}
	for _, day := range []string{"2026-01-03", "2025-12-19"} {
		assert.Empty(t, c.ActiveTags(date(t, day)), day)
	}
}

func TestActiveTagsOverlappingSeasons(t *testing.T) {
	cfg := testConfig()
	// Overlap high and mid over June. The classifier reports both; ranking
	// them is the caller's policy.
	cfg[0].Ranges = append(cfg[0].Ranges, MonthDayRange{Start: "06-15", End: "06-30"})
	c := NewClassifier(cfg, "low")

	assert.Equal(t, []Tag{"high", "mid"}, c.ActiveTags(date(t, "2025-06-20")))
}

func TestActiveTagsExcludesDefaultTag(t *testing.T) {
	cfg := []Season{
		{Tag: "low", Ranges: []MonthDayRange{{Start: "01-01", End: "12-31"}}},
		{Tag: "high", Ranges: []MonthDayRange{{Start: "07-01", End: "08-31"}}},
	}
	c := NewClassifier(cfg, "low")

	assert.Equal(t, []Tag{"high"}, c.ActiveTags(date(t, "2025-07-10")))
	assert.Empty(t, c.ActiveTags(date(t, "2025-03-10")))
}

func TestMalformedMonthDayNeverMatches(t *testing.T) {
	c := NewClassifier([]Season{
		{Tag: "high", Ranges: []MonthDayRange{
			{Start: "July 1", End: "08-31"},
			{Start: "13-01", End: "13-31"},
			{Start: "07-01", End: ""},
		}},
	}, "low")

	// The classifier stays total: broken bounds mean "not in this season",
	// never a panic.
	assert.Empty(t, c.ActiveTags(date(t, "2025-07-15")))
}

func TestMinNightsFor(t *testing.T) {
	c := NewClassifier(testConfig(), "low")
	assert.Equal(t, 5, c.MinNightsFor("high"))
	assert.Equal(t, 3, c.MinNightsFor("low"))
	// Unconfigured tag falls back to the global defaults table.
	assert.Equal(t, 4, c.MinNightsFor("mid"))
	assert.Equal(t, DefaultMinNights["low"], c.MinNightsFor("unknown"))
}

func TestMinNightsForSeasonWithoutExplicitValue(t *testing.T) {
	c := NewClassifier([]Season{{Tag: "high"}}, "low")
	assert.Equal(t, DefaultMinNights["high"], c.MinNightsFor("high"))
}
