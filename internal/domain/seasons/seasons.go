package seasons

import (
	"strconv"
	"strings"
	"time"

	"stieregg/internal/domain/daterange"
)

// Tag labels a pricing/policy season, e.g. "high", "mid", "low".
type Tag string

// Label carries the bilingual display name of a season.
type Label struct {
	DE string `yaml:"de" json:"de"`
	EN string `yaml:"en" json:"en"`
}

// MonthDayRange is a yearly recurring window given as "MM-DD" bounds. A
// range whose start is after its end (e.g. "12-20".."01-02") wraps over the
// year boundary.
type MonthDayRange struct {
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`
}

// Season is one entry of the ordered season configuration. The number of
// seasons is configuration, not code: the site started with two and now runs
// three.
type Season struct {
	Tag       Tag             `yaml:"tag" json:"tag"`
	Label     Label           `yaml:"label" json:"label"`
	Ranges    []MonthDayRange `yaml:"ranges" json:"ranges"`
	MinNights int             `yaml:"minNights" json:"minNights"`
}

// DefaultMinNights are the global per-tag minimum-stay defaults, used when
// neither the season entry nor the apartment overrides them.
var DefaultMinNights = map[Tag]int{
	"high": 5,
	"mid":  4,
	"low":  3,
}

// Classifier maps calendar dates to the set of active season tags.
type Classifier struct {
	seasons    []Season
	defaultTag Tag
}

func NewClassifier(cfg []Season, defaultTag Tag) *Classifier {
	if defaultTag == "" {
		defaultTag = "low"
	}
	return &Classifier{seasons: cfg, defaultTag: defaultTag}
}

// DefaultTag is the season assumed when no configured range matches.
func (c *Classifier) DefaultTag() Tag { return c.defaultTag }

// Seasons returns the configured season list in order.
func (c *Classifier) Seasons() []Season { return c.seasons }

// ActiveTags returns every non-default season tag whose configured ranges
// cover the given date. An empty result means the default season; resolving
// that is the caller's job. The classifier is total: malformed bounds simply
// never match.
func (c *Classifier) ActiveTags(date time.Time) []Tag {
	value := monthDayValue(daterange.Normalize(date))
	tags := make([]Tag, 0, len(c.seasons))
	for _, s := range c.seasons {
		if s.Tag == c.defaultTag {
			continue
		}
		for _, r := range s.Ranges {
			if matches(value, r) {
				tags = append(tags, s.Tag)
				break
			}
		}
	}
	return tags
}

// MinNightsFor resolves the minimum-stay value for a tag: season config if
// positive, else the global default, else the "low" default.
func (c *Classifier) MinNightsFor(tag Tag) int {
	for _, s := range c.seasons {
		if s.Tag == tag && s.MinNights > 0 {
			return s.MinNights
		}
	}
	if v, ok := DefaultMinNights[tag]; ok {
		return v
	}
	return DefaultMinNights["low"]
}

func matches(value int, r MonthDayRange) bool {
	start, okStart := parseMonthDay(r.Start)
	end, okEnd := parseMonthDay(r.End)
	if !okStart || !okEnd {
		return false
	}
	if start <= end {
		return value >= start && value <= end
	}
	// Wraps the year boundary, e.g. 12-20 .. 01-02.
	return value >= start || value <= end
}

func monthDayValue(t time.Time) int {
	return int(t.Month())*100 + t.Day()
}

func parseMonthDay(md string) (int, bool) {
	parts := strings.SplitN(strings.TrimSpace(md), "-", 2)
	if len(parts) != 2 {
		return 0, false
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return 0, false
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil || day < 1 || day > 31 {
		return 0, false
	}
	return month*100 + day, true
}
