package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stieregg/internal/domain/seasons"
)

const sampleConfig = `
contactEmail: info@stieregg.ch
baseUrl: https://www.stieregg.ch
defaultSeason: low
seasons:
  - tag: high
    minNights: 5
    ranges:
      - { start: "07-01", end: "08-31" }
  - tag: low
    minNights: 3
apartments:
  - id: apt-2
    slug: gartenstudio
    name: { de: Gartenstudio, en: Garden Studio }
    capacity: 2
    sortOrder: 2
    calendarUrls:
      - https://example.com/b.ics
  - id: apt-1
    slug: bergblick
    name: { de: Wohnung Bergblick, en: Mountain View Apartment }
    capacity: 4
    sortOrder: 1
    calendarUrls:
      - https://example.com/a.ics
    minNights:
      high: 7
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cat, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "info@stieregg.ch", cat.ContactEmail())
	assert.Equal(t, "https://www.stieregg.ch", cat.BaseURL())

	apt, err := cat.BySlug("bergblick")
	require.NoError(t, err)
	assert.Equal(t, "Mountain View Apartment", apt.Name.EN)
	assert.Equal(t, 7, apt.MinNights[seasons.Tag("high")])

	// Apartments come back in display order, not file order.
	apartments := cat.Apartments()
	require.Len(t, apartments, 2)
	assert.Equal(t, "bergblick", apartments[0].Slug)
	assert.Equal(t, "gartenstudio", apartments[1].Slug)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestBySlugUnknown(t *testing.T) {
	cat, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	_, err = cat.BySlug("penthouse")
	assert.ErrorIs(t, err, ErrApartmentNotFound)
}

func TestNewRejectsDuplicateSlugs(t *testing.T) {
	_, err := New(SiteConfig{Apartments: []Apartment{
		{ID: "a", Slug: "bergblick"},
		{ID: "b", Slug: "bergblick"},
	}})
	assert.ErrorContains(t, err, "duplicate slug")
}

func TestNewRejectsMissingSlug(t *testing.T) {
	_, err := New(SiteConfig{Apartments: []Apartment{{ID: "a"}}})
	assert.ErrorContains(t, err, "no slug")
}

func TestClassifierFromConfig(t *testing.T) {
	cat, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	c := cat.Classifier()
	assert.Equal(t, seasons.Tag("low"), c.DefaultTag())
	assert.Equal(t, 5, c.MinNightsFor("high"))
}

func TestTextIn(t *testing.T) {
	txt := Text{DE: "Wohnung", EN: "Apartment"}
	assert.Equal(t, "Wohnung", txt.In("de"))
	assert.Equal(t, "Apartment", txt.In("en"))
	assert.Equal(t, "Apartment", txt.In("it"))
}
