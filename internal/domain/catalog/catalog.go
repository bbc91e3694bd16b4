package catalog

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"stieregg/internal/domain/seasons"
)

var (
	// ErrApartmentNotFound is returned when a slug does not match any apartment.
	ErrApartmentNotFound = errors.New("catalog: apartment not found")
)

// Text is a bilingual content snippet.
type Text struct {
	DE string `yaml:"de" json:"de"`
	EN string `yaml:"en" json:"en"`
}

// In returns the snippet for the given locale, falling back to English.
func (t Text) In(locale string) string {
	if locale == "de" {
		return t.DE
	}
	return t.EN
}

// Apartment is one rental unit of the site. Records are read from static
// configuration at startup and never mutated afterwards; external booking
// platforms own the calendars referenced by CalendarURLs.
type Apartment struct {
	ID           string              `yaml:"id" json:"id"`
	Slug         string              `yaml:"slug" json:"slug"`
	Name         Text                `yaml:"name" json:"name"`
	Description  Text                `yaml:"description" json:"description"`
	Capacity     int                 `yaml:"capacity" json:"capacity"`
	Bedrooms     int                 `yaml:"bedrooms" json:"bedrooms"`
	PricePerWeek int                 `yaml:"pricePerWeek" json:"pricePerWeek"`
	SortOrder    int                 `yaml:"sortOrder" json:"sortOrder"`
	CalendarURLs []string            `yaml:"calendarUrls" json:"calendarUrls"`
	MinNights    map[seasons.Tag]int `yaml:"minNights" json:"minNights,omitempty"`
}

// SiteConfig is the static site data file: the apartment list plus the
// season calendar the minimum-stay rules run on.
type SiteConfig struct {
	ContactEmail  string           `yaml:"contactEmail"`
	BaseURL       string           `yaml:"baseUrl"`
	DefaultSeason seasons.Tag      `yaml:"defaultSeason"`
	Seasons       []seasons.Season `yaml:"seasons"`
	Apartments    []Apartment      `yaml:"apartments"`
}

// Catalog holds the immutable apartment records keyed by slug.
type Catalog struct {
	apartments []Apartment
	bySlug     map[string]Apartment
	config     SiteConfig
}

// Load reads the site configuration YAML from path and builds the catalog.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read config: %w", err)
	}
	var cfg SiteConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("catalog: parse config: %w", err)
	}
	return New(cfg)
}

// New builds a catalog from an already-parsed configuration.
func New(cfg SiteConfig) (*Catalog, error) {
	bySlug := make(map[string]Apartment, len(cfg.Apartments))
	for _, apt := range cfg.Apartments {
		if apt.Slug == "" {
			return nil, fmt.Errorf("catalog: apartment %q has no slug", apt.ID)
		}
		if _, dup := bySlug[apt.Slug]; dup {
			return nil, fmt.Errorf("catalog: duplicate slug %q", apt.Slug)
		}
		bySlug[apt.Slug] = apt
	}
	apartments := make([]Apartment, len(cfg.Apartments))
	copy(apartments, cfg.Apartments)
	sort.SliceStable(apartments, func(i, j int) bool {
		return apartments[i].SortOrder < apartments[j].SortOrder
	})
	return &Catalog{apartments: apartments, bySlug: bySlug, config: cfg}, nil
}

// BySlug returns the apartment for slug or ErrApartmentNotFound.
func (c *Catalog) BySlug(slug string) (Apartment, error) {
	apt, ok := c.bySlug[slug]
	if !ok {
		return Apartment{}, ErrApartmentNotFound
	}
	return apt, nil
}

// Apartments returns all apartments in display order.
func (c *Catalog) Apartments() []Apartment {
	out := make([]Apartment, len(c.apartments))
	copy(out, c.apartments)
	return out
}

// Classifier builds the season classifier from the loaded configuration.
func (c *Catalog) Classifier() *seasons.Classifier {
	return seasons.NewClassifier(c.config.Seasons, c.config.DefaultSeason)
}

// ContactEmail is the inquiry recipient address.
func (c *Catalog) ContactEmail() string { return c.config.ContactEmail }

// BaseURL is the public site root used in inquiry links.
func (c *Catalog) BaseURL() string { return c.config.BaseURL }
