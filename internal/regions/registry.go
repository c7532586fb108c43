// Package regions holds the metro-area configuration shared by the listing
// filters and the similar-profile recommender.
package regions

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Region is one served metro area. Cities are matched against a profile's
// city, Areas against its neighborhood (and, for the listing filter, its city).
type Region struct {
	Slug   string   `mapstructure:"slug" json:"slug"`
	Name   string   `mapstructure:"name" json:"name"`
	State  string   `mapstructure:"state" json:"state"`
	Cities []string `mapstructure:"cities" json:"cities"`
	Areas  []string `mapstructure:"areas" json:"areas"`
}

// Registry is the configured set of regions. The zero value is an empty
// registry on which every lookup misses.
type Registry struct {
	DefaultSlug string   `mapstructure:"default_region" json:"defaultRegion"`
	Regions     []Region `mapstructure:"regions" json:"regions"`
}

// Load reads a registry from a YAML file. A missing file yields an empty
// registry and fs.ErrNotExist so callers can decide whether to warn.
func Load(path string) (*Registry, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Registry{}, err
		}
		return nil, fmt.Errorf("stat regions file: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read regions file: %w", err)
	}

	reg := &Registry{}
	if err := v.Unmarshal(reg); err != nil {
		return nil, fmt.Errorf("decode regions file: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return reg, nil
}

// New builds a registry in code, mainly for tests and seeds.
func New(defaultSlug string, regions ...Region) *Registry {
	return &Registry{DefaultSlug: defaultSlug, Regions: regions}
}

// Validate rejects duplicate or empty slugs and a default that names no region.
func (r *Registry) Validate() error {
	seen := make(map[string]bool, len(r.Regions))
	for _, region := range r.Regions {
		slug := strings.ToLower(strings.TrimSpace(region.Slug))
		if slug == "" {
			return errors.New("regions: region without slug")
		}
		if seen[slug] {
			return fmt.Errorf("regions: duplicate slug %q", region.Slug)
		}
		seen[slug] = true
	}
	if r.DefaultSlug != "" && !seen[strings.ToLower(r.DefaultSlug)] {
		return fmt.Errorf("regions: default_region %q is not defined", r.DefaultSlug)
	}
	return nil
}

// Get returns the region with the given slug (case-insensitive).
func (r *Registry) Get(slug string) (Region, bool) {
	if r == nil {
		return Region{}, false
	}
	slug = strings.TrimSpace(slug)
	for _, region := range r.Regions {
		if strings.EqualFold(region.Slug, slug) {
			return region, true
		}
	}
	return Region{}, false
}

// Default returns the default region, if one is configured.
func (r *Registry) Default() (Region, bool) {
	if r == nil || r.DefaultSlug == "" {
		return Region{}, false
	}
	return r.Get(r.DefaultSlug)
}

// Resolve returns the named region, or the default when slug is empty.
func (r *Registry) Resolve(slug string) (Region, bool) {
	if strings.TrimSpace(slug) == "" {
		return r.Default()
	}
	return r.Get(slug)
}

// RegionFor returns the first region the location belongs to: its city is one
// of the region's cities or its neighborhood one of the region's areas, and
// the state agrees whenever both sides have one.
func (r *Registry) RegionFor(city, state, neighborhood string) (Region, bool) {
	if r == nil {
		return Region{}, false
	}
	for _, region := range r.Regions {
		if state != "" && region.State != "" && !strings.EqualFold(strings.TrimSpace(state), region.State) {
			continue
		}
		if containsFold(region.Cities, city) || containsFold(region.Areas, neighborhood) {
			return region, true
		}
	}
	return Region{}, false
}

// MetroNames is every city and area name of the region, de-duplicated
// case-insensitively, in configuration order.
func (region Region) MetroNames() []string {
	names := make([]string, 0, len(region.Cities)+len(region.Areas))
	seen := make(map[string]bool)
	for _, n := range append(append([]string{}, region.Cities...), region.Areas...) {
		key := strings.ToLower(strings.TrimSpace(n))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, strings.TrimSpace(n))
	}
	return names
}

// LowerCities returns the region's city names lowercased for SQL IN matching.
func (region Region) LowerCities() []string {
	out := make([]string, 0, len(region.Cities))
	for _, c := range region.Cities {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, strings.ToLower(c))
		}
	}
	return out
}

func containsFold(list []string, value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	for _, item := range list {
		if strings.EqualFold(strings.TrimSpace(item), value) {
			return true
		}
	}
	return false
}
