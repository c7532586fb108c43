package regions

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
default_region: charleston
regions:
  - slug: charleston
    name: Charleston Metro
    state: SC
    cities: [Charleston, Mount Pleasant, West Ashley]
    areas: [Downtown, West Ashley, Charleston County]
  - slug: triangle
    name: Research Triangle
    state: NC
    cities: [Raleigh, Durham]
    areas: []
`

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "regions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	reg, err := Load(writeFile(t, sampleYAML))
	require.NoError(t, err)
	require.Len(t, reg.Regions, 2)

	def, ok := reg.Default()
	require.True(t, ok)
	assert.Equal(t, "Charleston Metro", def.Name)
	assert.Equal(t, []string{"Charleston", "Mount Pleasant", "West Ashley"}, def.Cities)

	tri, ok := reg.Resolve("TRIANGLE")
	require.True(t, ok)
	assert.Equal(t, "NC", tri.State)

	_, ok = reg.Resolve("atlanta")
	assert.False(t, ok)
}

func TestLoad_MissingFile(t *testing.T) {
	reg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	require.NotNil(t, reg)
	_, ok := reg.Default()
	assert.False(t, ok)
	_, ok = reg.RegionFor("Charleston", "SC", "")
	assert.False(t, ok)
}

func TestLoad_RejectsBadDefault(t *testing.T) {
	_, err := Load(writeFile(t, "default_region: nowhere\nregions:\n  - slug: a\n    name: A\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "regions:\n  - slug: a\n  - slug: A\n"))
	assert.Error(t, err)
}

func TestMetroNames_Dedupes(t *testing.T) {
	reg, err := Load(writeFile(t, sampleYAML))
	require.NoError(t, err)
	def, _ := reg.Default()
	assert.Equal(t, []string{"Charleston", "Mount Pleasant", "West Ashley", "Downtown", "Charleston County"}, def.MetroNames())
	assert.Equal(t, []string{"charleston", "mount pleasant", "west ashley"}, def.LowerCities())
}

func TestRegionFor(t *testing.T) {
	reg, err := Load(writeFile(t, sampleYAML))
	require.NoError(t, err)

	tests := []struct {
		name                      string
		city, state, neighborhood string
		want                      string
	}{
		{"city match", "charleston", "", "", "charleston"},
		{"city and state", "Mount Pleasant", "sc", "", "charleston"},
		{"state mismatch", "Charleston", "WV", "", ""},
		{"area match", "Ladson", "", "Charleston County", "charleston"},
		{"other region", "Durham", "NC", "", "triangle"},
		{"nothing", "Boise", "ID", "North End", ""},
		{"empty", "", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := reg.RegionFor(tt.city, tt.state, tt.neighborhood)
			if tt.want == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, r.Slug)
		})
	}
}

func TestNilRegistry(t *testing.T) {
	var reg *Registry
	_, ok := reg.Resolve("")
	assert.False(t, ok)
	_, ok = reg.RegionFor("Charleston", "", "")
	assert.False(t, ok)
}
