package services

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/appnity/roommate-finder/internal/regions"
	"github.com/appnity/roommate-finder/pkg/utils"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page is a 1-based page of results. Size is always within [1, MaxPageSize].
type Page struct {
	Number int `json:"page"`
	Size   int `json:"pageSize"`
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// ParsePage reads page/page_size, falling back to defaults on anything malformed.
func ParsePage(q url.Values) Page {
	p := Page{Number: 1, Size: DefaultPageSize}
	if n, ok := parseNonNegative(q.Get("page")); ok && n > 0 {
		p.Number = n
	}
	if n, ok := parseNonNegative(q.Get("page_size")); ok && n > 0 {
		p.Size = n
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// parseNonNegative parses a base-10 integer that must be >= 0.
func parseNonNegative(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// isSet treats any non-empty flag value as on, except the usual spellings of off.
func isSet(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "0", "false", "no", "off":
		return false
	}
	return true
}

// likeClause builds "(LOWER(a) LIKE ? ESCAPE '\' OR LOWER(b) LIKE ? ...)" with
// pattern bound once per column.
func likeClause(pattern string, cols ...string) (string, []interface{}) {
	parts := make([]string, 0, len(cols))
	args := make([]interface{}, 0, len(cols))
	for _, col := range cols {
		parts = append(parts, "LOWER("+col+") LIKE ? ESCAPE '\\'")
		args = append(args, pattern)
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

// applySubstring narrows q to rows whose col contains raw, case-insensitively.
func applySubstring(q *gorm.DB, col, raw string) *gorm.DB {
	pattern := utils.SanitizeSearchQuery(raw)
	if pattern == "" {
		return q
	}
	clause, args := likeClause(pattern, col)
	return q.Where(clause, args...)
}

// applyMetro keeps rows whose city or neighborhood contains any of the
// region's city and area names. Unknown regions leave q unchanged.
func applyMetro(q *gorm.DB, reg *regions.Registry, slug string) *gorm.DB {
	region, ok := reg.Resolve(slug)
	if !ok {
		return q
	}
	names := region.MetroNames()
	if len(names) == 0 {
		return q
	}

	var parts []string
	var args []interface{}
	for _, name := range names {
		clause, a := likeClause(utils.SanitizeSearchQuery(name), "city", "neighborhood")
		parts = append(parts, clause)
		args = append(args, a...)
	}
	return q.Where("("+strings.Join(parts, " OR ")+")", args...)
}

// profilePreferenceColumns maps accepted preference values to profile columns.
// "offering_room" is deliberately absent and therefore ignored.
var profilePreferenceColumns = map[string]string{
	"halal_kitchen":       "halal_kitchen",
	"prayer_friendly":     "prayer_friendly",
	"guests_allowed":      "guests_allowed",
	"looking_for_room":    "is_looking_for_room",
	"is_looking_for_room": "is_looking_for_room",
}

var roomPreferenceColumns = map[string]string{
	"halal_kitchen":   "halal_kitchen",
	"prayer_friendly": "prayer_friendly",
	"guests_allowed":  "guests_allowed",
}

func applyPreference(q *gorm.DB, columns map[string]string, raw string) *gorm.DB {
	col, ok := columns[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return q
	}
	return q.Where(col+" = ?", true)
}
