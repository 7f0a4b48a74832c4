package listquery

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSpec = Spec{
	DefaultSort: "-createdAt",
	SortColumns: map[string]string{
		"name":      "name",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	},
	Includes: []string{"company", "contact"},
}

func TestParseDefaults(t *testing.T) {
	p, errs := Parse(url.Values{}, testSpec)
	require.Nil(t, errs)

	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Empty(t, p.Cursor)
	assert.Equal(t, "createdAt", p.SortField)
	assert.Equal(t, "created_at", p.SortColumn)
	assert.True(t, p.Desc, "default sort carries its own direction")
	assert.Empty(t, p.Includes)
}

func TestParseLimitClamped(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"25", 25},
		{"0", 1},
		{"-3", 1},
		{"100", 100},
		{"9999", 100},
	}
	for _, tc := range cases {
		p, errs := Parse(url.Values{"limit": {tc.raw}}, testSpec)
		require.Nil(t, errs, "limit=%s", tc.raw)
		assert.Equal(t, tc.want, p.Limit, "limit=%s", tc.raw)
	}
}

func TestParseLimitNotANumber(t *testing.T) {
	_, errs := Parse(url.Values{"limit": {"abc"}}, testSpec)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "limit")
}

func TestParseSortDirections(t *testing.T) {
	p, errs := Parse(url.Values{"sort": {"name"}}, testSpec)
	require.Nil(t, errs)
	assert.Equal(t, "name", p.SortColumn)
	assert.False(t, p.Desc)

	p, errs = Parse(url.Values{"sort": {"-name"}}, testSpec)
	require.Nil(t, errs)
	assert.Equal(t, "name", p.SortColumn)
	assert.True(t, p.Desc)
}

func TestParseSortUnknownFieldFallsBack(t *testing.T) {
	// An invalid sort field is not an error; it falls back to the
	// entity default.
	p, errs := Parse(url.Values{"sort": {"passwordHash"}}, testSpec)
	require.Nil(t, errs)
	assert.Equal(t, "createdAt", p.SortField)
	assert.Equal(t, "created_at", p.SortColumn)
	assert.True(t, p.Desc)
}

func TestParseIncludeWhitelist(t *testing.T) {
	p, errs := Parse(url.Values{"include": {"company, nonsense ,contact"}}, testSpec)
	require.Nil(t, errs)
	assert.Equal(t, []string{"company", "contact"}, p.Includes)
	assert.True(t, p.HasInclude("company"))
	assert.False(t, p.HasInclude("nonsense"), "unknown includes are dropped, never an error")
}

func TestParseCursorPassedThrough(t *testing.T) {
	p, errs := Parse(url.Values{"cursor": {"some-id"}}, testSpec)
	require.Nil(t, errs)
	assert.Equal(t, "some-id", p.Cursor)
}

func TestParseCollectsAllFieldErrors(t *testing.T) {
	errs := FieldErrors(nil)
	errs = errs.Add("limit", "must be a number")
	errs = errs.Add("dueBefore", "must be a valid date")
	errs = errs.Add("dueBefore", "second problem")

	assert.Len(t, errs, 2)
	assert.Len(t, errs["dueBefore"], 2)
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2025-03-01")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), d)

	d, ok = ParseDate("2025-03-01T10:30:00Z")
	require.True(t, ok)
	assert.Equal(t, 10, d.Hour())

	_, ok = ParseDate("not-a-date")
	assert.False(t, ok)
}
