// Package listquery implements the query-parameter half of the shared
// list contract: limit/cursor/sort/include parsing with per-field error
// collection. Execution against the store lives in the db package.
package listquery

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// Spec describes what one entity's list endpoint accepts.
type Spec struct {
	// DefaultSort is the sort applied when the requested field is not in
	// SortColumns. May carry a leading '-'.
	DefaultSort string
	// SortColumns maps exposed sort field names to storage columns.
	SortColumns map[string]string
	// Includes is the whitelist of relation names; unknown names are
	// dropped silently, never an error.
	Includes []string
}

// Params is a parsed, validated list query.
type Params struct {
	Limit      int
	Cursor     string
	SortField  string // exposed name, after fallback
	SortColumn string
	Desc       bool
	Includes   []string
}

// Pagination is the uniform list envelope metadata. Cursor is the id of
// the last returned record when HasMore, else null.
type Pagination struct {
	Total   int64   `json:"total"`
	Limit   int     `json:"limit"`
	Cursor  *string `json:"cursor"`
	HasMore bool    `json:"hasMore"`
}

// FieldErrors collects per-field validation problems. A nil map means
// the query parsed cleanly.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, problem string) FieldErrors {
	if fe == nil {
		fe = FieldErrors{}
	}
	fe[field] = append(fe[field], problem)
	return fe
}

// Parse reads limit/cursor/sort/include from vals. Validation runs before
// any tenancy scoping or store access; all problems are reported at once.
func Parse(vals url.Values, spec Spec) (Params, FieldErrors) {
	var errs FieldErrors
	p := Params{Limit: DefaultLimit, Cursor: vals.Get("cursor")}

	if raw := vals.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = errs.Add("limit", "must be a number")
		} else {
			p.Limit = clamp(n, 1, MaxLimit)
		}
	}

	sort := vals.Get("sort")
	if sort == "" {
		sort = spec.DefaultSort
	}
	p.SortField, p.SortColumn, p.Desc = resolveSort(sort, spec)

	if raw := vals.Get("include"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(name)
			if name != "" && contains(spec.Includes, name) {
				p.Includes = append(p.Includes, name)
			}
		}
	}

	return p, errs
}

// ParseDate accepts the two date shapes clients send for dueBefore/dueAfter
// bounds: RFC 3339 or a bare calendar date.
func ParseDate(raw string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func (p Params) HasInclude(name string) bool { return contains(p.Includes, name) }

func resolveSort(sort string, spec Spec) (field, column string, desc bool) {
	desc = strings.HasPrefix(sort, "-")
	field = strings.TrimPrefix(sort, "-")
	column, ok := spec.SortColumns[field]
	if !ok {
		// Invalid sort fields fall back to the entity default, keeping the
		// default's own direction.
		def := spec.DefaultSort
		desc = strings.HasPrefix(def, "-")
		field = strings.TrimPrefix(def, "-")
		column = spec.SortColumns[field]
	}
	return field, column, desc
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
