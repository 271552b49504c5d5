// internal/pkg/paging/paging.go
package paging

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Query is the request shape every list endpoint accepts. Page is 1-based;
// empty Filters means every row the caller may see.
type Query struct {
	Page     int    `json:"page" form:"Page"`
	PageSize int    `json:"pageSize" form:"PageSize"`
	Filters  string `json:"filters,omitempty" form:"Filters"`
	Sorts    string `json:"sorts,omitempty" form:"Sorts"`
}

// Normalize clamps page and page size into their valid ranges.
func (q Query) Normalize(defaultSize int) Query {
	if defaultSize < 1 {
		defaultSize = DefaultPageSize
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	return q
}

// Values encodes only the parameters that are set.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("Page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("PageSize", strconv.Itoa(q.PageSize))
	}
	if q.Filters != "" {
		v.Set("Filters", q.Filters)
	}
	if q.Sorts != "" {
		v.Set("Sorts", q.Sorts)
	}
	return v
}

// Key is a stable cache key for the query.
func (q Query) Key() string {
	return q.Values().Encode()
}

// Result is the list payload returned by the backend.
type Result[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
}

// TotalPages returns ceil(count/size).
func TotalPages(count, size int) int {
	if size < 1 || count < 1 {
		return 0
	}
	pages := count / size
	if count%size > 0 {
		pages++
	}
	return pages
}

// Normalize fills what the backend left out: nil items, the echoed page
// fields and a missing page count.
func (r *Result[T]) Normalize(q Query) {
	if r.Items == nil {
		r.Items = []T{}
	}
	if r.Page < 1 {
		r.Page = q.Page
	}
	if r.PageSize < 1 {
		r.PageSize = q.PageSize
	}
	if r.TotalPages == 0 {
		r.TotalPages = TotalPages(r.TotalCount, r.PageSize)
	}
}

// Check reports a result that breaks the list contract.
func (r Result[T]) Check() error {
	if r.PageSize > 0 && len(r.Items) > r.PageSize {
		return fmt.Errorf("page holds %d items, more than page size %d", len(r.Items), r.PageSize)
	}
	want := TotalPages(r.TotalCount, r.PageSize)
	// An empty collection is reported as either zero or one page.
	if r.TotalCount == 0 && (r.TotalPages == 0 || r.TotalPages == 1) {
		return nil
	}
	if r.TotalPages != want {
		return fmt.Errorf("total pages %d does not match ceil(%d/%d)=%d", r.TotalPages, r.TotalCount, r.PageSize, want)
	}
	return nil
}

// Empty synthesizes a zero-row result for q.
func Empty[T any](q Query) Result[T] {
	q = q.Normalize(DefaultPageSize)
	return Result[T]{
		Items:    []T{},
		Page:     q.Page,
		PageSize: q.PageSize,
	}
}

// ========== Filters ==========
// The backend interprets the filter mini-language; the console only builds it.

// Contains matches term against any of fields: "(a|b)@=*term".
func Contains(term string, fields ...string) string {
	term = strings.TrimSpace(term)
	if term == "" || len(fields) == 0 {
		return ""
	}
	if len(fields) == 1 {
		return fields[0] + "@=*" + term
	}
	return "(" + strings.Join(fields, "|") + ")@=*" + term
}

// Eq matches field equal to value: "field|eq|value".
func Eq(field, value string) string {
	if value == "" {
		return ""
	}
	return field + "|eq|" + value
}

// And joins the non-empty filter parts.
func And(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ",")
}

// ========== Sorts ==========

// Dialect is how a screen spells column sorts. Both spellings reach the same
// backend, so they are kept as observed.
type Dialect int

const (
	// DialectSymbol: "name,-createdAt".
	DialectSymbol Dialect = iota
	// DialectNamed: "Name,CreatedAt desc".
	DialectNamed
)

type SortField struct {
	Field string `json:"field" binding:"required"`
	Desc  bool   `json:"desc"`
}

func (s SortField) Format(d Dialect) string {
	if s.Field == "" {
		return ""
	}
	if d == DialectNamed {
		name := strings.ToUpper(s.Field[:1]) + s.Field[1:]
		if s.Desc {
			return name + " desc"
		}
		return name
	}
	if s.Desc {
		return "-" + s.Field
	}
	return s.Field
}

// FormatSorts joins fields in the given dialect.
func FormatSorts(d Dialect, fields ...SortField) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if s := f.Format(d); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ",")
}
