package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryValuesOmitUnset(t *testing.T) {
	q := Query{Page: 1, PageSize: 10}
	assert.Equal(t, "Page=1&PageSize=10", q.Values().Encode())

	q.Filters = "(name|description)@=*adm"
	q.Sorts = "-createdAt"
	v := q.Values()
	assert.Equal(t, "(name|description)@=*adm", v.Get("Filters"))
	assert.Equal(t, "-createdAt", v.Get("Sorts"))
}

func TestQueryNormalize(t *testing.T) {
	q := Query{Page: 0, PageSize: 0}.Normalize(10)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.PageSize)

	q = Query{Page: 3, PageSize: 500}.Normalize(10)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, MaxPageSize, q.PageSize)
}

func TestTotalPages(t *testing.T) {
	cases := []struct{ count, size, want int }{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 1, 25},
		{5, 0, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TotalPages(tc.count, tc.size), "%d/%d", tc.count, tc.size)
	}
}

func TestResultNormalizeAndCheck(t *testing.T) {
	r := Result[string]{TotalCount: 21, Items: []string{"a", "b"}}
	r.Normalize(Query{Page: 2, PageSize: 10})
	assert.Equal(t, 3, r.TotalPages)
	assert.Equal(t, 2, r.Page)
	assert.NoError(t, r.Check())

	bad := Result[string]{Items: []string{"a", "b"}, PageSize: 1, TotalCount: 2, TotalPages: 2}
	assert.Error(t, bad.Check())

	wrong := Result[string]{PageSize: 10, TotalCount: 21, TotalPages: 2}
	assert.Error(t, wrong.Check())
}

func TestEmptyResult(t *testing.T) {
	r := Empty[int](Query{Page: 1, PageSize: 1})
	assert.NotNil(t, r.Items)
	assert.Len(t, r.Items, 0)
	assert.Equal(t, 0, r.TotalCount)
	assert.Equal(t, 1, r.Page)
	assert.Equal(t, 1, r.PageSize)
	assert.NoError(t, r.Check())
}

func TestFilters(t *testing.T) {
	assert.Equal(t, "(name|email|phoneNumber)@=*jo", Contains("jo", "name", "email", "phoneNumber"))
	assert.Equal(t, "name@=*jo", Contains(" jo ", "name"))
	assert.Empty(t, Contains("", "name"))
	assert.Equal(t, "companyId|eq|c1", Eq("companyId", "c1"))
	assert.Empty(t, Eq("companyId", ""))
	assert.Equal(t, "companyId|eq|c1,name@=*x", And(Eq("companyId", "c1"), "", Contains("x", "name")))
	assert.Empty(t, And("", ""))
}

func TestSortDialects(t *testing.T) {
	fields := []SortField{{Field: "name"}, {Field: "createdAt", Desc: true}}
	assert.Equal(t, "name,-createdAt", FormatSorts(DialectSymbol, fields...))
	assert.Equal(t, "Name,CreatedAt desc", FormatSorts(DialectNamed, fields...))
	assert.Empty(t, FormatSorts(DialectNamed))
}
