package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePaginationDefaults(t *testing.T) {
	p := ParsePagination(url.Values{})
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Empty(t, p.Search)
	assert.Empty(t, p.SortOrder)
	assert.Zero(t, p.Offset())
}

func TestParsePaginationClampsValues(t *testing.T) {
	p := ParsePagination(url.Values{"page": {"0"}, "limit": {"500"}})
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxLimit, p.Limit)

	p = ParsePagination(url.Values{"page": {"-3"}, "limit": {"-1"}})
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)

	p = ParsePagination(url.Values{"page": {"abc"}, "limit": {"xyz"}})
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
}

func TestParsePaginationReadsSortAndSearch(t *testing.T) {
	p := ParsePagination(url.Values{
		"page":      {"3"},
		"limit":     {"25"},
		"search":    {"rooftop"},
		"sortBy":    {"start"},
		"sortOrder": {"desc"},
	})
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 25, p.Limit)
	assert.Equal(t, "rooftop", p.Search)
	assert.Equal(t, "start", p.SortBy)
	assert.Equal(t, "desc", p.SortOrder)
	assert.Equal(t, 50, p.Offset())

	p = ParsePagination(url.Values{"sortOrder": {"sideways"}})
	assert.Empty(t, p.SortOrder, "unknown sort orders are discarded")
}

func TestNewListResponse(t *testing.T) {
	resp := NewListResponse([]string{"a", "b"}, 21, 10)
	assert.Equal(t, 21, resp.TotalData)
	assert.Equal(t, 3, resp.TotalPage)

	resp = NewListResponse(nil, 0, 10)
	assert.Zero(t, resp.TotalPage)
}
