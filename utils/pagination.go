package utils

import (
	"net/url"
	"strconv"
)

// Default pagination values
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Pagination holds parsed list-query parameters.
type Pagination struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
}

// Offset returns the number of entries to skip.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParsePagination reads page/limit/search/sort parameters from a query
// string, clamping page to >= 1 and limit to 1..100.
func ParsePagination(query url.Values) Pagination {
	page, err := strconv.Atoi(query.Get("page"))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	limit := DefaultLimit
	if raw := query.Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	sortOrder := query.Get("sortOrder")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = ""
	}

	return Pagination{
		Page:      page,
		Limit:     limit,
		Search:    query.Get("search"),
		SortBy:    query.Get("sortBy"),
		SortOrder: sortOrder,
	}
}

// NewListResponse builds the paginated envelope for a page of entries.
func NewListResponse(entries interface{}, totalData, limit int) ListResponse {
	totalPage := 0
	if limit > 0 {
		totalPage = (totalData + limit - 1) / limit
	}
	return ListResponse{
		TotalData: totalData,
		TotalPage: totalPage,
		Entries:   entries,
	}
}
