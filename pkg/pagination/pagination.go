package pagination

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params holds page-based pagination parameters.
type Params struct {
	Page  int
	Limit int
}

// FromContext extracts page and limit from the echo context, clamping both
// into range.
func FromContext(c echo.Context) Params {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return New(page, limit)
}

// New clamps page to at least 1 and limit into [1, MaxLimit].
func New(page, limit int) Params {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

// Query renders the parameters the clinic API expects.
func (p Params) Query() map[string]string {
	return map[string]string{
		"page":  strconv.Itoa(p.Page),
		"limit": strconv.Itoa(p.Limit),
	}
}

// Page is the API's paged list shape.
type Page[T any] struct {
	Data        []T `json:"data"`
	Total       int `json:"total"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalPages  int `json:"totalPages"`
}

// HasNext returns true if there are more pages after this one.
func (p Page[T]) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

// HasPrevious returns true if this is not the first page.
func (p Page[T]) HasPrevious() bool {
	return p.CurrentPage > 1
}
