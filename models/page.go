package models

import (
	"net/url"
	"strconv"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page is the paginated list envelope returned by list endpoints
type Page[T any] struct {
	Items []T `json:"items"`
	Page  int `json:"page"`
	Size  int `json:"size"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// HasNext returns true if another page follows this one
func (p *Page[T]) HasNext() bool {
	return p.Page < p.Pages
}

// PageRequest selects one page of a list endpoint
type PageRequest struct {
	Page int `validate:"gte=0"`
	Size int `validate:"gte=0,lte=100"`
}

// Normalize fills in defaults for zero values
func (r PageRequest) Normalize(defaultSize int) PageRequest {
	if r.Page <= 0 {
		r.Page = 1
	}
	if r.Size <= 0 {
		r.Size = defaultSize
	}
	if r.Size > MaxPageSize {
		r.Size = MaxPageSize
	}
	return r
}

// Values encodes the request as query parameters
func (r PageRequest) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(r.Page))
	v.Set("size", strconv.Itoa(r.Size))
	return v
}
