// Package pagination implements page/limit windowing for list endpoints.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Page describes one adjacent page in a paginated result.
type Page struct {
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
}

// Params is a parsed page/limit pair.
type Params struct {
	Page  int64
	Limit int64
}

// FromRequest reads "page" and "limit" query parameters. Missing, zero,
// negative, or non-numeric values fall back to the defaults.
func FromRequest(r *http.Request) Params {
	return Params{
		Page:  parsePositive(r.URL.Query().Get("page"), DefaultPage),
		Limit: parsePositive(r.URL.Query().Get("limit"), DefaultLimit),
	}
}

func parsePositive(s string, def int64) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// Skip returns the number of documents to skip for this page.
func (p Params) Skip() int64 {
	return (p.Page - 1) * p.Limit
}

// Result wraps a page of items together with descriptors for the pages
// before and after it. Next is present only when documents remain past
// the current window; Previous only when the window does not start at
// the first document.
type Result struct {
	Next     *Page `json:"next,omitempty"`
	Previous *Page `json:"previous,omitempty"`
	Results  any   `json:"results"`
}

// Wrap builds a Result for the given window over total matching documents.
func (p Params) Wrap(items any, total int64) Result {
	res := Result{Results: items}
	if p.Skip() > 0 {
		res.Previous = &Page{Page: p.Page - 1, Limit: p.Limit}
	}
	if p.Skip()+p.Limit < total {
		res.Next = &Page{Page: p.Page + 1, Limit: p.Limit}
	}
	return res
}
