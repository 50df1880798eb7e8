package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"eventbook/internal/service"
)

// Pagination holds pagination data for listing templates.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int64
	PerPage     int
	HasPrev     bool
	HasNext     bool
	PrevURL     string
	NextURL     string
	Pages       []PaginationPage
}

// PaginationPage represents a single page link.
type PaginationPage struct {
	Number    int
	URL       string
	IsCurrent bool
}

// parsePageParam reads the page query parameter, defaulting to 1. Values
// that are not positive integers fall back to 1.
func parsePageParam(r *http.Request) int {
	raw := r.URL.Query().Get(QueryParamPage)
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// buildPagination creates pagination data for a listing page. baseURL is the
// path without query string; queryParams are preserved on every page link
// (the event list keeps its category filter this way).
func buildPagination[T any](page service.Page[T], baseURL string, queryParams url.Values) Pagination {
	params := make(url.Values)
	for k, v := range queryParams {
		if k != QueryParamPage && len(v) > 0 && v[0] != "" {
			params[k] = v
		}
	}

	buildURL := func(page int) string {
		if len(params) > 0 {
			return fmt.Sprintf("%s?%s&%s=%d", baseURL, params.Encode(), QueryParamPage, page)
		}
		return fmt.Sprintf("%s?%s=%d", baseURL, QueryParamPage, page)
	}

	p := Pagination{
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
		TotalItems:  page.TotalItems,
		PerPage:     page.PerPage,
		HasPrev:     page.CurrentPage > 1,
		HasNext:     page.CurrentPage < page.TotalPages,
	}
	if p.HasPrev {
		p.PrevURL = buildURL(page.CurrentPage - 1)
	}
	if p.HasNext {
		p.NextURL = buildURL(page.CurrentPage + 1)
	}

	for i := 1; i <= page.TotalPages; i++ {
		p.Pages = append(p.Pages, PaginationPage{
			Number:    i,
			URL:       buildURL(i),
			IsCurrent: i == page.CurrentPage,
		})
	}

	return p
}
