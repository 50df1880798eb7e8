// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides business logic between the HTTP handlers and the
// store: pagination, ownership-scoped listing and persistence of entities.
package service

// ItemsPerPage is the fixed page size for all paginated lists.
const ItemsPerPage = 10

// Page holds one page of a paginated list.
type Page[T any] struct {
	Items       []T
	CurrentPage int
	TotalPages  int
	TotalItems  int64
	PerPage     int
}

// newPage builds a Page from a slice of items and the total row count.
// Requesting a page before the first or past the last yields a page with no
// items rather than an error.
func newPage[T any](items []T, page int, total int64) Page[T] {
	totalPages := int((total + ItemsPerPage - 1) / ItemsPerPage)
	return Page[T]{
		Items:       items,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
		PerPage:     ItemsPerPage,
	}
}

// emptyPage returns a page with no items for out-of-range requests.
func emptyPage[T any](page int, total int64) Page[T] {
	return newPage[T](nil, page, total)
}

// offsetFor converts a 1-based page number to a row offset.
func offsetFor(page int) int64 {
	return int64(page-1) * ItemsPerPage
}
