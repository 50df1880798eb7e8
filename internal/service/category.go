// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"time"

	"eventbook/internal/store"
)

// CategoryService provides category lookup and persistence. Categories are
// shared between users; no ownership restriction applies.
type CategoryService struct {
	queries *store.Queries
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(db *sql.DB) *CategoryService {
	return &CategoryService{
		queries: store.New(db),
	}
}

// FindOneByID returns the category with the given id. sql.ErrNoRows is
// returned when no such category exists.
func (s *CategoryService) FindOneByID(ctx context.Context, id int64) (store.Category, error) {
	return s.queries.GetCategoryByID(ctx, id)
}

// CreatePaginatedList returns one page of categories, newest first.
func (s *CategoryService) CreatePaginatedList(ctx context.Context, page int) (Page[store.Category], error) {
	total, err := s.queries.CountCategories(ctx)
	if err != nil {
		return Page[store.Category]{}, err
	}

	if page < 1 {
		return emptyPage[store.Category](page, total), nil
	}

	items, err := s.queries.ListCategories(ctx, store.ListCategoriesParams{
		Limit:  ItemsPerPage,
		Offset: offsetFor(page),
	})
	if err != nil {
		return Page[store.Category]{}, err
	}

	return newPage(items, page, total), nil
}

// FindAll returns every category ordered by title, for form choices and
// filter menus.
func (s *CategoryService) FindAll(ctx context.Context) ([]store.Category, error) {
	return s.queries.ListAllCategories(ctx)
}

// Save persists the category. A zero ID creates a new row; otherwise the
// existing row is updated. The entity's ID and timestamps are refreshed.
func (s *CategoryService) Save(ctx context.Context, category *store.Category) error {
	now := time.Now()

	if category.ID == 0 {
		created, err := s.queries.CreateCategory(ctx, store.CreateCategoryParams{
			Title:     category.Title,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return err
		}
		*category = created
		return nil
	}

	if err := s.queries.UpdateCategory(ctx, store.UpdateCategoryParams{
		Title:     category.Title,
		UpdatedAt: now,
		ID:        category.ID,
	}); err != nil {
		return err
	}
	category.UpdatedAt = now
	return nil
}

// Delete removes the category. Deleting a category still referenced by
// events fails with a foreign key error from the store.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	return s.queries.DeleteCategory(ctx, id)
}

// CountEvents returns how many events reference the category.
func (s *CategoryService) CountEvents(ctx context.Context, id int64) (int64, error) {
	return s.queries.CountEventsByCategory(ctx, id)
}
