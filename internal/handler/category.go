// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"strings"

	"eventbook/internal/i18n"
	"eventbook/internal/middleware"
	"eventbook/internal/render"
	"eventbook/internal/service"
	"eventbook/internal/store"
)

// CategoryHandler handles category CRUD routes. Categories are shared
// between users, so no ownership guard applies.
type CategoryHandler struct {
	service  *service.CategoryService
	renderer *render.Renderer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(db *sql.DB, renderer *render.Renderer) *CategoryHandler {
	return &CategoryHandler{
		service:  service.NewCategoryService(db),
		renderer: renderer,
	}
}

// CategoryListData is the view model for the category listing.
type CategoryListData struct {
	Categories []store.Category
	Pagination Pagination
}

// CategoryFormData is the view model for the category create/edit form.
type CategoryFormData struct {
	Category store.Category
	Errors   map[string]string
}

// CategoryShowData is the view model for the category detail page.
type CategoryShowData struct {
	Category   store.Category
	EventCount int64
}

// List renders the paginated category listing.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	locale := middleware.GetLocale(r)

	page, err := h.service.CreatePaginatedList(r.Context(), parsePageParam(r))
	if err != nil {
		logAndInternalError(w, r, "failed to list categories", "error", err)
		return
	}

	data := CategoryListData{
		Categories: page.Items,
		Pagination: buildPagination(page, localePath(r, RouteCategories), nil),
	}
	if err := h.renderer.Render(w, r, "category/list", render.TemplateData{
		Title: i18n.T(locale, "title.categories"),
		Data:  data,
	}); err != nil {
		logAndInternalError(w, r, "failed to render category list", "error", err)
	}
}

// CreateForm renders the empty category form.
func (h *CategoryHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, "title.category_new", CategoryFormData{})
}

// Create handles the category form submission.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	locale := middleware.GetLocale(r)

	if err := r.ParseForm(); err != nil {
		notFound(w, r)
		return
	}

	category := store.Category{Title: strings.TrimSpace(r.FormValue("title"))}
	if errs := validateCategory(category, locale); len(errs) > 0 {
		h.renderForm(w, r, "title.category_new", CategoryFormData{Category: category, Errors: errs})
		return
	}

	if err := h.service.Save(r.Context(), &category); err != nil {
		logAndInternalError(w, r, "failed to create category", "error", err)
		return
	}

	flashSuccess(w, r, h.renderer, localePath(r, RouteCategories), i18n.T(locale, "category_created.success"))
}

// Show renders the category detail page.
func (h *CategoryHandler) Show(w http.ResponseWriter, r *http.Request) {
	category, ok := requireEntity(w, r, "category", func(id int64) (store.Category, error) {
		return h.service.FindOneByID(r.Context(), id)
	})
	if !ok {
		return
	}

	count, err := h.service.CountEvents(r.Context(), category.ID)
	if err != nil {
		logAndInternalError(w, r, "failed to count category events", "error", err, "category_id", category.ID)
		return
	}

	locale := middleware.GetLocale(r)
	if err := h.renderer.Render(w, r, "category/show", render.TemplateData{
		Title: category.Title,
		Data:  CategoryShowData{Category: category, EventCount: count},
	}); err != nil {
		logAndInternalError(w, r, "failed to render category", "error", err, "locale", locale)
	}
}

// EditForm renders the category form pre-populated with current values.
func (h *CategoryHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	category, ok := requireEntity(w, r, "category", func(id int64) (store.Category, error) {
		return h.service.FindOneByID(r.Context(), id)
	})
	if !ok {
		return
	}

	h.renderForm(w, r, "title.category_edit", CategoryFormData{Category: category})
}

// Update handles the category edit form submission.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	category, ok := requireEntity(w, r, "category", func(id int64) (store.Category, error) {
		return h.service.FindOneByID(r.Context(), id)
	})
	if !ok {
		return
	}

	locale := middleware.GetLocale(r)
	if err := r.ParseForm(); err != nil {
		notFound(w, r)
		return
	}

	category.Title = strings.TrimSpace(r.FormValue("title"))
	if errs := validateCategory(category, locale); len(errs) > 0 {
		h.renderForm(w, r, "title.category_edit", CategoryFormData{Category: category, Errors: errs})
		return
	}

	if err := h.service.Save(r.Context(), &category); err != nil {
		logAndInternalError(w, r, "failed to update category", "error", err, "category_id", category.ID)
		return
	}

	flashSuccess(w, r, h.renderer, localePath(r, RouteCategories), i18n.T(locale, "category_updated.success"))
}

// DeleteForm renders the delete confirmation page.
func (h *CategoryHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	category, ok := requireEntity(w, r, "category", func(id int64) (store.Category, error) {
		return h.service.FindOneByID(r.Context(), id)
	})
	if !ok {
		return
	}

	locale := middleware.GetLocale(r)
	if err := h.renderer.Render(w, r, "category/delete", render.TemplateData{
		Title: i18n.T(locale, "title.category_delete"),
		Data:  CategoryShowData{Category: category},
	}); err != nil {
		logAndInternalError(w, r, "failed to render category delete page", "error", err)
	}
}

// Delete removes the category. A category still referenced by events is
// rejected rather than deleted with a dangling reference.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	category, ok := requireEntity(w, r, "category", func(id int64) (store.Category, error) {
		return h.service.FindOneByID(r.Context(), id)
	})
	if !ok {
		return
	}

	locale := middleware.GetLocale(r)
	listURL := localePath(r, RouteCategories)

	count, err := h.service.CountEvents(r.Context(), category.ID)
	if err != nil {
		logAndInternalError(w, r, "failed to count category events", "error", err, "category_id", category.ID)
		return
	}
	if count > 0 {
		flashAndRedirect(w, r, h.renderer, listURL, i18n.T(locale, "category_in_use.error"), "error")
		return
	}

	if err := h.service.Delete(r.Context(), category.ID); err != nil {
		logAndInternalError(w, r, "failed to delete category", "error", err, "category_id", category.ID)
		return
	}

	flashSuccess(w, r, h.renderer, listURL, i18n.T(locale, "category_deleted.success"))
}

func (h *CategoryHandler) renderForm(w http.ResponseWriter, r *http.Request, titleKey string, data CategoryFormData) {
	locale := middleware.GetLocale(r)
	if err := h.renderer.Render(w, r, "category/form", render.TemplateData{
		Title: i18n.T(locale, titleKey),
		Data:  data,
	}); err != nil {
		logAndInternalError(w, r, "failed to render category form", "error", err)
	}
}

// validateCategory checks the category form fields.
func validateCategory(category store.Category, locale string) map[string]string {
	errs := make(map[string]string)
	if msg := validateRequired(category.Title, locale); msg != "" {
		errs["title"] = msg
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
