// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"eventbook/internal/i18n"
	"eventbook/internal/middleware"
	"eventbook/internal/render"
)

// localePath prefixes a path with the request's locale segment.
func localePath(r *http.Request, path string) string {
	return "/" + middleware.GetLocale(r) + path
}

// flashAndRedirect sets a flash message and redirects to the given URL.
// Uses http.StatusSeeOther (303) for POST/PUT/DELETE redirects.
func flashAndRedirect(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message, messageType string) {
	renderer.SetFlash(r, message, messageType)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// flashSuccess sets a success flash message and redirects to the given URL.
func flashSuccess(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, "success")
}

// notFound writes a localized 404 response.
func notFound(w http.ResponseWriter, r *http.Request) {
	http.Error(w, i18n.T(middleware.GetLocale(r), "error.not_found"), http.StatusNotFound)
}

// forbidden writes a localized 403 response.
func forbidden(w http.ResponseWriter, r *http.Request) {
	http.Error(w, i18n.T(middleware.GetLocale(r), "error.forbidden"), http.StatusForbidden)
}

// logAndInternalError logs an error and writes a 500 response.
func logAndInternalError(w http.ResponseWriter, r *http.Request, logMsg string, args ...any) {
	slog.Error(logMsg, args...)
	http.Error(w, i18n.T(middleware.GetLocale(r), "error.internal"), http.StatusInternalServerError)
}

// parseIDParam reads the id URL parameter. The route pattern already
// constrains it to a positive integer, so a parse failure means a routing
// misconfiguration rather than bad input.
func parseIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing id %q: %w", raw, err)
	}
	return id, nil
}

// requireEntity fetches an entity by the id URL parameter. A missing row
// yields a 404, any other failure a 500. Returns the zero value and false
// when the response has already been written.
func requireEntity[T any](w http.ResponseWriter, r *http.Request, entityName string, queryFn func(id int64) (T, error)) (T, bool) {
	var zero T

	id, err := parseIDParam(r)
	if err != nil {
		notFound(w, r)
		return zero, false
	}

	entity, err := queryFn(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			notFound(w, r)
		} else {
			logAndInternalError(w, r, "failed to get "+entityName, "error", err, entityName+"_id", id)
		}
		return zero, false
	}

	return entity, true
}
