// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"eventbook/internal/i18n"
)

// Locale creates middleware that validates the {locale} URL parameter and
// stores the resolved locale in the request context. Requests with an
// unsupported locale get a 404, matching the route constraint semantics of a
// two-letter prefix.
func Locale() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := strings.ToLower(chi.URLParam(r, "locale"))
			if locale == "" {
				locale = i18n.GetDefaultLocale()
			} else if !i18n.IsSupported(locale) {
				http.NotFound(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyLocale, locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetLocale retrieves the current locale from the request context, falling
// back to the default locale.
func GetLocale(r *http.Request) string {
	locale, ok := r.Context().Value(ContextKeyLocale).(string)
	if !ok || locale == "" {
		return i18n.GetDefaultLocale()
	}
	return locale
}

// DetectLocale picks the best locale for a request without a locale prefix,
// using the Accept-Language header.
func DetectLocale(r *http.Request) string {
	if acceptLang := r.Header.Get("Accept-Language"); acceptLang != "" {
		return i18n.MatchLocale(acceptLang)
	}
	return i18n.GetDefaultLocale()
}
