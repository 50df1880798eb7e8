// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"eventbook/internal/auth"
	"eventbook/internal/i18n"
	"eventbook/internal/middleware"
	"eventbook/internal/render"
	"eventbook/internal/store"
)

// AuthHandler handles the login and logout routes.
type AuthHandler struct {
	queries         *store.Queries
	renderer        *render.Renderer
	sessionManager  *scs.SessionManager
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		queries:         store.New(db),
		renderer:        renderer,
		sessionManager:  sm,
		loginProtection: lp,
	}
}

// LoginForm renders the login page. Already-authenticated users are sent to
// the homepage.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.sessionManager.GetInt64(r.Context(), middleware.SessionKeyUserID) > 0 {
		http.Redirect(w, r, localePath(r, RouteRoot), http.StatusSeeOther)
		return
	}

	locale := middleware.GetLocale(r)
	if err := h.renderer.Render(w, r, "auth/login", render.TemplateData{
		Title: i18n.T(locale, "title.login"),
	}); err != nil {
		logAndInternalError(w, r, "failed to render login page", "error", err)
	}
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	locale := middleware.GetLocale(r)
	loginURL := localePath(r, RouteLogin)

	if err := r.ParseForm(); err != nil {
		flashAndRedirect(w, r, h.renderer, loginURL, i18n.T(locale, "login.invalid_credentials"), "error")
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	if email == "" || password == "" {
		flashAndRedirect(w, r, h.renderer, loginURL, i18n.T(locale, "login.invalid_credentials"), "error")
		return
	}

	if locked, _ := h.loginProtection.IsAccountLocked(email); locked {
		slog.Warn("login attempt on locked account", "email", email)
		flashAndRedirect(w, r, h.renderer, loginURL, i18n.T(locale, "login.rate_limited"), "error")
		return
	}

	user, err := h.queries.GetUserByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Warn("login failed: user not found", "email", email)
		} else {
			slog.Error("database error during login", "error", err)
		}
		// Record failed attempts for unknown emails too, to prevent
		// account enumeration through lockout behavior.
		h.recordFailure(w, r, email, loginURL, locale)
		return
	}

	valid, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		slog.Error("password check error", "error", err)
		flashAndRedirect(w, r, h.renderer, loginURL, i18n.T(locale, "login.invalid_credentials"), "error")
		return
	}
	if !valid {
		slog.Warn("login failed: invalid password", "email", email, "user_id", user.ID)
		h.recordFailure(w, r, email, loginURL, locale)
		return
	}

	h.loginProtection.RecordSuccessfulLogin(email)

	if err := h.queries.UpdateUserLastLogin(r.Context(), store.UpdateUserLastLoginParams{
		LastLoginAt: time.Now(),
		ID:          user.ID,
	}); err != nil {
		// Not worth blocking the login over.
		slog.Error("failed to update last login time", "error", err, "user_id", user.ID)
	}

	// Regenerate the session ID to prevent session fixation.
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, r, "session renewal error", "error", err)
		return
	}
	h.sessionManager.Put(r.Context(), middleware.SessionKeyUserID, user.ID)

	slog.Info("user logged in", "user_id", user.ID, "email", user.Email)
	flashSuccess(w, r, h.renderer, localePath(r, RouteRoot), i18n.T(locale, "login.success"))
}

// recordFailure records a failed login attempt and redirects with an error
// flash, using the lockout message once the threshold is reached.
func (h *AuthHandler) recordFailure(w http.ResponseWriter, r *http.Request, email, loginURL, locale string) {
	if locked, _ := h.loginProtection.RecordFailedAttempt(email); locked {
		flashAndRedirect(w, r, h.renderer, loginURL, i18n.T(locale, "login.rate_limited"), "error")
		return
	}
	flashAndRedirect(w, r, h.renderer, loginURL, i18n.T(locale, "login.invalid_credentials"), "error")
}

// Logout destroys the session and redirects to the login page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := h.sessionManager.GetInt64(r.Context(), middleware.SessionKeyUserID)

	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		slog.Error("session destroy error", "error", err)
	}

	if userID > 0 {
		slog.Info("user logged out", "user_id", userID)
	}

	locale := middleware.GetLocale(r)
	flashAndRedirect(w, r, h.renderer, localePath(r, RouteLogin), i18n.T(locale, "logout.success"), "info")
}
