// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"eventbook/internal/middleware"
)

// Owned is implemented by entities that belong to a single user.
type Owned interface {
	OwnerID() int64
}

// requireOwner enforces that the authenticated user owns the entity. On a
// mismatch it writes a 403 and returns false; the handler must stop.
func requireOwner(w http.ResponseWriter, r *http.Request, entity Owned) bool {
	if entity.OwnerID() != middleware.GetUserID(r) {
		forbidden(w, r)
		return false
	}
	return true
}
