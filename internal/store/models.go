// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store provides database access: connection setup, migrations,
// row types and hand-written queries for all entities.
package store

import (
	"database/sql"
	"time"
)

// User roles. Every account carries at least RoleUser.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account that owns contacts and events.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  sql.NullTime
}

// IsAdmin returns true if the user has admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Category is a shared event category. No ownership restriction applies.
type Category struct {
	ID        int64
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contact is a personal contact owned by exactly one user for its
// entire lifecycle.
type Contact struct {
	ID        int64
	FirstName string
	LastName  string
	Address   sql.NullString
	Phone     sql.NullString
	UserID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnerID returns the id of the owning user.
func (c Contact) OwnerID() int64 {
	return c.UserID
}

// FullName returns the contact's display name.
func (c Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Event is a calendar entry owned by its author. The category reference is
// optional; associated contacts live in the event_contacts join table.
type Event struct {
	ID         int64
	Title      string
	Location   sql.NullString
	Date       time.Time
	CategoryID sql.NullInt64
	AuthorID   int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OwnerID returns the id of the owning user (the author).
func (e Event) OwnerID() int64 {
	return e.AuthorID
}

// Audit log levels.
const (
	AuditLevelInfo    = "info"
	AuditLevelWarning = "warning"
	AuditLevelError   = "error"
)

// Audit log categories.
const (
	AuditCategoryAuth     = "auth"
	AuditCategoryCategory = "category"
	AuditCategoryContact  = "contact"
	AuditCategoryEvent    = "event"
	AuditCategorySystem   = "system"
)

// AuditEntry is a row of the audit_log table, written by the logging handler.
type AuditEntry struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	Metadata  string
	CreatedAt time.Time
}
