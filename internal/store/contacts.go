// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const createContact = `
INSERT INTO contacts (first_name, last_name, address, phone, user_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

type CreateContactParams struct {
	FirstName string
	LastName  string
	Address   sql.NullString
	Phone     sql.NullString
	UserID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Queries) CreateContact(ctx context.Context, arg CreateContactParams) (Contact, error) {
	result, err := q.db.ExecContext(ctx, createContact,
		arg.FirstName,
		arg.LastName,
		arg.Address,
		arg.Phone,
		arg.UserID,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	if err != nil {
		return Contact{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return Contact{}, err
	}
	return q.GetContactByID(ctx, id)
}

const getContactByID = `
SELECT id, first_name, last_name, address, phone, user_id, created_at, updated_at
FROM contacts
WHERE id = ?
`

func (q *Queries) GetContactByID(ctx context.Context, id int64) (Contact, error) {
	row := q.db.QueryRowContext(ctx, getContactByID, id)
	var c Contact
	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Address,
		&c.Phone,
		&c.UserID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

const listContactsByOwner = `
SELECT id, first_name, last_name, address, phone, user_id, created_at, updated_at
FROM contacts
WHERE user_id = ?
ORDER BY id DESC
LIMIT ? OFFSET ?
`

type ListContactsByOwnerParams struct {
	UserID int64
	Limit  int64
	Offset int64
}

func (q *Queries) ListContactsByOwner(ctx context.Context, arg ListContactsByOwnerParams) ([]Contact, error) {
	rows, err := q.db.QueryContext(ctx, listContactsByOwner, arg.UserID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanContacts(rows)
}

const listAllContactsByOwner = `
SELECT id, first_name, last_name, address, phone, user_id, created_at, updated_at
FROM contacts
WHERE user_id = ?
ORDER BY last_name, first_name
`

// ListAllContactsByOwner returns every contact of the user ordered by name,
// used to build the contact choices on event forms.
func (q *Queries) ListAllContactsByOwner(ctx context.Context, userID int64) ([]Contact, error) {
	rows, err := q.db.QueryContext(ctx, listAllContactsByOwner, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanContacts(rows)
}

const countContactsByOwner = `
SELECT COUNT(*) FROM contacts WHERE user_id = ?
`

func (q *Queries) CountContactsByOwner(ctx context.Context, userID int64) (int64, error) {
	row := q.db.QueryRowContext(ctx, countContactsByOwner, userID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const updateContact = `
UPDATE contacts
SET first_name = ?, last_name = ?, address = ?, phone = ?, updated_at = ?
WHERE id = ?
`

type UpdateContactParams struct {
	FirstName string
	LastName  string
	Address   sql.NullString
	Phone     sql.NullString
	UpdatedAt time.Time
	ID        int64
}

func (q *Queries) UpdateContact(ctx context.Context, arg UpdateContactParams) error {
	_, err := q.db.ExecContext(ctx, updateContact,
		arg.FirstName,
		arg.LastName,
		arg.Address,
		arg.Phone,
		arg.UpdatedAt,
		arg.ID,
	)
	return err
}

const deleteContact = `
DELETE FROM contacts WHERE id = ?
`

func (q *Queries) DeleteContact(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteContact, id)
	return err
}

func scanContacts(rows *sql.Rows) ([]Contact, error) {
	var items []Contact
	for rows.Next() {
		var c Contact
		if err := rows.Scan(
			&c.ID,
			&c.FirstName,
			&c.LastName,
			&c.Address,
			&c.Phone,
			&c.UserID,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}
