// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const createEvent = `
INSERT INTO events (title, location, date, category_id, author_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

type CreateEventParams struct {
	Title      string
	Location   sql.NullString
	Date       time.Time
	CategoryID sql.NullInt64
	AuthorID   int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (Event, error) {
	result, err := q.db.ExecContext(ctx, createEvent,
		arg.Title,
		arg.Location,
		arg.Date,
		arg.CategoryID,
		arg.AuthorID,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	if err != nil {
		return Event{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return Event{}, err
	}
	return q.GetEventByID(ctx, id)
}

const getEventByID = `
SELECT id, title, location, date, category_id, author_id, created_at, updated_at
FROM events
WHERE id = ?
`

func (q *Queries) GetEventByID(ctx context.Context, id int64) (Event, error) {
	row := q.db.QueryRowContext(ctx, getEventByID, id)
	var e Event
	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Location,
		&e.Date,
		&e.CategoryID,
		&e.AuthorID,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

const listEventsByAuthor = `
SELECT id, title, location, date, category_id, author_id, created_at, updated_at
FROM events
WHERE author_id = ?
ORDER BY id DESC
LIMIT ? OFFSET ?
`

type ListEventsByAuthorParams struct {
	AuthorID int64
	Limit    int64
	Offset   int64
}

func (q *Queries) ListEventsByAuthor(ctx context.Context, arg ListEventsByAuthorParams) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx, listEventsByAuthor, arg.AuthorID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

const listEventsByAuthorAndCategory = `
SELECT id, title, location, date, category_id, author_id, created_at, updated_at
FROM events
WHERE author_id = ? AND category_id = ?
ORDER BY id DESC
LIMIT ? OFFSET ?
`

type ListEventsByAuthorAndCategoryParams struct {
	AuthorID   int64
	CategoryID int64
	Limit      int64
	Offset     int64
}

func (q *Queries) ListEventsByAuthorAndCategory(ctx context.Context, arg ListEventsByAuthorAndCategoryParams) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx, listEventsByAuthorAndCategory,
		arg.AuthorID, arg.CategoryID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

const countEventsByAuthor = `
SELECT COUNT(*) FROM events WHERE author_id = ?
`

func (q *Queries) CountEventsByAuthor(ctx context.Context, authorID int64) (int64, error) {
	row := q.db.QueryRowContext(ctx, countEventsByAuthor, authorID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countEventsByAuthorAndCategory = `
SELECT COUNT(*) FROM events WHERE author_id = ? AND category_id = ?
`

type CountEventsByAuthorAndCategoryParams struct {
	AuthorID   int64
	CategoryID int64
}

func (q *Queries) CountEventsByAuthorAndCategory(ctx context.Context, arg CountEventsByAuthorAndCategoryParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, countEventsByAuthorAndCategory, arg.AuthorID, arg.CategoryID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const updateEvent = `
UPDATE events
SET title = ?, location = ?, date = ?, category_id = ?, updated_at = ?
WHERE id = ?
`

type UpdateEventParams struct {
	Title      string
	Location   sql.NullString
	Date       time.Time
	CategoryID sql.NullInt64
	UpdatedAt  time.Time
	ID         int64
}

func (q *Queries) UpdateEvent(ctx context.Context, arg UpdateEventParams) error {
	_, err := q.db.ExecContext(ctx, updateEvent,
		arg.Title,
		arg.Location,
		arg.Date,
		arg.CategoryID,
		arg.UpdatedAt,
		arg.ID,
	)
	return err
}

const deleteEvent = `
DELETE FROM events WHERE id = ?
`

func (q *Queries) DeleteEvent(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteEvent, id)
	return err
}

const addEventContact = `
INSERT OR IGNORE INTO event_contacts (event_id, contact_id)
VALUES (?, ?)
`

type AddEventContactParams struct {
	EventID   int64
	ContactID int64
}

func (q *Queries) AddEventContact(ctx context.Context, arg AddEventContactParams) error {
	_, err := q.db.ExecContext(ctx, addEventContact, arg.EventID, arg.ContactID)
	return err
}

const deleteEventContacts = `
DELETE FROM event_contacts WHERE event_id = ?
`

func (q *Queries) DeleteEventContacts(ctx context.Context, eventID int64) error {
	_, err := q.db.ExecContext(ctx, deleteEventContacts, eventID)
	return err
}

const listContactsForEvent = `
SELECT c.id, c.first_name, c.last_name, c.address, c.phone, c.user_id, c.created_at, c.updated_at
FROM contacts c
JOIN event_contacts ec ON ec.contact_id = c.id
WHERE ec.event_id = ?
ORDER BY c.last_name, c.first_name
`

func (q *Queries) ListContactsForEvent(ctx context.Context, eventID int64) ([]Contact, error) {
	rows, err := q.db.QueryContext(ctx, listContactsForEvent, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanContacts(rows)
}

const listEventsForContact = `
SELECT e.id, e.title, e.location, e.date, e.category_id, e.author_id, e.created_at, e.updated_at
FROM events e
JOIN event_contacts ec ON ec.event_id = e.id
WHERE ec.contact_id = ?
ORDER BY e.date DESC
`

func (q *Queries) ListEventsForContact(ctx context.Context, contactID int64) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx, listEventsForContact, contactID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]Event, error) {
	var items []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(
			&e.ID,
			&e.Title,
			&e.Location,
			&e.Date,
			&e.CategoryID,
			&e.AuthorID,
			&e.CreatedAt,
			&e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}
