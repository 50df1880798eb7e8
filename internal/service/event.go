// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"eventbook/internal/store"
)

// EventFilters holds the optional list filters for events. A zero CategoryID
// means no category filter.
type EventFilters struct {
	CategoryID int64
}

// EventService provides event lookup and persistence, including the
// contact associations kept in the join table.
type EventService struct {
	db      *sql.DB
	queries *store.Queries
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{
		db:      db,
		queries: store.New(db),
	}
}

// FindOneByID returns the event with the given id regardless of author.
// sql.ErrNoRows is returned when no such event exists.
func (s *EventService) FindOneByID(ctx context.Context, id int64) (store.Event, error) {
	return s.queries.GetEventByID(ctx, id)
}

// PrepareFilters resolves the raw category filter value from the query
// string. Values that are not positive integers or do not name an existing
// category are dropped silently.
func (s *EventService) PrepareFilters(ctx context.Context, rawCategoryID string) EventFilters {
	if rawCategoryID == "" {
		return EventFilters{}
	}

	id, err := strconv.ParseInt(rawCategoryID, 10, 64)
	if err != nil || id < 1 {
		return EventFilters{}
	}

	if _, err := s.queries.GetCategoryByID(ctx, id); err != nil {
		return EventFilters{}
	}

	return EventFilters{CategoryID: id}
}

// CreatePaginatedList returns one page of the user's events, newest first,
// optionally narrowed by the category filter.
func (s *EventService) CreatePaginatedList(ctx context.Context, authorID int64, page int, filters EventFilters) (Page[store.Event], error) {
	var (
		total int64
		err   error
	)
	if filters.CategoryID != 0 {
		total, err = s.queries.CountEventsByAuthorAndCategory(ctx, store.CountEventsByAuthorAndCategoryParams{
			AuthorID:   authorID,
			CategoryID: filters.CategoryID,
		})
	} else {
		total, err = s.queries.CountEventsByAuthor(ctx, authorID)
	}
	if err != nil {
		return Page[store.Event]{}, err
	}

	if page < 1 {
		return emptyPage[store.Event](page, total), nil
	}

	var items []store.Event
	if filters.CategoryID != 0 {
		items, err = s.queries.ListEventsByAuthorAndCategory(ctx, store.ListEventsByAuthorAndCategoryParams{
			AuthorID:   authorID,
			CategoryID: filters.CategoryID,
			Limit:      ItemsPerPage,
			Offset:     offsetFor(page),
		})
	} else {
		items, err = s.queries.ListEventsByAuthor(ctx, store.ListEventsByAuthorParams{
			AuthorID: authorID,
			Limit:    ItemsPerPage,
			Offset:   offsetFor(page),
		})
	}
	if err != nil {
		return Page[store.Event]{}, err
	}

	return newPage(items, page, total), nil
}

// FindContacts returns the contacts associated with the event.
func (s *EventService) FindContacts(ctx context.Context, eventID int64) ([]store.Contact, error) {
	return s.queries.ListContactsForEvent(ctx, eventID)
}

// Save persists the event and replaces its contact associations in a single
// transaction. A zero ID creates a new row; otherwise the existing row is
// updated. The author never changes on update.
func (s *EventService) Save(ctx context.Context, event *store.Event, contactIDs []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)
	now := time.Now()

	if event.ID == 0 {
		created, err := qtx.CreateEvent(ctx, store.CreateEventParams{
			Title:      event.Title,
			Location:   event.Location,
			Date:       event.Date,
			CategoryID: event.CategoryID,
			AuthorID:   event.AuthorID,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		if err != nil {
			return err
		}
		*event = created
	} else {
		if err := qtx.UpdateEvent(ctx, store.UpdateEventParams{
			Title:      event.Title,
			Location:   event.Location,
			Date:       event.Date,
			CategoryID: event.CategoryID,
			UpdatedAt:  now,
			ID:         event.ID,
		}); err != nil {
			return err
		}
		event.UpdatedAt = now

		if err := qtx.DeleteEventContacts(ctx, event.ID); err != nil {
			return err
		}
	}

	for _, contactID := range contactIDs {
		if err := qtx.AddEventContact(ctx, store.AddEventContactParams{
			EventID:   event.ID,
			ContactID: contactID,
		}); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Delete removes the event. Contact associations are removed by the cascade
// on the join table.
func (s *EventService) Delete(ctx context.Context, id int64) error {
	return s.queries.DeleteEvent(ctx, id)
}
