// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"time"

	"eventbook/internal/store"
)

// ContactService provides contact lookup and persistence. Every query is
// scoped to the owning user except FindOneByID, whose result the caller must
// pass through an ownership check.
type ContactService struct {
	queries *store.Queries
}

// NewContactService creates a new ContactService.
func NewContactService(db *sql.DB) *ContactService {
	return &ContactService{
		queries: store.New(db),
	}
}

// FindOneByID returns the contact with the given id regardless of owner.
// sql.ErrNoRows is returned when no such contact exists.
func (s *ContactService) FindOneByID(ctx context.Context, id int64) (store.Contact, error) {
	return s.queries.GetContactByID(ctx, id)
}

// CreatePaginatedList returns one page of the user's contacts, newest first.
func (s *ContactService) CreatePaginatedList(ctx context.Context, userID int64, page int) (Page[store.Contact], error) {
	total, err := s.queries.CountContactsByOwner(ctx, userID)
	if err != nil {
		return Page[store.Contact]{}, err
	}

	if page < 1 {
		return emptyPage[store.Contact](page, total), nil
	}

	items, err := s.queries.ListContactsByOwner(ctx, store.ListContactsByOwnerParams{
		UserID: userID,
		Limit:  ItemsPerPage,
		Offset: offsetFor(page),
	})
	if err != nil {
		return Page[store.Contact]{}, err
	}

	return newPage(items, page, total), nil
}

// FindAllByOwner returns every contact of the user ordered by name, for the
// contact choices on event forms.
func (s *ContactService) FindAllByOwner(ctx context.Context, userID int64) ([]store.Contact, error) {
	return s.queries.ListAllContactsByOwner(ctx, userID)
}

// FindEvents returns the events the contact is associated with.
func (s *ContactService) FindEvents(ctx context.Context, contactID int64) ([]store.Event, error) {
	return s.queries.ListEventsForContact(ctx, contactID)
}

// Save persists the contact. A zero ID creates a new row; otherwise the
// existing row is updated. The owner never changes on update.
func (s *ContactService) Save(ctx context.Context, contact *store.Contact) error {
	now := time.Now()

	if contact.ID == 0 {
		created, err := s.queries.CreateContact(ctx, store.CreateContactParams{
			FirstName: contact.FirstName,
			LastName:  contact.LastName,
			Address:   contact.Address,
			Phone:     contact.Phone,
			UserID:    contact.UserID,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return err
		}
		*contact = created
		return nil
	}

	if err := s.queries.UpdateContact(ctx, store.UpdateContactParams{
		FirstName: contact.FirstName,
		LastName:  contact.LastName,
		Address:   contact.Address,
		Phone:     contact.Phone,
		UpdatedAt: now,
		ID:        contact.ID,
	}); err != nil {
		return err
	}
	contact.UpdatedAt = now
	return nil
}

// Delete removes the contact. Event associations are removed by the cascade
// on the join table.
func (s *ContactService) Delete(ctx context.Context, id int64) error {
	return s.queries.DeleteContact(ctx, id)
}
