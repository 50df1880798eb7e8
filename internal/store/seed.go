package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"eventbook/internal/auth"
)

// Default seeded credentials
const (
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "admin1234"
	DefaultAdminName     = "Administrator"

	DefaultUserEmail    = "user@example.com"
	DefaultUserPassword = "user1234"
	DefaultUserName     = "Demo User"
)

// Seed creates initial accounts and demo content. It is idempotent: when the
// admin account already exists the whole run is skipped.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	_, err := queries.GetUserByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	now := time.Now()

	adminHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}
	admin, err := queries.CreateUser(ctx, CreateUserParams{
		Email:        DefaultAdminEmail,
		PasswordHash: adminHash,
		Role:         RoleAdmin,
		Name:         DefaultAdminName,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	userHash, err := auth.HashPassword(DefaultUserPassword)
	if err != nil {
		return fmt.Errorf("hashing user password: %w", err)
	}
	user, err := queries.CreateUser(ctx, CreateUserParams{
		Email:        DefaultUserEmail,
		PasswordHash: userHash,
		Role:         RoleUser,
		Name:         DefaultUserName,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating demo user: %w", err)
	}

	categoryIDs, err := seedCategories(ctx, queries)
	if err != nil {
		return fmt.Errorf("seeding categories: %w", err)
	}

	contactIDs, err := seedContacts(ctx, queries, user.ID)
	if err != nil {
		return fmt.Errorf("seeding contacts: %w", err)
	}

	if err := seedEvents(ctx, queries, user.ID, categoryIDs, contactIDs); err != nil {
		return fmt.Errorf("seeding events: %w", err)
	}

	slog.Info("seeded initial data",
		"admin_id", admin.ID,
		"admin_email", DefaultAdminEmail,
		"user_id", user.ID,
		"user_email", DefaultUserEmail,
	)

	return nil
}

func seedCategories(ctx context.Context, queries *Queries) (map[string]int64, error) {
	now := time.Now()
	titles := []string{"Meeting", "Birthday", "Conference", "Private"}

	ids := make(map[string]int64, len(titles))
	for _, title := range titles {
		category, err := queries.CreateCategory(ctx, CreateCategoryParams{
			Title:     title,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return nil, fmt.Errorf("creating category %q: %w", title, err)
		}
		ids[title] = category.ID
	}
	return ids, nil
}

func seedContacts(ctx context.Context, queries *Queries, userID int64) (map[string]int64, error) {
	now := time.Now()
	contacts := []CreateContactParams{
		{
			FirstName: "Anna",
			LastName:  "Kowalska",
			Address:   sql.NullString{String: "ul. Polna 3, Warszawa", Valid: true},
			Phone:     sql.NullString{String: "+48 600 100 200", Valid: true},
		},
		{
			FirstName: "Jan",
			LastName:  "Nowak",
			Phone:     sql.NullString{String: "+48 600 300 400", Valid: true},
		},
		{
			FirstName: "Maria",
			LastName:  "Wojcik",
		},
	}

	ids := make(map[string]int64, len(contacts))
	for _, c := range contacts {
		c.UserID = userID
		c.CreatedAt = now
		c.UpdatedAt = now
		contact, err := queries.CreateContact(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("creating contact %s %s: %w", c.FirstName, c.LastName, err)
		}
		ids[contact.FullName()] = contact.ID
	}
	return ids, nil
}

func seedEvents(ctx context.Context, queries *Queries, authorID int64, categoryIDs, contactIDs map[string]int64) error {
	now := time.Now()
	events := []struct {
		title    string
		location string
		date     time.Time
		category string
		contacts []string
	}{
		{
			title:    "Team standup",
			location: "Office, room 12",
			date:     now.Add(24 * time.Hour),
			category: "Meeting",
			contacts: []string{"Anna Kowalska", "Jan Nowak"},
		},
		{
			title:    "GopherCon recap",
			location: "Online",
			date:     now.Add(7 * 24 * time.Hour),
			category: "Conference",
			contacts: []string{"Jan Nowak"},
		},
		{
			title: "Dentist",
			date:  now.Add(14 * 24 * time.Hour),
		},
	}

	for _, ev := range events {
		params := CreateEventParams{
			Title:     ev.title,
			Date:      ev.date,
			AuthorID:  authorID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if ev.location != "" {
			params.Location = sql.NullString{String: ev.location, Valid: true}
		}
		if ev.category != "" {
			if id, ok := categoryIDs[ev.category]; ok {
				params.CategoryID = sql.NullInt64{Int64: id, Valid: true}
			}
		}
		event, err := queries.CreateEvent(ctx, params)
		if err != nil {
			return fmt.Errorf("creating event %q: %w", ev.title, err)
		}
		for _, name := range ev.contacts {
			id, ok := contactIDs[name]
			if !ok {
				continue
			}
			if err := queries.AddEventContact(ctx, AddEventContactParams{
				EventID:   event.ID,
				ContactID: id,
			}); err != nil {
				return fmt.Errorf("linking contact to event %q: %w", ev.title, err)
			}
		}
	}
	return nil
}
