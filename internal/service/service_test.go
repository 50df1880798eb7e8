package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"eventbook/internal/store"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp("", "eventbook-service-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := store.Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

func createTestUser(t *testing.T, db *sql.DB, email string) store.User {
	t.Helper()

	now := time.Now()
	user, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		Email:        email,
		PasswordHash: "hash",
		Role:         store.RoleUser,
		Name:         "Test User",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}

func createTestContact(t *testing.T, svc *ContactService, userID int64, firstName, lastName string) store.Contact {
	t.Helper()

	contact := store.Contact{
		FirstName: firstName,
		LastName:  lastName,
		UserID:    userID,
	}
	if err := svc.Save(context.Background(), &contact); err != nil {
		t.Fatalf("saving contact: %v", err)
	}
	return contact
}

func TestCategoryService_SaveCreatesAndUpdates(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	svc := NewCategoryService(db)

	category := store.Category{Title: "Meeting"}
	if err := svc.Save(ctx, &category); err != nil {
		t.Fatalf("Save (create): %v", err)
	}
	if category.ID == 0 {
		t.Fatal("expected ID to be set after create")
	}

	category.Title = "Conference"
	if err := svc.Save(ctx, &category); err != nil {
		t.Fatalf("Save (update): %v", err)
	}

	got, err := svc.FindOneByID(ctx, category.ID)
	if err != nil {
		t.Fatalf("FindOneByID: %v", err)
	}
	if got.Title != "Conference" {
		t.Errorf("Title = %q, want %q", got.Title, "Conference")
	}
}

func TestCategoryService_FindOneByID_NotFound(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	svc := NewCategoryService(db)
	_, err := svc.FindOneByID(context.Background(), 9999)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestCategoryService_CreatePaginatedList(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	svc := NewCategoryService(db)

	for i := 0; i < ItemsPerPage+3; i++ {
		category := store.Category{Title: fmt.Sprintf("Category %02d", i)}
		if err := svc.Save(ctx, &category); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	page1, err := svc.CreatePaginatedList(ctx, 1)
	if err != nil {
		t.Fatalf("CreatePaginatedList(1): %v", err)
	}
	if len(page1.Items) != ItemsPerPage {
		t.Errorf("page 1 items = %d, want %d", len(page1.Items), ItemsPerPage)
	}
	if page1.TotalItems != int64(ItemsPerPage+3) {
		t.Errorf("TotalItems = %d, want %d", page1.TotalItems, ItemsPerPage+3)
	}
	if page1.TotalPages != 2 {
		t.Errorf("TotalPages = %d, want 2", page1.TotalPages)
	}

	page2, err := svc.CreatePaginatedList(ctx, 2)
	if err != nil {
		t.Fatalf("CreatePaginatedList(2): %v", err)
	}
	if len(page2.Items) != 3 {
		t.Errorf("page 2 items = %d, want 3", len(page2.Items))
	}

	// Pages must not overlap.
	seen := make(map[int64]bool)
	for _, c := range page1.Items {
		seen[c.ID] = true
	}
	for _, c := range page2.Items {
		if seen[c.ID] {
			t.Errorf("category %d appears on both pages", c.ID)
		}
	}
}

func TestCategoryService_CreatePaginatedList_OutOfRange(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	svc := NewCategoryService(db)

	category := store.Category{Title: "Only"}
	if err := svc.Save(ctx, &category); err != nil {
		t.Fatalf("Save: %v", err)
	}

	for _, page := range []int{0, -1, 99} {
		got, err := svc.CreatePaginatedList(ctx, page)
		if err != nil {
			t.Fatalf("CreatePaginatedList(%d): %v", page, err)
		}
		if len(got.Items) != 0 {
			t.Errorf("page %d items = %d, want 0", page, len(got.Items))
		}
		if got.TotalItems != 1 {
			t.Errorf("page %d TotalItems = %d, want 1", page, got.TotalItems)
		}
	}
}

func TestCategoryService_Delete_ReferencedByEvent(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	categories := NewCategoryService(db)
	events := NewEventService(db)
	user := createTestUser(t, db, "author@example.com")

	category := store.Category{Title: "Busy"}
	if err := categories.Save(ctx, &category); err != nil {
		t.Fatalf("Save category: %v", err)
	}

	event := store.Event{
		Title:      "Planning",
		Date:       time.Now(),
		CategoryID: sql.NullInt64{Int64: category.ID, Valid: true},
		AuthorID:   user.ID,
	}
	if err := events.Save(ctx, &event, nil); err != nil {
		t.Fatalf("Save event: %v", err)
	}

	if err := categories.Delete(ctx, category.ID); err == nil {
		t.Error("expected foreign key error deleting a category in use")
	}

	count, err := categories.CountEvents(ctx, category.ID)
	if err != nil {
		t.Fatalf("CountEvents: %v", err)
	}
	if count != 1 {
		t.Errorf("CountEvents = %d, want 1", count)
	}
}

func TestContactService_OwnershipScoping(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	svc := NewContactService(db)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	createTestContact(t, svc, alice.ID, "Anna", "Kowalska")
	createTestContact(t, svc, alice.ID, "Jan", "Nowak")
	createTestContact(t, svc, bob.ID, "Maria", "Wojcik")

	page, err := svc.CreatePaginatedList(ctx, alice.ID, 1)
	if err != nil {
		t.Fatalf("CreatePaginatedList: %v", err)
	}
	if page.TotalItems != 2 {
		t.Errorf("TotalItems = %d, want 2", page.TotalItems)
	}
	for _, c := range page.Items {
		if c.UserID != alice.ID {
			t.Errorf("contact %d owned by %d, want %d", c.ID, c.UserID, alice.ID)
		}
	}

	all, err := svc.FindAllByOwner(ctx, bob.ID)
	if err != nil {
		t.Fatalf("FindAllByOwner: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("FindAllByOwner returned %d contacts, want 1", len(all))
	}
	if all[0].FirstName != "Maria" {
		t.Errorf("FirstName = %q, want %q", all[0].FirstName, "Maria")
	}
}

func TestContactService_SaveUpdateKeepsOwner(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	svc := NewContactService(db)
	user := createTestUser(t, db, "owner@example.com")

	contact := createTestContact(t, svc, user.ID, "Anna", "Kowalska")

	contact.LastName = "Nowak"
	contact.Phone = sql.NullString{String: "+48 600 000 000", Valid: true}
	if err := svc.Save(ctx, &contact); err != nil {
		t.Fatalf("Save (update): %v", err)
	}

	got, err := svc.FindOneByID(ctx, contact.ID)
	if err != nil {
		t.Fatalf("FindOneByID: %v", err)
	}
	if got.LastName != "Nowak" {
		t.Errorf("LastName = %q, want %q", got.LastName, "Nowak")
	}
	if !got.Phone.Valid || got.Phone.String != "+48 600 000 000" {
		t.Errorf("Phone = %+v, want valid +48 600 000 000", got.Phone)
	}
	if got.UserID != user.ID {
		t.Errorf("UserID = %d, want %d", got.UserID, user.ID)
	}
}

func TestEventService_PrepareFilters(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	categories := NewCategoryService(db)
	events := NewEventService(db)

	category := store.Category{Title: "Meeting"}
	if err := categories.Save(ctx, &category); err != nil {
		t.Fatalf("Save category: %v", err)
	}

	tests := []struct {
		name string
		raw  string
		want int64
	}{
		{"empty", "", 0},
		{"not a number", "abc", 0},
		{"negative", "-3", 0},
		{"zero", "0", 0},
		{"unknown category", "9999", 0},
		{"existing category", fmt.Sprintf("%d", category.ID), category.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := events.PrepareFilters(ctx, tt.raw)
			if got.CategoryID != tt.want {
				t.Errorf("PrepareFilters(%q).CategoryID = %d, want %d", tt.raw, got.CategoryID, tt.want)
			}
		})
	}
}

func TestEventService_SaveWithContacts(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	contacts := NewContactService(db)
	events := NewEventService(db)
	user := createTestUser(t, db, "author@example.com")

	anna := createTestContact(t, contacts, user.ID, "Anna", "Kowalska")
	jan := createTestContact(t, contacts, user.ID, "Jan", "Nowak")

	event := store.Event{
		Title:    "Team standup",
		Date:     time.Now().Add(24 * time.Hour),
		AuthorID: user.ID,
	}
	if err := events.Save(ctx, &event, []int64{anna.ID, jan.ID}); err != nil {
		t.Fatalf("Save (create): %v", err)
	}
	if event.ID == 0 {
		t.Fatal("expected ID to be set after create")
	}

	linked, err := events.FindContacts(ctx, event.ID)
	if err != nil {
		t.Fatalf("FindContacts: %v", err)
	}
	if len(linked) != 2 {
		t.Fatalf("FindContacts returned %d contacts, want 2", len(linked))
	}

	// Updating replaces the associations, not appends to them.
	event.Title = "Team standup (moved)"
	if err := events.Save(ctx, &event, []int64{jan.ID}); err != nil {
		t.Fatalf("Save (update): %v", err)
	}

	linked, err = events.FindContacts(ctx, event.ID)
	if err != nil {
		t.Fatalf("FindContacts after update: %v", err)
	}
	if len(linked) != 1 {
		t.Fatalf("FindContacts returned %d contacts, want 1", len(linked))
	}
	if linked[0].ID != jan.ID {
		t.Errorf("linked contact = %d, want %d", linked[0].ID, jan.ID)
	}

	got, err := events.FindOneByID(ctx, event.ID)
	if err != nil {
		t.Fatalf("FindOneByID: %v", err)
	}
	if got.Title != "Team standup (moved)" {
		t.Errorf("Title = %q, want %q", got.Title, "Team standup (moved)")
	}
}

func TestEventService_SaveRollsBackOnBadContact(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	events := NewEventService(db)
	user := createTestUser(t, db, "author@example.com")

	event := store.Event{
		Title:    "Doomed",
		Date:     time.Now(),
		AuthorID: user.ID,
	}
	if err := events.Save(ctx, &event, []int64{9999}); err == nil {
		t.Fatal("expected error for nonexistent contact")
	}

	// The event create must have been rolled back with the failed link.
	page, err := events.CreatePaginatedList(ctx, user.ID, 1, EventFilters{})
	if err != nil {
		t.Fatalf("CreatePaginatedList: %v", err)
	}
	if page.TotalItems != 0 {
		t.Errorf("TotalItems = %d, want 0", page.TotalItems)
	}
}

func TestEventService_CreatePaginatedList_Filtered(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	categories := NewCategoryService(db)
	events := NewEventService(db)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	work := store.Category{Title: "Work"}
	if err := categories.Save(ctx, &work); err != nil {
		t.Fatalf("Save category: %v", err)
	}

	saveEvent := func(title string, authorID int64, categoryID int64) {
		t.Helper()
		event := store.Event{
			Title:    title,
			Date:     time.Now(),
			AuthorID: authorID,
		}
		if categoryID != 0 {
			event.CategoryID = sql.NullInt64{Int64: categoryID, Valid: true}
		}
		if err := events.Save(ctx, &event, nil); err != nil {
			t.Fatalf("Save event %q: %v", title, err)
		}
	}

	saveEvent("Standup", alice.ID, work.ID)
	saveEvent("Review", alice.ID, work.ID)
	saveEvent("Dentist", alice.ID, 0)
	saveEvent("Bob's standup", bob.ID, work.ID)

	all, err := events.CreatePaginatedList(ctx, alice.ID, 1, EventFilters{})
	if err != nil {
		t.Fatalf("CreatePaginatedList (unfiltered): %v", err)
	}
	if all.TotalItems != 3 {
		t.Errorf("unfiltered TotalItems = %d, want 3", all.TotalItems)
	}

	filtered, err := events.CreatePaginatedList(ctx, alice.ID, 1, EventFilters{CategoryID: work.ID})
	if err != nil {
		t.Fatalf("CreatePaginatedList (filtered): %v", err)
	}
	if filtered.TotalItems != 2 {
		t.Errorf("filtered TotalItems = %d, want 2", filtered.TotalItems)
	}
	for _, e := range filtered.Items {
		if !e.CategoryID.Valid || e.CategoryID.Int64 != work.ID {
			t.Errorf("event %q has category %+v, want %d", e.Title, e.CategoryID, work.ID)
		}
	}
}

func TestEventService_Delete(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	contacts := NewContactService(db)
	events := NewEventService(db)
	user := createTestUser(t, db, "author@example.com")

	anna := createTestContact(t, contacts, user.ID, "Anna", "Kowalska")
	event := store.Event{Title: "Short-lived", Date: time.Now(), AuthorID: user.ID}
	if err := events.Save(ctx, &event, []int64{anna.ID}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := events.Delete(ctx, event.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := events.FindOneByID(ctx, event.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows after delete, got %v", err)
	}

	// The contact itself survives the event deletion.
	if _, err := contacts.FindOneByID(ctx, anna.ID); err != nil {
		t.Errorf("contact should survive event deletion: %v", err)
	}
}
