package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"eventbook/internal/service"
	"eventbook/internal/store"
)

func createContactFor(t *testing.T, app *testApp, user store.User, firstName, lastName string) store.Contact {
	t.Helper()

	contact := store.Contact{FirstName: firstName, LastName: lastName, UserID: user.ID}
	if err := service.NewContactService(app.db).Save(context.Background(), &contact); err != nil {
		t.Fatalf("saving contact: %v", err)
	}
	return contact
}

func TestContactCreate_Success(t *testing.T) {
	app := newTestApp(t)
	h := NewContactHandler(app.db, app.renderer)
	user := app.createTestUser(t, "owner@example.com", "password1234")

	form := url.Values{
		"first_name": {"Jan"},
		"last_name":  {"Kowalski"},
		"phone":      {"111-222-333"},
		"address":    {"Test address"},
	}
	r := app.request(t, http.MethodPost, "/en/contact/create", form, &user, nil)
	w := httptest.NewRecorder()

	h.Create(w, r)

	assertRedirect(t, w, "/en/contact")

	contacts, err := service.NewContactService(app.db).FindAllByOwner(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("FindAllByOwner: %v", err)
	}
	if len(contacts) != 1 {
		t.Fatalf("got %d contacts, want 1", len(contacts))
	}
	created := contacts[0]
	if created.FirstName != "Jan" || created.LastName != "Kowalski" {
		t.Errorf("created contact = %s %s", created.FirstName, created.LastName)
	}
	if created.UserID != user.ID {
		t.Errorf("owner = %d, want %d", created.UserID, user.ID)
	}
	if !created.Phone.Valid || created.Phone.String != "111-222-333" {
		t.Errorf("phone = %+v", created.Phone)
	}
}

func TestContactCreate_ValidationFailure(t *testing.T) {
	app := newTestApp(t)
	h := NewContactHandler(app.db, app.renderer)
	user := app.createTestUser(t, "owner@example.com", "password1234")

	// Last name contains digits, first name too short.
	form := url.Values{
		"first_name": {"J"},
		"last_name":  {"Kowalski99"},
	}
	r := app.request(t, http.MethodPost, "/en/contact/create", form, &user, nil)
	w := httptest.NewRecorder()

	h.Create(w, r)

	assertStatus(t, w.Code, http.StatusOK)
	if !strings.Contains(w.Body.String(), "letters") {
		t.Error("expected a letters-only validation message in the re-rendered form")
	}

	contacts, err := service.NewContactService(app.db).FindAllByOwner(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("FindAllByOwner: %v", err)
	}
	if len(contacts) != 0 {
		t.Errorf("got %d contacts, want 0 after validation failure", len(contacts))
	}
}

func TestContactShow_OtherUserForbidden(t *testing.T) {
	app := newTestApp(t)
	h := NewContactHandler(app.db, app.renderer)
	alice := app.createTestUser(t, "alice@example.com", "password1234")
	bob := app.createTestUser(t, "bob@example.com", "password1234")
	contact := createContactFor(t, app, alice, "Anna", "Kowalska")

	params := map[string]string{"id": strconv.FormatInt(contact.ID, 10)}
	r := app.request(t, http.MethodGet, "/en/contact/"+params["id"], nil, &bob, params)
	w := httptest.NewRecorder()

	h.Show(w, r)

	assertStatus(t, w.Code, http.StatusForbidden)
}

func TestContactDelete_OtherUserForbidden(t *testing.T) {
	app := newTestApp(t)
	h := NewContactHandler(app.db, app.renderer)
	alice := app.createTestUser(t, "alice@example.com", "password1234")
	bob := app.createTestUser(t, "bob@example.com", "password1234")
	contact := createContactFor(t, app, alice, "Anna", "Kowalska")

	params := map[string]string{"id": strconv.FormatInt(contact.ID, 10)}
	r := app.request(t, http.MethodPost, "/en/contact/"+params["id"]+"/delete", url.Values{}, &bob, params)
	w := httptest.NewRecorder()

	h.Delete(w, r)

	assertStatus(t, w.Code, http.StatusForbidden)

	// The contact must still exist.
	if _, err := service.NewContactService(app.db).FindOneByID(context.Background(), contact.ID); err != nil {
		t.Errorf("contact should still exist: %v", err)
	}
}

func TestContactUpdate_Success(t *testing.T) {
	app := newTestApp(t)
	h := NewContactHandler(app.db, app.renderer)
	user := app.createTestUser(t, "owner@example.com", "password1234")
	contact := createContactFor(t, app, user, "Anna", "Kowalska")

	form := url.Values{
		"first_name": {"Anna"},
		"last_name":  {"Nowak"},
	}
	params := map[string]string{"id": strconv.FormatInt(contact.ID, 10)}
	r := app.request(t, http.MethodPost, "/en/contact/"+params["id"]+"/edit", form, &user, params)
	w := httptest.NewRecorder()

	h.Update(w, r)

	assertRedirect(t, w, "/en/contact")

	got, err := service.NewContactService(app.db).FindOneByID(context.Background(), contact.ID)
	if err != nil {
		t.Fatalf("FindOneByID: %v", err)
	}
	if got.LastName != "Nowak" {
		t.Errorf("LastName = %q, want %q", got.LastName, "Nowak")
	}
	if got.UserID != user.ID {
		t.Errorf("owner changed to %d", got.UserID)
	}
}

func TestContactDelete_Success(t *testing.T) {
	app := newTestApp(t)
	h := NewContactHandler(app.db, app.renderer)
	user := app.createTestUser(t, "owner@example.com", "password1234")
	contact := createContactFor(t, app, user, "Anna", "Kowalska")

	params := map[string]string{"id": strconv.FormatInt(contact.ID, 10)}
	r := app.request(t, http.MethodPost, "/en/contact/"+params["id"]+"/delete", url.Values{}, &user, params)
	w := httptest.NewRecorder()

	h.Delete(w, r)

	assertRedirect(t, w, "/en/contact")

	if _, err := service.NewContactService(app.db).FindOneByID(context.Background(), contact.ID); err == nil {
		t.Error("contact should be gone after delete")
	}
}

func TestContactShow_NotFound(t *testing.T) {
	app := newTestApp(t)
	h := NewContactHandler(app.db, app.renderer)
	user := app.createTestUser(t, "owner@example.com", "password1234")

	params := map[string]string{"id": "9999"}
	r := app.request(t, http.MethodGet, "/en/contact/9999", nil, &user, params)
	w := httptest.NewRecorder()

	h.Show(w, r)

	assertStatus(t, w.Code, http.StatusNotFound)
}

func TestContactList_ShowsOnlyOwn(t *testing.T) {
	app := newTestApp(t)
	h := NewContactHandler(app.db, app.renderer)
	alice := app.createTestUser(t, "alice@example.com", "password1234")
	bob := app.createTestUser(t, "bob@example.com", "password1234")
	createContactFor(t, app, alice, "Anna", "Kowalska")
	createContactFor(t, app, bob, "Maria", "Wojcik")

	r := app.request(t, http.MethodGet, "/en/contact", nil, &alice, nil)
	w := httptest.NewRecorder()

	h.List(w, r)

	assertStatus(t, w.Code, http.StatusOK)
	body := w.Body.String()
	if !strings.Contains(body, "Anna") {
		t.Error("expected own contact in listing")
	}
	if strings.Contains(body, "Maria") {
		t.Error("other user's contact leaked into listing")
	}
}
