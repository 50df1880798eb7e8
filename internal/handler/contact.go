// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"strings"

	"eventbook/internal/i18n"
	"eventbook/internal/middleware"
	"eventbook/internal/render"
	"eventbook/internal/service"
	"eventbook/internal/store"
)

// ContactHandler handles contact CRUD routes. Every mutating route and the
// detail page run the ownership guard.
type ContactHandler struct {
	service  *service.ContactService
	renderer *render.Renderer
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(db *sql.DB, renderer *render.Renderer) *ContactHandler {
	return &ContactHandler{
		service:  service.NewContactService(db),
		renderer: renderer,
	}
}

// ContactListData is the view model for the contact listing.
type ContactListData struct {
	Contacts   []store.Contact
	Pagination Pagination
}

// ContactFormData is the view model for the contact create/edit form.
type ContactFormData struct {
	Contact store.Contact
	Errors  map[string]string
}

// ContactShowData is the view model for the contact detail page.
type ContactShowData struct {
	Contact store.Contact
	Events  []store.Event
}

// List renders the paginated listing of the user's contacts.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	locale := middleware.GetLocale(r)

	page, err := h.service.CreatePaginatedList(r.Context(), middleware.GetUserID(r), parsePageParam(r))
	if err != nil {
		logAndInternalError(w, r, "failed to list contacts", "error", err)
		return
	}

	data := ContactListData{
		Contacts:   page.Items,
		Pagination: buildPagination(page, localePath(r, RouteContacts), nil),
	}
	if err := h.renderer.Render(w, r, "contact/list", render.TemplateData{
		Title: i18n.T(locale, "title.contacts"),
		Data:  data,
	}); err != nil {
		logAndInternalError(w, r, "failed to render contact list", "error", err)
	}
}

// CreateForm renders the empty contact form.
func (h *ContactHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, "title.contact_new", ContactFormData{})
}

// Create handles the contact form submission. The owner is always the
// authenticated user, never form input.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	locale := middleware.GetLocale(r)

	if err := r.ParseForm(); err != nil {
		notFound(w, r)
		return
	}

	contact := contactFromForm(r)
	if errs := validateContact(contact, locale); len(errs) > 0 {
		h.renderForm(w, r, "title.contact_new", ContactFormData{Contact: contact, Errors: errs})
		return
	}

	contact.UserID = middleware.GetUserID(r)
	if err := h.service.Save(r.Context(), &contact); err != nil {
		logAndInternalError(w, r, "failed to create contact", "error", err)
		return
	}

	flashSuccess(w, r, h.renderer, localePath(r, RouteContacts), i18n.T(locale, "contact_created.success"))
}

// Show renders the contact detail page with its associated events.
func (h *ContactHandler) Show(w http.ResponseWriter, r *http.Request) {
	contact, ok := h.requireOwnContact(w, r)
	if !ok {
		return
	}

	events, err := h.service.FindEvents(r.Context(), contact.ID)
	if err != nil {
		logAndInternalError(w, r, "failed to list contact events", "error", err, "contact_id", contact.ID)
		return
	}

	if err := h.renderer.Render(w, r, "contact/show", render.TemplateData{
		Title: contact.FullName(),
		Data:  ContactShowData{Contact: contact, Events: events},
	}); err != nil {
		logAndInternalError(w, r, "failed to render contact", "error", err)
	}
}

// EditForm renders the contact form pre-populated with current values.
func (h *ContactHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	contact, ok := h.requireOwnContact(w, r)
	if !ok {
		return
	}

	h.renderForm(w, r, "title.contact_edit", ContactFormData{Contact: contact})
}

// Update handles the contact edit form submission.
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	contact, ok := h.requireOwnContact(w, r)
	if !ok {
		return
	}

	locale := middleware.GetLocale(r)
	if err := r.ParseForm(); err != nil {
		notFound(w, r)
		return
	}

	updated := contactFromForm(r)
	updated.ID = contact.ID
	updated.UserID = contact.UserID
	if errs := validateContact(updated, locale); len(errs) > 0 {
		h.renderForm(w, r, "title.contact_edit", ContactFormData{Contact: updated, Errors: errs})
		return
	}

	if err := h.service.Save(r.Context(), &updated); err != nil {
		logAndInternalError(w, r, "failed to update contact", "error", err, "contact_id", contact.ID)
		return
	}

	flashSuccess(w, r, h.renderer, localePath(r, RouteContacts), i18n.T(locale, "contact_updated.success"))
}

// DeleteForm renders the delete confirmation page.
func (h *ContactHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	contact, ok := h.requireOwnContact(w, r)
	if !ok {
		return
	}

	locale := middleware.GetLocale(r)
	if err := h.renderer.Render(w, r, "contact/delete", render.TemplateData{
		Title: i18n.T(locale, "title.contact_delete"),
		Data:  ContactShowData{Contact: contact},
	}); err != nil {
		logAndInternalError(w, r, "failed to render contact delete page", "error", err)
	}
}

// Delete removes the contact. Event associations go with it via the join
// table cascade.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	contact, ok := h.requireOwnContact(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), contact.ID); err != nil {
		logAndInternalError(w, r, "failed to delete contact", "error", err, "contact_id", contact.ID)
		return
	}

	locale := middleware.GetLocale(r)
	flashSuccess(w, r, h.renderer, localePath(r, RouteContacts), i18n.T(locale, "contact_deleted.success"))
}

// requireOwnContact resolves the contact from the id URL parameter and runs
// the ownership guard.
func (h *ContactHandler) requireOwnContact(w http.ResponseWriter, r *http.Request) (store.Contact, bool) {
	contact, ok := requireEntity(w, r, "contact", func(id int64) (store.Contact, error) {
		return h.service.FindOneByID(r.Context(), id)
	})
	if !ok {
		return store.Contact{}, false
	}
	if !requireOwner(w, r, contact) {
		return store.Contact{}, false
	}
	return contact, true
}

func (h *ContactHandler) renderForm(w http.ResponseWriter, r *http.Request, titleKey string, data ContactFormData) {
	locale := middleware.GetLocale(r)
	if err := h.renderer.Render(w, r, "contact/form", render.TemplateData{
		Title: i18n.T(locale, titleKey),
		Data:  data,
	}); err != nil {
		logAndInternalError(w, r, "failed to render contact form", "error", err)
	}
}

// contactFromForm binds the contact form fields. Optional fields become
// NULL when left empty.
func contactFromForm(r *http.Request) store.Contact {
	contact := store.Contact{
		FirstName: strings.TrimSpace(r.FormValue("first_name")),
		LastName:  strings.TrimSpace(r.FormValue("last_name")),
	}
	if address := strings.TrimSpace(r.FormValue("address")); address != "" {
		contact.Address = sql.NullString{String: address, Valid: true}
	}
	if phone := strings.TrimSpace(r.FormValue("phone")); phone != "" {
		contact.Phone = sql.NullString{String: phone, Valid: true}
	}
	return contact
}

// validateContact checks the contact form fields.
func validateContact(contact store.Contact, locale string) map[string]string {
	errs := make(map[string]string)
	if msg := validateName(contact.FirstName, locale); msg != "" {
		errs["first_name"] = msg
	}
	if msg := validateName(contact.LastName, locale); msg != "" {
		errs["last_name"] = msg
	}
	if contact.Address.Valid {
		if msg := validateOptionalText(contact.Address.String, locale); msg != "" {
			errs["address"] = msg
		}
	}
	if contact.Phone.Valid {
		if msg := validateOptionalText(contact.Phone.String, locale); msg != "" {
			errs["phone"] = msg
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
