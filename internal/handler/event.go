// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"eventbook/internal/i18n"
	"eventbook/internal/middleware"
	"eventbook/internal/render"
	"eventbook/internal/service"
	"eventbook/internal/store"
)

// EventHandler handles event CRUD routes. Events belong to their author;
// every mutating route and the detail page run the ownership guard.
type EventHandler struct {
	events     *service.EventService
	categories *service.CategoryService
	contacts   *service.ContactService
	renderer   *render.Renderer
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(db *sql.DB, renderer *render.Renderer) *EventHandler {
	return &EventHandler{
		events:     service.NewEventService(db),
		categories: service.NewCategoryService(db),
		contacts:   service.NewContactService(db),
		renderer:   renderer,
	}
}

// EventListData is the view model for the event listing.
type EventListData struct {
	Events           []store.Event
	Categories       []store.Category
	FilterCategoryID int64
	Pagination       Pagination
}

// EventFormData is the view model for the event create/edit form.
type EventFormData struct {
	Event            store.Event
	Categories       []store.Category
	Contacts         []store.Contact
	SelectedContacts map[int64]bool
	Errors           map[string]string
}

// EventShowData is the view model for the event detail page.
type EventShowData struct {
	Event    store.Event
	Category *store.Category
	Contacts []store.Contact
}

// List renders the paginated listing of the user's events, optionally
// filtered by category.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	locale := middleware.GetLocale(r)
	userID := middleware.GetUserID(r)

	filters := h.events.PrepareFilters(r.Context(), r.URL.Query().Get(QueryParamCategoryFilter))

	page, err := h.events.CreatePaginatedList(r.Context(), userID, parsePageParam(r), filters)
	if err != nil {
		logAndInternalError(w, r, "failed to list events", "error", err)
		return
	}

	categories, err := h.categories.FindAll(r.Context())
	if err != nil {
		logAndInternalError(w, r, "failed to list categories", "error", err)
		return
	}

	queryParams := url.Values{}
	if filters.CategoryID != 0 {
		queryParams.Set(QueryParamCategoryFilter, strconv.FormatInt(filters.CategoryID, 10))
	}

	data := EventListData{
		Events:           page.Items,
		Categories:       categories,
		FilterCategoryID: filters.CategoryID,
		Pagination:       buildPagination(page, localePath(r, RouteEvents), queryParams),
	}
	if err := h.renderer.Render(w, r, "event/list", render.TemplateData{
		Title: i18n.T(locale, "title.events"),
		Data:  data,
	}); err != nil {
		logAndInternalError(w, r, "failed to render event list", "error", err)
	}
}

// CreateForm renders the empty event form.
func (h *EventHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, "title.event_new", EventFormData{})
}

// Create handles the event form submission. The author is always the
// authenticated user, never form input.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	locale := middleware.GetLocale(r)

	if err := r.ParseForm(); err != nil {
		notFound(w, r)
		return
	}

	event, contactIDs, errs := h.eventFromForm(r, locale)
	if len(errs) > 0 {
		h.renderForm(w, r, "title.event_new", EventFormData{
			Event:            event,
			SelectedContacts: selectedSet(contactIDs),
			Errors:           errs,
		})
		return
	}

	event.AuthorID = middleware.GetUserID(r)
	if err := h.events.Save(r.Context(), &event, contactIDs); err != nil {
		logAndInternalError(w, r, "failed to create event", "error", err)
		return
	}

	flashSuccess(w, r, h.renderer, localePath(r, RouteEvents), i18n.T(locale, "event_created.success"))
}

// Show renders the event detail page with its category and contacts.
func (h *EventHandler) Show(w http.ResponseWriter, r *http.Request) {
	event, ok := h.requireOwnEvent(w, r)
	if !ok {
		return
	}

	data := EventShowData{Event: event}

	if event.CategoryID.Valid {
		category, err := h.categories.FindOneByID(r.Context(), event.CategoryID.Int64)
		if err != nil {
			logAndInternalError(w, r, "failed to get event category", "error", err, "event_id", event.ID)
			return
		}
		data.Category = &category
	}

	contacts, err := h.events.FindContacts(r.Context(), event.ID)
	if err != nil {
		logAndInternalError(w, r, "failed to list event contacts", "error", err, "event_id", event.ID)
		return
	}
	data.Contacts = contacts

	if err := h.renderer.Render(w, r, "event/show", render.TemplateData{
		Title: event.Title,
		Data:  data,
	}); err != nil {
		logAndInternalError(w, r, "failed to render event", "error", err)
	}
}

// EditForm renders the event form pre-populated with current values.
func (h *EventHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	event, ok := h.requireOwnEvent(w, r)
	if !ok {
		return
	}

	linked, err := h.events.FindContacts(r.Context(), event.ID)
	if err != nil {
		logAndInternalError(w, r, "failed to list event contacts", "error", err, "event_id", event.ID)
		return
	}
	selected := make(map[int64]bool, len(linked))
	for _, c := range linked {
		selected[c.ID] = true
	}

	h.renderForm(w, r, "title.event_edit", EventFormData{Event: event, SelectedContacts: selected})
}

// Update handles the event edit form submission.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	event, ok := h.requireOwnEvent(w, r)
	if !ok {
		return
	}

	locale := middleware.GetLocale(r)
	if err := r.ParseForm(); err != nil {
		notFound(w, r)
		return
	}

	updated, contactIDs, errs := h.eventFromForm(r, locale)
	updated.ID = event.ID
	updated.AuthorID = event.AuthorID
	if len(errs) > 0 {
		h.renderForm(w, r, "title.event_edit", EventFormData{
			Event:            updated,
			SelectedContacts: selectedSet(contactIDs),
			Errors:           errs,
		})
		return
	}

	if err := h.events.Save(r.Context(), &updated, contactIDs); err != nil {
		logAndInternalError(w, r, "failed to update event", "error", err, "event_id", event.ID)
		return
	}

	flashSuccess(w, r, h.renderer, localePath(r, RouteEvents), i18n.T(locale, "event_updated.success"))
}

// DeleteForm renders the delete confirmation page.
func (h *EventHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	event, ok := h.requireOwnEvent(w, r)
	if !ok {
		return
	}

	locale := middleware.GetLocale(r)
	if err := h.renderer.Render(w, r, "event/delete", render.TemplateData{
		Title: i18n.T(locale, "title.event_delete"),
		Data:  EventShowData{Event: event},
	}); err != nil {
		logAndInternalError(w, r, "failed to render event delete page", "error", err)
	}
}

// Delete removes the event and, via the join table cascade, its contact
// associations.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	event, ok := h.requireOwnEvent(w, r)
	if !ok {
		return
	}

	if err := h.events.Delete(r.Context(), event.ID); err != nil {
		logAndInternalError(w, r, "failed to delete event", "error", err, "event_id", event.ID)
		return
	}

	locale := middleware.GetLocale(r)
	flashSuccess(w, r, h.renderer, localePath(r, RouteEvents), i18n.T(locale, "event_deleted.success"))
}

// requireOwnEvent resolves the event from the id URL parameter and runs the
// ownership guard.
func (h *EventHandler) requireOwnEvent(w http.ResponseWriter, r *http.Request) (store.Event, bool) {
	event, ok := requireEntity(w, r, "event", func(id int64) (store.Event, error) {
		return h.events.FindOneByID(r.Context(), id)
	})
	if !ok {
		return store.Event{}, false
	}
	if !requireOwner(w, r, event) {
		return store.Event{}, false
	}
	return event, true
}

// renderForm renders the event form with the category and contact choices
// filled in.
func (h *EventHandler) renderForm(w http.ResponseWriter, r *http.Request, titleKey string, data EventFormData) {
	locale := middleware.GetLocale(r)

	categories, err := h.categories.FindAll(r.Context())
	if err != nil {
		logAndInternalError(w, r, "failed to list categories", "error", err)
		return
	}
	data.Categories = categories

	contacts, err := h.contacts.FindAllByOwner(r.Context(), middleware.GetUserID(r))
	if err != nil {
		logAndInternalError(w, r, "failed to list contacts", "error", err)
		return
	}
	data.Contacts = contacts

	if data.SelectedContacts == nil {
		data.SelectedContacts = make(map[int64]bool)
	}

	if err := h.renderer.Render(w, r, "event/form", render.TemplateData{
		Title: i18n.T(locale, titleKey),
		Data:  data,
	}); err != nil {
		logAndInternalError(w, r, "failed to render event form", "error", err)
	}
}

// eventFromForm binds and validates the event form fields, returning the
// bound event, the selected contact ids, and any field errors.
func (h *EventHandler) eventFromForm(r *http.Request, locale string) (store.Event, []int64, map[string]string) {
	errs := make(map[string]string)

	event := store.Event{Title: strings.TrimSpace(r.FormValue("title"))}
	if msg := validateTitle(event.Title, locale); msg != "" {
		errs["title"] = msg
	}

	if location := strings.TrimSpace(r.FormValue("location")); location != "" {
		event.Location = sql.NullString{String: location, Valid: true}
	}

	date, msg := parseDateTime(r.FormValue("date"), locale)
	if msg != "" {
		errs["date"] = msg
	} else {
		event.Date = date
	}

	if raw := r.FormValue("category_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			if _, err := h.categories.FindOneByID(r.Context(), id); err == nil {
				event.CategoryID = sql.NullInt64{Int64: id, Valid: true}
			}
		}
	}

	// Only the user's own contacts may be linked to the event.
	contactIDs := h.ownedContactIDs(r)

	if len(errs) == 0 {
		return event, contactIDs, nil
	}
	return event, contactIDs, errs
}

// ownedContactIDs resolves the submitted contact ids against the user's own
// contacts, dropping anything else silently.
func (h *EventHandler) ownedContactIDs(r *http.Request) []int64 {
	raw := r.Form["contact_ids"]
	if len(raw) == 0 {
		return nil
	}

	owned, err := h.contacts.FindAllByOwner(r.Context(), middleware.GetUserID(r))
	if err != nil {
		return nil
	}
	ownedSet := make(map[int64]bool, len(owned))
	for _, c := range owned {
		ownedSet[c.ID] = true
	}

	var ids []int64
	seen := make(map[int64]bool, len(raw))
	for _, v := range raw {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || !ownedSet[id] || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

func selectedSet(ids []int64) map[int64]bool {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
