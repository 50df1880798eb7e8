package handler

import (
	"net/http"

	"eventbook/internal/i18n"
	"eventbook/internal/middleware"
	"eventbook/internal/render"
)

// HomeHandler handles the homepage.
type HomeHandler struct {
	renderer *render.Renderer
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(renderer *render.Renderer) *HomeHandler {
	return &HomeHandler{renderer: renderer}
}

// Home renders the homepage.
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	locale := middleware.GetLocale(r)
	if err := h.renderer.Render(w, r, "default/home", render.TemplateData{
		Title: i18n.T(locale, "title.home"),
	}); err != nil {
		logAndInternalError(w, r, "failed to render homepage", "error", err)
	}
}
