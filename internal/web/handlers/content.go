package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/buysphere/storefront/internal/content"
)

// ContentPage renders a static page (shipping policy, returns policy, about)
// by slug.
func (h *Handler) ContentPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.content.Get(chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			h.NotFound(w, r)
			return
		}
		h.fail(w, r, err, "/")
		return
	}
	h.render(w, r, http.StatusOK, "page", page.Title, page)
}
