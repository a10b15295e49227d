package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/buysphere/storefront/internal/api"
	"github.com/buysphere/storefront/internal/web/session"
)

type wishlistView struct {
	Products []api.Product
}

// Wishlist shows the saved-for-later products.
func (h *Handler) Wishlist(w http.ResponseWriter, r *http.Request) {
	products, err := h.api.Wishlist(r.Context())
	if err != nil {
		h.fail(w, r, err, "/")
		return
	}
	h.render(w, r, http.StatusOK, "wishlist", "Wishlist", wishlistView{Products: products})
}

// WishlistAdd saves a product for later.
func (h *Handler) WishlistAdd(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	if err := h.api.AddToWishlist(r.Context(), productID); err != nil {
		h.fail(w, r, err, "/products/"+productID)
		return
	}
	session.Get(r).SetFlash("Saved to your wishlist.")
	http.Redirect(w, r, "/products/"+productID, http.StatusSeeOther)
}

// WishlistRemove drops a product from the wishlist.
func (h *Handler) WishlistRemove(w http.ResponseWriter, r *http.Request) {
	if err := h.api.RemoveFromWishlist(r.Context(), chi.URLParam(r, "productID")); err != nil {
		h.fail(w, r, err, "/wishlist")
		return
	}
	http.Redirect(w, r, "/wishlist", http.StatusSeeOther)
}
