package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/buysphere/storefront/internal/api"
	"github.com/buysphere/storefront/internal/cart"
	"github.com/buysphere/storefront/internal/pricing"
	"github.com/buysphere/storefront/internal/web/session"
)

type cartView struct {
	Cart   api.Cart
	Totals pricing.Totals
	Coupon string
}

// CartView shows the cart with totals computed for the session's applied
// discount code. A code that stopped resolving is silently dropped.
func (h *Handler) CartView(w http.ResponseWriter, r *http.Request) {
	model := h.cartModel()
	snapshot, err := model.Refresh(r.Context())
	if err != nil {
		h.fail(w, r, err, "/")
		return
	}

	sess := session.Get(r)
	rate, err := pricing.ResolveDiscount(sess.Coupon)
	if err != nil {
		sess.SetCoupon("")
		rate = 0
	}

	h.render(w, r, http.StatusOK, "cart", "Your Cart", cartView{
		Cart:   snapshot,
		Totals: pricing.ComputeTotals(model.LineItems(), rate),
		Coupon: sess.Coupon,
	})
}

// CartAdd puts a product in the cart, merging into an existing line.
func (h *Handler) CartAdd(w http.ResponseWriter, r *http.Request) {
	productID := r.FormValue("product_id")
	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil {
		quantity = 1
	}

	back := r.FormValue("back")
	if back == "" {
		back = "/products/" + productID
	}
	back = safeNext(back)

	if err := h.cartModel().AddItem(r.Context(), productID, quantity); err != nil {
		h.failCart(w, r, err, back)
		return
	}

	session.Get(r).SetFlash("Added to cart.")
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// CartUpdate replaces a line's quantity.
func (h *Handler) CartUpdate(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil {
		session.Get(r).SetFlash("Quantity must be a number.")
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	if err := h.cartModel().UpdateQuantity(r.Context(), productID, quantity); err != nil {
		h.failCart(w, r, err, "/cart")
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// CartRemove drops a line from the cart.
func (h *Handler) CartRemove(w http.ResponseWriter, r *http.Request) {
	if err := h.cartModel().RemoveItem(r.Context(), chi.URLParam(r, "productID")); err != nil {
		h.fail(w, r, err, "/cart")
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// CartClear empties the cart and drops the applied coupon with it.
func (h *Handler) CartClear(w http.ResponseWriter, r *http.Request) {
	if err := h.api.ClearCart(r.Context()); err != nil {
		h.fail(w, r, err, "/cart")
		return
	}
	sess := session.Get(r)
	sess.SetCoupon("")
	sess.SetFlash("Cart cleared.")
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// CartApplyCoupon validates and stores the discount code. An empty submission
// removes the applied code.
func (h *Handler) CartApplyCoupon(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(r.FormValue("code"))
	sess := session.Get(r)

	if code == "" {
		sess.SetCoupon("")
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	if _, err := pricing.ResolveDiscount(code); err != nil {
		sess.SetFlash("That discount code is not valid.")
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	sess.SetCoupon(code)
	sess.SetFlash("Discount applied.")
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// failCart turns the cart model's precondition errors into friendly flash
// messages before falling back to the generic handler.
func (h *Handler) failCart(w http.ResponseWriter, r *http.Request, err error, back string) {
	switch {
	case errors.Is(err, cart.ErrOutOfStock):
		session.Get(r).SetFlash("Not enough stock for that quantity.")
	case errors.Is(err, cart.ErrInvalidQuantity):
		session.Get(r).SetFlash("Quantity must be at least 1.")
	default:
		h.fail(w, r, err, back)
		return
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}
