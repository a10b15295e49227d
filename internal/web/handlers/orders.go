package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/buysphere/storefront/internal/api"
	"github.com/buysphere/storefront/internal/order"
	"github.com/buysphere/storefront/internal/web/session"
)

type ordersView struct {
	Orders []api.Order
}

// Orders lists the user's orders, newest first.
func (h *Handler) Orders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.api.Orders(r.Context())
	if err != nil {
		h.fail(w, r, err, "/")
		return
	}
	h.render(w, r, http.StatusOK, "orders", "My Orders", ordersView{Orders: orders})
}

type orderView struct {
	Order      api.Order
	Timeline   order.Projection
	Returnable bool
}

// OrderDetail shows one order with its fulfillment timeline and, for
// delivered orders, the return-request form.
func (h *Handler) OrderDetail(w http.ResponseWriter, r *http.Request) {
	found, err := h.api.Order(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if api.IsNotFound(err) {
			h.NotFound(w, r)
			return
		}
		h.fail(w, r, err, "/orders")
		return
	}

	status := order.Status(found.Status)
	h.render(w, r, http.StatusOK, "order", "Order Details", orderView{
		Order:      found,
		Timeline:   order.Timeline(status),
		Returnable: order.CanRequestReturn(status),
	})
}

// ReturnCreate opens a return request for a delivered order. The local
// precondition check avoids a doomed round trip; the backend still applies
// the return window.
func (h *Handler) ReturnCreate(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	back := "/orders/" + orderID
	reason := strings.TrimSpace(r.FormValue("reason"))

	found, err := h.api.Order(r.Context(), orderID)
	if err != nil {
		h.fail(w, r, err, "/orders")
		return
	}

	if err := order.ValidateReturnRequest(order.Status(found.Status), reason); err != nil {
		switch {
		case errors.Is(err, order.ErrReasonRequired):
			session.Get(r).SetFlash("Tell us why you are returning the order.")
		case errors.Is(err, order.ErrNotReturnable):
			session.Get(r).SetFlash("Only delivered orders can be returned.")
		default:
			session.Get(r).SetFlash(api.UserMessage(err))
		}
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	if _, err := h.api.CreateReturn(r.Context(), orderID, reason); err != nil {
		h.fail(w, r, err, back)
		return
	}

	session.Get(r).SetFlash("Return request submitted.")
	http.Redirect(w, r, back, http.StatusSeeOther)
}
