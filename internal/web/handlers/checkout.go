package handlers

import (
	"errors"
	"net/http"

	"github.com/buysphere/storefront/internal/api"
	"github.com/buysphere/storefront/internal/checkout"
	"github.com/buysphere/storefront/internal/pricing"
	"github.com/buysphere/storefront/internal/web/session"
)

// paymentMethods the checkout form offers. The backend records the choice
// verbatim.
var paymentMethods = []string{"cod", "card", "upi"}

type checkoutView struct {
	Cart           api.Cart
	Totals         pricing.Totals
	Coupon         string
	Addresses      []api.Address
	PaymentMethods []string
}

// CheckoutForm shows the order summary, the saved addresses, and the payment
// method choice. An empty cart goes back to the cart page.
func (h *Handler) CheckoutForm(w http.ResponseWriter, r *http.Request) {
	model := h.cartModel()
	snapshot, err := model.Refresh(r.Context())
	if err != nil {
		h.fail(w, r, err, "/cart")
		return
	}
	if model.Empty() {
		session.Get(r).SetFlash("Your cart is empty.")
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	user, err := h.api.Profile(r.Context())
	if err != nil {
		h.fail(w, r, err, "/cart")
		return
	}

	sess := session.Get(r)
	rate, err := pricing.ResolveDiscount(sess.Coupon)
	if err != nil {
		sess.SetCoupon("")
		rate = 0
	}

	h.render(w, r, http.StatusOK, "checkout", "Checkout", checkoutView{
		Cart:           snapshot,
		Totals:         pricing.ComputeTotals(model.LineItems(), rate),
		Coupon:         sess.Coupon,
		Addresses:      user.Addresses,
		PaymentMethods: paymentMethods,
	})
}

// CheckoutPlace runs the two-step place-order flow. A payment confirmation
// failure still lands on the order page: the order exists, unconfirmed.
func (h *Handler) CheckoutPlace(w http.ResponseWriter, r *http.Request) {
	model := h.cartModel()
	if _, err := model.Refresh(r.Context()); err != nil {
		h.fail(w, r, err, "/cart")
		return
	}

	user, err := h.api.Profile(r.Context())
	if err != nil {
		h.fail(w, r, err, "/cart")
		return
	}

	var address *api.Address
	addressID := r.FormValue("address_id")
	for i := range user.Addresses {
		if user.Addresses[i].ID == addressID {
			address = &user.Addresses[i]
			break
		}
	}

	sess := session.Get(r)
	placed, err := h.checkout.PlaceOrder(r.Context(), checkout.PlaceOrderCommand{
		Items:         model.OrderItems(),
		Address:       address,
		PaymentMethod: r.FormValue("payment_method"),
		DiscountCode:  sess.Coupon,
	})

	var paymentErr *checkout.PaymentError
	switch {
	case err == nil:
		sess.SetCoupon("")
		sess.SetFlash("Order placed. Thank you!")
		http.Redirect(w, r, "/orders/"+placed.ID, http.StatusSeeOther)
	case errors.As(err, &paymentErr):
		sess.SetCoupon("")
		sess.SetFlash("Your order was created but the payment could not be confirmed.")
		http.Redirect(w, r, "/orders/"+paymentErr.OrderID, http.StatusSeeOther)
	case errors.Is(err, checkout.ErrEmptyCart):
		sess.SetFlash("Your cart is empty.")
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
	case errors.Is(err, checkout.ErrNoAddress):
		sess.SetFlash("Choose a shipping address.")
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
	case errors.Is(err, checkout.ErrNoPaymentMethod):
		sess.SetFlash("Choose a payment method.")
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
	default:
		h.fail(w, r, err, "/checkout")
	}
}
