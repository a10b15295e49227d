// Package pricing computes cart totals: subtotal, flat-rate shipping,
// discount-code reductions, and the resulting total. All functions are pure;
// callers re-evaluate whenever line items or the applied code change.
package pricing

import "errors"

const (
	// freeShippingAbove is the subtotal a cart must exceed (strictly) to
	// qualify for free shipping. A subtotal of exactly this value still
	// pays the flat fee.
	freeShippingAbove = 500.0
	flatShippingFee   = 50.0

	// recognizedCode is the only discount code the storefront honours.
	recognizedCode = "SAVE10"
	recognizedRate = 0.10
)

// ErrInvalidCode is returned when a submitted discount code does not match
// the recognized literal.
var ErrInvalidCode = errors.New("pricing: discount code not recognized")

// LineItem carries the two inputs pricing needs from a cart line.
type LineItem struct {
	UnitPrice float64
	Quantity  int
}

// Totals is the computed price breakdown for a cart.
type Totals struct {
	Subtotal float64
	Shipping float64
	Discount float64
	Total    float64
}

// ResolveDiscount maps a discount code to its rate. An empty code means no
// discount was applied and resolves to rate 0 without error. Any non-empty
// code other than the recognized literal yields ErrInvalidCode; comparison
// is exact, with no trimming or case folding.
func ResolveDiscount(code string) (float64, error) {
	if code == "" {
		return 0, nil
	}
	if code != recognizedCode {
		return 0, ErrInvalidCode
	}
	return recognizedRate, nil
}

// ComputeTotals derives the price breakdown for the given line items and
// discount rate. An empty item sequence yields all-zero totals; checkout
// must refuse to proceed in that case rather than charge shipping on an
// empty cart.
func ComputeTotals(items []LineItem, discountRate float64) Totals {
	if len(items) == 0 {
		return Totals{}
	}

	var subtotal float64
	for _, item := range items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}

	shipping := flatShippingFee
	if subtotal > freeShippingAbove {
		shipping = 0
	}

	discount := subtotal * discountRate

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Discount: discount,
		Total:    subtotal + shipping - discount,
	}
}
