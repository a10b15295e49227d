package pricing

import (
	"errors"
	"testing"
)

func TestComputeTotalsFreeShippingAboveThreshold(t *testing.T) {
	totals := ComputeTotals([]LineItem{{UnitPrice: 300, Quantity: 2}}, 0)
	if totals.Subtotal != 600 {
		t.Fatalf("expected subtotal 600 got %v", totals.Subtotal)
	}
	if totals.Shipping != 0 {
		t.Fatalf("expected free shipping got %v", totals.Shipping)
	}
	if totals.Total != 600 {
		t.Fatalf("expected total 600 got %v", totals.Total)
	}
}

func TestComputeTotalsFlatFeeBelowThreshold(t *testing.T) {
	totals := ComputeTotals([]LineItem{{UnitPrice: 100, Quantity: 2}}, 0)
	if totals.Shipping != 50 {
		t.Fatalf("expected shipping 50 got %v", totals.Shipping)
	}
	if totals.Total != 250 {
		t.Fatalf("expected total 250 got %v", totals.Total)
	}
}

func TestComputeTotalsBoundarySubtotalStillPaysShipping(t *testing.T) {
	// Exactly 500 does not qualify; the subtotal must exceed the threshold.
	totals := ComputeTotals([]LineItem{{UnitPrice: 500, Quantity: 1}}, 0)
	if totals.Shipping != 50 {
		t.Fatalf("expected shipping 50 at the boundary got %v", totals.Shipping)
	}
	if totals.Total != 550 {
		t.Fatalf("expected total 550 got %v", totals.Total)
	}
}

func TestComputeTotalsWithDiscount(t *testing.T) {
	rate, err := ResolveDiscount("SAVE10")
	if err != nil {
		t.Fatalf("ResolveDiscount error: %v", err)
	}
	totals := ComputeTotals([]LineItem{{UnitPrice: 600, Quantity: 1}}, rate)
	if totals.Discount != 60 {
		t.Fatalf("expected discount 60 got %v", totals.Discount)
	}
	if totals.Shipping != 0 {
		t.Fatalf("expected free shipping got %v", totals.Shipping)
	}
	if totals.Total != 540 {
		t.Fatalf("expected total 540 got %v", totals.Total)
	}
}

func TestComputeTotalsDiscountDoesNotAffectShipping(t *testing.T) {
	// Shipping qualifies on the pre-discount subtotal.
	totals := ComputeTotals([]LineItem{{UnitPrice: 501, Quantity: 1}}, 0.10)
	if totals.Shipping != 0 {
		t.Fatalf("expected free shipping on pre-discount subtotal got %v", totals.Shipping)
	}
	if want := 501 + 0.0 - 50.1; totals.Total != want {
		t.Fatalf("expected total %v got %v", want, totals.Total)
	}
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	totals := ComputeTotals(nil, 0.10)
	if totals != (Totals{}) {
		t.Fatalf("expected zero totals for empty cart got %+v", totals)
	}
}

func TestComputeTotalsIsAdditive(t *testing.T) {
	merged := ComputeTotals([]LineItem{
		{UnitPrice: 120, Quantity: 1},
		{UnitPrice: 80, Quantity: 3},
	}, 0)
	if merged.Subtotal != 360 {
		t.Fatalf("expected subtotal 360 got %v", merged.Subtotal)
	}
}

func TestResolveDiscount(t *testing.T) {
	if rate, err := ResolveDiscount(""); err != nil || rate != 0 {
		t.Fatalf("empty code should resolve to zero rate, got rate=%v err=%v", rate, err)
	}
	if rate, err := ResolveDiscount("SAVE10"); err != nil || rate != 0.10 {
		t.Fatalf("expected SAVE10 rate 0.10, got rate=%v err=%v", rate, err)
	}
	for _, code := range []string{"save10", " SAVE10", "SAVE10 ", "SAVE20", "garbage"} {
		if _, err := ResolveDiscount(code); !errors.Is(err, ErrInvalidCode) {
			t.Fatalf("expected ErrInvalidCode for %q got %v", code, err)
		}
	}
}
