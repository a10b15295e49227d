package order

import (
	"errors"
	"testing"
)

func TestStatusIndex(t *testing.T) {
	cases := []struct {
		status Status
		want   int
	}{
		{StatusOrdered, 0},
		{StatusProcessed, 1},
		{StatusShipped, 2},
		{StatusOutForDelivery, 3},
		{StatusDelivered, 4},
		{StatusCancelled, -1},
		{StatusReturnRequested, -1},
		{Status("bogus"), -1},
	}
	for _, tc := range cases {
		if got := tc.status.Index(); got != tc.want {
			t.Fatalf("Index(%q) = %d, want %d", tc.status, got, tc.want)
		}
	}
}

func TestNextMovesOneStep(t *testing.T) {
	next, ok := Next(StatusOrdered)
	if !ok || next != StatusProcessed {
		t.Fatalf("Next(ordered) = %q, %v", next, ok)
	}
	if _, ok := Next(StatusDelivered); ok {
		t.Fatalf("delivered must have no next stage")
	}
	if _, ok := Next(StatusCancelled); ok {
		t.Fatalf("side states must have no next stage")
	}
}

func TestCanTransitionRejectsSkipsAndBackwardMoves(t *testing.T) {
	if !CanTransition(StatusShipped, StatusOutForDelivery) {
		t.Fatalf("single forward step must be allowed")
	}
	if CanTransition(StatusOrdered, StatusShipped) {
		t.Fatalf("skipping a stage must be rejected")
	}
	if CanTransition(StatusShipped, StatusProcessed) {
		t.Fatalf("backward move must be rejected")
	}
	if CanTransition(StatusDelivered, StatusReturnRequested) {
		t.Fatalf("return is an exit, not a transition")
	}
}

func TestCanCancel(t *testing.T) {
	for _, s := range []Status{StatusOrdered, StatusProcessed, StatusShipped, StatusOutForDelivery} {
		if !CanCancel(s) {
			t.Fatalf("expected %q cancellable", s)
		}
	}
	for _, s := range []Status{StatusDelivered, StatusCancelled, StatusReturnRequested, Status("bogus")} {
		if CanCancel(s) {
			t.Fatalf("expected %q not cancellable", s)
		}
	}
}

func TestValidateReturnRequest(t *testing.T) {
	if err := ValidateReturnRequest(StatusDelivered, "damaged on arrival"); err != nil {
		t.Fatalf("delivered with reason should pass: %v", err)
	}
	if err := ValidateReturnRequest(StatusShipped, "changed my mind"); !errors.Is(err, ErrNotReturnable) {
		t.Fatalf("expected ErrNotReturnable got %v", err)
	}
	if err := ValidateReturnRequest(StatusDelivered, "   "); !errors.Is(err, ErrReasonRequired) {
		t.Fatalf("expected ErrReasonRequired got %v", err)
	}
}

func TestLabel(t *testing.T) {
	if got := StatusOutForDelivery.Label(); got != "Out For Delivery" {
		t.Fatalf("Label() = %q", got)
	}
	if got := StatusOrdered.Label(); got != "Ordered" {
		t.Fatalf("Label() = %q", got)
	}
}
