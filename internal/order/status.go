// Package order models the fulfillment lifecycle of a placed order: the
// linear status progression, the side states that exit it, and the timeline
// projection the tracking view renders.
package order

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the fulfillment state of an order as reported by the storefront
// API.
type Status string

const (
	StatusOrdered        Status = "ordered"
	StatusProcessed      Status = "processed"
	StatusShipped        Status = "shipped"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"

	// Side states. Not part of the linear progression: cancellation exits
	// from any non-terminal stage, a return request exits from delivered.
	StatusCancelled       Status = "cancelled"
	StatusReturnRequested Status = "return_requested"
)

var (
	// ErrNotReturnable is returned when a return is requested for an order
	// that has not been delivered.
	ErrNotReturnable = errors.New("order: only delivered orders can be returned")
	// ErrReasonRequired is returned when a return request carries no reason.
	ErrReasonRequired = errors.New("order: return reason is required")
)

// progression is the ordered list of linear fulfillment stages. Forward
// transitions move along it exactly one step at a time.
var progression = []Status{
	StatusOrdered,
	StatusProcessed,
	StatusShipped,
	StatusOutForDelivery,
	StatusDelivered,
}

// Progression returns a copy of the linear fulfillment stages in order.
func Progression() []Status {
	out := make([]Status, len(progression))
	copy(out, progression)
	return out
}

// Index reports the position of s in the linear progression, or -1 for the
// side states and unknown values.
func (s Status) Index() int {
	for i, stage := range progression {
		if stage == s {
			return i
		}
	}
	return -1
}

// Linear reports whether s is one of the five linear fulfillment stages.
func (s Status) Linear() bool { return s.Index() >= 0 }

// Label renders the status for display, e.g. "out_for_delivery" becomes
// "Out For Delivery".
func (s Status) Label() string {
	words := strings.Split(string(s), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Next returns the stage one step forward in the progression. It reports
// false for delivered, the side states, and unknown values: the linear flow
// never skips and never moves backward.
func Next(s Status) (Status, bool) {
	idx := s.Index()
	if idx < 0 || idx >= len(progression)-1 {
		return "", false
	}
	return progression[idx+1], true
}

// CanTransition reports whether from may move to to along the linear
// progression. Only single forward steps are permitted; cancellation and
// returns are exits handled separately, not transitions.
func CanTransition(from, to Status) bool {
	next, ok := Next(from)
	return ok && next == to
}

// CanCancel reports whether an administrative actor may cancel an order in
// the given state. Any linear stage before delivery qualifies; delivered
// orders leave through the return path instead.
func CanCancel(s Status) bool {
	idx := s.Index()
	return idx >= 0 && idx < len(progression)-1
}

// CanRequestReturn reports whether the customer may open a return request.
// Only delivered orders qualify.
func CanRequestReturn(s Status) bool { return s == StatusDelivered }

// ValidateReturnRequest checks the client-side preconditions for a return
// request: the order must be delivered and the reason non-empty. A passing
// result does not guarantee acceptance; the remote store still applies its
// own checks, such as the return window.
func ValidateReturnRequest(status Status, reason string) error {
	if !CanRequestReturn(status) {
		return fmt.Errorf("%w: status is %q", ErrNotReturnable, status)
	}
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}
	return nil
}
