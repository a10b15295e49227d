// Package checkout turns a cart, an address, and a payment method into a
// placed order through the two-step create-then-confirm flow.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/buysphere/storefront/internal/api"
)

var (
	// ErrEmptyCart blocks checkout before any remote call; the cart view
	// is the right destination instead.
	ErrEmptyCart = errors.New("checkout: cart is empty")
	// ErrNoAddress is returned when no shipping address was selected.
	ErrNoAddress = errors.New("checkout: shipping address is required")
	// ErrNoPaymentMethod is returned when no payment method was chosen.
	ErrNoPaymentMethod = errors.New("checkout: payment method is required")
)

// PaymentError reports a payment confirmation failure for an order that was
// already created. The order exists unconfirmed; any compensating action is
// the server's responsibility, so the client surfaces the failure without
// rolling back.
type PaymentError struct {
	OrderID string
	Err     error
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("checkout: payment confirmation failed for order %s: %v", e.OrderID, e.Err)
}

func (e *PaymentError) Unwrap() error { return e.Err }

// OrderPlacer is the order surface of the storefront API.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, req api.OrderCreate) (api.Order, error)
	ConfirmPayment(ctx context.Context, orderID string) error
}

// Deps bundles the orchestrator's collaborators.
type Deps struct {
	Orders OrderPlacer
	Logger *zap.Logger
}

// Orchestrator runs the checkout flow.
type Orchestrator struct {
	orders OrderPlacer
	logger *zap.Logger
}

// New wires the orchestrator.
func New(deps Deps) (*Orchestrator, error) {
	if deps.Orders == nil {
		return nil, errors.New("checkout: order placer is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{orders: deps.Orders, logger: logger}, nil
}

// PlaceOrderCommand carries everything checkout needs. Items hold product id
// and quantity only; prices are re-derived server-side.
type PlaceOrderCommand struct {
	Items         []api.CartItem
	Address       *api.Address
	PaymentMethod string
	DiscountCode  string
}

// PlaceOrder validates the command, creates the order, then confirms its
// payment. Both steps must succeed for the order to be considered placed; a
// step-two failure returns the created order together with a PaymentError so
// the caller can surface the unconfirmed state.
func (o *Orchestrator) PlaceOrder(ctx context.Context, cmd PlaceOrderCommand) (api.Order, error) {
	if len(cmd.Items) == 0 {
		return api.Order{}, ErrEmptyCart
	}
	if cmd.Address == nil {
		return api.Order{}, ErrNoAddress
	}
	if strings.TrimSpace(cmd.PaymentMethod) == "" {
		return api.Order{}, ErrNoPaymentMethod
	}

	created, err := o.orders.CreateOrder(ctx, api.OrderCreate{
		Items:           cmd.Items,
		ShippingAddress: *cmd.Address,
		PaymentMethod:   cmd.PaymentMethod,
		DiscountCode:    strings.TrimSpace(cmd.DiscountCode),
	})
	if err != nil {
		return api.Order{}, err
	}

	o.logger.Info("order created",
		zap.String("order_id", created.ID),
		zap.Float64("total", created.Total),
		zap.String("payment_method", created.PaymentMethod),
	)

	if err := o.orders.ConfirmPayment(ctx, created.ID); err != nil {
		o.logger.Warn("payment confirmation failed; order left unconfirmed",
			zap.String("order_id", created.ID),
			zap.Error(err),
		)
		return created, &PaymentError{OrderID: created.ID, Err: err}
	}

	return created, nil
}
