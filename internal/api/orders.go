package api

import (
	"context"
	"net/http"
	"net/url"
)

// CreateOrder submits the order-creation request. The server snapshots
// product details and prices, decrements stock, and clears the cart.
func (c *Client) CreateOrder(ctx context.Context, req OrderCreate) (Order, error) {
	var created Order
	if err := c.do(ctx, http.MethodPost, "orders/create", nil, req, &created); err != nil {
		return Order{}, err
	}
	return created, nil
}

// ConfirmPayment triggers payment confirmation for a freshly created order.
func (c *Client) ConfirmPayment(ctx context.Context, orderID string) error {
	return c.do(ctx, http.MethodPost, "orders/"+url.PathEscape(orderID)+"/payment", nil, nil, nil)
}

// Orders lists the authenticated user's orders, newest first.
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "orders", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Order fetches one of the user's orders by id.
func (c *Client) Order(ctx context.Context, orderID string) (Order, error) {
	var found Order
	if err := c.do(ctx, http.MethodGet, "orders/"+url.PathEscape(orderID), nil, nil, &found); err != nil {
		return Order{}, err
	}
	return found, nil
}

// CreateReturn opens a return request for a delivered order. The server
// additionally enforces the return window.
func (c *Client) CreateReturn(ctx context.Context, orderID, reason string) (ReturnRequest, error) {
	body := map[string]string{"order_id": orderID, "reason": reason}
	var request ReturnRequest
	if err := c.do(ctx, http.MethodPost, "returns/create", nil, body, &request); err != nil {
		return ReturnRequest{}, err
	}
	return request, nil
}

// Returns lists the user's return requests.
func (c *Client) Returns(ctx context.Context) ([]ReturnRequest, error) {
	var requests []ReturnRequest
	if err := c.do(ctx, http.MethodGet, "returns", nil, nil, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}
