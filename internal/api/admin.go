package api

import (
	"context"
	"net/http"
	"net/url"
)

// Admin endpoints require a session whose user carries the admin flag; the
// server rejects everything else with 403.

// AdminAnalytics fetches the back-office summary counters.
func (c *Client) AdminAnalytics(ctx context.Context) (Analytics, error) {
	var analytics Analytics
	if err := c.do(ctx, http.MethodGet, "admin/analytics", nil, nil, &analytics); err != nil {
		return Analytics{}, err
	}
	return analytics, nil
}

// AdminCreateProduct adds a product to the catalog.
func (c *Client) AdminCreateProduct(ctx context.Context, req ProductCreate) (Product, error) {
	var created Product
	if err := c.do(ctx, http.MethodPost, "admin/products", nil, req, &created); err != nil {
		return Product{}, err
	}
	return created, nil
}

// AdminUpdateProduct replaces a product's editable fields.
func (c *Client) AdminUpdateProduct(ctx context.Context, productID string, req ProductCreate) error {
	return c.do(ctx, http.MethodPut, "admin/products/"+url.PathEscape(productID), nil, req, nil)
}

// AdminDeleteProduct removes a product from the catalog.
func (c *Client) AdminDeleteProduct(ctx context.Context, productID string) error {
	return c.do(ctx, http.MethodDelete, "admin/products/"+url.PathEscape(productID), nil, nil, nil)
}

// AdminOrders lists every order in the store, newest first.
func (c *Client) AdminOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "admin/orders", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// AdminUpdateOrderStatus reassigns an order's status. The reassignment is
// free-form on purpose: operators may also reverse a cancellation back into
// the flow, so no client-side transition check is applied here. The status
// travels as a query parameter.
func (c *Client) AdminUpdateOrderStatus(ctx context.Context, orderID, status string) error {
	query := url.Values{}
	query.Set("status", status)
	return c.do(ctx, http.MethodPut, "admin/orders/"+url.PathEscape(orderID)+"/status", query, nil, nil)
}

// Seed asks the backend to load its demo dataset. Harmless when the store
// already has products.
func (c *Client) Seed(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "seed", nil, nil, nil)
}
