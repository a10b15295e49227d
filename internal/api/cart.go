package api

import (
	"context"
	"net/http"
	"net/url"
)

// FetchCart returns the authenticated user's current cart snapshot. A user
// with no cart yet receives an empty one.
func (c *Client) FetchCart(ctx context.Context) (Cart, error) {
	var cart Cart
	if err := c.do(ctx, http.MethodGet, "cart", nil, nil, &cart); err != nil {
		return Cart{}, err
	}
	return cart, nil
}

// AddCartItem adds quantity of a product to the cart. The server merges into
// an existing line when the product is already present.
func (c *Client) AddCartItem(ctx context.Context, productID string, quantity int) error {
	return c.do(ctx, http.MethodPost, "cart/add", nil, CartItem{ProductID: productID, Quantity: quantity}, nil)
}

// UpdateCartItem replaces a line's quantity. A quantity of zero drops the
// line server-side, but callers are expected to use RemoveCartItem for that.
func (c *Client) UpdateCartItem(ctx context.Context, productID string, quantity int) error {
	return c.do(ctx, http.MethodPut, "cart/update", nil, CartItem{ProductID: productID, Quantity: quantity}, nil)
}

// RemoveCartItem drops a product from the cart. Removing an absent product
// is a no-op on the server.
func (c *Client) RemoveCartItem(ctx context.Context, productID string) error {
	return c.do(ctx, http.MethodDelete, "cart/remove/"+url.PathEscape(productID), nil, nil, nil)
}

// ClearCart empties the cart.
func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "cart/clear", nil, nil, nil)
}
