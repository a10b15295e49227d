package api

import (
	"context"
	"net/http"
	"net/url"
)

// Wishlist returns the products the user has saved for later.
func (c *Client) Wishlist(ctx context.Context) ([]Product, error) {
	var payload struct {
		Products []Product `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, "wishlist", nil, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Products, nil
}

// AddToWishlist saves a product. Saving an already-saved product is a no-op.
func (c *Client) AddToWishlist(ctx context.Context, productID string) error {
	return c.do(ctx, http.MethodPost, "wishlist/add/"+url.PathEscape(productID), nil, nil, nil)
}

// RemoveFromWishlist drops a product from the wishlist.
func (c *Client) RemoveFromWishlist(ctx context.Context, productID string) error {
	return c.do(ctx, http.MethodDelete, "wishlist/remove/"+url.PathEscape(productID), nil, nil, nil)
}
