package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Products lists catalog products matching the filter.
func (c *Client) Products(ctx context.Context, filter ProductFilter) ([]Product, error) {
	query := url.Values{}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.Brand != "" {
		query.Set("brand", filter.Brand)
	}
	if filter.MinPrice != nil {
		query.Set("min_price", strconv.FormatFloat(*filter.MinPrice, 'f', -1, 64))
	}
	if filter.MaxPrice != nil {
		query.Set("max_price", strconv.FormatFloat(*filter.MaxPrice, 'f', -1, 64))
	}
	if filter.Sort != "" {
		query.Set("sort", filter.Sort)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}

	var products []Product
	if err := c.do(ctx, http.MethodGet, "products", query, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Product fetches a single catalog entry by id.
func (c *Client) Product(ctx context.Context, productID string) (Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodGet, "products/"+url.PathEscape(productID), nil, nil, &product); err != nil {
		return Product{}, err
	}
	return product, nil
}

// Categories lists the catalog facets derived from the product set.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.do(ctx, http.MethodGet, "categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Reviews lists the reviews for a product.
func (c *Client) Reviews(ctx context.Context, productID string) ([]Review, error) {
	var reviews []Review
	if err := c.do(ctx, http.MethodGet, "products/"+url.PathEscape(productID)+"/reviews", nil, nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// SubmitReview posts a review for a product. The backend enforces no
// one-review-per-user rule; repeated submissions all stand.
func (c *Client) SubmitReview(ctx context.Context, productID string, rating int, comment string) error {
	body := map[string]any{"rating": rating, "comment": comment}
	return c.do(ctx, http.MethodPost, "products/"+url.PathEscape(productID)+"/review", nil, body, nil)
}
