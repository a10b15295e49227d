// Package cart holds the client-side cart model. Every mutation is a round
// trip to the remote store followed by a full re-fetch: the cached snapshot
// is display state, never authority, so the model stays consistent with
// server-side stock and price truth without optimistic patching.
package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/buysphere/storefront/internal/api"
	"github.com/buysphere/storefront/internal/pricing"
)

var (
	// ErrInvalidQuantity is returned before any remote call when a
	// quantity below 1 is requested. Removing a line is RemoveItem's job.
	ErrInvalidQuantity = errors.New("cart: quantity must be at least 1")
	// ErrOutOfStock is returned before any remote call when the requested
	// quantity exceeds the product's available stock.
	ErrOutOfStock = errors.New("cart: requested quantity exceeds available stock")
)

// RemoteStore is the cart surface of the storefront API.
type RemoteStore interface {
	FetchCart(ctx context.Context) (api.Cart, error)
	AddCartItem(ctx context.Context, productID string, quantity int) error
	UpdateCartItem(ctx context.Context, productID string, quantity int) error
	RemoveCartItem(ctx context.Context, productID string) error
}

// ProductReader resolves product details for stock checks.
type ProductReader interface {
	Product(ctx context.Context, productID string) (api.Product, error)
}

// Model is one user's cart view. It is not safe for concurrent use; rapid
// mutations race at the remote store and the last re-fetch wins, which
// matches the display layer's last-writer-wins behaviour.
type Model struct {
	store    RemoteStore
	products ProductReader
	snapshot api.Cart
}

// NewModel wires a cart model over the remote store.
func NewModel(store RemoteStore, products ProductReader) (*Model, error) {
	if store == nil {
		return nil, errors.New("cart: remote store is required")
	}
	if products == nil {
		return nil, errors.New("cart: product reader is required")
	}
	return &Model{store: store, products: products}, nil
}

// Snapshot returns the cached cart copy from the last fetch.
func (m *Model) Snapshot() api.Cart { return m.snapshot }

// Refresh re-fetches the cart and replaces the cached copy.
func (m *Model) Refresh(ctx context.Context) (api.Cart, error) {
	cart, err := m.store.FetchCart(ctx)
	if err != nil {
		return api.Cart{}, err
	}
	m.snapshot = cart
	return cart, nil
}

// AddItem adds quantity of a product. When the product is already in the
// cart the remote store merges into the existing line, so the stock check
// covers the combined quantity. The snapshot is re-fetched first: models are
// short-lived and a stale or empty cache would let the merged line grow past
// stock. Precondition failures block the mutating call.
func (m *Model) AddItem(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}

	product, err := m.products.Product(ctx, productID)
	if err != nil {
		return err
	}
	if _, err := m.Refresh(ctx); err != nil {
		return err
	}

	requested := quantity
	if line, ok := m.snapshot.Line(productID); ok {
		requested += line.Quantity
	}
	if requested > product.Stock {
		return fmt.Errorf("%w: %d of %q requested, %d in stock", ErrOutOfStock, requested, product.Name, product.Stock)
	}

	if err := m.store.AddCartItem(ctx, productID, quantity); err != nil {
		return err
	}
	_, err = m.Refresh(ctx)
	return err
}

// UpdateQuantity replaces a line's quantity, clamped to [1, stock].
func (m *Model) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: got %d, use RemoveItem to drop a line", ErrInvalidQuantity, quantity)
	}

	product, err := m.products.Product(ctx, productID)
	if err != nil {
		return err
	}
	if quantity > product.Stock {
		return fmt.Errorf("%w: %d of %q requested, %d in stock", ErrOutOfStock, quantity, product.Name, product.Stock)
	}

	if err := m.store.UpdateCartItem(ctx, productID, quantity); err != nil {
		return err
	}
	_, err = m.Refresh(ctx)
	return err
}

// RemoveItem drops a product from the cart. Removing an absent product is a
// no-op, not an error; the remote store's removal is idempotent.
func (m *Model) RemoveItem(ctx context.Context, productID string) error {
	if err := m.store.RemoveCartItem(ctx, productID); err != nil {
		return err
	}
	_, err := m.Refresh(ctx)
	return err
}

// LineItems projects the cached snapshot into pricing inputs.
func (m *Model) LineItems() []pricing.LineItem {
	items := make([]pricing.LineItem, 0, len(m.snapshot.Items))
	for _, line := range m.snapshot.Items {
		items = append(items, pricing.LineItem{UnitPrice: line.Product.Price, Quantity: line.Quantity})
	}
	return items
}

// OrderItems projects the cached snapshot into order-creation lines: product
// id and quantity only, prices stay server-derived.
func (m *Model) OrderItems() []api.CartItem {
	items := make([]api.CartItem, 0, len(m.snapshot.Items))
	for _, line := range m.snapshot.Items {
		items = append(items, api.CartItem{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	return items
}

// Empty reports whether the cached snapshot has no lines.
func (m *Model) Empty() bool { return len(m.snapshot.Items) == 0 }
