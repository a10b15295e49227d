package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buysphere/storefront/internal/api"
)

// fakeStore is an in-memory stand-in for the remote cart.
type fakeStore struct {
	lines    map[string]int
	catalog  map[string]api.Product
	addCalls int
}

func newFakeStore(products ...api.Product) *fakeStore {
	s := &fakeStore{lines: map[string]int{}, catalog: map[string]api.Product{}}
	for _, p := range products {
		s.catalog[p.ID] = p
	}
	return s
}

func (s *fakeStore) FetchCart(context.Context) (api.Cart, error) {
	cart := api.Cart{}
	for id, qty := range s.lines {
		cart.Items = append(cart.Items, api.CartLine{ProductID: id, Quantity: qty, Product: s.catalog[id]})
	}
	return cart, nil
}

func (s *fakeStore) AddCartItem(_ context.Context, productID string, quantity int) error {
	s.addCalls++
	s.lines[productID] += quantity
	return nil
}

func (s *fakeStore) UpdateCartItem(_ context.Context, productID string, quantity int) error {
	s.lines[productID] = quantity
	return nil
}

func (s *fakeStore) RemoveCartItem(_ context.Context, productID string) error {
	delete(s.lines, productID)
	return nil
}

func (s *fakeStore) Product(_ context.Context, productID string) (api.Product, error) {
	p, ok := s.catalog[productID]
	if !ok {
		return api.Product{}, &api.RemoteError{Status: 404, Detail: "Product not found"}
	}
	return p, nil
}

func newTestModel(t *testing.T, products ...api.Product) (*Model, *fakeStore) {
	t.Helper()
	store := newFakeStore(products...)
	model, err := NewModel(store, store)
	require.NoError(t, err)
	return model, store
}

func TestAddItemMergesIntoExistingLine(t *testing.T) {
	model, _ := newTestModel(t, api.Product{ID: "p1", Name: "Lamp", Price: 100, Stock: 10})
	ctx := context.Background()

	require.NoError(t, model.AddItem(ctx, "p1", 2))
	require.NoError(t, model.AddItem(ctx, "p1", 3))

	line, ok := model.Snapshot().Line("p1")
	require.True(t, ok)
	assert.Equal(t, 5, line.Quantity)
}

func TestAddItemRejectsBeforeRemoteCall(t *testing.T) {
	model, store := newTestModel(t, api.Product{ID: "p1", Name: "Lamp", Price: 100, Stock: 3})
	ctx := context.Background()

	err := model.AddItem(ctx, "p1", 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	err = model.AddItem(ctx, "p1", 4)
	assert.ErrorIs(t, err, ErrOutOfStock)

	assert.Zero(t, store.addCalls, "precondition failures must not reach the remote store")
}

func TestAddItemStockCheckSeesServerSideLines(t *testing.T) {
	// Models are built per request, so the merged-quantity check must cover
	// lines added through earlier models of the same remote cart.
	store := newFakeStore(api.Product{ID: "p1", Name: "Lamp", Price: 100, Stock: 5})
	ctx := context.Background()

	first, err := NewModel(store, store)
	require.NoError(t, err)
	require.NoError(t, first.AddItem(ctx, "p1", 3))

	second, err := NewModel(store, store)
	require.NoError(t, err)
	err = second.AddItem(ctx, "p1", 3)
	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.Equal(t, 3, store.lines["p1"], "rejected add must leave the remote line unchanged")
}

func TestAddItemStockCheckCoversMergedQuantity(t *testing.T) {
	model, _ := newTestModel(t, api.Product{ID: "p1", Name: "Lamp", Price: 100, Stock: 5})
	ctx := context.Background()

	require.NoError(t, model.AddItem(ctx, "p1", 3))
	err := model.AddItem(ctx, "p1", 3)
	assert.ErrorIs(t, err, ErrOutOfStock)

	line, _ := model.Snapshot().Line("p1")
	assert.Equal(t, 3, line.Quantity, "failed add must leave the cart unchanged")
}

func TestUpdateQuantityClampsToStockAndFloor(t *testing.T) {
	model, _ := newTestModel(t, api.Product{ID: "p1", Name: "Lamp", Price: 100, Stock: 4})
	ctx := context.Background()
	require.NoError(t, model.AddItem(ctx, "p1", 1))

	assert.ErrorIs(t, model.UpdateQuantity(ctx, "p1", 0), ErrInvalidQuantity)
	assert.ErrorIs(t, model.UpdateQuantity(ctx, "p1", 5), ErrOutOfStock)
	require.NoError(t, model.UpdateQuantity(ctx, "p1", 4))

	line, _ := model.Snapshot().Line("p1")
	assert.Equal(t, 4, line.Quantity)
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	model, _ := newTestModel(t, api.Product{ID: "p1", Name: "Lamp", Price: 100, Stock: 4})
	ctx := context.Background()
	require.NoError(t, model.AddItem(ctx, "p1", 1))

	require.NoError(t, model.RemoveItem(ctx, "p1"))
	require.NoError(t, model.RemoveItem(ctx, "p1"), "removing an absent line is a no-op")
	assert.True(t, model.Empty())
}

func TestProjections(t *testing.T) {
	model, _ := newTestModel(t,
		api.Product{ID: "p1", Name: "Lamp", Price: 100, Stock: 5},
		api.Product{ID: "p2", Name: "Desk", Price: 250, Stock: 2},
	)
	ctx := context.Background()
	require.NoError(t, model.AddItem(ctx, "p1", 2))
	require.NoError(t, model.AddItem(ctx, "p2", 1))

	lineItems := model.LineItems()
	require.Len(t, lineItems, 2)
	var subtotal float64
	for _, li := range lineItems {
		subtotal += li.UnitPrice * float64(li.Quantity)
	}
	assert.Equal(t, 450.0, subtotal)

	orderItems := model.OrderItems()
	require.Len(t, orderItems, 2)
	for _, item := range orderItems {
		assert.NotEmpty(t, item.ProductID)
		assert.Positive(t, item.Quantity)
	}
}

func TestNewModelValidatesDeps(t *testing.T) {
	store := newFakeStore()
	_, err := NewModel(nil, store)
	assert.Error(t, err)
	_, err = NewModel(store, nil)
	assert.Error(t, err)
}

func TestAddItemUnknownProduct(t *testing.T) {
	model, _ := newTestModel(t)
	err := model.AddItem(context.Background(), "ghost", 1)
	var remote *api.RemoteError
	assert.True(t, errors.As(err, &remote))
}
