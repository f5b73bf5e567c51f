package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-api/models"
	"storefront-api/store"
	"storefront-api/store/memstore"
)

func newTestCarts(t *testing.T) (*Carts, *Catalog) {
	t.Helper()
	mem := memstore.New()
	catalog := NewCatalog(mem, nil)
	return NewCarts(mem, mem), catalog
}

func newCartWith(t *testing.T, carts *Carts) *models.Cart {
	t.Helper()
	cart, err := carts.Create(context.Background())
	require.NoError(t, err)
	return cart
}

func TestCreateCartEmpty(t *testing.T) {
	carts, _ := newTestCarts(t)
	cart := newCartWith(t, carts)

	assert.NotEmpty(t, cart.ID)
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
}

func TestAddProductNewItem(t *testing.T) {
	carts, catalog := newTestCarts(t)
	cart := newCartWith(t, carts)
	p := seedProduct(t, catalog, "Keyboard", "KB-1", "peripherals", 49.99, 10)

	updated, err := carts.AddProduct(context.Background(), cart.ID, p.ID, 2)
	require.NoError(t, err)

	require.Len(t, updated.Items, 1)
	assert.Equal(t, p.ID, updated.Items[0].ProductID)
	assert.Equal(t, 2, updated.Items[0].Quantity)
}

func TestAddProductIncrementsExisting(t *testing.T) {
	carts, catalog := newTestCarts(t)
	cart := newCartWith(t, carts)
	a := seedProduct(t, catalog, "Product A", "X1", "misc", 10, 5)
	b := seedProduct(t, catalog, "Product B", "X2", "misc", 20, 5)

	_, err := carts.AddProduct(context.Background(), cart.ID, a.ID, 1)
	require.NoError(t, err)
	_, err = carts.AddProduct(context.Background(), cart.ID, b.ID, 4)
	require.NoError(t, err)

	updated, err := carts.AddProduct(context.Background(), cart.ID, a.ID, 2)
	require.NoError(t, err)

	require.Len(t, updated.Items, 2, "re-adding must not duplicate the line item")
	assert.Equal(t, a.ID, updated.Items[0].ProductID)
	assert.Equal(t, 3, updated.Items[0].Quantity)
	assert.Equal(t, 4, updated.Items[1].Quantity, "other line items stay unchanged")
}

func TestAddProductInvalidQuantity(t *testing.T) {
	carts, catalog := newTestCarts(t)
	cart := newCartWith(t, carts)
	p := seedProduct(t, catalog, "Keyboard", "KB-1", "peripherals", 49.99, 10)

	for _, qty := range []int{0, -2} {
		_, err := carts.AddProduct(context.Background(), cart.ID, p.ID, qty)
		assert.True(t, IsValidation(err), "quantity %d must be rejected", qty)
	}
}

func TestAddProductMissingProduct(t *testing.T) {
	carts, _ := newTestCarts(t)
	cart := newCartWith(t, carts)

	_, err := carts.AddProduct(context.Background(), cart.ID, "ghost", 1)
	assert.ErrorIs(t, err, store.ErrProductNotFound)

	unchanged, err := carts.Get(context.Background(), cart.ID)
	require.NoError(t, err)
	assert.Empty(t, unchanged.Items)
}

func TestAddProductMissingCart(t *testing.T) {
	carts, catalog := newTestCarts(t)
	p := seedProduct(t, catalog, "Keyboard", "KB-1", "peripherals", 49.99, 10)

	_, err := carts.AddProduct(context.Background(), "ghost", p.ID, 1)
	assert.ErrorIs(t, err, store.ErrCartNotFound)
}

func TestSetQuantity(t *testing.T) {
	carts, catalog := newTestCarts(t)
	cart := newCartWith(t, carts)
	p := seedProduct(t, catalog, "Keyboard", "KB-1", "peripherals", 49.99, 10)
	_, err := carts.AddProduct(context.Background(), cart.ID, p.ID, 1)
	require.NoError(t, err)

	updated, err := carts.SetQuantity(context.Background(), cart.ID, p.ID, 7)
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, 7, updated.Items[0].Quantity)
}

func TestSetQuantityZeroRemoves(t *testing.T) {
	carts, catalog := newTestCarts(t)
	cart := newCartWith(t, carts)
	p := seedProduct(t, catalog, "Keyboard", "KB-1", "peripherals", 49.99, 10)
	_, err := carts.AddProduct(context.Background(), cart.ID, p.ID, 3)
	require.NoError(t, err)

	updated, err := carts.SetQuantity(context.Background(), cart.ID, p.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, updated.Items, "quantity 0 removes the line item entirely")
}

func TestSetQuantityMissingItem(t *testing.T) {
	carts, catalog := newTestCarts(t)
	cart := newCartWith(t, carts)
	p := seedProduct(t, catalog, "Keyboard", "KB-1", "peripherals", 49.99, 10)

	_, err := carts.SetQuantity(context.Background(), cart.ID, p.ID, 2)
	assert.ErrorIs(t, err, store.ErrItemNotFound)

	_, err = carts.SetQuantity(context.Background(), cart.ID, p.ID, 0)
	assert.ErrorIs(t, err, store.ErrItemNotFound)
}

func TestSetQuantityNegative(t *testing.T) {
	carts, catalog := newTestCarts(t)
	cart := newCartWith(t, carts)
	p := seedProduct(t, catalog, "Keyboard", "KB-1", "peripherals", 49.99, 10)

	_, err := carts.SetQuantity(context.Background(), cart.ID, p.ID, -1)
	assert.True(t, IsValidation(err))
}

func TestRemoveProductIdempotent(t *testing.T) {
	carts, catalog := newTestCarts(t)
	cart := newCartWith(t, carts)
	p := seedProduct(t, catalog, "Keyboard", "KB-1", "peripherals", 49.99, 10)
	q := seedProduct(t, catalog, "Mouse", "MS-1", "peripherals", 19.99, 5)
	_, err := carts.AddProduct(context.Background(), cart.ID, p.ID, 1)
	require.NoError(t, err)
	_, err = carts.AddProduct(context.Background(), cart.ID, q.ID, 2)
	require.NoError(t, err)

	once, err := carts.RemoveProduct(context.Background(), cart.ID, p.ID)
	require.NoError(t, err)
	twice, err := carts.RemoveProduct(context.Background(), cart.ID, p.ID)
	require.NoError(t, err)

	require.Len(t, once.Items, 1)
	require.Len(t, twice.Items, 1)
	assert.Equal(t, once.Items[0].ProductID, twice.Items[0].ProductID)
	assert.Equal(t, once.Items[0].Quantity, twice.Items[0].Quantity)
}

func TestReplaceAllSuccess(t *testing.T) {
	carts, catalog := newTestCarts(t)
	cart := newCartWith(t, carts)
	a := seedProduct(t, catalog, "Product A", "X1", "misc", 10, 5)
	b := seedProduct(t, catalog, "Product B", "X2", "misc", 20, 5)
	c := seedProduct(t, catalog, "Product C", "X3", "misc", 30, 5)
	_, err := carts.AddProduct(context.Background(), cart.ID, a.ID, 9)
	require.NoError(t, err)

	updated, err := carts.ReplaceAll(context.Background(), cart.ID, []ItemInput{
		{ProductID: b.ID, Quantity: 2},
		{ProductID: c.ID, Quantity: 1},
	})
	require.NoError(t, err)

	require.Len(t, updated.Items, 2)
	assert.Equal(t, b.ID, updated.Items[0].ProductID)
	assert.Equal(t, 2, updated.Items[0].Quantity)
	assert.Equal(t, c.ID, updated.Items[1].ProductID)
}

func TestReplaceAllIsAllOrNothing(t *testing.T) {
	carts, catalog := newTestCarts(t)
	cart := newCartWith(t, carts)
	a := seedProduct(t, catalog, "Product A", "X1", "misc", 10, 5)
	b := seedProduct(t, catalog, "Product B", "X2", "misc", 20, 5)
	_, err := carts.AddProduct(context.Background(), cart.ID, a.ID, 3)
	require.NoError(t, err)
	before, err := carts.Get(context.Background(), cart.ID)
	require.NoError(t, err)

	_, err = carts.ReplaceAll(context.Background(), cart.ID, []ItemInput{
		{ProductID: b.ID, Quantity: 1},
		{ProductID: "ghost", Quantity: 2},
	})
	require.ErrorIs(t, err, store.ErrProductNotFound)

	after, err := carts.Get(context.Background(), cart.ID)
	require.NoError(t, err)
	require.Len(t, after.Items, len(before.Items))
	for i := range before.Items {
		assert.Equal(t, before.Items[i].ProductID, after.Items[i].ProductID)
		assert.Equal(t, before.Items[i].Quantity, after.Items[i].Quantity)
	}
}

func TestReplaceAllMergesDuplicateIDs(t *testing.T) {
	carts, catalog := newTestCarts(t)
	cart := newCartWith(t, carts)
	a := seedProduct(t, catalog, "Product A", "X1", "misc", 10, 5)

	updated, err := carts.ReplaceAll(context.Background(), cart.ID, []ItemInput{
		{ProductID: a.ID, Quantity: 2},
		{ProductID: a.ID, Quantity: 3},
	})
	require.NoError(t, err)

	require.Len(t, updated.Items, 1)
	assert.Equal(t, 5, updated.Items[0].Quantity)
}

func TestReplaceAllInvalidQuantity(t *testing.T) {
	carts, catalog := newTestCarts(t)
	cart := newCartWith(t, carts)
	a := seedProduct(t, catalog, "Product A", "X1", "misc", 10, 5)

	_, err := carts.ReplaceAll(context.Background(), cart.ID, []ItemInput{
		{ProductID: a.ID, Quantity: 0},
	})
	assert.True(t, IsValidation(err))
}

func TestClearCart(t *testing.T) {
	carts, catalog := newTestCarts(t)
	cart := newCartWith(t, carts)
	a := seedProduct(t, catalog, "Product A", "X1", "misc", 10, 5)
	_, err := carts.AddProduct(context.Background(), cart.ID, a.ID, 2)
	require.NoError(t, err)

	cleared, err := carts.Clear(context.Background(), cart.ID)
	require.NoError(t, err)
	assert.NotNil(t, cleared.Items)
	assert.Empty(t, cleared.Items)
}

func TestClearMissingCart(t *testing.T) {
	carts, _ := newTestCarts(t)
	_, err := carts.Clear(context.Background(), "ghost")
	assert.ErrorIs(t, err, store.ErrCartNotFound)
}

func TestGetResolvesProductData(t *testing.T) {
	carts, catalog := newTestCarts(t)
	cart := newCartWith(t, carts)
	p := seedProduct(t, catalog, "Keyboard", "KB-1", "peripherals", 49.99, 10)
	_, err := carts.AddProduct(context.Background(), cart.ID, p.ID, 1)
	require.NoError(t, err)

	got, err := carts.Get(context.Background(), cart.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	require.NotNil(t, got.Items[0].Product)
	assert.Equal(t, "Keyboard", got.Items[0].Product.Title)
	assert.Equal(t, "KB-1", got.Items[0].Product.Code)
}

func TestOrphanedReferenceStaysUnresolved(t *testing.T) {
	carts, catalog := newTestCarts(t)
	cart := newCartWith(t, carts)
	p := seedProduct(t, catalog, "Keyboard", "KB-1", "peripherals", 49.99, 10)
	_, err := carts.AddProduct(context.Background(), cart.ID, p.ID, 1)
	require.NoError(t, err)

	require.NoError(t, catalog.Delete(context.Background(), p.ID))

	got, err := carts.Get(context.Background(), cart.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1, "orphaned line items are not auto-pruned")
	assert.Nil(t, got.Items[0].Product)
}
