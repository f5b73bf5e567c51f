package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"storefront-api/models"
	"storefront-api/store"
)

// Carts applies the cart mutations. Every operation validates before it
// writes and returns the updated cart with product references resolved, or a
// typed error; no operation leaves a partial multi-item change behind.
type Carts struct {
	carts   store.CartStore
	catalog store.CatalogStore
}

func NewCarts(carts store.CartStore, catalog store.CatalogStore) *Carts {
	return &Carts{carts: carts, catalog: catalog}
}

type ItemInput struct {
	ProductID string `json:"product" binding:"required"`
	Quantity  int    `json:"quantity"`
}

func (s *Carts) Create(ctx context.Context) (*models.Cart, error) {
	cart := &models.Cart{
		ID:    uuid.NewString(),
		Items: []models.CartItem{},
	}
	if err := s.carts.InsertCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *Carts) Get(ctx context.Context, cartID string) (*models.Cart, error) {
	cart, err := s.carts.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, cart)
}

// AddProduct increments an existing line item by qty or appends a new one.
func (s *Carts) AddProduct(ctx context.Context, cartID, productID string, qty int) (*models.Cart, error) {
	if qty < 1 {
		return nil, invalidf("quantity must be at least 1")
	}
	if _, err := s.catalog.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	if _, err := s.carts.GetCart(ctx, cartID); err != nil {
		return nil, err
	}
	if err := s.carts.AddItem(ctx, cartID, productID, qty); err != nil {
		return nil, err
	}
	return s.Get(ctx, cartID)
}

// SetQuantity sets a line item to exactly qty; qty 0 removes the line item.
func (s *Carts) SetQuantity(ctx context.Context, cartID, productID string, qty int) (*models.Cart, error) {
	if qty < 0 {
		return nil, invalidf("quantity must not be negative")
	}
	if _, err := s.carts.GetCart(ctx, cartID); err != nil {
		return nil, err
	}
	if qty == 0 {
		removed, err := s.carts.RemoveItem(ctx, cartID, productID)
		if err != nil {
			return nil, err
		}
		if !removed {
			return nil, store.ErrItemNotFound
		}
	} else if err := s.carts.SetItemQuantity(ctx, cartID, productID, qty); err != nil {
		return nil, err
	}
	return s.Get(ctx, cartID)
}

// ReplaceAll swaps the cart's whole collection for items. Every referenced
// product is validated before any write; on a missing product the cart is
// untouched. Duplicate product ids in one request merge by summing their
// quantities. The read-validate-write sequence is not safe against a
// concurrent mutation of the same cart.
func (s *Carts) ReplaceAll(ctx context.Context, cartID string, items []ItemInput) (*models.Cart, error) {
	if _, err := s.carts.GetCart(ctx, cartID); err != nil {
		return nil, err
	}

	merged := make([]ItemInput, 0, len(items))
	index := make(map[string]int, len(items))
	for _, item := range items {
		if item.ProductID == "" {
			return nil, invalidf("every item needs a product id")
		}
		if item.Quantity < 1 {
			return nil, invalidf("quantity for product %s must be at least 1", item.ProductID)
		}
		if at, ok := index[item.ProductID]; ok {
			merged[at].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}

	ids := make([]string, len(merged))
	for i, item := range merged {
		ids[i] = item.ProductID
	}
	products, err := s.catalog.GetProductsByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(products))
	for _, p := range products {
		known[p.ID] = true
	}
	for _, id := range ids {
		if !known[id] {
			return nil, fmt.Errorf("product %s: %w", id, store.ErrProductNotFound)
		}
	}

	replacement := make([]models.CartItem, len(merged))
	for i, item := range merged {
		replacement[i] = models.CartItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}
	if err := s.carts.ReplaceItems(ctx, cartID, replacement); err != nil {
		return nil, err
	}
	return s.Get(ctx, cartID)
}

// RemoveProduct deletes the line item when present; removing an absent item
// is not an error.
func (s *Carts) RemoveProduct(ctx context.Context, cartID, productID string) (*models.Cart, error) {
	if _, err := s.carts.GetCart(ctx, cartID); err != nil {
		return nil, err
	}
	if _, err := s.carts.RemoveItem(ctx, cartID, productID); err != nil {
		return nil, err
	}
	return s.Get(ctx, cartID)
}

func (s *Carts) Clear(ctx context.Context, cartID string) (*models.Cart, error) {
	if _, err := s.carts.GetCart(ctx, cartID); err != nil {
		return nil, err
	}
	if err := s.carts.ClearItems(ctx, cartID); err != nil {
		return nil, err
	}
	return s.Get(ctx, cartID)
}

// resolve attaches full product data to each line item. Items whose product
// was deleted keep a nil Product instead of being pruned.
func (s *Carts) resolve(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	if len(cart.Items) == 0 {
		return cart, nil
	}
	ids := make([]string, len(cart.Items))
	for i, item := range cart.Items {
		ids[i] = item.ProductID
	}
	products, err := s.catalog.GetProductsByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for i := range cart.Items {
		if p, ok := byID[cart.Items[i].ProductID]; ok {
			resolved := p
			cart.Items[i].Product = &resolved
		}
	}
	return cart, nil
}
