// Package store defines the persistence contracts shared by the gorm-backed
// and in-memory implementations. Single line-item mutations are expressed as
// atomic per-row primitives so callers never need read-modify-write for them.
package store

import (
	"context"
	"errors"

	"storefront-api/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrCartNotFound    = errors.New("cart not found")
	ErrItemNotFound    = errors.New("product not in cart")
	ErrSessionNotFound = errors.New("session not found")
	ErrDuplicateCode   = errors.New("product code already in use")
)

// ProductSort values outside the two price orders mean natural order
// (creation order).
type ProductSort string

const (
	SortNone      ProductSort = ""
	SortPriceAsc  ProductSort = "asc"
	SortPriceDesc ProductSort = "desc"
)

// ProductFilter carries the optional listing predicates. Available is
// stock-based: true matches stock > 0, false matches stock == 0.
type ProductFilter struct {
	Category  string
	Available *bool
	Search    string
	MinPrice  *float64
	MaxPrice  *float64
}

type CatalogStore interface {
	InsertProduct(ctx context.Context, p *models.Product) error
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	GetProductsByID(ctx context.Context, ids []string) ([]models.Product, error)
	SaveProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id string) error
	// ListProducts returns one page of matches plus the total match count.
	ListProducts(ctx context.Context, f ProductFilter, sort ProductSort, offset, limit int) ([]models.Product, int64, error)
	AllProducts(ctx context.Context) ([]models.Product, error)
	CodeInUse(ctx context.Context, code, excludeID string) (bool, error)
}

type CartStore interface {
	InsertCart(ctx context.Context, c *models.Cart) error
	// GetCart returns the cart with its items in insertion order.
	GetCart(ctx context.Context, id string) (*models.Cart, error)
	// AddItem increments the line item's quantity by qty, creating the line
	// item when absent. Atomic with respect to the (cart, product) row.
	AddItem(ctx context.Context, cartID, productID string, qty int) error
	// SetItemQuantity updates an existing line item; ErrItemNotFound when
	// the line item does not exist.
	SetItemQuantity(ctx context.Context, cartID, productID string, qty int) error
	// RemoveItem deletes the line item and reports whether a row existed.
	RemoveItem(ctx context.Context, cartID, productID string) (bool, error)
	ReplaceItems(ctx context.Context, cartID string, items []models.CartItem) error
	ClearItems(ctx context.Context, cartID string) error
}

type SessionStore interface {
	GetBinding(ctx context.Context, sessionID string) (*models.CartSession, error)
	SaveBinding(ctx context.Context, b *models.CartSession) error
}
