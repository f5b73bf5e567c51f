// Package memstore is a mutex-guarded in-memory implementation of the store
// contracts. It backs the unit tests and the DB-less dev mode, and preserves
// the same insertion-order and atomicity semantics as the gorm store.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"storefront-api/models"
	"storefront-api/store"
)

type Store struct {
	mu       sync.RWMutex
	products []*models.Product          // insertion order
	byID     map[string]*models.Product
	carts    map[string]*models.Cart
	sessions map[string]*models.CartSession
	itemSeq  uint
}

func New() *Store {
	return &Store{
		byID:     make(map[string]*models.Product),
		carts:    make(map[string]*models.Cart),
		sessions: make(map[string]*models.CartSession),
	}
}

// --- CatalogStore ---

func (s *Store) InsertProduct(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.products {
		if existing.Code == p.Code {
			return store.ErrDuplicateCode
		}
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	s.products = append(s.products, &cp)
	s.byID[cp.ID] = &cp
	return nil
}

func (s *Store) GetProduct(_ context.Context, id string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	if !ok {
		return nil, store.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *Store) GetProductsByID(_ context.Context, ids []string) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Product
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if p, ok := s.byID[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *Store) SaveProduct(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.byID[p.ID]
	if !ok {
		return store.ErrProductNotFound
	}
	for _, other := range s.products {
		if other.ID != p.ID && other.Code == p.Code {
			return store.ErrDuplicateCode
		}
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now()
	*existing = *p
	return nil
}

func (s *Store) DeleteProduct(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return store.ErrProductNotFound
	}
	delete(s.byID, id)
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) CodeInUse(_ context.Context, code, excludeID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.Code == code && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func matches(p *models.Product, f store.ProductFilter) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Available != nil {
		if *f.Available && p.Stock <= 0 {
			return false
		}
		if !*f.Available && p.Stock > 0 {
			return false
		}
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Title), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			return false
		}
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	return true
}

func (s *Store) ListProducts(_ context.Context, f store.ProductFilter, sortOrder store.ProductSort, offset, limit int) ([]models.Product, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.Product
	for _, p := range s.products {
		if matches(p, f) {
			matched = append(matched, *p)
		}
	}
	switch sortOrder {
	case store.SortPriceAsc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price < matched[j].Price })
	case store.SortPriceDesc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price > matched[j].Price })
	}

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if limit < 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (s *Store) AllProducts(_ context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, *p)
	}
	return out, nil
}

// --- CartStore ---

func (s *Store) InsertCart(_ context.Context, c *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	cp := *c
	cp.Items = append([]models.CartItem(nil), c.Items...)
	s.carts[cp.ID] = &cp
	return nil
}

func (s *Store) GetCart(_ context.Context, id string) (*models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cartCopy(id)
}

func (s *Store) cartCopy(id string) (*models.Cart, error) {
	cart, ok := s.carts[id]
	if !ok {
		return nil, store.ErrCartNotFound
	}
	cp := *cart
	cp.Items = append([]models.CartItem(nil), cart.Items...)
	return &cp, nil
}

func (s *Store) AddItem(_ context.Context, cartID, productID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[cartID]
	if !ok {
		return store.ErrCartNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += qty
			cart.UpdatedAt = time.Now()
			return nil
		}
	}
	s.itemSeq++
	cart.Items = append(cart.Items, models.CartItem{
		ID:        s.itemSeq,
		CartID:    cartID,
		ProductID: productID,
		Quantity:  qty,
		AddedAt:   time.Now(),
	})
	cart.UpdatedAt = time.Now()
	return nil
}

func (s *Store) SetItemQuantity(_ context.Context, cartID, productID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[cartID]
	if !ok {
		return store.ErrCartNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = qty
			cart.UpdatedAt = time.Now()
			return nil
		}
	}
	return store.ErrItemNotFound
}

func (s *Store) RemoveItem(_ context.Context, cartID, productID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[cartID]
	if !ok {
		return false, store.ErrCartNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			cart.UpdatedAt = time.Now()
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ReplaceItems(_ context.Context, cartID string, items []models.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[cartID]
	if !ok {
		return store.ErrCartNotFound
	}
	replaced := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		s.itemSeq++
		item.ID = s.itemSeq
		item.CartID = cartID
		if item.AddedAt.IsZero() {
			item.AddedAt = time.Now()
		}
		replaced = append(replaced, item)
	}
	cart.Items = replaced
	cart.UpdatedAt = time.Now()
	return nil
}

func (s *Store) ClearItems(_ context.Context, cartID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[cartID]
	if !ok {
		return store.ErrCartNotFound
	}
	cart.Items = nil
	cart.UpdatedAt = time.Now()
	return nil
}

// --- SessionStore ---

func (s *Store) GetBinding(_ context.Context, sessionID string) (*models.CartSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.sessions[sessionID]
	if !ok {
		return nil, store.ErrSessionNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *Store) SaveBinding(_ context.Context, b *models.CartSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if existing, ok := s.sessions[b.SessionID]; ok {
		existing.CartID = b.CartID
		existing.UpdatedAt = now
		return nil
	}
	cp := *b
	cp.CreatedAt = now
	cp.UpdatedAt = now
	s.sessions[cp.SessionID] = &cp
	return nil
}
