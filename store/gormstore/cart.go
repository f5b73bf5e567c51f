package gormstore

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront-api/models"
	"storefront-api/store"
)

func (s *Store) InsertCart(ctx context.Context, c *models.Cart) error {
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return errors.Wrap(err, "insert cart")
	}
	return nil
}

func (s *Store) GetCart(ctx context.Context, id string) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("added_at ASC, id ASC")
		}).
		First(&cart, "id = ?", id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrCartNotFound
		}
		return nil, errors.Wrap(err, "get cart")
	}
	return &cart, nil
}

// AddItem relies on the unique (cart_id, product_id) index: inserting a
// duplicate turns into a single conditional increment, so concurrent adds
// never lose updates.
func (s *Store) AddItem(ctx context.Context, cartID, productID string, qty int) error {
	item := models.CartItem{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  qty,
		AddedAt:   time.Now(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart_items.quantity + ?", qty),
		}),
	}).Create(&item).Error
	if err != nil {
		return errors.Wrap(err, "add cart item")
	}
	return nil
}

func (s *Store) SetItemQuantity(ctx context.Context, cartID, productID string, qty int) error {
	res := s.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Update("quantity", qty)
	if res.Error != nil {
		return errors.Wrap(res.Error, "set cart item quantity")
	}
	if res.RowsAffected == 0 {
		return store.ErrItemNotFound
	}
	return nil
}

func (s *Store) RemoveItem(ctx context.Context, cartID, productID string) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "remove cart item")
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) ReplaceItems(ctx context.Context, cartID string, items []models.CartItem) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ID = 0
			items[i].CartID = cartID
			if items[i].AddedAt.IsZero() {
				items[i].AddedAt = time.Now()
			}
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Cart{}).Where("id = ?", cartID).
			Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return errors.Wrap(err, "replace cart items")
	}
	return nil
}

func (s *Store) ClearItems(ctx context.Context, cartID string) error {
	if err := s.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return errors.Wrap(err, "clear cart")
	}
	return nil
}
