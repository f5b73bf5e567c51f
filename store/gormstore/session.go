package gormstore

import (
	"context"
	stderrors "errors"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront-api/models"
	"storefront-api/store"
)

func (s *Store) GetBinding(ctx context.Context, sessionID string) (*models.CartSession, error) {
	var b models.CartSession
	if err := s.db.WithContext(ctx).First(&b, "session_id = ?", sessionID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrSessionNotFound
		}
		return nil, errors.Wrap(err, "get session binding")
	}
	return &b, nil
}

func (s *Store) SaveBinding(ctx context.Context, b *models.CartSession) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"cart_id", "updated_at"}),
	}).Create(b).Error
	if err != nil {
		return errors.Wrap(err, "save session binding")
	}
	return nil
}
