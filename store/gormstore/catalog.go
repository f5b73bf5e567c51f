package gormstore

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"storefront-api/models"
	"storefront-api/store"
)

// escapeLike neutralizes LIKE metacharacters so the search term is matched
// literally, the same way the in-memory store matches it.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (s *Store) InsertProduct(ctx context.Context, p *models.Product) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return store.ErrDuplicateCode
		}
		return errors.Wrap(err, "insert product")
	}
	return nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrProductNotFound
		}
		return nil, errors.Wrap(err, "get product")
	}
	return &p, nil
}

func (s *Store) GetProductsByID(ctx context.Context, ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []models.Product
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, errors.Wrap(err, "get products by id")
	}
	return products, nil
}

func (s *Store) SaveProduct(ctx context.Context, p *models.Product) error {
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return store.ErrDuplicateCode
		}
		return errors.Wrap(err, "save product")
	}
	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete product")
	}
	if res.RowsAffected == 0 {
		return store.ErrProductNotFound
	}
	return nil
}

func (s *Store) CodeInUse(ctx context.Context, code, excludeID string) (bool, error) {
	var count int64
	q := s.db.WithContext(ctx).Model(&models.Product{}).Where("code = ?", code)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "check product code")
	}
	return count > 0, nil
}

func (s *Store) ListProducts(ctx context.Context, f store.ProductFilter, sort store.ProductSort, offset, limit int) ([]models.Product, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Product{})

	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Available != nil {
		if *f.Available {
			q = q.Where("stock > 0")
		} else {
			q = q.Where("stock = 0")
		}
	}
	if f.Search != "" {
		like := "%" + escapeLike(f.Search) + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count products")
	}

	switch sort {
	case store.SortPriceAsc:
		q = q.Order("price ASC, id ASC")
	case store.SortPriceDesc:
		q = q.Order("price DESC, id ASC")
	default:
		q = q.Order("created_at ASC, id ASC")
	}

	var products []models.Product
	if err := q.Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list products")
	}
	return products, total, nil
}

func (s *Store) AllProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&products).Error; err != nil {
		return nil, errors.Wrap(err, "load products")
	}
	return products, nil
}
