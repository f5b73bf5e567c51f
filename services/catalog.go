package services

import (
	"context"
	"math"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront-api/models"
	"storefront-api/store"
)

// ProductPublisher receives the full refreshed listing after a catalog
// mutation. Implementations must not block the caller on slow observers.
type ProductPublisher interface {
	PublishProducts(products []models.Product)
}

type Catalog struct {
	store store.CatalogStore
	pub   ProductPublisher
}

// NewCatalog wires the catalog engine; pub may be nil when no realtime
// channel is attached.
func NewCatalog(st store.CatalogStore, pub ProductPublisher) *Catalog {
	return &Catalog{store: st, pub: pub}
}

type NewProduct struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Code        string   `json:"code"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Category    string   `json:"category"`
	Status      *bool    `json:"status"`
	Thumbnails  []string `json:"thumbnails"`
}

// ProductPatch is the explicit allow-list of updatable fields. The id is
// never updatable; a code change re-checks uniqueness.
type ProductPatch struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Code        *string   `json:"code"`
	Price       *float64  `json:"price"`
	Stock       *int      `json:"stock"`
	Category    *string   `json:"category"`
	Status      *bool     `json:"status"`
	Thumbnails  *[]string `json:"thumbnails"`
}

func (c *Catalog) Create(ctx context.Context, input NewProduct) (*models.Product, error) {
	switch {
	case input.Title == "":
		return nil, invalidf("title is required")
	case input.Description == "":
		return nil, invalidf("description is required")
	case input.Code == "":
		return nil, invalidf("code is required")
	case input.Category == "":
		return nil, invalidf("category is required")
	case input.Price < 0:
		return nil, invalidf("price must not be negative")
	case input.Stock < 0:
		return nil, invalidf("stock must not be negative")
	}

	inUse, err := c.store.CodeInUse(ctx, input.Code, "")
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, store.ErrDuplicateCode
	}

	status := true
	if input.Status != nil {
		status = *input.Status
	}
	thumbnails := input.Thumbnails
	if thumbnails == nil {
		thumbnails = []string{}
	}

	product := &models.Product{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Code:        input.Code,
		Price:       input.Price,
		Stock:       input.Stock,
		Category:    input.Category,
		Status:      status,
		Thumbnails:  thumbnails,
	}
	if err := c.store.InsertProduct(ctx, product); err != nil {
		return nil, err
	}
	c.publishRefresh(ctx)
	return product, nil
}

func (c *Catalog) Get(ctx context.Context, id string) (*models.Product, error) {
	return c.store.GetProduct(ctx, id)
}

func (c *Catalog) Update(ctx context.Context, id string, patch ProductPatch) (*models.Product, error) {
	product, err := c.store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Code != nil && *patch.Code != product.Code {
		if *patch.Code == "" {
			return nil, invalidf("code must not be empty")
		}
		inUse, err := c.store.CodeInUse(ctx, *patch.Code, id)
		if err != nil {
			return nil, err
		}
		if inUse {
			return nil, store.ErrDuplicateCode
		}
		product.Code = *patch.Code
	}
	if patch.Title != nil {
		if *patch.Title == "" {
			return nil, invalidf("title must not be empty")
		}
		product.Title = *patch.Title
	}
	if patch.Description != nil {
		if *patch.Description == "" {
			return nil, invalidf("description must not be empty")
		}
		product.Description = *patch.Description
	}
	if patch.Category != nil {
		if *patch.Category == "" {
			return nil, invalidf("category must not be empty")
		}
		product.Category = *patch.Category
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return nil, invalidf("price must not be negative")
		}
		product.Price = *patch.Price
	}
	if patch.Stock != nil {
		if *patch.Stock < 0 {
			return nil, invalidf("stock must not be negative")
		}
		product.Stock = *patch.Stock
	}
	if patch.Status != nil {
		product.Status = *patch.Status
	}
	if patch.Thumbnails != nil {
		product.Thumbnails = *patch.Thumbnails
	}

	if err := c.store.SaveProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (c *Catalog) Delete(ctx context.Context, id string) error {
	if err := c.store.DeleteProduct(ctx, id); err != nil {
		return err
	}
	c.publishRefresh(ctx)
	return nil
}

// Snapshot returns the full current listing in natural order.
func (c *Catalog) Snapshot(ctx context.Context) ([]models.Product, error) {
	return c.store.AllProducts(ctx)
}

func (c *Catalog) publishRefresh(ctx context.Context) {
	if c.pub == nil {
		return
	}
	products, err := c.store.AllProducts(ctx)
	if err != nil {
		// The triggering mutation already succeeded; the refresh is
		// best-effort.
		zap.S().Warnw("failed to load products for broadcast", "error", err)
		return
	}
	c.pub.PublishProducts(products)
}

// --- listing / pagination ---

type ListQuery struct {
	Category  string
	Available *bool
	Search    string
	MinPrice  *float64
	MaxPrice  *float64
	Page      int
	Limit     int
	Sort      string
}

type ProductPage struct {
	Items       []models.Product `json:"payload"`
	TotalPages  int              `json:"totalPages"`
	Page        int              `json:"page"`
	PrevPage    *int             `json:"prevPage"`
	NextPage    *int             `json:"nextPage"`
	HasPrevPage bool             `json:"hasPrevPage"`
	HasNextPage bool             `json:"hasNextPage"`
}

const DefaultPageLimit = 10

func (c *Catalog) List(ctx context.Context, q ListQuery) (*ProductPage, error) {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Page < 0 {
		return nil, invalidf("page must be a positive number")
	}
	if q.Limit == 0 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit < 0 {
		return nil, invalidf("limit must be greater than zero")
	}
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return nil, invalidf("minPrice must not exceed maxPrice")
	}

	var sortOrder store.ProductSort
	switch q.Sort {
	case "asc":
		sortOrder = store.SortPriceAsc
	case "desc":
		sortOrder = store.SortPriceDesc
	default:
		// Unknown sort values fall back to natural order.
		sortOrder = store.SortNone
	}

	filter := store.ProductFilter{
		Category:  q.Category,
		Available: q.Available,
		Search:    q.Search,
		MinPrice:  q.MinPrice,
		MaxPrice:  q.MaxPrice,
	}
	offset := (q.Page - 1) * q.Limit
	items, total, err := c.store.ListProducts(ctx, filter, sortOrder, offset, q.Limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Product{}
	}

	totalPages := int(math.Ceil(float64(total) / float64(q.Limit)))
	page := &ProductPage{
		Items:      items,
		TotalPages: totalPages,
		Page:       q.Page,
	}
	if q.Page > 1 && total > 0 {
		// A request past the end still gets a prev link, but it points at
		// the last page that actually exists.
		prev := q.Page - 1
		if prev > totalPages {
			prev = totalPages
		}
		page.PrevPage = &prev
		page.HasPrevPage = true
	}
	if q.Page < totalPages {
		next := q.Page + 1
		page.NextPage = &next
		page.HasNextPage = true
	}
	return page, nil
}

// PageURL builds a navigation link that changes only the page number and
// keeps every other query parameter. Pure function, no side effects.
func PageURL(path string, query url.Values, page int) string {
	q := url.Values{}
	for key, vals := range query {
		q[key] = append([]string(nil), vals...)
	}
	q.Set("page", strconv.Itoa(page))
	return path + "?" + q.Encode()
}
