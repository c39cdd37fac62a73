package service

import (
	"context"

	"github.com/qoloner/qoloner-api/internal/models"
)

// ProductReader is the product data access surface the catalog needs.
type ProductReader interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	List(ctx context.Context, f models.CatalogFilter, page, limit int) ([]models.Product, int, error)
	GetDetail(ctx context.Context, id int) (*models.ProductDetail, error)
}

// SnapshotCache caches the unfiltered catalog between requests.
type SnapshotCache interface {
	GetSnapshot(ctx context.Context) ([]models.Product, bool)
	SetSnapshot(ctx context.Context, products []models.Product)
	Invalidate(ctx context.Context)
}

// CatalogService serves catalog queries. With a cache configured it keeps
// the catalog view's model: one unfiltered fetch, predicate filtering in
// memory. Without one, filtering and pagination are pushed into the query.
type CatalogService struct {
	products ProductReader
	cache    SnapshotCache
}

// NewCatalogService constructs a CatalogService. cache may be nil.
func NewCatalogService(products ProductReader, cache SnapshotCache) *CatalogService {
	return &CatalogService{products: products, cache: cache}
}

// ListProducts returns one catalog page matching the filter plus the total
// match count. Any store failure is returned as-is; no retry, no partial
// results.
func (s *CatalogService) ListProducts(ctx context.Context, f models.CatalogFilter, page, limit int) ([]models.Product, int, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}

	if s.cache == nil {
		return s.products.List(ctx, f, page, limit)
	}

	snapshot, ok := s.cache.GetSnapshot(ctx)
	if !ok {
		var err error
		snapshot, err = s.products.GetAll(ctx)
		if err != nil {
			return nil, 0, err
		}
		s.cache.SetSnapshot(ctx, snapshot)
	}

	filtered := f.Apply(snapshot)
	return paginate(filtered, page, limit), len(filtered), nil
}

// GetProduct returns one product joined with the owning master's profile.
// A missing row surfaces as sql.ErrNoRows from the repository.
func (s *CatalogService) GetProduct(ctx context.Context, id int) (*models.ProductDetail, error) {
	return s.products.GetDetail(ctx, id)
}

// paginate slices one page out of the filtered result set.
func paginate(products []models.Product, page, limit int) []models.Product {
	start := (page - 1) * limit
	if start >= len(products) {
		return []models.Product{}
	}
	end := start + limit
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}
