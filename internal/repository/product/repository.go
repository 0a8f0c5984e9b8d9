package product

import (
	"context"

	"storefront/internal/domain"
)

// CatalogFilter carries the catalog query parameters. Zero values mean
// "no constraint"; Page is 1-based.
type CatalogFilter struct {
	Name         string
	FreeDelivery bool
	Available    bool
	CategoryID   int64
	TagIDs       []int64
	Sort         string
	SortType     string
	Page         int
	Limit        int
}

type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Catalog(ctx context.Context, f CatalogFilter) ([]domain.Product, int, error)
	ListAll(ctx context.Context) ([]domain.Product, error)
	ListLimited(ctx context.Context, maxCount int) ([]domain.Product, error)
	ListPopular(ctx context.Context, minReviews int) ([]domain.Product, error)
}
