package sale

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	// ActiveForProduct resolves the discount currently in effect for a
	// product, or domain.ErrNotFound when there is none.
	ActiveForProduct(ctx context.Context, productID int64) (*domain.Sale, error)
	List(ctx context.Context, page, limit int) ([]domain.Sale, int, error)
}
