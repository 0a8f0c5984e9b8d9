package review

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, r domain.Review) (*domain.Review, error)
	ListByProduct(ctx context.Context, productID int64) ([]domain.Review, error)
}
