package profile

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, p domain.Profile) (*domain.Profile, error)
	GetByID(ctx context.Context, id int64) (*domain.Profile, error)
	GetByUsername(ctx context.Context, username string) (*domain.Profile, error)
	Update(ctx context.Context, id int64, fullName, email, phone string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateAvatar(ctx context.Context, id int64, src, alt string) error
}
