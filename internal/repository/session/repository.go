package session

import (
	"context"

	"storefront/internal/domain"
)

// Repository is the durable session-scoped cart storage. A session that
// has never stored a cart reads as an empty cart, not an error.
type Repository interface {
	GetCart(ctx context.Context, sessionID string) (domain.Cart, error)
	SaveCart(ctx context.Context, sessionID string, cart domain.Cart) error
	DeleteCart(ctx context.Context, sessionID string) error
}
