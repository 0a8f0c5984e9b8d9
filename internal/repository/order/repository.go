package order

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	// CreateFromCart commits a cart snapshot as a confirmed order inside
	// one transaction: stock decrement, availability flip at zero, order
	// row and order lines apply together or not at all. Lines must be
	// sorted ascending by product id so concurrent checkouts lock
	// products in the same order.
	CreateFromCart(ctx context.Context, profileID int64, lines []domain.OrderLine) (int64, error)

	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByProfile(ctx context.Context, profileID int64) ([]domain.Order, error)

	// UpdateDetails persists the delivery and payment choices made on
	// the order confirmation screen.
	UpdateDetails(ctx context.Context, id int64, paymentType, deliveryType, city, address string) error

	// MarkPaid advances confirmed -> paid. It reports domain.ErrConflict
	// when the order is not currently confirmed, so an order can be paid
	// at most once.
	MarkPaid(ctx context.Context, id int64) error

	// UpdateStatus is the administrative transition (collected,
	// delivered). No pipeline drives it.
	UpdateStatus(ctx context.Context, id int64, status string) error
}
