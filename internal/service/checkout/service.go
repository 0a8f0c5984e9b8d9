package checkout

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"time"

	"storefront/internal/domain"
)

// Service turns session carts into persisted orders and drives the
// confirmed -> paid transition through the simulated payment step.
type Service struct {
	orders   orderRepo
	carts    cartEngine
	products productRepo
	logger   *log.Logger

	now func() time.Time
}

type orderRepo interface {
	CreateFromCart(ctx context.Context, profileID int64, lines []domain.OrderLine) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByProfile(ctx context.Context, profileID int64) ([]domain.Order, error)
	UpdateDetails(ctx context.Context, id int64, paymentType, deliveryType, city, address string) error
	MarkPaid(ctx context.Context, id int64) error
}

// cartEngine is the slice of the cart service checkout needs: the raw
// snapshot to commit, and the clear on successful payment.
type cartEngine interface {
	Snapshot(ctx context.Context, sessionID string) (domain.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

type productRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

func New(orders orderRepo, carts cartEngine, products productRepo, logger *log.Logger) *Service {
	return &Service{
		orders:   orders,
		carts:    carts,
		products: products,
		logger:   logger,
		now:      time.Now,
	}
}

// Create commits the session cart as a confirmed order for the given
// profile. The cart itself stays in place until payment succeeds.
func (s *Service) Create(ctx context.Context, sessionID string, profileID int64) (int64, error) {
	cart, err := s.carts.Snapshot(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	if len(cart) == 0 {
		return 0, fmt.Errorf("cart is empty: %w", domain.ErrValidation)
	}

	lines := make([]domain.OrderLine, 0, len(cart))
	for _, line := range cart {
		lines = append(lines, domain.OrderLine{
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			PriceCents: line.PriceCents,
		})
	}
	// Fixed lock order across concurrent checkouts.
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })

	return s.orders.CreateFromCart(ctx, profileID, lines)
}

// Get loads an order with its lines resolved to current product display
// data. A line whose product has since been deleted is dropped and
// logged, mirroring the cart's stale-line handling.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.resolveLines(ctx, order)
	return order, nil
}

// ListByProfile returns the profile's orders, newest first.
func (s *Service) ListByProfile(ctx context.Context, profileID int64) ([]domain.Order, error) {
	orders, err := s.orders.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		s.resolveLines(ctx, &orders[i])
	}
	return orders, nil
}

func (s *Service) resolveLines(ctx context.Context, order *domain.Order) {
	kept := order.Lines[:0]
	for _, line := range order.Lines {
		product, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			s.logger.Printf("order %d references missing product %d, dropping line from view: %v", order.ID, line.ProductID, err)
			continue
		}
		line.Product = product
		kept = append(kept, line)
	}
	order.Lines = kept
}

// DetailsInput is the order confirmation payload.
type DetailsInput struct {
	PaymentType  string `json:"paymentType"`
	DeliveryType string `json:"deliveryType"`
	City         string `json:"city"`
	Address      string `json:"address"`
}

// ConfirmDetails persists the delivery and payment choices on an
// existing order.
func (s *Service) ConfirmDetails(ctx context.Context, orderID int64, in DetailsInput) error {
	switch in.PaymentType {
	case domain.PaymentTypeOnline, domain.PaymentTypeCash:
	default:
		return fmt.Errorf("unknown payment type %q: %w", in.PaymentType, domain.ErrValidation)
	}
	switch in.DeliveryType {
	case "", domain.DeliveryTypeFree, domain.DeliveryTypePaid:
	default:
		return fmt.Errorf("unknown delivery type %q: %w", in.DeliveryType, domain.ErrValidation)
	}
	return s.orders.UpdateDetails(ctx, orderID, in.PaymentType, in.DeliveryType, in.City, in.Address)
}

// PaymentInput is the simulated card payload. Month and year arrive as
// the strings the frontend puts on the card form; year is two digits.
type PaymentInput struct {
	Month string `json:"month"`
	Year  string `json:"year"`
	Code  string `json:"code"`
}

// Pay validates the card payload and advances the order to paid. On
// success the originating session cart is deleted; on any rejection
// neither the order nor the cart changes.
func (s *Service) Pay(ctx context.Context, sessionID string, orderID int64, in PaymentInput) error {
	if _, err := s.orders.GetByID(ctx, orderID); err != nil {
		return err
	}

	expiry, err := cardExpiry(in.Month, in.Year)
	if err != nil {
		return err
	}
	today := s.today()
	if expiry.Before(today) {
		return fmt.Errorf("card expired %s: %w", expiry.Format("2006-01-02"), domain.ErrValidation)
	}
	if len(in.Code) != 3 {
		return fmt.Errorf("security code must be 3 characters: %w", domain.ErrValidation)
	}

	if err := s.orders.MarkPaid(ctx, orderID); err != nil {
		return err
	}
	if err := s.carts.Clear(ctx, sessionID); err != nil {
		// The payment already committed; losing the cart cleanup is
		// recoverable on the next session write.
		s.logger.Printf("clear cart for session %s after payment of order %d: %v", sessionID, orderID, err)
	}
	return nil
}

// cardExpiry computes the real last calendar day of the card's month.
// Day zero of the following month is that last day, leap years
// included.
func cardExpiry(month, year string) (time.Time, error) {
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return time.Time{}, fmt.Errorf("bad expiry month %q: %w", month, domain.ErrValidation)
	}
	y, err := strconv.Atoi(year)
	if err != nil || y < 0 || y > 99 || len(year) != 2 {
		return time.Time{}, fmt.Errorf("bad expiry year %q: %w", year, domain.ErrValidation)
	}
	return time.Date(2000+y, time.Month(m)+1, 0, 0, 0, 0, 0, time.UTC), nil
}

func (s *Service) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
