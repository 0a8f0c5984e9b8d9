package cart

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"storefront/internal/domain"
	sessionrepo "storefront/internal/repository/session"
)

// Service is the session cart engine. The cart itself lives in the
// session store; every operation re-reads it, mutates, and persists.
type Service struct {
	sessions sessionrepo.Repository
	products productRepo
	sales    saleRepo
	logger   *log.Logger
}

type productRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

type saleRepo interface {
	ActiveForProduct(ctx context.Context, productID int64) (*domain.Sale, error)
}

func New(sessions sessionrepo.Repository, products productRepo, sales saleRepo, logger *log.Logger) *Service {
	return &Service{sessions: sessions, products: products, sales: sales, logger: logger}
}

// Line is a cart line resolved against live catalog state for display.
type Line struct {
	Product    domain.Product
	PriceCents int64
	Quantity   int
	TotalCents int64
}

// Add puts quantity units of a product into the session cart, either
// accumulating onto the existing line or overriding its quantity. The
// requested quantity must not exceed the product's current stock; a
// rejected add leaves the cart untouched.
func (s *Service) Add(ctx context.Context, sessionID string, productID int64, quantity int, override bool) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1: %w", domain.ErrValidation)
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if quantity > product.Count {
		return fmt.Errorf("%d of product %d requested, %d in stock: %w", quantity, productID, product.Count, domain.ErrValidation)
	}

	cart, err := s.sessions.GetCart(ctx, sessionID)
	if err != nil {
		return err
	}

	line, ok := cart[productID]
	if !ok {
		// Snapshot the catalog price at add time. Sale prices are
		// resolved at read time, not frozen into the line.
		line = domain.CartLine{ProductID: productID, PriceCents: product.PriceCents}
	}
	if override {
		line.Quantity = quantity
	} else {
		line.Quantity += quantity
	}
	cart[productID] = line

	return s.sessions.SaveCart(ctx, sessionID, cart)
}

// Remove takes quantity units of a product out of the cart, deleting
// the line entirely once the quantity is exhausted. Removing a product
// that is not in the cart is a no-op.
func (s *Service) Remove(ctx context.Context, sessionID string, productID int64, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1: %w", domain.ErrValidation)
	}
	cart, err := s.sessions.GetCart(ctx, sessionID)
	if err != nil {
		return err
	}

	line, ok := cart[productID]
	if !ok {
		return nil
	}
	if quantity >= line.Quantity {
		delete(cart, productID)
	} else {
		line.Quantity -= quantity
		cart[productID] = line
	}

	return s.sessions.SaveCart(ctx, sessionID, cart)
}

// Items resolves the stored cart against live catalog state: current
// sale price when a sale is active, catalog price otherwise. Lines come
// back in ascending product id order. A line whose product no longer
// exists is logged and dropped rather than failing the whole read.
func (s *Service) Items(ctx context.Context, sessionID string) ([]Line, error) {
	cart, err := s.sessions.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(cart))
	for id := range cart {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	lines := make([]Line, 0, len(ids))
	for _, id := range ids {
		stored := cart[id]
		product, err := s.products.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				s.logger.Printf("cart for session %s references missing product %d, dropping line", sessionID, id)
				continue
			}
			return nil, err
		}

		price := product.PriceCents
		sale, err := s.sales.ActiveForProduct(ctx, id)
		switch {
		case err == nil:
			price = sale.SalePriceCents
		case !errors.Is(err, domain.ErrNotFound):
			return nil, err
		}

		lines = append(lines, Line{
			Product:    *product,
			PriceCents: price,
			Quantity:   stored.Quantity,
			TotalCents: price * int64(stored.Quantity),
		})
	}
	return lines, nil
}

// TotalCents sums the snapshot prices captured at add time. This is
// intentionally not the same number Items produces while a sale is
// running: the snapshot total stays stable for invoicing.
func (s *Service) TotalCents(ctx context.Context, sessionID string) (int64, error) {
	cart, err := s.sessions.GetCart(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return cart.TotalCents(), nil
}

// Snapshot returns the raw stored cart.
func (s *Service) Snapshot(ctx context.Context, sessionID string) (domain.Cart, error) {
	return s.sessions.GetCart(ctx, sessionID)
}

// Clear deletes the cart record from the session store entirely.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.sessions.DeleteCart(ctx, sessionID)
}
