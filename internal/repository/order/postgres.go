package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"storefront/internal/domain"
)

// DB is the subset of pgxpool.Pool the repository uses. pgxmock
// implements it too, which is how the transaction paths are tested.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type postgresRepo struct {
	db DB
}

func NewPostgres(db DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) CreateFromCart(ctx context.Context, profileID int64, lines []domain.OrderLine) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	for _, line := range lines {
		var count int
		err := tx.QueryRow(ctx, `
SELECT count
FROM products
WHERE id = $1
FOR UPDATE
`, line.ProductID).Scan(&count)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return 0, fmt.Errorf("product %d no longer exists: %w", line.ProductID, domain.ErrConflict)
			}
			return 0, err
		}
		if line.Quantity > count {
			return 0, fmt.Errorf("product %d: %d requested, %d in stock: %w", line.ProductID, line.Quantity, count, domain.ErrConflict)
		}

		if _, err := tx.Exec(ctx, `
UPDATE products
SET count = $1, available = CASE WHEN $1 = 0 THEN FALSE ELSE available END
WHERE id = $2
`, count-line.Quantity, line.ProductID); err != nil {
			return 0, err
		}
	}

	var orderID int64
	if err := tx.QueryRow(ctx, `
INSERT INTO orders (profile_id, status)
VALUES ($1, $2)
RETURNING id
`, profileID, domain.OrderStatusConfirmed).Scan(&orderID); err != nil {
		return 0, err
	}

	for _, line := range lines {
		if _, err := tx.Exec(ctx, `
INSERT INTO order_lines (order_id, product_id, quantity, price_cents)
VALUES ($1, $2, $3, $4)
`, orderID, line.ProductID, line.Quantity, line.PriceCents); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return orderID, nil
}

const orderColumns = `
SELECT o.id, o.profile_id, p.full_name, p.email, p.phone,
       o.created_at, o.status, o.payment_type, o.delivery_type, o.city, o.address
FROM orders o
JOIN profiles p ON p.id = o.profile_id
`

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, orderColumns+`WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.attachLines(ctx, []*domain.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) ListByProfile(ctx context.Context, profileID int64) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, orderColumns+`WHERE o.profile_id = $1 ORDER BY o.created_at DESC, o.id DESC`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*domain.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := r.attachLines(ctx, refs); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *postgresRepo) UpdateDetails(ctx context.Context, id int64, paymentType, deliveryType, city, address string) error {
	tag, err := r.db.Exec(ctx, `
UPDATE orders
SET payment_type = $1, delivery_type = $2, city = $3, address = $4
WHERE id = $5
`, paymentType, deliveryType, city, address, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) MarkPaid(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `
UPDATE orders
SET status = $1
WHERE id = $2 AND status = $3
`, domain.OrderStatusPaid, id, domain.OrderStatusConfirmed)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %d is not awaiting payment: %w", id, domain.ErrConflict)
	}
	return nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.db.Exec(ctx, `
UPDATE orders
SET status = $1
WHERE id = $2
`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	if err := row.Scan(
		&o.ID,
		&o.ProfileID,
		&o.FullName,
		&o.Email,
		&o.Phone,
		&o.CreatedAt,
		&o.Status,
		&o.PaymentType,
		&o.DeliveryType,
		&o.City,
		&o.Address,
	); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *postgresRepo) attachLines(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(orders))
	index := make(map[int64]*domain.Order, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
		index[o.ID] = o
	}

	rows, err := r.db.Query(ctx, `
SELECT order_id, product_id, quantity, price_cents
FROM order_lines
WHERE order_id = ANY($1)
ORDER BY order_id, product_id
`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.OrderID, &line.ProductID, &line.Quantity, &line.PriceCents); err != nil {
			return err
		}
		if o, ok := index[line.OrderID]; ok {
			o.Lines = append(o.Lines, line)
		}
	}
	return rows.Err()
}
