package sale

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) ActiveForProduct(ctx context.Context, productID int64) (*domain.Sale, error) {
	const q = `
SELECT s.product_id, p.title, p.price_cents, s.sale_price_cents, s.date_from, s.date_to
FROM sales s
JOIN products p ON p.id = s.product_id
WHERE s.product_id = $1
  AND (s.date_from IS NULL OR s.date_from <= CURRENT_DATE)
  AND (s.date_to IS NULL OR s.date_to >= CURRENT_DATE)
`
	var s domain.Sale
	err := r.pool.QueryRow(ctx, q, productID).Scan(
		&s.ProductID,
		&s.Title,
		&s.PriceCents,
		&s.SalePriceCents,
		&s.DateFrom,
		&s.DateTo,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepo) List(ctx context.Context, page, limit int) ([]domain.Sale, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM sales`).Scan(&total); err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}

	const q = `
SELECT s.product_id, p.title, p.price_cents, s.sale_price_cents, s.date_from, s.date_to
FROM sales s
JOIN products p ON p.id = s.product_id
ORDER BY s.product_id
LIMIT $1 OFFSET $2
`
	rows, err := r.pool.Query(ctx, q, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var sales []domain.Sale
	ids := []int64{}
	for rows.Next() {
		var s domain.Sale
		if err := rows.Scan(&s.ProductID, &s.Title, &s.PriceCents, &s.SalePriceCents, &s.DateFrom, &s.DateTo); err != nil {
			return nil, 0, err
		}
		s.Images = []domain.Image{}
		sales = append(sales, s)
		ids = append(ids, s.ProductID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(ids) > 0 {
		imgRows, err := r.pool.Query(ctx, `
SELECT product_id, src, alt
FROM product_images
WHERE product_id = ANY($1)
ORDER BY id
`, ids)
		if err != nil {
			return nil, 0, err
		}
		defer imgRows.Close()
		byProduct := make(map[int64][]domain.Image)
		for imgRows.Next() {
			var pid int64
			var img domain.Image
			if err := imgRows.Scan(&pid, &img.Src, &img.Alt); err != nil {
				return nil, 0, err
			}
			byProduct[pid] = append(byProduct[pid], img)
		}
		if err := imgRows.Err(); err != nil {
			return nil, 0, err
		}
		for i := range sales {
			if imgs, ok := byProduct[sales[i].ProductID]; ok {
				sales[i].Images = imgs
			}
		}
	}

	return sales, total, nil
}
