package review

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, in domain.Review) (*domain.Review, error) {
	const q = `
INSERT INTO reviews (product_id, author_id, text, rate)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at
`
	rev := in
	if err := r.pool.QueryRow(ctx, q, in.ProductID, in.AuthorID, in.Text, in.Rate).Scan(&rev.ID, &rev.CreatedAt); err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *postgresRepo) ListByProduct(ctx context.Context, productID int64) ([]domain.Review, error) {
	const q = `
SELECT r.id, r.product_id, r.author_id, p.full_name, p.email, r.text, r.rate, r.created_at
FROM reviews r
JOIN profiles p ON p.id = r.author_id
WHERE r.product_id = $1
ORDER BY r.created_at DESC, r.id DESC
`
	rows, err := r.pool.Query(ctx, q, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rev domain.Review
		if err := rows.Scan(&rev.ID, &rev.ProductID, &rev.AuthorID, &rev.Author, &rev.Email, &rev.Text, &rev.Rate, &rev.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}
