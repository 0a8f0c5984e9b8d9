package category

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

func (r *postgresRepo) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, title, image_src, image_alt
FROM categories
ORDER BY title, id
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	index := make(map[int64]*domain.Category)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.Image.Src, &c.Image.Alt); err != nil {
			return nil, err
		}
		c.Subcategories = []domain.Subcategory{}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range categories {
		index[categories[i].ID] = &categories[i]
	}

	subRows, err := r.pool.Query(ctx, `
SELECT id, category_id, title, image_src, image_alt
FROM subcategories
ORDER BY title, id
`)
	if err != nil {
		return nil, err
	}
	defer subRows.Close()
	for subRows.Next() {
		var s domain.Subcategory
		if err := subRows.Scan(&s.ID, &s.CategoryID, &s.Title, &s.Image.Src, &s.Image.Alt); err != nil {
			return nil, err
		}
		if c, ok := index[s.CategoryID]; ok {
			c.Subcategories = append(c.Subcategories, s)
		}
	}
	return categories, subRows.Err()
}
