package product

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logger}
}

// productColumns selects one product row together with the currently
// active sale price and review aggregates.
const productColumns = `
SELECT p.id,
       COALESCE(p.category_id, 0),
       p.title,
       p.description,
       p.full_description,
       p.price_cents,
       p.count,
       p.available,
       p.free_delivery,
       p.created_at,
       (SELECT s.sale_price_cents FROM sales s
        WHERE s.product_id = p.id
          AND (s.date_from IS NULL OR s.date_from <= CURRENT_DATE)
          AND (s.date_to IS NULL OR s.date_to >= CURRENT_DATE)),
       COALESCE((SELECT AVG(r.rate)::float8 FROM reviews r WHERE r.product_id = p.id), 0),
       (SELECT COUNT(*)::int FROM reviews r WHERE r.product_id = p.id)
FROM products p
`

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	row := r.pool.QueryRow(ctx, productColumns+`WHERE p.id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	products := []domain.Product{*p}
	if err := r.attachDetails(ctx, products); err != nil {
		return nil, err
	}
	if err := r.attachSpecifications(ctx, &products[0]); err != nil {
		return nil, err
	}
	return &products[0], nil
}

func (r *postgresRepo) Catalog(ctx context.Context, f CatalogFilter) ([]domain.Product, int, error) {
	where := []string{"TRUE"}
	args := []interface{}{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Name != "" {
		where = append(where, "p.title ILIKE "+arg("%"+f.Name+"%"))
	}
	if f.FreeDelivery {
		where = append(where, "p.free_delivery")
	}
	if f.Available {
		where = append(where, "p.available")
	}
	if f.CategoryID > 0 {
		where = append(where, "p.category_id = "+arg(f.CategoryID))
	}
	if len(f.TagIDs) > 0 {
		where = append(where, "p.id IN (SELECT pt.product_id FROM product_tags pt WHERE pt.tag_id = ANY("+arg(f.TagIDs)+"))")
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM products p WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}

	q := productColumns + "WHERE " + cond +
		" ORDER BY " + orderClause(f.Sort, f.SortType) +
		" LIMIT " + arg(limit) + " OFFSET " + arg((page-1)*limit)

	products, err := r.queryProducts(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Product, error) {
	return r.queryProducts(ctx, productColumns+`ORDER BY p.id`)
}

func (r *postgresRepo) ListLimited(ctx context.Context, maxCount int) ([]domain.Product, error) {
	return r.queryProducts(ctx, productColumns+`WHERE p.count <= $1 ORDER BY p.count, p.id`, maxCount)
}

func (r *postgresRepo) ListPopular(ctx context.Context, minReviews int) ([]domain.Product, error) {
	q := productColumns + `
WHERE (SELECT COUNT(*) FROM reviews r WHERE r.product_id = p.id) >= $1
ORDER BY p.id`
	return r.queryProducts(ctx, q, minReviews)
}

// Sort keys accepted from the catalog query; anything else falls back
// to the newest-first default.
func orderClause(sort, sortType string) string {
	var col string
	switch sort {
	case "rating":
		col = "12"
	case "price":
		col = `COALESCE((SELECT s.sale_price_cents FROM sales s
			WHERE s.product_id = p.id
			  AND (s.date_from IS NULL OR s.date_from <= CURRENT_DATE)
			  AND (s.date_to IS NULL OR s.date_to >= CURRENT_DATE)), p.price_cents)`
	case "date":
		col = "p.created_at"
	case "reviews":
		col = "13"
	default:
		return "p.created_at DESC, p.id"
	}
	dir := "DESC"
	if sortType == "inc" {
		dir = "ASC"
	}
	return col + " " + dir + ", p.id"
}

func (r *postgresRepo) queryProducts(ctx context.Context, q string, args ...interface{}) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachDetails(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(
		&p.ID,
		&p.CategoryID,
		&p.Title,
		&p.Description,
		&p.FullDescription,
		&p.PriceCents,
		&p.Count,
		&p.Available,
		&p.FreeDelivery,
		&p.CreatedAt,
		&p.SalePriceCents,
		&p.Rating,
		&p.ReviewCount,
	); err != nil {
		return nil, err
	}
	p.Images = []domain.Image{}
	p.Tags = []domain.Tag{}
	return &p, nil
}

func (r *postgresRepo) attachDetails(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(products))
	index := make(map[int64]*domain.Product, len(products))
	for i := range products {
		ids = append(ids, products[i].ID)
		index[products[i].ID] = &products[i]
	}

	rows, err := r.pool.Query(ctx, `
SELECT product_id, src, alt
FROM product_images
WHERE product_id = ANY($1)
ORDER BY id
`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var pid int64
		var img domain.Image
		if err := rows.Scan(&pid, &img.Src, &img.Alt); err != nil {
			return err
		}
		if p, ok := index[pid]; ok {
			p.Images = append(p.Images, img)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	tagRows, err := r.pool.Query(ctx, `
SELECT pt.product_id, t.id, t.name
FROM product_tags pt
JOIN tags t ON t.id = pt.tag_id
WHERE pt.product_id = ANY($1)
ORDER BY t.id
`, ids)
	if err != nil {
		return err
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var pid int64
		var tag domain.Tag
		if err := tagRows.Scan(&pid, &tag.ID, &tag.Name); err != nil {
			return err
		}
		if p, ok := index[pid]; ok {
			p.Tags = append(p.Tags, tag)
		}
	}
	return tagRows.Err()
}

func (r *postgresRepo) attachSpecifications(ctx context.Context, p *domain.Product) error {
	rows, err := r.pool.Query(ctx, `
SELECT name, value
FROM specifications
WHERE product_id = $1
ORDER BY id
`, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var s domain.Specification
		if err := rows.Scan(&s.Name, &s.Value); err != nil {
			return err
		}
		p.Specifications = append(p.Specifications, s)
	}
	return rows.Err()
}
