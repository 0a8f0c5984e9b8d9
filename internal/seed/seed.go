package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type productSeed struct {
	Category     string
	Title        string
	Description  string
	PriceCents   int64
	Count        int
	FreeDelivery bool
	Tags         []string
	ImageSrc     string
	SalePrice    int64
}

// Apply inserts demo data for manual testing. Running it twice leaves
// the tables unchanged: every helper looks the row up before inserting.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	categories := map[string]int64{}
	for _, title := range []string{"Kitchen", "Lighting", "Office"} {
		id, err := ensureCategory(ctx, pool, title)
		if err != nil {
			return fmt.Errorf("ensure category %s: %w", title, err)
		}
		categories[title] = id
	}

	products := []productSeed{
		{
			Category:    "Kitchen",
			Title:       "Steel Kettle 1.7L",
			Description: "Brushed steel electric kettle",
			PriceCents:  3499,
			Count:       24,
			Tags:        []string{"steel", "electric"},
			ImageSrc:    "/media/products/kettle.png",
			SalePrice:   2799,
		},
		{
			Category:     "Kitchen",
			Title:        "Stoneware Mug",
			Description:  "Glazed 350ml mug",
			PriceCents:   899,
			Count:        120,
			FreeDelivery: true,
			Tags:         []string{"ceramic"},
			ImageSrc:     "/media/products/mug.png",
		},
		{
			Category:    "Lighting",
			Title:       "Desk Lamp",
			Description: "Adjustable LED desk lamp",
			PriceCents:  2500,
			Count:       8,
			Tags:        []string{"led", "electric"},
			ImageSrc:    "/media/products/lamp.png",
		},
		{
			Category:     "Office",
			Title:        "Notebook A5",
			Description:  "Dotted 120-page notebook",
			PriceCents:   650,
			Count:        300,
			FreeDelivery: true,
			ImageSrc:     "/media/products/notebook.png",
		},
	}

	for _, p := range products {
		if err := ensureProduct(ctx, pool, categories[p.Category], p); err != nil {
			return fmt.Errorf("ensure product %s: %w", p.Title, err)
		}
	}

	if err := ensureProfile(ctx, pool, "demo", "demo-password", "Demo Buyer"); err != nil {
		return fmt.Errorf("ensure profile: %w", err)
	}

	return nil
}

func ensureCategory(ctx context.Context, pool *pgxpool.Pool, title string) (int64, error) {
	var id int64
	err := pool.QueryRow(ctx, `SELECT id FROM categories WHERE title = $1`, title).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != pgx.ErrNoRows {
		return 0, err
	}
	err = pool.QueryRow(ctx,
		`INSERT INTO categories (title, image_src, image_alt) VALUES ($1, '', $1) RETURNING id`,
		title).Scan(&id)
	return id, err
}

func ensureProduct(ctx context.Context, pool *pgxpool.Pool, categoryID int64, p productSeed) error {
	var id int64
	err := pool.QueryRow(ctx, `SELECT id FROM products WHERE title = $1`, p.Title).Scan(&id)
	if err == nil {
		return nil
	}
	if err != pgx.ErrNoRows {
		return err
	}

	err = pool.QueryRow(ctx, `
INSERT INTO products (category_id, title, description, price_cents, count, available, free_delivery)
VALUES ($1, $2, $3, $4, $5, $5 > 0, $6)
RETURNING id
`, categoryID, p.Title, p.Description, p.PriceCents, p.Count, p.FreeDelivery).Scan(&id)
	if err != nil {
		return err
	}

	if p.ImageSrc != "" {
		if _, err := pool.Exec(ctx,
			`INSERT INTO product_images (product_id, src, alt) VALUES ($1, $2, $3)`,
			id, p.ImageSrc, p.Title); err != nil {
			return err
		}
	}

	for _, tag := range p.Tags {
		tagID, err := ensureTag(ctx, pool, tag)
		if err != nil {
			return err
		}
		if _, err := pool.Exec(ctx,
			`INSERT INTO product_tags (product_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			id, tagID); err != nil {
			return err
		}
	}

	if p.SalePrice > 0 {
		if _, err := pool.Exec(ctx, `
INSERT INTO sales (product_id, sale_price_cents, date_from, date_to)
VALUES ($1, $2, now()::date, (now() + interval '30 days')::date)
ON CONFLICT (product_id) DO NOTHING
`, id, p.SalePrice); err != nil {
			return err
		}
	}

	return nil
}

func ensureTag(ctx context.Context, pool *pgxpool.Pool, name string) (int64, error) {
	var id int64
	err := pool.QueryRow(ctx, `
INSERT INTO tags (name) VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id
`, name).Scan(&id)
	return id, err
}

func ensureProfile(ctx context.Context, pool *pgxpool.Pool, username, password, fullName string) error {
	var id int64
	err := pool.QueryRow(ctx, `SELECT id FROM profiles WHERE username = $1`, username).Scan(&id)
	if err == nil {
		return nil
	}
	if err != pgx.ErrNoRows {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx,
		`INSERT INTO profiles (username, password_hash, full_name) VALUES ($1, $2, $3)`,
		username, string(hashed), fullName)
	return err
}
