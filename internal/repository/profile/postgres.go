package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const profileColumns = `
SELECT id, username, password_hash, full_name, email, phone, avatar_src, avatar_alt, registered_at
FROM profiles
`

func (r *postgresRepo) Create(ctx context.Context, p domain.Profile) (*domain.Profile, error) {
	const q = `
INSERT INTO profiles (username, password_hash, full_name, email, phone, avatar_src, avatar_alt)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, registered_at
`
	created := p
	err := r.pool.QueryRow(ctx, q,
		p.Username, p.PasswordHash, p.FullName, p.Email, p.Phone, p.Avatar.Src, p.Avatar.Alt,
	).Scan(&created.ID, &created.RegisteredAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("username %q taken: %w", p.Username, domain.ErrConflict)
		}
		return nil, err
	}
	return &created, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	return r.fetch(ctx, profileColumns+`WHERE id = $1`, id)
}

func (r *postgresRepo) GetByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	return r.fetch(ctx, profileColumns+`WHERE username = $1`, username)
}

func (r *postgresRepo) Update(ctx context.Context, id int64, fullName, email, phone string) error {
	return r.exec(ctx, `
UPDATE profiles
SET full_name = $1, email = $2, phone = $3
WHERE id = $4
`, fullName, email, phone, id)
}

func (r *postgresRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return r.exec(ctx, `
UPDATE profiles
SET password_hash = $1
WHERE id = $2
`, passwordHash, id)
}

func (r *postgresRepo) UpdateAvatar(ctx context.Context, id int64, src, alt string) error {
	return r.exec(ctx, `
UPDATE profiles
SET avatar_src = $1, avatar_alt = $2
WHERE id = $3
`, src, alt, id)
}

func (r *postgresRepo) fetch(ctx context.Context, q string, args ...interface{}) (*domain.Profile, error) {
	var p domain.Profile
	err := r.pool.QueryRow(ctx, q, args...).Scan(
		&p.ID,
		&p.Username,
		&p.PasswordHash,
		&p.FullName,
		&p.Email,
		&p.Phone,
		&p.Avatar.Src,
		&p.Avatar.Alt,
		&p.RegisteredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) exec(ctx context.Context, q string, args ...interface{}) error {
	tag, err := r.pool.Exec(ctx, q, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
