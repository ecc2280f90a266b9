package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const productColumns = `id, slug, name, category, price, specs, created_at, updated_at`

func (s *PostgresStore) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	return scanProduct(row)
}

func (s *PostgresStore) GetProductBySlug(ctx context.Context, slug string) (*Product, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)
	return scanProduct(row)
}

func (s *PostgresStore) GetProductsBySlugs(ctx context.Context, slugs []string) ([]*Product, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE slug = ANY($1)`, slugs)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	bySlug := make(map[string]*Product, len(slugs))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		bySlug[p.Slug] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Preserve request order; missing slugs are skipped, not errors.
	out := make([]*Product, 0, len(slugs))
	for _, slug := range slugs {
		if p, ok := bySlug[slug]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *PostgresStore) ListProductsByCategory(ctx context.Context, category string) ([]*Product, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE category = $1 ORDER BY slug`, category)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var out []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT DISTINCT category FROM products ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) UpsertProduct(ctx context.Context, p *Product) error {
	specsJSON, _ := json.Marshal(p.Specs)
	return s.pool.QueryRow(ctx, `
		INSERT INTO products (slug, name, category, price, specs)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			price = EXCLUDED.price,
			specs = EXCLUDED.specs,
			updated_at = now()
		RETURNING id, created_at, updated_at`,
		p.Slug, p.Name, p.Category, p.Price, specsJSON,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func scanProduct(row pgx.Row) (*Product, error) {
	p := &Product{}
	var specsJSON []byte
	err := row.Scan(&p.ID, &p.Slug, &p.Name, &p.Category, &p.Price, &specsJSON, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan product: %w", err)
	}
	if len(specsJSON) > 0 {
		if err := json.Unmarshal(specsJSON, &p.Specs); err != nil {
			return nil, fmt.Errorf("decode specs: %w", err)
		}
	}
	return p, nil
}
