package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rasmushax/eridehero/internal/compare"
)

// Product is a stored product with its resolved spec dictionary. Specs are
// arbitrary nested JSON; the comparison engine interprets them through the
// catalog's accessors.
type Product struct {
	ID        uuid.UUID      `json:"id"`
	Slug      string         `json:"slug"`
	Name      string         `json:"name"`
	Category  string         `json:"category"`
	Price     float64        `json:"price"`
	Specs     map[string]any `json:"specs"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ToCompare converts to the engine's product shape. Population stats are
// attached separately by the stats layer when needed.
func (p *Product) ToCompare() compare.Product {
	return compare.Product{
		ID:    p.ID.String(),
		Name:  p.Name,
		Type:  p.Category,
		Price: p.Price,
		Specs: p.Specs,
	}
}

// Store is the product persistence boundary.
type Store interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*Product, error)
	GetProductsBySlugs(ctx context.Context, slugs []string) ([]*Product, error)
	ListProductsByCategory(ctx context.Context, category string) ([]*Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	UpsertProduct(ctx context.Context, p *Product) error
	Close() error
}
