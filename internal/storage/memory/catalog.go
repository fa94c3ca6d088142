// Package memory provides in-memory storage implementations. The catalog
// lives for the lifetime of the process; nothing persists across runs.
package memory

import (
	"context"
	"sync"

	"github.com/go-faster/errors"

	"github.com/xenking/shopfront/internal/domain/catalog"
)

var _ catalog.Repository = (*CatalogRepository)(nil)

// CatalogRepository implements catalog.Repository over a mutex-guarded map.
// Products are returned by reference: stock deducted during checkout is
// visible to later reads. Stock itself is the single mutation point that
// needs exclusive discipline when served concurrently; callers running
// checkouts against a shared repository must serialize them.
type CatalogRepository struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*catalog.Product
}

// NewCatalogRepository creates a repository seeded with the given products.
// It panics on duplicate product IDs; use Add for fallible insertion.
func NewCatalogRepository(products ...*catalog.Product) *CatalogRepository {
	r := &CatalogRepository{byID: make(map[string]*catalog.Product, len(products))}
	for _, p := range products {
		if err := r.Add(p); err != nil {
			panic(err)
		}
	}
	return r
}

// Add inserts a product, failing on a duplicate ID.
func (r *CatalogRepository) Add(p *catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[p.ID]; ok {
		return errors.Errorf("duplicate product id %q", p.ID)
	}
	r.byID[p.ID] = p
	r.order = append(r.order, p.ID)
	return nil
}

// List returns all products in insertion order.
func (r *CatalogRepository) List(_ context.Context) ([]*catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*catalog.Product, len(r.order))
	for i, id := range r.order {
		products[i] = r.byID[id]
	}
	return products, nil
}

// GetByID returns the product with the given ID or catalog.ErrNotFound.
func (r *CatalogRepository) GetByID(_ context.Context, id string) (*catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, errors.Wrapf(catalog.ErrNotFound, "id %q", id)
	}
	return p, nil
}
