package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/shopfront/internal/domain/catalog"
)

func newProduct(t *testing.T, id, name string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewVirtual(id, name, decimal.NewFromInt(10), 5)
	require.NoError(t, err)
	return p
}

func TestCatalogRepository(t *testing.T) {
	ctx := context.Background()
	cheese := newProduct(t, "cheese", "Cheese")
	tv := newProduct(t, "tv", "TV")
	repo := NewCatalogRepository(cheese, tv)

	t.Run("list preserves insertion order", func(t *testing.T) {
		products, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "cheese", products[0].ID)
		assert.Equal(t, "tv", products[1].ID)
	})

	t.Run("get by id returns the live product", func(t *testing.T) {
		p, err := repo.GetByID(ctx, "cheese")
		require.NoError(t, err)
		assert.Same(t, cheese, p)
	})

	t.Run("unknown id returns ErrNotFound", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "missing")
		require.ErrorIs(t, err, catalog.ErrNotFound)
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		err := repo.Add(newProduct(t, "cheese", "Another Cheese"))
		require.Error(t, err)
	})
}
