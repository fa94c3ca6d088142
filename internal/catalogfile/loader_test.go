package catalogfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/shopfront/internal/domain/catalog"
)

const sampleCatalog = `[
  {"id": "cheese", "name": "Cheese", "kind": "perishable",
   "price": "100", "stock": 5, "weight_kg": "0.2", "expires_at": "2026-09-04"},
  {"id": "card", "name": "Scratch Card", "kind": "virtual", "price": 50, "stock": 10},
  {"id": "tv", "name": "TV", "kind": "physical", "price": "500", "stock": 2, "weight_kg": 15}
]`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func writeGzFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := pgzip.NewWriter(f)
	_, err = gz.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
	return path
}

func TestParse(t *testing.T) {
	products, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)
	require.Len(t, products, 3)

	cheese := products[0]
	assert.Equal(t, "cheese", cheese.ID)
	assert.Equal(t, catalog.KindPerishable, cheese.Kind)
	assert.True(t, decimal.RequireFromString("100").Equal(cheese.Price))
	assert.Equal(t, 5, cheese.Stock())
	assert.True(t, decimal.RequireFromString("0.2").Equal(cheese.WeightKg))
	assert.Equal(t, time.Date(2026, time.September, 4, 0, 0, 0, 0, time.UTC), cheese.ExpiresAt)

	card := products[1]
	assert.Equal(t, catalog.KindVirtual, card.Kind)
	assert.False(t, card.RequiresShipping())

	tv := products[2]
	assert.Equal(t, catalog.KindPhysical, tv.Kind)
	assert.True(t, decimal.NewFromInt(15).Equal(tv.WeightKg))
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "unsupported kind", data: `[{"id": "x", "name": "X", "kind": "liquid", "price": 1, "stock": 1}]`},
		{name: "missing name", data: `[{"id": "x", "kind": "virtual", "price": 1, "stock": 1}]`},
		{name: "perishable without expiry", data: `[{"id": "x", "name": "X", "kind": "perishable", "price": 1, "stock": 1, "weight_kg": 1}]`},
		{name: "malformed json", data: `[{]`},
		{name: "bad date", data: `[{"id": "x", "name": "X", "kind": "perishable", "price": 1, "stock": 1, "expires_at": "tomorrow"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("plain and gzipped files merge in argument order", func(t *testing.T) {
		first := writeFile(t, "main.json", `[{"id": "cheese", "name": "Cheese", "kind": "virtual", "price": 100, "stock": 5}]`)
		second := writeGzFile(t, "extra.json.gz", `[{"id": "tv", "name": "TV", "kind": "physical", "price": 500, "stock": 2, "weight_kg": 15}]`)

		products, err := Load(ctx, first, second)
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "cheese", products[0].ID)
		assert.Equal(t, "tv", products[1].ID)
	})

	t.Run("duplicate id across files fails", func(t *testing.T) {
		first := writeFile(t, "a.json", `[{"id": "cheese", "name": "Cheese", "kind": "virtual", "price": 100, "stock": 5}]`)
		second := writeFile(t, "b.json", `[{"id": "cheese", "name": "Cheese Again", "kind": "virtual", "price": 90, "stock": 1}]`)

		_, err := Load(ctx, first, second)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate product id")
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := Load(ctx, filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
	})
}
