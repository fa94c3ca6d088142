package catalog

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestNewProduct_Validation(t *testing.T) {
	t.Run("empty name rejected", func(t *testing.T) {
		_, err := NewVirtual("", "", d("10"), 1)
		require.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("negative price rejected", func(t *testing.T) {
		_, err := NewPhysical("tv", "TV", d("-1"), 1, d("15"))
		require.ErrorIs(t, err, ErrNegativePrice)
	})

	t.Run("negative stock clamped to zero", func(t *testing.T) {
		p, err := NewVirtual("card", "Scratch Card", d("50"), -3)
		require.NoError(t, err)
		assert.Equal(t, 0, p.Stock())
	})

	t.Run("empty id defaults to name", func(t *testing.T) {
		p, err := NewVirtual("", "Scratch Card", d("50"), 10)
		require.NoError(t, err)
		assert.Equal(t, "Scratch Card", p.ID)
	})

	t.Run("perishable requires expiry", func(t *testing.T) {
		_, err := NewPerishable("milk", "Milk", d("20"), 1, time.Time{}, d("0.5"))
		require.Error(t, err)
	})
}

func TestProduct_Available(t *testing.T) {
	p, err := NewPhysical("tv", "TV", d("500"), 2, d("15"))
	require.NoError(t, err)

	assert.False(t, p.Available(0))
	assert.False(t, p.Available(-1))
	assert.True(t, p.Available(1))
	assert.True(t, p.Available(2))
	assert.False(t, p.Available(3))
}

func TestProduct_ReduceStock(t *testing.T) {
	newTV := func(t *testing.T, stock int) *Product {
		t.Helper()
		p, err := NewPhysical("tv", "TV", d("500"), stock, d("15"))
		require.NoError(t, err)
		return p
	}

	t.Run("reduces stock", func(t *testing.T) {
		p := newTV(t, 5)
		require.NoError(t, p.ReduceStock(2))
		assert.Equal(t, 3, p.Stock())
	})

	t.Run("exact stock leaves zero", func(t *testing.T) {
		p := newTV(t, 5)
		require.NoError(t, p.ReduceStock(5))
		assert.Equal(t, 0, p.Stock())
	})

	t.Run("exceeding stock fails and leaves stock unchanged", func(t *testing.T) {
		p := newTV(t, 2)
		err := p.ReduceStock(3)

		var oos *OutOfStockError
		require.ErrorAs(t, err, &oos)
		assert.Equal(t, "TV", oos.Name)
		assert.Equal(t, 3, oos.Requested)
		assert.Equal(t, 2, oos.Available)
		assert.Equal(t, 2, p.Stock())
	})

	t.Run("non-positive quantity fails", func(t *testing.T) {
		p := newTV(t, 2)
		require.Error(t, p.ReduceStock(0))
		require.Error(t, p.ReduceStock(-1))
		assert.Equal(t, 2, p.Stock())
	})
}

func TestProduct_Expired(t *testing.T) {
	now := date(2026, time.August, 28)

	tests := []struct {
		name    string
		product func(t *testing.T) *Product
		want    bool
	}{
		{
			name: "perishable past expiry",
			product: func(t *testing.T) *Product {
				p, err := NewPerishable("milk", "Old Milk", d("20"), 1, date(2026, time.August, 27), d("0.5"))
				require.NoError(t, err)
				return p
			},
			want: true,
		},
		{
			name: "perishable expiring today is not expired",
			product: func(t *testing.T) *Product {
				p, err := NewPerishable("cheese", "Cheese", d("100"), 5, date(2026, time.August, 28), d("0.2"))
				require.NoError(t, err)
				return p
			},
			want: false,
		},
		{
			name: "perishable expiring later same day ignores time of day",
			product: func(t *testing.T) *Product {
				exp := time.Date(2026, time.August, 28, 23, 59, 0, 0, time.UTC)
				p, err := NewPerishable("cheese", "Cheese", d("100"), 5, exp, d("0.2"))
				require.NoError(t, err)
				return p
			},
			want: false,
		},
		{
			name: "physical never expires",
			product: func(t *testing.T) *Product {
				p, err := NewPhysical("tv", "TV", d("500"), 2, d("15"))
				require.NoError(t, err)
				return p
			},
			want: false,
		},
		{
			name: "virtual never expires",
			product: func(t *testing.T) *Product {
				p, err := NewVirtual("ebook", "E-Book", d("30"), 10)
				require.NoError(t, err)
				return p
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.product(t).Expired(now))
		})
	}
}

func TestProduct_RequiresShipping(t *testing.T) {
	perishable, err := NewPerishable("cheese", "Cheese", d("100"), 5, date(2027, time.January, 1), d("0.2"))
	require.NoError(t, err)
	physical, err := NewPhysical("tv", "TV", d("500"), 2, d("15"))
	require.NoError(t, err)
	virtual, err := NewVirtual("ebook", "E-Book", d("30"), 10)
	require.NoError(t, err)

	assert.True(t, perishable.RequiresShipping())
	assert.True(t, physical.RequiresShipping())
	assert.False(t, virtual.RequiresShipping())
}
