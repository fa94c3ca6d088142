package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Kind tags a product variant. Capability queries (expiry, shipping) are
// resolved by matching on the tag rather than through an interface hierarchy.
type Kind string

const (
	// KindPerishable is a physical product with an expiry date. It requires
	// shipping and carries a weight.
	KindPerishable Kind = "perishable"
	// KindPhysical is a durable physical product. It requires shipping,
	// carries a weight, and never expires.
	KindPhysical Kind = "physical"
	// KindVirtual is delivered electronically. It has no weight, requires no
	// shipping, and never expires.
	KindVirtual Kind = "virtual"
)

// Sentinel errors for product construction and lookup.
var (
	ErrNotFound      = errors.New("product not found")
	ErrEmptyName     = errors.New("product name is required")
	ErrNegativePrice = errors.New("product price must not be negative")
)

// OutOfStockError indicates a stock operation requested more units than are
// available, or a non-positive quantity.
type OutOfStockError struct {
	Name      string
	Requested int
	Available int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("%s: can't remove %d (only %d available)", e.Name, e.Requested, e.Available)
}

// Product is a purchasable catalog item. Exactly one Kind applies; WeightKg
// is meaningful for perishable and physical products, ExpiresAt only for
// perishable ones. Stock is unexported so that ReduceStock stays the single
// mutation point.
type Product struct {
	ID       string
	Name     string
	Kind     Kind
	Price    decimal.Decimal
	WeightKg decimal.Decimal
	// ExpiresAt is compared at date precision; the zero value means the
	// product never expires.
	ExpiresAt time.Time

	stock int
}

// NewPerishable creates a perishable product with an expiry date and weight.
// An empty id defaults to the name, which is assumed unique in-process.
func NewPerishable(id, name string, price decimal.Decimal, stock int, expiresAt time.Time, weightKg decimal.Decimal) (*Product, error) {
	p, err := newProduct(id, name, KindPerishable, price, stock)
	if err != nil {
		return nil, err
	}
	if expiresAt.IsZero() {
		return nil, errors.Errorf("perishable product %q: expiry date is required", name)
	}
	p.ExpiresAt = expiresAt
	p.WeightKg = weightKg
	return p, nil
}

// NewPhysical creates a durable physical product with a weight.
func NewPhysical(id, name string, price decimal.Decimal, stock int, weightKg decimal.Decimal) (*Product, error) {
	p, err := newProduct(id, name, KindPhysical, price, stock)
	if err != nil {
		return nil, err
	}
	p.WeightKg = weightKg
	return p, nil
}

// NewVirtual creates a product that is delivered electronically.
func NewVirtual(id, name string, price decimal.Decimal, stock int) (*Product, error) {
	return newProduct(id, name, KindVirtual, price, stock)
}

func newProduct(id, name string, kind Kind, price decimal.Decimal, stock int) (*Product, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if price.IsNegative() {
		return nil, errors.Wrapf(ErrNegativePrice, "product %q", name)
	}
	if id == "" {
		id = name
	}
	if stock < 0 {
		stock = 0
	}
	return &Product{
		ID:    id,
		Name:  name,
		Kind:  kind,
		Price: price,
		stock: stock,
	}, nil
}

// Stock returns the current number of available units.
func (p *Product) Stock() int { return p.stock }

// Available reports whether qty units can currently be taken from stock.
func (p *Product) Available(qty int) bool {
	return qty > 0 && qty <= p.stock
}

// ReduceStock decrements stock by qty. It fails with an OutOfStockError when
// qty is non-positive or exceeds the current stock, leaving stock unchanged.
// This is the only stock mutator; checkout calls it exactly once per line,
// after payment has succeeded.
func (p *Product) ReduceStock(qty int) error {
	if qty <= 0 || qty > p.stock {
		return &OutOfStockError{Name: p.Name, Requested: qty, Available: p.stock}
	}
	p.stock -= qty
	return nil
}

// Expired reports whether the product is expired at the given moment.
// The comparison is date-only: a perishable product is expired iff the
// current date is strictly after its expiry date.
func (p *Product) Expired(now time.Time) bool {
	if p.Kind != KindPerishable {
		return false
	}
	return dateOf(now).After(dateOf(p.ExpiresAt))
}

// RequiresShipping reports whether the product has physical weight that must
// be transported.
func (p *Product) RequiresShipping() bool {
	return p.Kind != KindVirtual
}

// dateOf truncates t to midnight UTC of its calendar date.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Repository defines read operations for the product catalog. Implementations
// return products by reference: stock mutation during checkout must be
// visible to subsequent reads.
type Repository interface {
	List(ctx context.Context) ([]*Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
}
