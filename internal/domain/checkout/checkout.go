// Package checkout implements the checkout pipeline: validation, pricing,
// payment, stock deduction, and receipt generation, in strict order.
package checkout

import (
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xenking/shopfront/internal/domain/cart"
	"github.com/xenking/shopfront/internal/domain/customer"
	"github.com/xenking/shopfront/internal/domain/shipping"
)

// ErrEmptyCart is returned when checkout is attempted on a cart with no lines.
var ErrEmptyCart = errors.New("cart cannot be empty")

// ExpiredItemError indicates a cart line references an expired product. The
// first expired product in cart order aborts the whole checkout.
type ExpiredItemError struct {
	Name string
}

func (e *ExpiredItemError) Error() string {
	return fmt.Sprintf("%s expired", e.Name)
}

// ReceiptLine is one itemized entry on a receipt.
type ReceiptLine struct {
	Quantity int
	Name     string
	Total    decimal.Decimal
}

// Receipt is the tagged success result of a checkout: the itemized lines,
// the pricing summary, and the shipment manifest (empty when nothing ships).
type Receipt struct {
	ID           string
	CustomerName string
	Lines        []ReceiptLine
	Subtotal     decimal.Decimal
	ShippingFee  decimal.Decimal
	Total        decimal.Decimal
	Manifest     shipping.Manifest
	CreatedAt    time.Time
}

// Service runs the checkout pipeline. It is stateless between calls; the
// clock is injected for expiry checks.
type Service struct {
	calc shipping.Calculator
	now  func() time.Time
}

// NewService creates a checkout Service using the given fee calculator.
func NewService(calc shipping.Calculator) *Service {
	return &Service{calc: calc, now: time.Now}
}

// Process runs the pipeline for one customer and cart:
//
//	validate non-empty → validate expiry → classify shippable units →
//	price → charge → deduct stock → manifest → receipt → clear cart
//
// On failure the cart and customer are left in their pre-checkout state,
// with one known exception: the customer is charged before stock is
// deducted, so a stock deduction failure surfaces an error after the charge
// has been applied. Add-time availability checks make that unreachable in
// single-threaded use; the ordering is kept deliberately.
func (s *Service) Process(cust *customer.Customer, crt *cart.Cart) (*Receipt, error) {
	if crt.IsEmpty() {
		return nil, ErrEmptyCart
	}

	now := s.now()
	items := crt.Items()

	// Expiry check precedes any charge or mutation; first expired line wins.
	for _, line := range items {
		if line.Product.Expired(now) {
			return nil, &ExpiredItemError{Name: line.Product.Name}
		}
	}

	// One shippable unit per physical item, duplicated per quantity.
	var units []shipping.Unit
	for _, line := range items {
		if !line.Product.RequiresShipping() {
			continue
		}
		for range line.Quantity {
			units = append(units, shipping.Unit{
				ProductID: line.Product.ID,
				Name:      line.Product.Name,
				WeightKg:  line.Product.WeightKg,
			})
		}
	}

	manifest := shipping.BuildManifest(units)

	subtotal := crt.Subtotal()
	fee := s.calc.Fee(manifest.TotalWeightKg())
	total := subtotal.Add(fee)

	if err := cust.Charge(total); err != nil {
		return nil, err
	}

	// Charge happened above; a failure past this point is not rolled back.
	for _, line := range items {
		if err := line.Product.ReduceStock(line.Quantity); err != nil {
			return nil, errors.Wrapf(err, "deduct stock for %s after charge", line.Product.Name)
		}
	}

	lines := make([]ReceiptLine, len(items))
	for i, line := range items {
		lines[i] = ReceiptLine{
			Quantity: line.Quantity,
			Name:     line.Product.Name,
			Total:    line.Total(),
		}
	}

	receipt := &Receipt{
		ID:           uuid.New().String(),
		CustomerName: cust.Name,
		Lines:        lines,
		Subtotal:     subtotal,
		ShippingFee:  fee,
		Total:        total,
		Manifest:     manifest,
		CreatedAt:    now,
	}

	crt.Clear()

	return receipt, nil
}
