// Package customer holds the purchasing customer: a name and a mutable
// balance with a single charge operation.
package customer

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrInsufficientFunds is returned when a charge exceeds the current balance.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Customer has a display name and a balance that only Charge may reduce.
type Customer struct {
	Name string

	balance decimal.Decimal
}

// New creates a customer with the given starting balance.
func New(name string, balance decimal.Decimal) *Customer {
	return &Customer{Name: name, balance: balance}
}

// Balance returns the current balance.
func (c *Customer) Balance() decimal.Decimal {
	return c.balance
}

// Charge deducts amount from the balance. It fails with ErrInsufficientFunds
// iff amount is strictly greater than the balance; charging the exact balance
// succeeds and leaves it at zero.
func (c *Customer) Charge(amount decimal.Decimal) error {
	if amount.GreaterThan(c.balance) {
		return ErrInsufficientFunds
	}
	c.balance = c.balance.Sub(amount)
	return nil
}
