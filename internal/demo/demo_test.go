package demo

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/shopfront/internal/domain/checkout"
	"github.com/xenking/shopfront/internal/domain/shipping"
)

func TestCatalog(t *testing.T) {
	now := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)

	products, err := Catalog(now)
	require.NoError(t, err)
	require.Len(t, products, 6)

	byName := make(map[string]bool, len(products))
	for _, p := range products {
		byName[p.Name] = true
	}
	for _, name := range []string{"Cheese", "Scratch Card", "TV", "Old Milk", "E-Book", "Online Course"} {
		assert.True(t, byName[name], "missing %s", name)
	}

	for _, p := range products {
		if p.Name == "Old Milk" {
			assert.True(t, p.Expired(now), "Old Milk must already be expired")
		} else {
			assert.False(t, p.Expired(now), "%s must not be expired", p.Name)
		}
	}
}

func TestRun(t *testing.T) {
	var out, errOut bytes.Buffer
	svc := checkout.NewService(shipping.NewStandard())

	Run(&out, &errOut, svc)

	stdout := out.String()
	stderr := errOut.String()

	assert.True(t, strings.HasPrefix(stdout, "Welcome to the E-Commerce Demo!\n\n"))
	for _, header := range []string{
		"Scenario 1: Successful purchase",
		"Scenario 2: Insufficient funds",
		"Scenario 3: Empty cart",
		"Scenario 4: Expired item",
		"Scenario 5: Virtual-only purchase",
	} {
		assert.Contains(t, stdout, header)
	}

	// Scenario 1: full shipment notice, receipt, and remaining balance.
	assert.Contains(t, stdout, "Processing checkout for John Doe...")
	assert.Contains(t, stdout, "Shipping 2× Cheese (400g)")
	assert.Contains(t, stdout, "Shipping 1× TV (15000g)")
	assert.Contains(t, stdout, "Total weight: 15.4 kg")
	assert.Contains(t, stdout, "Subtotal: $850")
	assert.Contains(t, stdout, "Shipping: $316")
	assert.Contains(t, stdout, "Total:    $1166")
	assert.Contains(t, stdout, "Done. Remaining balance: $834.00")

	// Scenario 5: virtual-only pays the base fee with no shipment notice.
	assert.Contains(t, stdout, "Total:    $168")
	assert.Contains(t, stdout, "Done. Remaining balance: $32.00")

	// Failure scenarios report on errOut and never abort the run.
	assert.Contains(t, stderr, "[Error] insufficient funds")
	assert.Contains(t, stderr, "[Error] cart cannot be empty")
	assert.Contains(t, stderr, "[Error] Old Milk expired")

	// Exactly one shipment notice: scenario 1 is the only shippable success.
	assert.Equal(t, 1, strings.Count(stdout, "-- Shipment Notice --"))
	assert.Equal(t, 2, strings.Count(stdout, "-- Receipt --"))
}
