package checkout

import (
	"fmt"
	"io"
	"strings"
)

// Render writes the shipment notice (when the manifest is non-empty) followed
// by the receipt. The layout is a fixed console contract:
//
//	-- Shipment Notice --
//	Shipping 2× Cheese (400g)
//	Total weight: 15.4 kg
//
//	-- Receipt --
//	2x Cheese         $200
//	----------------
//	Subtotal: $850
//	Shipping: $316
//	Total:    $1166
func (r *Receipt) Render(w io.Writer) error {
	_, err := io.WriteString(w, r.consoleText())
	return err
}

func (r *Receipt) consoleText() string {
	var b strings.Builder

	if !r.Manifest.Empty() {
		b.WriteString("-- Shipment Notice --\n")
		for _, g := range r.Manifest.Groups {
			fmt.Fprintf(&b, "Shipping %d× %s (%dg)\n", g.Count, g.Name, g.Grams())
		}
		fmt.Fprintf(&b, "Total weight: %.1f kg\n\n", r.Manifest.TotalWeightKg().InexactFloat64())
	}

	b.WriteString("-- Receipt --\n")
	for _, line := range r.Lines {
		fmt.Fprintf(&b, "%dx %-14s $%.0f\n", line.Quantity, line.Name, line.Total.InexactFloat64())
	}
	b.WriteString("----------------\n")
	fmt.Fprintf(&b, "Subtotal: $%.0f\nShipping: $%.0f\nTotal:    $%.0f\n\n",
		r.Subtotal.InexactFloat64(), r.ShippingFee.InexactFloat64(), r.Total.InexactFloat64())

	return b.String()
}
