// Package shipping aggregates the physical units of a checkout into a
// grouped manifest and computes the delivery fee.
package shipping

import (
	"github.com/shopspring/decimal"
)

// Default fee constants: a flat base charge plus a per-kilogram rate.
var (
	DefaultBaseFee = decimal.NewFromInt(8)
	DefaultKgRate  = decimal.NewFromInt(20)
	gramsPerKg     = decimal.NewFromInt(1000)
)

// Unit is a single physical unit to ship. A cart line with quantity n
// contributes n units so the manifest can group and weigh per unit.
type Unit struct {
	ProductID string
	Name      string
	WeightKg  decimal.Decimal
}

// Group is a manifest entry: all units of one product, in first-appearance
// order.
type Group struct {
	Name         string
	Count        int
	UnitWeightKg decimal.Decimal
}

// WeightKg returns the total weight of the group in kilograms.
func (g Group) WeightKg() decimal.Decimal {
	return g.UnitWeightKg.Mul(decimal.NewFromInt(int64(g.Count)))
}

// Grams returns the total weight of the group in whole grams, truncated.
func (g Group) Grams() int64 {
	return g.WeightKg().Mul(gramsPerKg).IntPart()
}

// Manifest is the grouped shipment content for one checkout.
type Manifest struct {
	Groups []Group
}

// BuildManifest groups units by product name in a single ordered pass:
// groups appear in the order their product first occurs in the unit list.
func BuildManifest(units []Unit) Manifest {
	var m Manifest
	index := make(map[string]int, len(units))
	for _, u := range units {
		if i, ok := index[u.Name]; ok {
			m.Groups[i].Count++
			continue
		}
		index[u.Name] = len(m.Groups)
		m.Groups = append(m.Groups, Group{
			Name:         u.Name,
			Count:        1,
			UnitWeightKg: u.WeightKg,
		})
	}
	return m
}

// TotalWeightKg returns the combined weight of all groups in kilograms.
func (m Manifest) TotalWeightKg() decimal.Decimal {
	total := decimal.Zero
	for _, g := range m.Groups {
		total = total.Add(g.WeightKg())
	}
	return total
}

// Empty reports whether the manifest has no groups. An empty manifest
// produces no shipment notice, but the fee is still calculated from zero
// weight.
func (m Manifest) Empty() bool {
	return len(m.Groups) == 0
}

// Calculator computes the shipping fee for a total shippable weight.
type Calculator interface {
	Fee(totalWeightKg decimal.Decimal) decimal.Decimal
}

// Standard charges Base plus Rate per kilogram, unconditionally: a checkout
// with zero shippable weight still pays the base fee.
type Standard struct {
	Base decimal.Decimal
	Rate decimal.Decimal
}

// NewStandard returns a Standard calculator with the default constants.
func NewStandard() Standard {
	return Standard{Base: DefaultBaseFee, Rate: DefaultKgRate}
}

// Fee returns Base + Rate × totalWeightKg.
func (s Standard) Fee(totalWeightKg decimal.Decimal) decimal.Decimal {
	return s.Base.Add(s.Rate.Mul(totalWeightKg))
}
