// Command shop-demo runs the scripted checkout scenarios against the
// built-in catalog and prints shipment notices and receipts to stdout.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"

	"github.com/xenking/shopfront/internal/demo"
	"github.com/xenking/shopfront/internal/domain/checkout"
	"github.com/xenking/shopfront/internal/domain/shipping"
)

func main() {
	baseFee := flag.String("base-fee", shipping.DefaultBaseFee.String(), "flat shipping fee charged per checkout")
	perKgRate := flag.String("per-kg-rate", shipping.DefaultKgRate.String(), "shipping fee per kilogram")
	flag.Parse()

	base, err := decimal.NewFromString(*baseFee)
	if err != nil {
		slog.Error("invalid base fee", "value", *baseFee, "error", err)
		os.Exit(1)
	}
	rate, err := decimal.NewFromString(*perKgRate)
	if err != nil {
		slog.Error("invalid per-kg rate", "value", *perKgRate, "error", err)
		os.Exit(1)
	}

	svc := checkout.NewService(shipping.Standard{Base: base, Rate: rate})
	demo.Run(os.Stdout, os.Stderr, svc)
}
