// Package demo contains the scripted checkout demonstration: a built-in
// catalog and five hard-coded scenarios exercising success, insufficient
// funds, empty cart, expired item, and virtual-only purchases.
package demo

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xenking/shopfront/internal/domain/cart"
	"github.com/xenking/shopfront/internal/domain/catalog"
	"github.com/xenking/shopfront/internal/domain/checkout"
	"github.com/xenking/shopfront/internal/domain/customer"
)

// Catalog builds the demo product catalog relative to now. It includes Old
// Milk, already expired, so the expired-item path stays reachable.
func Catalog(now time.Time) ([]*catalog.Product, error) {
	cheese, err := catalog.NewPerishable("cheese", "Cheese", decimal.NewFromInt(100), 5, now.AddDate(0, 0, 7), decimal.RequireFromString("0.2"))
	if err != nil {
		return nil, err
	}
	card, err := catalog.NewVirtual("scratch-card", "Scratch Card", decimal.NewFromInt(50), 10)
	if err != nil {
		return nil, err
	}
	tv, err := catalog.NewPhysical("tv", "TV", decimal.NewFromInt(500), 2, decimal.NewFromInt(15))
	if err != nil {
		return nil, err
	}
	milk, err := catalog.NewPerishable("old-milk", "Old Milk", decimal.NewFromInt(20), 1, now.AddDate(0, 0, -1), decimal.RequireFromString("0.5"))
	if err != nil {
		return nil, err
	}
	ebook, err := catalog.NewVirtual("e-book", "E-Book", decimal.NewFromInt(30), 10)
	if err != nil {
		return nil, err
	}
	course, err := catalog.NewVirtual("online-course", "Online Course", decimal.NewFromInt(100), 5)
	if err != nil {
		return nil, err
	}
	return []*catalog.Product{cheese, card, tv, milk, ebook, course}, nil
}

// Scenario is one scripted checkout: a name and a builder producing the
// customer and cart to run. Each scenario constructs fresh products so stock
// changes never leak between scenarios.
type Scenario struct {
	Name  string
	Build func(now time.Time) (*customer.Customer, *cart.Cart, error)
}

// Scenarios returns the five scripted scenarios in demonstration order.
func Scenarios() []Scenario {
	return []Scenario{
		{
			Name: "Scenario 1: Successful purchase",
			Build: func(now time.Time) (*customer.Customer, *cart.Cart, error) {
				cheese, err := catalog.NewPerishable("cheese", "Cheese", decimal.NewFromInt(100), 5, now.AddDate(0, 0, 7), decimal.RequireFromString("0.2"))
				if err != nil {
					return nil, nil, err
				}
				card, err := catalog.NewVirtual("scratch-card", "Scratch Card", decimal.NewFromInt(50), 10)
				if err != nil {
					return nil, nil, err
				}
				tv, err := catalog.NewPhysical("tv", "TV", decimal.NewFromInt(500), 2, decimal.NewFromInt(15))
				if err != nil {
					return nil, nil, err
				}

				crt := cart.New()
				if err := crt.Add(cheese, 2); err != nil {
					return nil, nil, err
				}
				if err := crt.Add(card, 3); err != nil {
					return nil, nil, err
				}
				if err := crt.Add(tv, 1); err != nil {
					return nil, nil, err
				}
				return customer.New("John Doe", decimal.NewFromInt(2000)), crt, nil
			},
		},
		{
			Name: "Scenario 2: Insufficient funds",
			Build: func(now time.Time) (*customer.Customer, *cart.Cart, error) {
				cheese, err := catalog.NewPerishable("cheese", "Cheese", decimal.NewFromInt(100), 5, now.AddDate(0, 0, 7), decimal.RequireFromString("0.2"))
				if err != nil {
					return nil, nil, err
				}

				crt := cart.New()
				if err := crt.Add(cheese, 4); err != nil {
					return nil, nil, err
				}
				return customer.New("Jane Smith", decimal.NewFromInt(100)), crt, nil
			},
		},
		{
			Name: "Scenario 3: Empty cart",
			Build: func(time.Time) (*customer.Customer, *cart.Cart, error) {
				return customer.New("Empty Buyer", decimal.NewFromInt(500)), cart.New(), nil
			},
		},
		{
			Name: "Scenario 4: Expired item",
			Build: func(now time.Time) (*customer.Customer, *cart.Cart, error) {
				milk, err := catalog.NewPerishable("old-milk", "Old Milk", decimal.NewFromInt(20), 1, now.AddDate(0, 0, -1), decimal.RequireFromString("0.5"))
				if err != nil {
					return nil, nil, err
				}

				crt := cart.New()
				if err := crt.Add(milk, 1); err != nil {
					return nil, nil, err
				}
				return customer.New("Expiry Tester", decimal.NewFromInt(100)), crt, nil
			},
		},
		{
			Name: "Scenario 5: Virtual-only purchase",
			Build: func(time.Time) (*customer.Customer, *cart.Cart, error) {
				ebook, err := catalog.NewVirtual("e-book", "E-Book", decimal.NewFromInt(30), 10)
				if err != nil {
					return nil, nil, err
				}
				course, err := catalog.NewVirtual("online-course", "Online Course", decimal.NewFromInt(100), 5)
				if err != nil {
					return nil, nil, err
				}

				crt := cart.New()
				if err := crt.Add(ebook, 2); err != nil {
					return nil, nil, err
				}
				if err := crt.Add(course, 1); err != nil {
					return nil, nil, err
				}
				return customer.New("Virtual Lover", decimal.NewFromInt(200)), crt, nil
			},
		},
	}
}

// Run executes all scenarios against svc, writing demo output to out and
// failure lines to errOut. A failing scenario never aborts the others.
func Run(out, errOut io.Writer, svc *checkout.Service) {
	now := time.Now()

	fmt.Fprintf(out, "Welcome to the E-Commerce Demo!\n\n")

	for i, sc := range Scenarios() {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, sc.Name)

		cust, crt, err := sc.Build(now)
		if err != nil {
			fmt.Fprintf(errOut, "[Error] %s\n", err)
			continue
		}
		runCheckout(out, errOut, svc, cust, crt)
	}
}

func runCheckout(out, errOut io.Writer, svc *checkout.Service, cust *customer.Customer, crt *cart.Cart) {
	fmt.Fprintf(out, "Processing checkout for %s...\n", cust.Name)

	receipt, err := svc.Process(cust, crt)
	if err != nil {
		fmt.Fprintf(errOut, "[Error] %s\n", err)
		return
	}

	if err := receipt.Render(out); err != nil {
		fmt.Fprintf(errOut, "[Error] %s\n", err)
		return
	}
	fmt.Fprintf(out, "Done. Remaining balance: $%.2f\n", cust.Balance().InexactFloat64())
}
