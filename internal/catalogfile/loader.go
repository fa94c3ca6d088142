// Package catalogfile loads product catalogs from JSON files. A file holds a
// JSON array of product objects:
//
//	[{"id": "cheese", "name": "Cheese", "kind": "perishable",
//	  "price": "100", "stock": 5, "weight_kg": "0.2",
//	  "expires_at": "2026-09-04"}]
//
// Files with a .gz suffix are decompressed transparently. Price and weight
// accept either JSON numbers or strings; expires_at is a calendar date.
package catalogfile

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/shopfront/internal/domain/catalog"
)

// Load reads product definitions from the given files concurrently and merges
// them preserving argument order. A product ID occurring in more than one
// file is an error.
func Load(ctx context.Context, paths ...string) ([]*catalog.Product, error) {
	results := make([][]*catalog.Product, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			products, err := loadFile(path)
			if err != nil {
				return errors.Wrapf(err, "load %s", path)
			}
			results[i] = products
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []*catalog.Product
	seen := make(map[string]string)
	for i, products := range results {
		for _, p := range products {
			if prev, ok := seen[p.ID]; ok {
				return nil, errors.Errorf("duplicate product id %q in %s (first seen in %s)", p.ID, paths[i], prev)
			}
			seen[p.ID] = paths[i]
			merged = append(merged, p)
		}
	}
	return merged, nil
}

func loadFile(path string) ([]*catalog.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrap(err, "create gzip reader")
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read")
	}

	return Parse(data)
}

// productSpec is the raw decoded form before constructor validation.
type productSpec struct {
	id        string
	name      string
	kind      string
	price     decimal.Decimal
	stock     int
	weightKg  decimal.Decimal
	expiresAt time.Time
}

// Parse decodes a JSON array of product objects and builds validated catalog
// products from it.
func Parse(data []byte) ([]*catalog.Product, error) {
	d := jx.DecodeBytes(data)

	var products []*catalog.Product
	if err := d.Arr(func(d *jx.Decoder) error {
		spec, err := decodeSpec(d)
		if err != nil {
			return err
		}
		p, err := buildProduct(spec)
		if err != nil {
			return err
		}
		products = append(products, p)
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}
	return products, nil
}

func decodeSpec(d *jx.Decoder) (productSpec, error) {
	var spec productSpec
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			spec.id, err = d.Str()
		case "name":
			spec.name, err = d.Str()
		case "kind":
			spec.kind, err = d.Str()
		case "price":
			spec.price, err = decodeDecimal(d)
		case "stock":
			spec.stock, err = d.Int()
		case "weight_kg":
			spec.weightKg, err = decodeDecimal(d)
		case "expires_at":
			var s string
			if s, err = d.Str(); err == nil {
				spec.expiresAt, err = time.Parse(time.DateOnly, s)
			}
		default:
			err = d.Skip()
		}
		return errors.Wrapf(err, "field %q", key)
	})
	return spec, err
}

// decodeDecimal reads a decimal from a JSON number or a string-encoded one,
// keeping exact precision.
func decodeDecimal(d *jx.Decoder) (decimal.Decimal, error) {
	if d.Next() == jx.String {
		s, err := d.Str()
		if err != nil {
			return decimal.Zero, err
		}
		return decimal.NewFromString(s)
	}
	n, err := d.Num()
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(n.String())
}

func buildProduct(spec productSpec) (*catalog.Product, error) {
	switch catalog.Kind(spec.kind) {
	case catalog.KindPerishable:
		return catalog.NewPerishable(spec.id, spec.name, spec.price, spec.stock, spec.expiresAt, spec.weightKg)
	case catalog.KindPhysical:
		return catalog.NewPhysical(spec.id, spec.name, spec.price, spec.stock, spec.weightKg)
	case catalog.KindVirtual:
		return catalog.NewVirtual(spec.id, spec.name, spec.price, spec.stock)
	default:
		return nil, errors.Errorf("product %q: unsupported kind %q", spec.name, spec.kind)
	}
}
