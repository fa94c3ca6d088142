package api

import (
	"io"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/xenking/shopfront/internal/domain/cart"
	"github.com/xenking/shopfront/internal/domain/catalog"
	"github.com/xenking/shopfront/internal/domain/checkout"
	"github.com/xenking/shopfront/internal/domain/customer"
)

const maxCheckoutBody = 1 << 20

type checkoutRequest struct {
	customerName string
	balance      decimal.Decimal
	items        []checkoutItem
}

type checkoutItem struct {
	productID string
	quantity  int
}

// Checkout serves POST /api/checkout: it builds a cart for a one-shot
// customer and runs the checkout pipeline against live catalog stock.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCheckoutBody))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	req, err := decodeCheckoutRequest(body)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	h.checkoutMu.Lock()
	defer h.checkoutMu.Unlock()

	cust := customer.New(req.customerName, req.balance)
	crt := cart.New()
	for _, item := range req.items {
		p, err := h.catalog.GetByID(r.Context(), item.productID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				errorResponse(w, http.StatusUnprocessableEntity, errors.Wrapf(err, "product %q", item.productID).Error())
				return
			}
			internalError(w, r, err)
			return
		}
		if err := crt.Add(p, item.quantity); err != nil {
			h.checkoutError(w, r, err)
			return
		}
	}

	receipt, err := h.checkout.Process(cust, crt)
	if err != nil {
		h.checkoutError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, encodeReceipt(receipt, cust.Balance()))
}

// checkoutError maps domain errors to HTTP status codes.
func (h *Handler) checkoutError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		unavailableErr *cart.UnavailableError
		expiredErr     *checkout.ExpiredItemError
	)
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		errorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, customer.ErrInsufficientFunds):
		errorResponse(w, http.StatusPaymentRequired, err.Error())
	case errors.As(err, &unavailableErr):
		errorResponse(w, http.StatusConflict, err.Error())
	case errors.As(err, &expiredErr):
		errorResponse(w, http.StatusUnprocessableEntity, err.Error())
	default:
		internalError(w, r, err)
	}
}

func decodeCheckoutRequest(body []byte) (checkoutRequest, error) {
	var req checkoutRequest
	d := jx.DecodeBytes(body)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "customer":
			return d.Obj(func(d *jx.Decoder, key string) error {
				var err error
				switch key {
				case "name":
					req.customerName, err = d.Str()
				case "balance":
					req.balance, err = decodeDecimal(d)
				default:
					err = d.Skip()
				}
				return err
			})
		case "items":
			return d.Arr(func(d *jx.Decoder) error {
				var item checkoutItem
				if err := d.Obj(func(d *jx.Decoder, key string) error {
					var err error
					switch key {
					case "product_id":
						item.productID, err = d.Str()
					case "quantity":
						item.quantity, err = d.Int()
					default:
						err = d.Skip()
					}
					return err
				}); err != nil {
					return err
				}
				req.items = append(req.items, item)
				return nil
			})
		default:
			return d.Skip()
		}
	}); err != nil {
		return checkoutRequest{}, errors.Wrap(err, "decode request")
	}

	if req.customerName == "" {
		return checkoutRequest{}, errors.New("customer name is required")
	}
	return req, nil
}

// decodeDecimal reads a decimal from a JSON number or a string-encoded one.
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

func encodeReceipt(rec *checkout.Receipt, balance decimal.Decimal) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(rec.ID) })
		e.Field("customer", func(e *jx.Encoder) { e.Str(rec.CustomerName) })
		e.Field("lines", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, line := range rec.Lines {
					e.Obj(func(e *jx.Encoder) {
						e.Field("quantity", func(e *jx.Encoder) { e.Int(line.Quantity) })
						e.Field("name", func(e *jx.Encoder) { e.Str(line.Name) })
						e.Field("total", func(e *jx.Encoder) { e.Str(line.Total.String()) })
					})
				}
			})
		})
		e.Field("subtotal", func(e *jx.Encoder) { e.Str(rec.Subtotal.String()) })
		e.Field("shipping_fee", func(e *jx.Encoder) { e.Str(rec.ShippingFee.String()) })
		e.Field("total", func(e *jx.Encoder) { e.Str(rec.Total.String()) })
		e.Field("balance", func(e *jx.Encoder) { e.Str(balance.String()) })
		if !rec.Manifest.Empty() {
			e.Field("shipment", func(e *jx.Encoder) {
				e.Obj(func(e *jx.Encoder) {
					e.Field("groups", func(e *jx.Encoder) {
						e.Arr(func(e *jx.Encoder) {
							for _, g := range rec.Manifest.Groups {
								e.Obj(func(e *jx.Encoder) {
									e.Field("name", func(e *jx.Encoder) { e.Str(g.Name) })
									e.Field("count", func(e *jx.Encoder) { e.Int(g.Count) })
									e.Field("grams", func(e *jx.Encoder) { e.Int64(g.Grams()) })
								})
							}
						})
					})
					e.Field("total_weight_kg", func(e *jx.Encoder) { e.Str(rec.Manifest.TotalWeightKg().String()) })
				})
			})
		}
		e.Field("created_at", func(e *jx.Encoder) { e.Str(rec.CreatedAt.Format(time.RFC3339)) })
	})
	return e.Bytes()
}
