package api

import (
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/shopfront/internal/domain/catalog"
)

// ListProducts serves GET /api/products: the full catalog in insertion
// order.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}

	var e jx.Encoder
	e.Arr(func(e *jx.Encoder) {
		for _, p := range products {
			encodeProduct(e, p)
		}
	})
	writeJSON(w, http.StatusOK, e.Bytes())
}

// GetProduct serves GET /api/products/{id}.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			errorResponse(w, http.StatusNotFound, "product not found")
			return
		}
		internalError(w, r, err)
		return
	}

	var e jx.Encoder
	encodeProduct(&e, p)
	writeJSON(w, http.StatusOK, e.Bytes())
}

func encodeProduct(e *jx.Encoder, p *catalog.Product) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(p.ID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(p.Name) })
		e.Field("kind", func(e *jx.Encoder) { e.Str(string(p.Kind)) })
		e.Field("price", func(e *jx.Encoder) { e.Str(p.Price.String()) })
		e.Field("stock", func(e *jx.Encoder) { e.Int(p.Stock()) })
		if p.RequiresShipping() {
			e.Field("weight_kg", func(e *jx.Encoder) { e.Str(p.WeightKg.String()) })
		}
		if !p.ExpiresAt.IsZero() {
			e.Field("expires_at", func(e *jx.Encoder) { e.Str(p.ExpiresAt.Format(time.DateOnly)) })
		}
	})
}
