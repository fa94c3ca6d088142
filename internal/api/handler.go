// Package api implements the HTTP API: catalog listing and checkout.
// Requests and responses use JSON; decimal amounts are encoded as strings to
// keep exact precision on the wire.
package api

import (
	"net/http"
	"sync"

	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/shopfront/internal/domain/catalog"
	"github.com/xenking/shopfront/internal/domain/checkout"
)

// Handler serves the API endpoints. Checkouts mutate shared catalog stock,
// so they are serialized through a mutex; product listings are lock-free
// reads against the repository.
type Handler struct {
	catalog  catalog.Repository
	checkout *checkout.Service

	// checkoutMu serializes the charge-then-deduct sequence so concurrent
	// requests cannot oversell stock.
	checkoutMu sync.Mutex
}

// NewHandler creates a Handler backed by the given repository and checkout
// service.
func NewHandler(repo catalog.Repository, svc *checkout.Service) *Handler {
	return &Handler{
		catalog:  repo,
		checkout: svc,
	}
}

// Register attaches the API routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/products", h.ListProducts)
	mux.HandleFunc("GET /api/products/{id}", h.GetProduct)
	mux.HandleFunc("POST /api/checkout", h.Checkout)
}

// errorResponse writes a JSON error body with the given status code.
func errorResponse(w http.ResponseWriter, code int, message string) {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("code", func(e *jx.Encoder) { e.Int(code) })
		e.Field("message", func(e *jx.Encoder) { e.Str(message) })
	})
	writeJSON(w, code, e.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	zctx.From(r.Context()).Error("request failed",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	errorResponse(w, http.StatusInternalServerError, "internal error")
}
