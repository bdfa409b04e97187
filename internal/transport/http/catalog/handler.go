// Package catalog serves the product/order tally API over HTTP+JSON.
package catalog

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	appcatalog "github.com/light-bringer/ordertally-service/internal/app/catalog"
	"github.com/light-bringer/ordertally-service/internal/pkg/metrics"
)

// Handler is a thin coordinator that delegates to the catalog use cases
// and queries.
type Handler struct {
	svc     *appcatalog.Service
	metrics *metrics.Metrics
}

// NewHandler creates a new HTTP catalog handler. m may be nil.
func NewHandler(svc *appcatalog.Service, m *metrics.Metrics) *Handler {
	return &Handler{
		svc:     svc,
		metrics: m,
	}
}

// Register mounts every route on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	// Product registry
	h.handle(mux, "GET /api/v1/products", h.listProducts)
	h.handle(mux, "POST /api/v1/products", h.addProduct)
	h.handle(mux, "GET /api/v1/products/{id}", h.getProduct)
	h.handle(mux, "DELETE /api/v1/products/{id}", h.deleteProduct)
	h.handle(mux, "PUT /api/v1/products/{id}/count", h.updateCount)
	h.handle(mux, "PUT /api/v1/products/{id}/note", h.updateNote)
	h.handle(mux, "PUT /api/v1/products/{id}/photo", h.setPhoto)
	h.handle(mux, "DELETE /api/v1/products/{id}/photo", h.clearPhoto)
	h.handle(mux, "POST /api/v1/products/{id}/archive", h.archiveProduct)

	// Order ledger
	h.handle(mux, "POST /api/v1/products/{id}/entries", h.addEntry)
	h.handle(mux, "PUT /api/v1/products/{id}/entries/{entryId}", h.updateEntry)
	h.handle(mux, "DELETE /api/v1/products/{id}/entries/{entryId}", h.deleteEntry)
	h.handle(mux, "PUT /api/v1/products/{id}/entries/{entryId}/state", h.setEntryState)
	h.handle(mux, "POST /api/v1/products/{id}/entries/{entryId}/toggle-ready", h.toggleReady)
	h.handle(mux, "GET /api/v1/products/{id}/entries/{entryId}/text", h.entryText)
	h.handle(mux, "GET /api/v1/products/{id}/entries/{entryId}/invoice", h.exportInvoice)

	// Archive
	h.handle(mux, "GET /api/v1/archive", h.listArchive)
	h.handle(mux, "POST /api/v1/archive/{id}/restore", h.restoreProduct)
	h.handle(mux, "DELETE /api/v1/archive/{id}", h.purgeArchived)

	// Bulk workflow
	h.handle(mux, "GET /api/v1/workflow", h.workflow)
	h.handle(mux, "POST /api/v1/workflow/export", h.bulkExport)

	// Business configuration
	h.handle(mux, "GET /api/v1/business", h.getBusiness)
	h.handle(mux, "PUT /api/v1/business", h.updateBusinessInfo)
	h.handle(mux, "PUT /api/v1/business/logo", h.setLogo)
	h.handle(mux, "DELETE /api/v1/business/logo", h.removeLogo)
	h.handle(mux, "POST /api/v1/business/states", h.addState)
	h.handle(mux, "PUT /api/v1/business/states/{name}", h.updateStateColor)
	h.handle(mux, "DELETE /api/v1/business/states/{name}", h.removeState)

	// Activity log
	h.handle(mux, "GET /api/v1/events", h.listEvents)
}

type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// handle adapts an error-returning handler and records request metrics
// under the route pattern.
func (h *Handler) handle(mux *http.ServeMux, pattern string, fn handlerFunc) {
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		if err := fn(rec, r); err != nil {
			writeError(rec, r, err)
		}
		if h.metrics != nil {
			h.metrics.ObserveHTTP(pattern, rec.status, started)
		}
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
