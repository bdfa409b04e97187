package services

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/light-bringer/ordertally-service/internal/app/catalog"
	"github.com/light-bringer/ordertally-service/internal/config"
	"github.com/light-bringer/ordertally-service/internal/models/m_business"
	"github.com/light-bringer/ordertally-service/internal/pkg/artifact"
	"github.com/light-bringer/ordertally-service/internal/pkg/clock"
	"github.com/light-bringer/ordertally-service/internal/pkg/idgen"
	"github.com/light-bringer/ordertally-service/internal/pkg/kvstore"
	"github.com/light-bringer/ordertally-service/internal/pkg/metrics"
	cataloghttp "github.com/light-bringer/ordertally-service/internal/transport/http/catalog"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	Store   kvstore.Store
	Sink    artifact.Sink
	Metrics *metrics.Metrics
	Catalog *catalog.Service
	Handler http.Handler
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config) (*ServiceOptions, error) {
	// 1. Initialize storage
	store, err := kvstore.Open(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store.Driver, err)
	}
	sink, err := artifact.Open(ctx, cfg.Artifact)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to open %s artifact sink: %w", cfg.Artifact.Driver, err)
	}

	// 2. Create infrastructure components
	ids, err := idgen.NewSnowflake(cfg.SnowflakeNode)
	if err != nil {
		store.Close()
		return nil, err
	}
	m := metrics.New()

	// 3. Create use cases and queries
	svc := catalog.New(catalog.Deps{
		Store:   store,
		Clock:   clock.NewRealClock(),
		IDs:     ids,
		Sink:    sink,
		Metrics: m,
	})

	// 4. Create HTTP routes
	mux := http.NewServeMux()
	cataloghttp.NewHandler(svc, m).Register(mux)
	mux.Handle("GET /metrics", m.Handler())
	mux.HandleFunc("GET /healthz", healthz(store))

	log.Printf("Store: %s, artifacts: %s", store.Driver(), sink.Driver())

	return &ServiceOptions{
		Store:   store,
		Sink:    sink,
		Metrics: m,
		Catalog: svc,
		Handler: mux,
	}, nil
}

// healthz reports whether the store answers reads.
func healthz(store kvstore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := kvstore.GetOrEmpty(r.Context(), store, m_business.Key); err != nil {
			log.Printf("health check failed: %v", err)
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	}
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.Store != nil {
		if err := s.Store.Close(); err != nil {
			log.Printf("failed to close store: %v", err)
		}
	}
}
