package export_invoice

import (
	"context"
	"fmt"
	"log"
	"path"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/contracts"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/export"
	"github.com/light-bringer/ordertally-service/internal/pkg/artifact"
	"github.com/light-bringer/ordertally-service/internal/pkg/metrics"
)

const kind = "invoice"

// Request identifies the entry to print.
type Request struct {
	ProductID int64
	EntryID   int64
	// Store also writes the document to the artifact sink.
	Store bool
}

// Response carries the rendered document.
type Response struct {
	Document *export.Document
	Artifact *artifact.Info
	// Shared is true when an identical in-flight render served this call.
	Shared bool
}

// Interactor handles the export invoice use case.
type Interactor struct {
	repo         contracts.ProductRepository
	businessRepo contracts.BusinessConfigRepository
	renderer     *export.Renderer
	sink         artifact.Sink
	metrics      *metrics.Metrics
	group        singleflight.Group
}

// NewInteractor creates a new export invoice interactor. sink and m may be nil.
func NewInteractor(
	repo contracts.ProductRepository,
	businessRepo contracts.BusinessConfigRepository,
	renderer *export.Renderer,
	sink artifact.Sink,
	m *metrics.Metrics,
) *Interactor {
	return &Interactor{
		repo:         repo,
		businessRepo: businessRepo,
		renderer:     renderer,
		sink:         sink,
		metrics:      m,
	}
}

// Execute renders the invoice of one customer entry.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	key := fmt.Sprintf("%d/%d/%t", req.ProductID, req.EntryID, req.Store)
	// The render is shared with identical concurrent callers, so one caller
	// going away must not cancel it for the others.
	renderCtx := context.WithoutCancel(ctx)
	v, err, shared := i.group.Do(key, func() (any, error) {
		return i.render(renderCtx, req)
	})
	if err != nil {
		return nil, err
	}
	if shared && i.metrics != nil {
		i.metrics.ExportsShared.Inc()
	}

	resp := *v.(*Response)
	resp.Shared = shared
	return &resp, nil
}

func (i *Interactor) render(ctx context.Context, req *Request) (*Response, error) {
	cfg, _, err := i.businessRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	registry, _, err := i.repo.LoadActive(ctx, cfg)
	if err != nil {
		return nil, err
	}
	product := registry.Find(req.ProductID)
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	entry := product.Entry(req.EntryID)
	if entry == nil {
		return nil, domain.ErrEntryNotFound
	}

	started := time.Now()
	doc, err := i.renderer.Invoice(cfg, product, entry)
	if i.metrics != nil {
		i.metrics.ObserveExport(kind, started, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render invoice: %w", err)
	}

	resp := &Response{Document: doc}
	if req.Store && i.sink != nil {
		objectKey := path.Join("invoices", strconv.FormatInt(product.ID(), 10), doc.Name)
		info, err := i.sink.Put(ctx, objectKey, doc.Data, doc.ContentType)
		if err != nil {
			return nil, fmt.Errorf("failed to store invoice: %w", err)
		}
		log.Printf("stored invoice %s (%d bytes, %s)", info.Key, info.Size, i.sink.Driver())
		resp.Artifact = &info
	}
	return resp, nil
}
