package bulk_export

import (
	"context"
	"fmt"
	"log"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/contracts"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/export"
	"github.com/light-bringer/ordertally-service/internal/pkg/artifact"
	"github.com/light-bringer/ordertally-service/internal/pkg/clock"
	"github.com/light-bringer/ordertally-service/internal/pkg/metrics"
)

const kind = "bulk"

// Request selects the entries to print. A non-empty SelectedEntryIDs wins
// over State; otherwise every entry in State (nil or "All" for all) is used.
type Request struct {
	SelectedEntryIDs []int64
	State            *string
	Store            bool
}

// Response carries the rendered document.
type Response struct {
	Document *export.Document
	Entries  int
	Artifact *artifact.Info
	Shared   bool
}

// Interactor handles the bulk export use case.
type Interactor struct {
	repo         contracts.ProductRepository
	businessRepo contracts.BusinessConfigRepository
	renderer     *export.Renderer
	sink         artifact.Sink
	metrics      *metrics.Metrics
	clock        clock.Clock
	group        singleflight.Group
}

// NewInteractor creates a new bulk export interactor. sink and m may be nil.
func NewInteractor(
	repo contracts.ProductRepository,
	businessRepo contracts.BusinessConfigRepository,
	renderer *export.Renderer,
	sink artifact.Sink,
	m *metrics.Metrics,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		repo:         repo,
		businessRepo: businessRepo,
		renderer:     renderer,
		sink:         sink,
		metrics:      m,
		clock:        clock,
	}
}

// Execute renders the selected entries into one document. An empty
// selection returns domain.ErrNothingToExport and produces nothing.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	// The render is shared with identical concurrent callers, so one caller
	// going away must not cancel it for the others.
	renderCtx := context.WithoutCancel(ctx)
	v, err, shared := i.group.Do(requestKey(req), func() (any, error) {
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

	records, err := domain.SelectForExport(domain.Flatten(registry.Products()), req.SelectedEntryIDs, req.State)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	doc, err := i.renderer.Bulk(cfg, records, req.State)
	if i.metrics != nil {
		i.metrics.ObserveExport(kind, started, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render bulk export: %w", err)
	}

	resp := &Response{Document: doc, Entries: len(records)}
	if req.Store && i.sink != nil {
		objectKey := path.Join("bulk", i.clock.Now().UTC().Format("20060102T150405"), doc.Name)
		info, err := i.sink.Put(ctx, objectKey, doc.Data, doc.ContentType)
		if err != nil {
			return nil, fmt.Errorf("failed to store bulk export: %w", err)
		}
		log.Printf("stored bulk export %s (%d entries, %d bytes)", info.Key, len(records), info.Size)
		resp.Artifact = &info
	}
	return resp, nil
}

func requestKey(req *Request) string {
	var b strings.Builder
	if req.State != nil {
		b.WriteString(*req.State)
	}
	b.WriteString("|")
	ids := slices.Clone(req.SelectedEntryIDs)
	slices.Sort(ids)
	for _, id := range ids {
		b.WriteString(strconv.FormatInt(id, 10))
		b.WriteString(",")
	}
	b.WriteString("|")
	b.WriteString(strconv.FormatBool(req.Store))
	return b.String()
}
