package catalog

import (
	"time"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/contracts"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
)

// Ids are int64 snowflakes, beyond the exact integer range of a JavaScript
// number, so they are encoded as JSON strings.

type errorResponse struct {
	Error string `json:"error"`
}

type appliedResponse struct {
	Applied bool `json:"applied"`
}

// Product is a product in API responses.
type Product struct {
	ID              int64   `json:"id,string"`
	Name            string  `json:"name"`
	Count           int     `json:"count"`
	Note            string  `json:"note"`
	Price           string  `json:"price"`
	Photo           *string `json:"photo,omitempty"`
	CustomerEntries []Entry `json:"customerEntries"`
	Totals          *Totals `json:"totals,omitempty"`
}

// Entry is a customer entry in API responses.
type Entry struct {
	ID         int64  `json:"id,string"`
	Data       string `json:"data"`
	State      string `json:"state"`
	StateColor string `json:"stateColor"`
	IsReady    bool   `json:"isReady"`
	CreatedAt  string `json:"createdAt"`
}

// Totals is the order value of a product.
type Totals struct {
	EntryCount int    `json:"entryCount"`
	ReadyCount int    `json:"readyCount"`
	Total      string `json:"total"`
	ReadyTotal string `json:"readyTotal"`
}

// State is a configured workflow state.
type State struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// BusinessConfig is the business profile.
type BusinessConfig struct {
	Name       string  `json:"name"`
	FooterNote string  `json:"footerNote"`
	Logo       *string `json:"logo,omitempty"`
	States     []State `json:"states"`
}

// StateCount is one bucket of the workflow summary.
type StateCount struct {
	State string `json:"state"`
	Color string `json:"color"`
	Count int    `json:"count"`
}

// WorkflowEntry is a customer entry tagged with its product.
type WorkflowEntry struct {
	Entry
	ProductID   int64  `json:"productId,string"`
	ProductName string `json:"productName"`
}

// Workflow is the bulk workflow view.
type Workflow struct {
	All     int             `json:"all"`
	States  []StateCount    `json:"states"`
	Entries []WorkflowEntry `json:"entries"`
}

// Event represents an activity log event in the HTTP response.
type Event struct {
	EventID     string `json:"event_id"`
	EventType   string `json:"event_type"`
	AggregateID string `json:"aggregate_id"`
	Payload     string `json:"payload"`
	OccurredAt  string `json:"occurred_at"`
}

// ListEventsResponse represents the HTTP response for listing events.
type ListEventsResponse struct {
	Events     []Event `json:"events"`
	TotalCount int     `json:"total_count"`
}

func toProduct(p *domain.Product, cfg *domain.BusinessConfig) Product {
	out := Product{
		ID:              p.ID(),
		Name:            p.Name(),
		Count:           p.Count(),
		Note:            p.Note(),
		Price:           p.Price().Decimal(),
		CustomerEntries: toEntries(p.Entries(), cfg),
	}
	if photo := p.Photo(); photo != nil {
		url := photo.DataURL()
		out.Photo = &url
	}
	return out
}

func toProducts(products []*domain.Product, cfg *domain.BusinessConfig) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		out = append(out, toProduct(p, cfg))
	}
	return out
}

func toEntry(e *domain.CustomerEntry, cfg *domain.BusinessConfig) Entry {
	return Entry{
		ID:         e.ID(),
		Data:       e.Data(),
		State:      e.State(),
		StateColor: cfg.StateColor(e.State()),
		IsReady:    e.IsReady(),
		CreatedAt:  e.CreatedAt().UTC().Format(time.RFC3339),
	}
}

func toEntries(entries []*domain.CustomerEntry, cfg *domain.BusinessConfig) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntry(e, cfg))
	}
	return out
}

func toTotals(t domain.Totals) *Totals {
	return &Totals{
		EntryCount: t.EntryCount,
		ReadyCount: t.ReadyCount,
		Total:      t.Total.String(),
		ReadyTotal: t.ReadyTotal.String(),
	}
}

func toBusinessConfig(cfg *domain.BusinessConfig) BusinessConfig {
	out := BusinessConfig{
		Name:       cfg.Name(),
		FooterNote: cfg.FooterNote(),
		States:     make([]State, 0, len(cfg.States())),
	}
	if logo := cfg.Logo(); logo != nil {
		url := logo.DataURL()
		out.Logo = &url
	}
	for _, s := range cfg.States() {
		out.States = append(out.States, State{Name: s.Name, Color: s.Color})
	}
	return out
}

func toWorkflow(summary domain.WorkflowSummary, records []domain.EntryRecord, cfg *domain.BusinessConfig) Workflow {
	out := Workflow{
		All:     summary.All,
		States:  make([]StateCount, 0, len(summary.States)),
		Entries: make([]WorkflowEntry, 0, len(records)),
	}
	for _, c := range summary.States {
		out.States = append(out.States, StateCount{State: c.State, Color: c.Color, Count: c.Count})
	}
	for _, rec := range records {
		out.Entries = append(out.Entries, WorkflowEntry{
			Entry:       toEntry(rec.Entry, cfg),
			ProductID:   rec.ProductID,
			ProductName: rec.ProductName,
		})
	}
	return out
}

func toEvents(events []*contracts.ActivityEvent) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		out = append(out, Event{
			EventID:     e.EventID,
			EventType:   e.EventType,
			AggregateID: e.AggregateID,
			Payload:     e.Payload,
			OccurredAt:  e.OccurredAt.Format(time.RFC3339Nano),
		})
	}
	return out
}
