package domain

import (
	"strings"
	"time"
)

// Ledger manages the customer entries of one product against the workflow
// states of the business configuration.
type Ledger struct {
	eventRecorder
	product *Product
	config  *BusinessConfig
}

// NewLedger binds a product to the configuration used for state checks.
func NewLedger(product *Product, config *BusinessConfig) *Ledger {
	return &Ledger{product: product, config: config}
}

// Product returns the product the ledger operates on.
func (l *Ledger) Product() *Product { return l.product }

// AddEntry appends a new entry in the first configured state.
func (l *Ledger) AddEntry(id int64, data string, now time.Time) (*CustomerEntry, error) {
	if strings.TrimSpace(data) == "" {
		return nil, ErrEmptyEntryData
	}
	state, err := l.config.DefaultState()
	if err != nil {
		return nil, err
	}

	entry, err := NewCustomerEntry(id, data, state, now)
	if err != nil {
		return nil, err
	}
	l.product.entries = append(l.product.entries, entry)
	l.recordEvent(l.event(EventEntryAdded, entry, now))
	return entry, nil
}

// UpdateEntry overwrites an entry's data. Returns false for unknown ids.
func (l *Ledger) UpdateEntry(entryID int64, data string, now time.Time) (bool, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return false, ErrEmptyEntryData
	}
	_, entry := l.product.findEntry(entryID)
	if entry == nil {
		return false, nil
	}

	entry.data = data
	l.recordEvent(l.event(EventEntryUpdated, entry, now))
	return true, nil
}

// DeleteEntry removes an entry. Returns false for unknown ids.
func (l *Ledger) DeleteEntry(entryID int64, now time.Time) bool {
	i, entry := l.product.findEntry(entryID)
	if entry == nil {
		return false
	}

	l.product.entries = append(l.product.entries[:i:i], l.product.entries[i+1:]...)
	l.recordEvent(l.event(EventEntryDeleted, entry, now))
	return true
}

// SetState moves an entry to a configured workflow state. Readiness follows
// from the state.
func (l *Ledger) SetState(entryID int64, state string, now time.Time) (bool, error) {
	if !l.config.HasState(state) {
		return false, ErrUnknownState
	}
	_, entry := l.product.findEntry(entryID)
	if entry == nil {
		return false, nil
	}

	entry.state = state
	l.recordEvent(l.event(EventEntryStateChanged, entry, now))
	return true, nil
}

// ToggleReady flips readiness: a ready entry goes back to the first
// configured state, anything else becomes ReadyState.
func (l *Ledger) ToggleReady(entryID int64, now time.Time) (bool, error) {
	_, entry := l.product.findEntry(entryID)
	if entry == nil {
		return false, nil
	}

	next := ReadyState
	if entry.IsReady() {
		first, err := l.config.DefaultState()
		if err != nil {
			return false, err
		}
		next = first
	}

	entry.state = next
	l.recordEvent(l.event(EventEntryStateChanged, entry, now))
	return true, nil
}

// EntryText returns the data of an entry, for copying to the clipboard.
func (l *Ledger) EntryText(entryID int64) (string, bool) {
	_, entry := l.product.findEntry(entryID)
	if entry == nil {
		return "", false
	}
	return entry.data, true
}

// Filter returns the entries matching f, in insertion order.
func (l *Ledger) Filter(f EntryFilter) []*CustomerEntry {
	return f.Apply(l.product.entries)
}

// Totals computes the order value of the product.
func (l *Ledger) Totals() Totals {
	return ComputeTotals(l.product)
}

func (l *Ledger) event(eventType string, entry *CustomerEntry, now time.Time) *EntryEvent {
	return &EntryEvent{
		Type:       eventType,
		ProductID:  l.product.id,
		EntryID:    entry.id,
		State:      entry.state,
		OccurredAt: now,
	}
}

// Totals is the money owed for a product's entries.
type Totals struct {
	EntryCount int
	ReadyCount int
	Total      *Money
	ReadyTotal *Money
}

// ComputeTotals returns price x entries and price x ready entries. Both are
// zero when the product has no price or no entries.
func ComputeTotals(p *Product) Totals {
	ready := 0
	for _, e := range p.entries {
		if e.IsReady() {
			ready++
		}
	}
	return Totals{
		EntryCount: len(p.entries),
		ReadyCount: ready,
		Total:      p.price.Times(len(p.entries)),
		ReadyTotal: p.price.Times(ready),
	}
}
