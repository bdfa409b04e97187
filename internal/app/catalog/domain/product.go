package domain

import (
	"strings"
	"time"
)

// Product is a tracked product with its tally count and customer entries.
type Product struct {
	id      int64
	name    string
	count   int
	note    string
	price   *Money
	photo   *Image
	entries []*CustomerEntry
}

// NewProduct creates a new Product with count 0, empty note, no entries and
// no photo. Name uniqueness is checked by the Registry, not here.
func NewProduct(id int64, name string, price *Money) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if price == nil || price.IsNegative() {
		return nil, ErrInvalidPrice
	}

	return &Product{
		id:      id,
		name:    name,
		price:   price.Copy(),
		entries: make([]*CustomerEntry, 0),
	}, nil
}

// ReconstructProduct reconstitutes a Product from storage.
func ReconstructProduct(
	id int64,
	name string,
	count int,
	note string,
	price *Money,
	photo *Image,
	entries []*CustomerEntry,
) *Product {
	if price == nil {
		price = Zero()
	}
	if entries == nil {
		entries = make([]*CustomerEntry, 0)
	}
	return &Product{
		id:      id,
		name:    name,
		count:   max(0, count),
		note:    note,
		price:   price,
		photo:   photo,
		entries: entries,
	}
}

// Getters
func (p *Product) ID() int64     { return p.id }
func (p *Product) Name() string  { return p.name }
func (p *Product) Count() int    { return p.count }
func (p *Product) Note() string  { return p.note }
func (p *Product) Price() *Money { return p.price.Copy() }
func (p *Product) Photo() *Image { return p.photo }

// Entries returns the customer entries in insertion order.
func (p *Product) Entries() []*CustomerEntry {
	out := make([]*CustomerEntry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Entry returns the entry with entryID, or nil.
func (p *Product) Entry(entryID int64) *CustomerEntry {
	_, e := p.findEntry(entryID)
	return e
}

// Clone returns a deep copy, used when a product crosses collections.
func (p *Product) Clone() *Product {
	c := *p
	c.price = p.price.Copy()
	c.entries = make([]*CustomerEntry, len(p.entries))
	for i, e := range p.entries {
		c.entries[i] = e.clone()
	}
	return &c
}

func (p *Product) findEntry(entryID int64) (int, *CustomerEntry) {
	for i, e := range p.entries {
		if e.id == entryID {
			return i, e
		}
	}
	return -1, nil
}

// matchesSearch reports whether term (already lower-cased) occurs in the
// name, note or any entry's data.
func (p *Product) matchesSearch(term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.name), term) || strings.Contains(strings.ToLower(p.note), term) {
		return true
	}
	for _, e := range p.entries {
		if strings.Contains(strings.ToLower(e.data), term) {
			return true
		}
	}
	return false
}

func (p *Product) event(eventType string, now time.Time) *ProductEvent {
	return &ProductEvent{Type: eventType, ProductID: p.id, Name: p.name, OccurredAt: now}
}
