package domain

import (
	"strings"
	"time"
)

// Registry is the in-memory copy of the active product collection.
// Mutations of unknown ids are silent no-ops and report false.
type Registry struct {
	eventRecorder
	products []*Product
}

// NewRegistry wraps a loaded collection.
func NewRegistry(products []*Product) *Registry {
	if products == nil {
		products = make([]*Product, 0)
	}
	return &Registry{products: products}
}

// Products returns the active products in insertion order.
func (r *Registry) Products() []*Product {
	out := make([]*Product, len(r.products))
	copy(out, r.products)
	return out
}

// Len returns the number of active products.
func (r *Registry) Len() int { return len(r.products) }

// Find returns the product with id, or nil.
func (r *Registry) Find(id int64) *Product {
	_, p := r.find(id)
	return p
}

// Search returns products whose name, note or entry data contains term,
// case-insensitively. An empty term returns everything.
func (r *Registry) Search(term string) []*Product {
	return searchProducts(r.products, term)
}

// Add validates and appends a new product. Names must be unique among
// active products, compared case-insensitively.
func (r *Registry) Add(id int64, name string, price *Money, now time.Time) (*Product, error) {
	p, err := NewProduct(id, name, price)
	if err != nil {
		return nil, err
	}
	for _, existing := range r.products {
		if strings.EqualFold(existing.name, p.name) {
			return nil, ErrDuplicateName
		}
	}

	r.products = append(r.products, p)
	r.recordEvent(p.event(EventProductCreated, now))
	return p, nil
}

// UpdateCount sets the count, clamped at zero.
func (r *Registry) UpdateCount(id int64, count int, now time.Time) bool {
	_, p := r.find(id)
	if p == nil {
		return false
	}
	p.count = max(0, count)

	ev := p.event(EventProductCountChanged, now)
	c := p.count
	ev.Count = &c
	r.recordEvent(ev)
	return true
}

// AdjustCount adds delta to the current count, clamped at zero.
func (r *Registry) AdjustCount(id int64, delta int, now time.Time) bool {
	_, p := r.find(id)
	if p == nil {
		return false
	}
	return r.UpdateCount(id, p.count+delta, now)
}

// UpdateNote stores note verbatim.
func (r *Registry) UpdateNote(id int64, note string, now time.Time) bool {
	_, p := r.find(id)
	if p == nil {
		return false
	}
	p.note = note

	ev := p.event(EventProductNoteChanged, now)
	ev.Note = &note
	r.recordEvent(ev)
	return true
}

// SetPhoto replaces the photo; a nil image clears it.
func (r *Registry) SetPhoto(id int64, photo *Image, now time.Time) bool {
	_, p := r.find(id)
	if p == nil {
		return false
	}
	p.photo = photo
	r.recordEvent(p.event(EventProductPhotoChanged, now))
	return true
}

// Delete removes a product permanently from the active collection.
func (r *Registry) Delete(id int64, now time.Time) bool {
	p := r.take(id)
	if p == nil {
		return false
	}
	r.recordEvent(p.event(EventProductDeleted, now))
	return true
}

// Archive moves the product, entries intact, to the end of archive.
func (r *Registry) Archive(id int64, archive *Archive, now time.Time) bool {
	p := r.take(id)
	if p == nil {
		return false
	}
	archive.products = append(archive.products, p)
	r.recordEvent(p.event(EventProductArchived, now))
	return true
}

func (r *Registry) find(id int64) (int, *Product) {
	for i, p := range r.products {
		if p.id == id {
			return i, p
		}
	}
	return -1, nil
}

func (r *Registry) take(id int64) *Product {
	i, p := r.find(id)
	if p == nil {
		return nil
	}
	r.products = append(r.products[:i:i], r.products[i+1:]...)
	return p
}

func searchProducts(products []*Product, term string) []*Product {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]*Product, 0, len(products))
	for _, p := range products {
		if p.matchesSearch(term) {
			out = append(out, p)
		}
	}
	return out
}
