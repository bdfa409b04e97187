package domain

import "time"

// Archive is the in-memory copy of the archived product collection.
type Archive struct {
	eventRecorder
	products []*Product
}

// NewArchive wraps a loaded collection.
func NewArchive(products []*Product) *Archive {
	if products == nil {
		products = make([]*Product, 0)
	}
	return &Archive{products: products}
}

// Products returns the archived products in archive order.
func (a *Archive) Products() []*Product {
	out := make([]*Product, len(a.products))
	copy(out, a.products)
	return out
}

// Len returns the number of archived products.
func (a *Archive) Len() int { return len(a.products) }

// Find returns the archived product with id, or nil.
func (a *Archive) Find(id int64) *Product {
	_, p := a.find(id)
	return p
}

// Search matches term against name, note and any entry's data.
func (a *Archive) Search(term string) []*Product {
	return searchProducts(a.products, term)
}

// Restore moves the product back to the end of the active registry.
// It appends without merging: if the registry already holds a product with
// the same id or name, both copies are kept.
func (a *Archive) Restore(id int64, registry *Registry, now time.Time) bool {
	p := a.take(id)
	if p == nil {
		return false
	}
	registry.products = append(registry.products, p)
	a.recordEvent(p.event(EventProductRestored, now))
	return true
}

// Purge deletes an archived product permanently.
func (a *Archive) Purge(id int64, now time.Time) bool {
	p := a.take(id)
	if p == nil {
		return false
	}
	a.recordEvent(p.event(EventProductPurged, now))
	return true
}

func (a *Archive) find(id int64) (int, *Product) {
	for i, p := range a.products {
		if p.id == id {
			return i, p
		}
	}
	return -1, nil
}

func (a *Archive) take(id int64) *Product {
	i, p := a.find(id)
	if p == nil {
		return nil
	}
	a.products = append(a.products[:i:i], a.products[i+1:]...)
	return p
}
