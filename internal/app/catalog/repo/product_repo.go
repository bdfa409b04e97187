package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/contracts"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
	"github.com/light-bringer/ordertally-service/internal/models/m_product"
	"github.com/light-bringer/ordertally-service/internal/pkg/kvstore"
)

// ProductRepo implements ProductRepository over the kv store.
type ProductRepo struct {
	store kvstore.Store
	model *m_product.Model
}

// NewProductRepo creates a new ProductRepo.
func NewProductRepo(store kvstore.Store) contracts.ProductRepository {
	return &ProductRepo{
		store: store,
		model: m_product.NewModel(),
	}
}

// LoadActive reads the active collection.
func (r *ProductRepo) LoadActive(ctx context.Context, cfg *domain.BusinessConfig) (*domain.Registry, int64, error) {
	products, version, err := r.load(ctx, m_product.ActiveKey, cfg)
	if err != nil {
		return nil, 0, err
	}
	return domain.NewRegistry(products), version, nil
}

// LoadArchive reads the archived collection.
func (r *ProductRepo) LoadArchive(ctx context.Context, cfg *domain.BusinessConfig) (*domain.Archive, int64, error) {
	products, version, err := r.load(ctx, m_product.ArchivedKey, cfg)
	if err != nil {
		return nil, 0, err
	}
	return domain.NewArchive(products), version, nil
}

// SaveActiveOp builds the op replacing the active collection.
func (r *ProductRepo) SaveActiveOp(registry *domain.Registry, version int64) (kvstore.Op, error) {
	return r.model.SetOp(m_product.ActiveKey, productsToData(registry.Products()), version)
}

// SaveArchiveOp builds the op replacing the archived collection.
func (r *ProductRepo) SaveArchiveOp(archive *domain.Archive, version int64) (kvstore.Op, error) {
	return r.model.SetOp(m_product.ArchivedKey, productsToData(archive.Products()), version)
}

func (r *ProductRepo) load(ctx context.Context, key string, cfg *domain.BusinessConfig) ([]*domain.Product, int64, error) {
	entry, err := kvstore.GetOrEmpty(ctx, r.store, key)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: failed to read %s: %w", domain.ErrStorage, key, err)
	}

	items, err := r.model.Decode(entry.Value)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}

	// Empty when no states are configured; such entries keep an empty state.
	fallback, _ := cfg.DefaultState()

	products := make([]*domain.Product, 0, len(items))
	for i := range items {
		p, err := dataToDomain(&items[i], fallback)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to parse %s[%d]: %w", key, i, err)
		}
		products = append(products, p)
	}
	return products, entry.Version, nil
}

// dataToDomain converts stored Data to a domain Product, reconciling the
// legacy isReady flag with the state.
func dataToDomain(data *m_product.Data, fallbackState string) (*domain.Product, error) {
	price := domain.Zero()
	if data.Price != "" {
		p, err := domain.ParseMoney(data.Price.String())
		if err != nil {
			return nil, fmt.Errorf("invalid price: %w", err)
		}
		price = p
	}

	var photo *domain.Image
	if data.Photo != nil && *data.Photo != "" {
		photo = domain.ReconstructImage(*data.Photo)
	}

	entries := make([]*domain.CustomerEntry, 0, len(data.CustomerEntries))
	for _, e := range data.CustomerEntries {
		state, changed := domain.NormalizeStoredState(e.State, e.IsReady, fallbackState)
		if changed {
			log.Printf("product %d entry %d: stored state %q / isReady=%t normalized to %q",
				data.ID, e.ID, e.State, e.IsReady, state)
		}
		entries = append(entries, domain.ReconstructCustomerEntry(e.ID, e.Data, state, e.CreatedAt))
	}

	return domain.ReconstructProduct(
		data.ID,
		data.Name,
		data.Count,
		data.Note,
		price,
		photo,
		entries,
	), nil
}

func productsToData(products []*domain.Product) []m_product.Data {
	out := make([]m_product.Data, 0, len(products))
	for _, p := range products {
		out = append(out, domainToData(p))
	}
	return out
}

// domainToData converts a domain Product to its stored form.
func domainToData(p *domain.Product) m_product.Data {
	data := m_product.Data{
		ID:              p.ID(),
		Name:            p.Name(),
		Count:           p.Count(),
		Note:            p.Note(),
		Price:           json.Number(p.Price().Decimal()),
		CustomerEntries: make([]m_product.EntryData, 0, len(p.Entries())),
	}
	if photo := p.Photo(); photo != nil {
		url := photo.DataURL()
		data.Photo = &url
	}
	for _, e := range p.Entries() {
		data.CustomerEntries = append(data.CustomerEntries, m_product.EntryData{
			ID:        e.ID(),
			Data:      e.Data(),
			State:     e.State(),
			IsReady:   e.IsReady(),
			CreatedAt: e.CreatedAt(),
		})
	}
	return data
}
