package repo

import (
	"context"
	"fmt"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/contracts"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
	"github.com/light-bringer/ordertally-service/internal/models/m_business"
	"github.com/light-bringer/ordertally-service/internal/pkg/kvstore"
)

// BusinessConfigRepo implements BusinessConfigRepository over the kv store.
type BusinessConfigRepo struct {
	store kvstore.Store
	model *m_business.Model
}

// NewBusinessConfigRepo creates a new BusinessConfigRepo.
func NewBusinessConfigRepo(store kvstore.Store) contracts.BusinessConfigRepository {
	return &BusinessConfigRepo{
		store: store,
		model: m_business.NewModel(),
	}
}

// Load returns the stored configuration or the defaults.
func (r *BusinessConfigRepo) Load(ctx context.Context) (*domain.BusinessConfig, int64, error) {
	entry, err := kvstore.GetOrEmpty(ctx, r.store, m_business.Key)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: failed to read business config: %w", domain.ErrStorage, err)
	}

	data, found, err := r.model.Decode(entry.Value)
	if err != nil {
		return nil, 0, err
	}
	if !found {
		return domain.DefaultBusinessConfig(), entry.Version, nil
	}
	return businessToDomain(&data), entry.Version, nil
}

// SaveOp builds the op replacing the configuration document.
func (r *BusinessConfigRepo) SaveOp(cfg *domain.BusinessConfig, version int64) (kvstore.Op, error) {
	data := m_business.Data{
		Name:       cfg.Name(),
		FooterNote: cfg.FooterNote(),
		States:     make([]m_business.StateData, 0, len(cfg.States())),
	}
	if logo := cfg.Logo(); logo != nil {
		url := logo.DataURL()
		data.Logo = &url
	}
	for _, s := range cfg.States() {
		data.States = append(data.States, m_business.StateData{Name: s.Name, Color: s.Color})
	}
	return r.model.SetOp(data, version)
}

func businessToDomain(data *m_business.Data) *domain.BusinessConfig {
	var logo *domain.Image
	if data.Logo != nil && *data.Logo != "" {
		logo = domain.ReconstructImage(*data.Logo)
	}

	// A document saved without a palette falls back to the default one.
	var states []domain.WorkflowState
	if data.States == nil {
		states = domain.DefaultStates()
	} else {
		states = make([]domain.WorkflowState, 0, len(data.States))
		for _, s := range data.States {
			states = append(states, domain.WorkflowState{Name: s.Name, Color: s.Color})
		}
	}

	return domain.ReconstructBusinessConfig(data.Name, data.FooterNote, logo, states)
}
