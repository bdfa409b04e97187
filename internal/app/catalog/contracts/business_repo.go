package contracts

import (
	"context"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
	"github.com/light-bringer/ordertally-service/internal/pkg/kvstore"
)

// BusinessConfigRepository persists the business configuration document.
type BusinessConfigRepository interface {
	// Load returns the stored configuration, or the defaults at version 0.
	Load(ctx context.Context) (*domain.BusinessConfig, int64, error)

	// SaveOp builds the op replacing the document.
	SaveOp(cfg *domain.BusinessConfig, version int64) (kvstore.Op, error)
}
