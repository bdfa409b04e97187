package contracts

import (
	"context"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
	"github.com/light-bringer/ordertally-service/internal/pkg/kvstore"
)

// ProductRepository persists the active and archived product collections.
// Each collection is read and written whole. Loads return the store version
// the collection was read at; save ops are pinned to it (Golden Mutation
// Pattern: repositories build ops, the committer applies them).
type ProductRepository interface {
	// LoadActive reads the active collection. cfg supplies the fallback
	// state for entries stored without one.
	LoadActive(ctx context.Context, cfg *domain.BusinessConfig) (*domain.Registry, int64, error)

	// LoadArchive reads the archived collection.
	LoadArchive(ctx context.Context, cfg *domain.BusinessConfig) (*domain.Archive, int64, error)

	// SaveActiveOp builds the op replacing the active collection.
	SaveActiveOp(registry *domain.Registry, version int64) (kvstore.Op, error)

	// SaveArchiveOp builds the op replacing the archived collection.
	SaveArchiveOp(archive *domain.Archive, version int64) (kvstore.Op, error)
}
