package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
	"github.com/light-bringer/ordertally-service/internal/models/m_business"
	"github.com/light-bringer/ordertally-service/internal/pkg/kvstore"
)

func TestBusinessConfigRepo_Defaults(t *testing.T) {
	cfg, version, err := NewBusinessConfigRepo(kvstore.NewMemory()).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), version)
	assert.Len(t, cfg.States(), 4)
	assert.Equal(t, "", cfg.Name())
}

func TestBusinessConfigRepo_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	repo := NewBusinessConfigRepo(store)

	cfg := domain.DefaultBusinessConfig()
	cfg.UpdateInfo("Rahim Traders", "See you soon", testNow)
	require.NoError(t, cfg.AddState("Returned", "#112233", testNow))
	cfg.RemoveState("Processing", testNow)

	op, err := repo.SaveOp(cfg, 0)
	require.NoError(t, err)
	require.NoError(t, store.Apply(ctx, []kvstore.Op{op}))

	loaded, version, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
	assert.Equal(t, "Rahim Traders", loaded.Name())
	assert.Equal(t, "See you soon", loaded.FooterNote())
	assert.Nil(t, loaded.Logo())

	names := make([]string, 0)
	for _, s := range loaded.States() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Pending", "Ready", "Delivered", "Returned"}, names)
}

func TestBusinessConfigRepo_StatesMissingVersusEmpty(t *testing.T) {
	ctx := context.Background()

	t.Run("missing states fall back to defaults", func(t *testing.T) {
		store := kvstore.NewMemory()
		require.NoError(t, store.Apply(ctx, []kvstore.Op{kvstore.Set(m_business.Key, `{"name":"X"}`)}))
		cfg, _, err := NewBusinessConfigRepo(store).Load(ctx)
		require.NoError(t, err)
		assert.Len(t, cfg.States(), 4)
	})

	t.Run("empty states stay empty", func(t *testing.T) {
		store := kvstore.NewMemory()
		require.NoError(t, store.Apply(ctx, []kvstore.Op{kvstore.Set(m_business.Key, `{"name":"X","states":[]}`)}))
		cfg, _, err := NewBusinessConfigRepo(store).Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, cfg.States())
		_, err = cfg.DefaultState()
		assert.ErrorIs(t, err, domain.ErrNoStatesConfigured)
	})
}
