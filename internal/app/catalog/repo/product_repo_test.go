package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
	"github.com/light-bringer/ordertally-service/internal/models/m_product"
	"github.com/light-bringer/ordertally-service/internal/pkg/kvstore"
)

var testNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func TestProductRepo_EmptyCollections(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepo(kvstore.NewMemory())
	cfg := domain.DefaultBusinessConfig()

	registry, version, err := repo.LoadActive(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, registry.Len())
	assert.Equal(t, int64(0), version)

	archive, version, err := repo.LoadArchive(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, archive.Len())
	assert.Equal(t, int64(0), version)
}

func TestProductRepo_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	repo := NewProductRepo(store)
	cfg := domain.DefaultBusinessConfig()

	registry := domain.NewRegistry(nil)
	price, _ := domain.ParseMoney("12.5")
	p, err := registry.Add(1, "Mango", price, testNow)
	require.NoError(t, err)
	registry.UpdateCount(1, 3, testNow)
	registry.UpdateNote(1, "fresh", testNow)
	photo, _ := domain.NewImageFromBytes("image/png", []byte("png"))
	registry.SetPhoto(1, photo, testNow)

	ledger := domain.NewLedger(p, cfg)
	_, err = ledger.AddEntry(10, "Alice", testNow)
	require.NoError(t, err)
	_, err = ledger.SetState(10, domain.ReadyState, testNow)
	require.NoError(t, err)

	op, err := repo.SaveActiveOp(registry, 0)
	require.NoError(t, err)
	require.NoError(t, store.Apply(ctx, []kvstore.Op{op}))

	loaded, version, err := repo.LoadActive(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	got := loaded.Find(1)
	require.NotNil(t, got)
	assert.Equal(t, "Mango", got.Name())
	assert.Equal(t, 3, got.Count())
	assert.Equal(t, "fresh", got.Note())
	assert.Equal(t, "12.50", got.Price().String())
	require.NotNil(t, got.Photo())
	assert.Equal(t, photo.DataURL(), got.Photo().DataURL())
	require.Len(t, got.Entries(), 1)
	assert.Equal(t, domain.ReadyState, got.Entries()[0].State())
	assert.True(t, got.Entries()[0].IsReady())
	assert.True(t, testNow.Equal(got.Entries()[0].CreatedAt()))

	// stale version is rejected by the store
	stale, err := repo.SaveActiveOp(loaded, 0)
	require.NoError(t, err)
	assert.ErrorIs(t, store.Apply(ctx, []kvstore.Op{stale}), kvstore.ErrVersionConflict)
}

func TestProductRepo_LegacyDocument(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	repo := NewProductRepo(store)

	legacy := `[{"id":1700000000000,"name":"Old","count":-2,"price":"7","photo":null,
		"customerEntries":[
			{"id":1,"data":"a","state":"Pending","isReady":true,"createdAt":"2023-11-14T22:13:20Z"},
			{"id":2,"data":"b","isReady":true,"createdAt":"2023-11-14T22:13:20Z"},
			{"id":3,"data":"c","createdAt":"2023-11-14T22:13:20Z"}
		]}]`
	require.NoError(t, store.Apply(ctx, []kvstore.Op{kvstore.Set(m_product.ActiveKey, legacy)}))

	registry, _, err := repo.LoadActive(ctx, domain.DefaultBusinessConfig())
	require.NoError(t, err)

	p := registry.Find(1700000000000)
	require.NotNil(t, p)
	assert.Equal(t, 0, p.Count())
	assert.Equal(t, "7.00", p.Price().String())

	entries := p.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "Pending", entries[0].State())
	assert.False(t, entries[0].IsReady())
	assert.Equal(t, domain.ReadyState, entries[1].State())
	assert.Equal(t, "Pending", entries[2].State())
}

func TestProductRepo_CorruptDocument(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	require.NoError(t, store.Apply(ctx, []kvstore.Op{kvstore.Set(m_product.ArchivedKey, "{not json")}))

	_, _, err := NewProductRepo(store).LoadArchive(ctx, domain.DefaultBusinessConfig())
	assert.Error(t, err)
}
