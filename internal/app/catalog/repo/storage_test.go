package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
	"github.com/light-bringer/ordertally-service/internal/pkg/kvstore"
)

var errDown = errors.New("connection refused")

// unreachableStore fails every call the way a lost database connection does.
type unreachableStore struct{}

func (unreachableStore) Get(context.Context, string) (kvstore.Entry, error) {
	return kvstore.Entry{}, errDown
}
func (unreachableStore) List(context.Context, string) ([]kvstore.Entry, error) { return nil, errDown }
func (unreachableStore) Apply(context.Context, []kvstore.Op) error             { return errDown }
func (unreachableStore) Driver() kvstore.Driver                                { return kvstore.DriverMemory }
func (unreachableStore) Close() error                                          { return nil }

func TestRepos_StoreFailuresAreStorageErrors(t *testing.T) {
	ctx := context.Background()
	store := unreachableStore{}

	_, _, err := NewBusinessConfigRepo(store).Load(ctx)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, errDown)

	_, _, err = NewProductRepo(store).LoadActive(ctx, domain.DefaultBusinessConfig())
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, errDown)

	_, _, err = NewProductRepo(store).LoadArchive(ctx, domain.DefaultBusinessConfig())
	assert.ErrorIs(t, err, domain.ErrStorage)

	activity := NewActivityRepo(store)
	_, err = activity.ListEvents(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrStorage)
	_, err = activity.DeleteBeforeOps(ctx, time.Now())
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestRepos_MissingKeyIsNotAStorageError(t *testing.T) {
	_, _, err := NewProductRepo(kvstore.NewMemory()).LoadActive(context.Background(), domain.DefaultBusinessConfig())
	assert.NoError(t, err)
}
