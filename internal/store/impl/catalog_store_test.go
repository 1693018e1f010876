package impl

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/infra/localstore"
	"storefront/internal/store"
)

func createTestCatalogStore(t *testing.T) (store.CatalogStore, *fakeCatalogGateway, *fakeAlerts, service.SnapshotStorage) {
	t.Helper()

	storage := localstore.NewWithBucket(context.Background(), openTestBucket(t), testLogger())

	return createTestCatalogStoreWith(t, storage)
}

func createTestCatalogStoreWith(t *testing.T, storage service.SnapshotStorage) (store.CatalogStore, *fakeCatalogGateway, *fakeAlerts, service.SnapshotStorage) {
	t.Helper()

	catalogGW := &fakeCatalogGateway{}
	alerts := &fakeAlerts{}
	fx := NewCatalogStore(CatalogStoreParams{
		CatalogGateway: catalogGW,
		Storage:        storage,
		Alerts:         alerts,
		Logger:         testLogger(),
	})

	return fx, catalogGW, alerts, storage
}

func sampleCatalog() entity.Catalog {
	return entity.Catalog{
		"watches": {
			{ID: "w1", Name: "Field Watch", Price: decimal.NewFromInt(120)},
			{ID: "w2", Name: "Diver", Price: decimal.NewFromInt(240)},
		},
		"cameras": {
			{ID: "c1", Name: "Rangefinder", Price: decimal.NewFromInt(900)},
		},
	}
}

func TestCatalogStore_LoadCatalog_FetchesAndCaches(t *testing.T) {
	fx, catalogGW, _, storage := createTestCatalogStore(t)

	catalogGW.fetchFn = func(context.Context) (entity.Catalog, error) {
		return sampleCatalog(), nil
	}

	require.NoError(t, fx.LoadCatalog(context.Background()))

	assert.Len(t, fx.Products("watches"), 2)
	assert.Equal(t, 1, catalogGW.calls())

	var cached entity.Catalog
	require.NoError(t, storage.Load("prodList", &cached))
	assert.Len(t, cached["cameras"], 1)
}

func TestCatalogStore_LoadCatalog_MemoryShortCircuits(t *testing.T) {
	fx, catalogGW, _, _ := createTestCatalogStore(t)

	catalogGW.fetchFn = func(context.Context) (entity.Catalog, error) {
		return sampleCatalog(), nil
	}

	require.NoError(t, fx.LoadCatalog(context.Background()))
	require.NoError(t, fx.LoadCatalog(context.Background()))

	assert.Equal(t, 1, catalogGW.calls(), "an already loaded catalog must not refetch")
}

func TestCatalogStore_LoadCatalog_ServesDurableCache(t *testing.T) {
	storage := localstore.NewWithBucket(context.Background(), openTestBucket(t), testLogger())

	first, firstGW, _, _ := createTestCatalogStoreWith(t, storage)
	firstGW.fetchFn = func(context.Context) (entity.Catalog, error) {
		return sampleCatalog(), nil
	}
	require.NoError(t, first.LoadCatalog(context.Background()))

	// A fresh store over the same storage serves the cache without a fetch.
	second, secondGW, _, _ := createTestCatalogStoreWith(t, storage)
	require.NoError(t, second.LoadCatalog(context.Background()))

	assert.Zero(t, secondGW.calls())
	assert.Len(t, second.Products("watches"), 2)
}

func TestCatalogStore_LoadCatalog_Failure(t *testing.T) {
	fx, catalogGW, alerts, _ := createTestCatalogStore(t)

	catalogGW.fetchFn = func(context.Context) (entity.Catalog, error) {
		return nil, domainerrors.ErrServer
	}

	err := fx.LoadCatalog(context.Background())
	require.Error(t, err)

	assert.Empty(t, fx.Catalog())
	assert.Contains(t, alerts.messages(), "Internal server error. Please try again later.")
	assert.Equal(t, "Internal server error. Please try again later.", fx.ConsumeError())
	assert.Empty(t, fx.ConsumeError())
}

func TestCatalogStore_Products_UnknownCategory(t *testing.T) {
	fx, _, _, _ := createTestCatalogStore(t)

	assert.Empty(t, fx.Products("does-not-exist"))
}

func TestCatalogStore_SnapshotsAreCopies(t *testing.T) {
	fx, catalogGW, _, _ := createTestCatalogStore(t)

	catalogGW.fetchFn = func(context.Context) (entity.Catalog, error) {
		return sampleCatalog(), nil
	}
	require.NoError(t, fx.LoadCatalog(context.Background()))

	products := fx.Products("watches")
	products[0].Name = "mutated"

	assert.Equal(t, "Field Watch", fx.Products("watches")[0].Name)
}
