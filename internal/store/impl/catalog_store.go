package impl

import (
	"context"
	"log/slog"
	"sync"

	"go.uber.org/fx"

	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/gateway"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/store"
)

// catalogStore implements the CatalogStore interface. The catalog is
// fetch-once data: memory first, then the durable cache, then the backend.
// Logout purges the durable cache, so the next login starts fresh.
type catalogStore struct {
	catalogGateway gateway.CatalogGateway
	storage        service.SnapshotStorage
	alerts         service.AlertPublisher
	logger         *slog.Logger

	mu      sync.RWMutex
	catalog entity.Catalog
	errMsg  string
}

// CatalogStoreParams holds dependencies for the catalog store, injected by Fx.
type CatalogStoreParams struct {
	fx.In

	CatalogGateway gateway.CatalogGateway
	Storage        service.SnapshotStorage
	Alerts         service.AlertPublisher
	Logger         *slog.Logger
}

// NewCatalogStore is the constructor for catalogStore.
func NewCatalogStore(params CatalogStoreParams) store.CatalogStore {
	return &catalogStore{
		catalogGateway: params.CatalogGateway,
		storage:        params.Storage,
		alerts:         params.Alerts,
		logger:         params.Logger,
	}
}

// LoadCatalog populates the snapshot, preferring the cheapest source that
// has it.
func (srv *catalogStore) LoadCatalog(ctx context.Context) error {
	srv.mu.RLock()
	loaded := len(srv.catalog) > 0
	srv.mu.RUnlock()

	if loaded {
		return nil
	}

	var cached entity.Catalog
	err := srv.storage.Load(constants.StorageKeyCatalog, &cached)
	if err == nil && len(cached) > 0 {
		srv.logger.Debug("Serving catalog from durable cache")
		srv.install(cached)

		return nil
	}
	if err != nil && !errors.Is(err, service.ErrKeyNotFound) {
		srv.logger.Warn("Discarding unreadable catalog cache", slog.Any("error", err))
	}

	srv.logger.Debug("Fetching catalog")

	catalog, err := srv.catalogGateway.FetchCatalog(ctx)
	if err != nil {
		msg := userMessage(err, "Failed to load products")

		srv.mu.Lock()
		srv.errMsg = msg
		srv.mu.Unlock()

		srv.logger.Error("Failed to load catalog", slog.Any("error", err))
		srv.alerts.Danger(msg)

		return errors.Wrap(err, "failed to load catalog")
	}

	if err := srv.storage.Save(constants.StorageKeyCatalog, catalog); err != nil {
		srv.logger.Warn("Failed to cache catalog", slog.Any("error", err))
	}
	srv.install(catalog)

	return nil
}

func (srv *catalogStore) install(catalog entity.Catalog) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	srv.catalog = catalog
	srv.errMsg = ""
}

func (srv *catalogStore) Catalog() entity.Catalog {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	catalog := make(entity.Catalog, len(srv.catalog))
	for category, products := range srv.catalog {
		catalog[category] = append([]entity.Product(nil), products...)
	}

	return catalog
}

func (srv *catalogStore) Products(category string) []entity.Product {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	return append([]entity.Product(nil), srv.catalog[category]...)
}

func (srv *catalogStore) ConsumeError() string {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	msg := srv.errMsg
	srv.errMsg = ""

	return msg
}
