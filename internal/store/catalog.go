package store

import (
	"context"

	"storefront/internal/domain/entity"
)

// CatalogStore holds the read-only product catalog: fetched once, cached in
// durable storage, and served from memory thereafter. The cache is purged
// on logout.
type CatalogStore interface {
	// LoadCatalog populates the snapshot: from memory when already loaded,
	// else from the durable cache, else from the backend (caching the
	// result).
	LoadCatalog(ctx context.Context) error

	// Catalog returns the current snapshot.
	Catalog() entity.Catalog

	// Products returns the ordered product sequence of one category.
	Products(category string) []entity.Product

	// ConsumeError returns the recorded error message and clears it.
	ConsumeError() string
}
