package rest

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/gateway"
)

// catalogGateway implements gateway.CatalogGateway against /products.
type catalogGateway struct {
	client *Client
}

// NewCatalogGateway is the constructor for the catalog gateway.
func NewCatalogGateway(client *Client) gateway.CatalogGateway {
	return &catalogGateway{client: client}
}

// FetchCatalog returns the full catalog keyed by category. Products the
// server left without an identity get a locally generated placeholder id so
// view indexing stays stable.
func (g *catalogGateway) FetchCatalog(ctx context.Context) (entity.Catalog, error) {
	var catalog entity.Catalog
	if err := g.client.doJSON(ctx, http.MethodGet, "/products", nil, &catalog); err != nil {
		return nil, err
	}

	for _, products := range catalog {
		for i := range products {
			if products[i].ID == "" {
				products[i].ID = constants.PlaceholderProductIDPrefix + uuid.NewString()
			}
		}
	}

	return catalog, nil
}
