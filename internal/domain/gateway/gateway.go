// Package gateway defines the contracts for the REST data access layer.
// The stores depend on these interfaces, never on the HTTP client directly.
package gateway

import (
	"context"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/entity"
)

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// OrderRequest is the checkout payload sent to the orders endpoint.
type OrderRequest struct {
	Items           []entity.OrderLine     `json:"items"`
	Total           decimal.Decimal        `json:"total"`
	ShippingAddress entity.ShippingAddress `json:"shippingAddress"`
	UserEmail       string                 `json:"userEmail"`
}

// AuthGateway covers the /auth endpoints.
type AuthGateway interface {
	// Login authenticates with email and password and returns the session.
	Login(ctx context.Context, email, password string) (*entity.Session, error)

	// Register creates an account and returns the session, same shape as Login.
	Register(ctx context.Context, req RegisterRequest) (*entity.Session, error)

	// ChangePassword rotates the credential and returns the partial user
	// fields the backend chose to refresh. May be nil on an empty body.
	ChangePassword(ctx context.Context, password string) (*entity.User, error)
}

// CartGateway covers the /cart endpoints. FetchCart returns cart lines
// already normalized into the flat CartItem shape.
type CartGateway interface {
	// FetchCart lists the current user's cart lines.
	FetchCart(ctx context.Context) ([]entity.CartItem, error)

	// AddItem creates a new cart line for the product.
	AddItem(ctx context.Context, productID string, quantity int) error

	// RemoveItem deletes a single cart line by its identity.
	RemoveItem(ctx context.Context, id string) error

	// Clear deletes every cart line.
	Clear(ctx context.Context) error
}

// CatalogGateway covers the /products endpoint.
type CatalogGateway interface {
	// FetchCatalog returns the full catalog keyed by category, with
	// placeholder ids assigned to products the server left without one.
	FetchCatalog(ctx context.Context) (entity.Catalog, error)
}

// OrderGateway covers the /orders endpoints.
type OrderGateway interface {
	// PlaceOrder submits the checkout payload and returns the confirmation.
	PlaceOrder(ctx context.Context, req OrderRequest) (*entity.Order, error)

	// FetchOrders lists the user's past orders.
	FetchOrders(ctx context.Context) ([]entity.Order, error)
}
