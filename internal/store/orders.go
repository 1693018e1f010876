package store

import (
	"context"

	"storefront/internal/domain/entity"
)

// ShippingAddressInput is the checkout address form. Validation mirrors the
// storefront's form rules; failures are local preconditions detected before
// any request is issued.
type ShippingAddressInput struct {
	FullName     string `validate:"required,min=3"`
	Email        string `validate:"required,email"`
	Phone        string `validate:"required,numeric,len=10"`
	AddressLine1 string `validate:"required,min=5"`
	AddressLine2 string
	City         string `validate:"required,min=2"`
	State        string `validate:"required,min=2"`
	ZipCode      string `validate:"required,numeric,min=5,max=6"`
	Country      string `validate:"required"`
}

// PlaceOrderInput carries everything checkout needs beyond the cart itself.
type PlaceOrderInput struct {
	Address ShippingAddressInput
}

// OrderConfirmation is the checkout result handed back to the view.
type OrderConfirmation struct {
	Order  entity.Order
	Number string
}

// OrderStore performs checkout and keeps the order history snapshot. Orders
// are read-only from the client's perspective: never mutated locally, only
// re-fetched.
type OrderStore interface {
	// LoadOrders fetches the user's past orders and replaces the snapshot.
	LoadOrders(ctx context.Context) error

	// PlaceOrder validates local preconditions (non-empty cart, complete
	// address), submits the order, and on success clears the cart and
	// publishes a success alert.
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*OrderConfirmation, error)

	// Orders returns a copy of the order history snapshot.
	Orders() []entity.Order

	// OrderByID looks one order up by identity.
	OrderByID(id string) (entity.Order, bool)

	// ConsumeError returns the recorded error message and clears it.
	ConsumeError() string
}
