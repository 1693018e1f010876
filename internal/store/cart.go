// Package store contains the client-side application state layer: one store
// per domain slice, each owning a single in-memory snapshot and exposing
// derived values recomputed from that snapshot on every read.
package store

import (
	"context"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/entity"
)

// CartStore keeps the cart snapshot consistent with the backend while
// supporting local optimistic quantity edits.
//
// Asynchronous operations record failures as a one-shot error message and
// publish a banner alert; the previous snapshot is left untouched
// (stale-but-available). There are no automatic retries.
type CartStore interface {
	// LoadCart fetches the server-side cart and replaces the local snapshot
	// entirely. An authoritative refresh, not a merge.
	LoadCart(ctx context.Context) error

	// AddItem sends the create request. On success it publishes a success
	// alert but deliberately does NOT append to the local snapshot; callers
	// re-sync with LoadCart. Eventual consistency, one extra round trip.
	AddItem(ctx context.Context, productID string, quantity int) error

	// IncrementQuantity bumps the matching item's quantity locally.
	// No network call.
	IncrementQuantity(id string)

	// DecrementQuantity lowers the matching item's quantity locally.
	// Quantity never goes below 1; decrementing at 1 is a no-op.
	DecrementQuantity(id string)

	// UpdateQuantity sets the matching item's quantity locally. Values
	// below 1 are rejected silently.
	UpdateQuantity(id string, qty int)

	// RemoveItem sends the delete request and, on success, drops the item
	// from the snapshot by identity match.
	RemoveItem(ctx context.Context, id string) error

	// ClearCart sends the bulk delete and, on success, empties the snapshot.
	ClearCart(ctx context.Context) error

	// Items returns a copy of the current snapshot.
	Items() []entity.CartItem

	// Derived values, always consistent with the current snapshot.
	TotalItems() int
	Subtotal() decimal.Decimal
	Tax() decimal.Decimal
	Shipping() decimal.Decimal
	GrandTotal() decimal.Decimal
	IsEmpty() bool
	HasItems() bool

	// Busy reports whether an asynchronous cart operation is in flight.
	Busy() bool

	// ConsumeError returns the recorded error message and clears it
	// (one-shot display semantics). Empty when no error is pending.
	ConsumeError() string

	// Reset restores the initial empty state.
	Reset()
}
