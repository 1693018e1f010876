package impl

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/gateway"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/store"
)

var (
	// taxRate is applied to the subtotal of a non-empty cart.
	taxRate = decimal.NewFromFloat(0.18)

	// shippingFee is the flat delivery charge for a non-empty cart.
	shippingFee = decimal.NewFromInt(50)
)

// cartStore implements the CartStore interface. A single mutex serializes
// snapshot access; asynchronous completions pass a generation check before
// applying, so a result that was superseded by a newer operation is
// discarded instead of overwriting fresher state.
type cartStore struct {
	cartGateway gateway.CartGateway
	alerts      service.AlertPublisher
	logger      *slog.Logger

	mu     sync.RWMutex
	items  []entity.CartItem
	errMsg string
	busy   bool
	gen    uint64
}

// CartStoreParams holds dependencies for the cart store, injected by Fx.
type CartStoreParams struct {
	fx.In

	CartGateway gateway.CartGateway
	Alerts      service.AlertPublisher
	Logger      *slog.Logger
}

// NewCartStore is the constructor for cartStore.
func NewCartStore(params CartStoreParams) store.CartStore {
	return &cartStore{
		cartGateway: params.CartGateway,
		alerts:      params.Alerts,
		logger:      params.Logger,
	}
}

// begin opens an asynchronous operation: it advances the generation counter,
// marks the store busy, and clears any pending error.
func (srv *cartStore) begin() uint64 {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	srv.gen++
	srv.busy = true
	srv.errMsg = ""

	return srv.gen
}

// finish closes the operation identified by gen. A stale generation means a
// newer operation took over the busy flag.
func (srv *cartStore) finish(gen uint64) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if gen == srv.gen {
		srv.busy = false
	}
}

// fail records the failure and surfaces it through the alert channel. The
// snapshot is left untouched: stale-but-available beats empty. Failures of
// superseded operations are discarded silently.
func (srv *cartStore) fail(gen uint64, err error, fallback string) {
	msg := userMessage(err, fallback)

	srv.mu.Lock()
	stale := gen != srv.gen
	if !stale {
		srv.errMsg = msg
		srv.busy = false
	}
	srv.mu.Unlock()

	if stale {
		srv.logger.Debug("Discarding superseded cart failure", slog.Any("error", err))

		return
	}

	srv.logger.Error(fallback, slog.Any("error", err))
	srv.alerts.Danger(msg)
}

// LoadCart fetches the server-side cart and replaces the snapshot entirely.
func (srv *cartStore) LoadCart(ctx context.Context) error {
	gen := srv.begin()
	srv.logger.Debug("Loading cart")

	items, err := srv.cartGateway.FetchCart(ctx)
	if err != nil {
		srv.fail(gen, err, "Failed to load cart")

		return errors.Wrap(err, "failed to load cart")
	}

	srv.mu.Lock()
	if gen == srv.gen {
		srv.items = items
		srv.busy = false
	}
	srv.mu.Unlock()

	return nil
}

// AddItem sends the create request. The local snapshot is intentionally not
// patched on success: the caller re-syncs with LoadCart, keeping the server
// authoritative at the cost of one extra round trip.
func (srv *cartStore) AddItem(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	gen := srv.begin()
	srv.logger.Debug("Adding item to cart", slog.String("productID", productID), slog.Int("quantity", quantity))

	if err := srv.cartGateway.AddItem(ctx, productID, quantity); err != nil {
		srv.fail(gen, err, "Failed to add item to cart")

		return errors.Wrap(err, "failed to add item to cart")
	}

	srv.finish(gen)
	srv.alerts.Success("Item added to cart!")

	return nil
}

// RemoveItem sends the delete request and drops the matching line on success.
func (srv *cartStore) RemoveItem(ctx context.Context, id string) error {
	gen := srv.begin()
	srv.logger.Debug("Removing item from cart", slog.String("id", id))

	if err := srv.cartGateway.RemoveItem(ctx, id); err != nil {
		srv.fail(gen, err, "Failed to remove item from cart")

		return errors.Wrap(err, "failed to remove item from cart")
	}

	srv.mu.Lock()
	if gen == srv.gen {
		kept := srv.items[:0:0]
		for _, item := range srv.items {
			if item.ID != id {
				kept = append(kept, item)
			}
		}
		srv.items = kept
		srv.busy = false
	}
	srv.mu.Unlock()

	srv.alerts.Info("Removed from Cart")

	return nil
}

// ClearCart sends the bulk delete and empties the snapshot on success.
func (srv *cartStore) ClearCart(ctx context.Context) error {
	gen := srv.begin()
	srv.logger.Debug("Clearing cart")

	if err := srv.cartGateway.Clear(ctx); err != nil {
		srv.fail(gen, err, "Failed to clear cart")

		return errors.Wrap(err, "failed to clear cart")
	}

	srv.mu.Lock()
	if gen == srv.gen {
		srv.items = nil
		srv.busy = false
	}
	srv.mu.Unlock()

	return nil
}

// IncrementQuantity bumps the matching line's quantity locally.
func (srv *cartStore) IncrementQuantity(id string) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	for i := range srv.items {
		if srv.items[i].ID == id {
			srv.items[i].Qty++
			srv.items[i].RefreshTotal()

			return
		}
	}
}

// DecrementQuantity lowers the matching line's quantity locally. Quantity
// never goes below 1.
func (srv *cartStore) DecrementQuantity(id string) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	for i := range srv.items {
		if srv.items[i].ID == id {
			if srv.items[i].Qty > 1 {
				srv.items[i].Qty--
				srv.items[i].RefreshTotal()
			}

			return
		}
	}
}

// UpdateQuantity sets the matching line's quantity locally. Values below 1
// are rejected silently.
func (srv *cartStore) UpdateQuantity(id string, qty int) {
	if qty < 1 {
		return
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	for i := range srv.items {
		if srv.items[i].ID == id {
			srv.items[i].Qty = qty
			srv.items[i].RefreshTotal()

			return
		}
	}
}

func (srv *cartStore) Items() []entity.CartItem {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	items := make([]entity.CartItem, len(srv.items))
	copy(items, srv.items)

	return items
}

func (srv *cartStore) TotalItems() int {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	total := 0
	for _, item := range srv.items {
		total += item.Qty
	}

	return total
}

func (srv *cartStore) Subtotal() decimal.Decimal {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	return srv.subtotalLocked()
}

func (srv *cartStore) subtotalLocked() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range srv.items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	return subtotal
}

func (srv *cartStore) Tax() decimal.Decimal {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	return srv.subtotalLocked().Mul(taxRate)
}

// Shipping is the flat fee, waived for an empty cart.
func (srv *cartStore) Shipping() decimal.Decimal {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	if len(srv.items) == 0 {
		return decimal.Zero
	}

	return shippingFee
}

func (srv *cartStore) GrandTotal() decimal.Decimal {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	if len(srv.items) == 0 {
		return decimal.Zero
	}

	subtotal := srv.subtotalLocked()

	return subtotal.Add(subtotal.Mul(taxRate)).Add(shippingFee)
}

func (srv *cartStore) IsEmpty() bool {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	return len(srv.items) == 0
}

func (srv *cartStore) HasItems() bool {
	return !srv.IsEmpty()
}

func (srv *cartStore) Busy() bool {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	return srv.busy
}

func (srv *cartStore) ConsumeError() string {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	msg := srv.errMsg
	srv.errMsg = ""

	return msg
}

// Reset restores the initial empty state.
func (srv *cartStore) Reset() {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	srv.gen++
	srv.items = nil
	srv.errMsg = ""
	srv.busy = false
}
