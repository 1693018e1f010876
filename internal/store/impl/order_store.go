package impl

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/fx"

	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/gateway"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/store"
)

// orderStore implements the OrderStore interface. Checkout composes the
// other stores: the cart provides the lines and totals, the auth store the
// buyer identity. Order history is read-only and kept both ordered and
// id-keyed.
type orderStore struct {
	orderGateway gateway.OrderGateway
	cart         store.CartStore
	auth         store.AuthStore
	alerts       service.AlertPublisher
	validate     *validator.Validate
	logger       *slog.Logger
	now          func() time.Time

	mu     sync.RWMutex
	orders []entity.Order
	byID   map[string]entity.Order
	errMsg string
	gen    uint64
}

// OrderStoreParams holds dependencies for the order store, injected by Fx.
type OrderStoreParams struct {
	fx.In

	OrderGateway gateway.OrderGateway
	Cart         store.CartStore
	Auth         store.AuthStore
	Alerts       service.AlertPublisher
	Logger       *slog.Logger
}

// NewOrderStore is the constructor for orderStore.
func NewOrderStore(params OrderStoreParams) store.OrderStore {
	return &orderStore{
		orderGateway: params.OrderGateway,
		cart:         params.Cart,
		auth:         params.Auth,
		alerts:       params.Alerts,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		logger:       params.Logger,
		now:          time.Now,
		byID:         make(map[string]entity.Order),
	}
}

// LoadOrders fetches the order history and replaces the snapshot. A result
// superseded by a newer reload is discarded.
func (srv *orderStore) LoadOrders(ctx context.Context) error {
	srv.mu.Lock()
	srv.gen++
	gen := srv.gen
	srv.errMsg = ""
	srv.mu.Unlock()

	srv.logger.Debug("Loading orders")

	orders, err := srv.orderGateway.FetchOrders(ctx)
	if err != nil {
		msg := userMessage(err, "Failed to load orders")

		srv.mu.Lock()
		stale := gen != srv.gen
		if !stale {
			srv.errMsg = msg
		}
		srv.mu.Unlock()

		if !stale {
			srv.logger.Error("Failed to load orders", slog.Any("error", err))
			srv.alerts.Danger(msg)
		}

		return errors.Wrap(err, "failed to load orders")
	}

	srv.mu.Lock()
	if gen == srv.gen {
		srv.orders = orders
		srv.byID = make(map[string]entity.Order, len(orders))
		for _, order := range orders {
			srv.byID[order.ID] = order
		}
	}
	srv.mu.Unlock()

	return nil
}

// PlaceOrder validates the local preconditions, submits the checkout
// payload, and on success clears the cart and records the confirmation.
func (srv *orderStore) PlaceOrder(ctx context.Context, input store.PlaceOrderInput) (*store.OrderConfirmation, error) {
	if !srv.auth.IsAuthenticated() {
		srv.recordFailure(domainerrors.ErrNotAuthenticated, "Kindly login to continue")

		return nil, errors.Wrap(domainerrors.ErrNotAuthenticated, "checkout requires a session")
	}

	if srv.cart.IsEmpty() {
		srv.recordFailure(domainerrors.ErrEmptyCart, "Your cart is empty")

		return nil, errors.Wrap(domainerrors.ErrEmptyCart, "checkout requires a non-empty cart")
	}

	if err := srv.validate.Struct(input.Address); err != nil {
		srv.recordFailure(domainerrors.ErrValidationFailed, "Please fill in all required fields")

		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "invalid shipping address")
	}

	req := srv.buildOrderRequest(input.Address)
	srv.logger.Info("Placing order", slog.Int("lines", len(req.Items)), slog.String("total", req.Total.StringFixed(2)))

	order, err := srv.orderGateway.PlaceOrder(ctx, req)
	if err != nil {
		srv.recordFailure(err, "Failed to place order. Please try again.")
		srv.logger.Error("Failed to place order", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to place order")
	}

	if err := srv.cart.ClearCart(ctx); err != nil {
		// The order went through; a cart left behind is corrected by the
		// next reload.
		srv.logger.Warn("Failed to clear cart after checkout", slog.Any("error", err))
	}

	confirmation := &store.OrderConfirmation{Number: srv.orderNumber()}
	if order != nil {
		confirmation.Order = *order
		srv.remember(*order)
	}

	srv.logger.Info("Order placed", slog.String("number", confirmation.Number))
	srv.alerts.Success("Order placed successfully!")

	return confirmation, nil
}

func (srv *orderStore) Orders() []entity.Order {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	orders := make([]entity.Order, len(srv.orders))
	copy(orders, srv.orders)

	return orders
}

func (srv *orderStore) OrderByID(id string) (entity.Order, bool) {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	order, ok := srv.byID[id]

	return order, ok
}

func (srv *orderStore) ConsumeError() string {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	msg := srv.errMsg
	srv.errMsg = ""

	return msg
}

// buildOrderRequest snapshots the cart into the checkout payload.
func (srv *orderStore) buildOrderRequest(address store.ShippingAddressInput) gateway.OrderRequest {
	items := srv.cart.Items()
	lines := make([]entity.OrderLine, 0, len(items))
	for _, item := range items {
		productID := item.ProductID
		if productID == "" {
			productID = item.ID
		}
		lines = append(lines, entity.OrderLine{
			ProductID: productID,
			Quantity:  item.Qty,
			Price:     item.Price,
			Name:      item.Name,
			Image:     item.Image,
		})
	}

	return gateway.OrderRequest{
		Items: lines,
		Total: srv.cart.GrandTotal(),
		ShippingAddress: entity.ShippingAddress{
			FullName:     address.FullName,
			Email:        address.Email,
			Phone:        address.Phone,
			AddressLine1: address.AddressLine1,
			AddressLine2: address.AddressLine2,
			City:         address.City,
			State:        address.State,
			ZipCode:      address.ZipCode,
			Country:      address.Country,
		},
		UserEmail: srv.auth.UserEmail(),
	}
}

// remember prepends the confirmed order to the history snapshot so the
// orders view is correct before the next reload.
func (srv *orderStore) remember(order entity.Order) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	srv.gen++
	srv.orders = append([]entity.Order{order}, srv.orders...)
	if order.ID != "" {
		srv.byID[order.ID] = order
	}
}

// orderNumber derives a short human-facing confirmation number from the
// checkout timestamp.
func (srv *orderStore) orderNumber() string {
	ms := strconv.FormatInt(srv.now().UnixMilli(), 10)
	if len(ms) > 8 {
		ms = ms[len(ms)-8:]
	}

	return constants.OrderNumberPrefix + ms
}

func (srv *orderStore) recordFailure(err error, fallback string) {
	msg := userMessage(err, fallback)

	srv.mu.Lock()
	srv.errMsg = msg
	srv.mu.Unlock()

	srv.alerts.Danger(msg)
}
