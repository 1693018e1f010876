package impl

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/gateway"
	"storefront/internal/infra/localstore"
	"storefront/internal/store"
)

type orderFixture struct {
	orders  store.OrderStore
	cart    store.CartStore
	auth    store.AuthStore
	orderGW *fakeOrderGateway
	cartGW  *fakeCartGateway
	alerts  *fakeAlerts
}

// createTestOrderStore wires the order store against real cart and auth
// stores so checkout is exercised the way the application composes it.
func createTestOrderStore(t *testing.T) *orderFixture {
	t.Helper()

	cartGW := &fakeCartGateway{}
	alerts := &fakeAlerts{}
	orderGW := &fakeOrderGateway{}
	storage := localstore.NewWithBucket(context.Background(), openTestBucket(t), testLogger())

	cart := NewCartStore(CartStoreParams{
		CartGateway: cartGW,
		Alerts:      alerts,
		Logger:      testLogger(),
	})
	auth := NewAuthStore(AuthStoreParams{
		AuthGateway: &fakeAuthGateway{},
		Storage:     storage,
		Alerts:      alerts,
		Navigator:   &fakeNavigator{},
		Tokens:      &fakeTokens{},
		Logger:      testLogger(),
	})
	orders := NewOrderStore(OrderStoreParams{
		OrderGateway: orderGW,
		Cart:         cart,
		Auth:         auth,
		Alerts:       alerts,
		Logger:       testLogger(),
	})

	return &orderFixture{
		orders:  orders,
		cart:    cart,
		auth:    auth,
		orderGW: orderGW,
		cartGW:  cartGW,
		alerts:  alerts,
	}
}

func validAddress() store.ShippingAddressInput {
	return store.ShippingAddressInput{
		FullName:     "Jane Customer",
		Email:        "jane@example.com",
		Phone:        "9876543210",
		AddressLine1: "42 Market Street",
		City:         "Pune",
		State:        "MH",
		ZipCode:      "411001",
		Country:      "India",
	}
}

func TestOrderStore_PlaceOrder_Success(t *testing.T) {
	fx := createTestOrderStore(t)

	require.NoError(t, fx.auth.Login(context.Background(), validLogin()))
	seedCart(t, fx.cart, fx.cartGW, cartLine("c1", "100", 1), cartLine("c2", "50", 1))

	confirmation, err := fx.orders.PlaceOrder(context.Background(), store.PlaceOrderInput{Address: validAddress()})
	require.NoError(t, err)
	require.NotNil(t, confirmation)

	reqs := fx.orderGW.requests()
	require.Len(t, reqs, 1)
	assert.Len(t, reqs[0].Items, 2)
	assert.Equal(t, "227.00", reqs[0].Total.StringFixed(2))
	assert.Equal(t, "jane@example.com", reqs[0].UserEmail)
	assert.Equal(t, "Jane Customer", reqs[0].ShippingAddress.FullName)

	assert.True(t, strings.HasPrefix(confirmation.Number, "ORD-"))
	assert.Len(t, confirmation.Number, len("ORD-")+8)

	assert.True(t, fx.cart.IsEmpty(), "checkout clears the cart")
	assert.Equal(t, 1, fx.cartGW.clearCalls)
	assert.Contains(t, fx.alerts.messages(), "Order placed successfully!")

	got, ok := fx.orders.OrderByID("order-1")
	require.True(t, ok)
	assert.Equal(t, "227.00", got.Total.StringFixed(2))
}

func TestOrderStore_PlaceOrder_RequiresAuth(t *testing.T) {
	fx := createTestOrderStore(t)

	seedCart(t, fx.cart, fx.cartGW, cartLine("c1", "100", 1))

	_, err := fx.orders.PlaceOrder(context.Background(), store.PlaceOrderInput{Address: validAddress()})
	require.Error(t, err)

	assert.Empty(t, fx.orderGW.requests())
	assert.Contains(t, fx.alerts.messages(), "Kindly login to continue")
}

func TestOrderStore_PlaceOrder_EmptyCart(t *testing.T) {
	fx := createTestOrderStore(t)

	require.NoError(t, fx.auth.Login(context.Background(), validLogin()))

	_, err := fx.orders.PlaceOrder(context.Background(), store.PlaceOrderInput{Address: validAddress()})
	require.Error(t, err)

	assert.Empty(t, fx.orderGW.requests())
	assert.Contains(t, fx.alerts.messages(), "Your cart is empty")
	assert.Equal(t, "Your cart is empty", fx.orders.ConsumeError())
}

func TestOrderStore_PlaceOrder_InvalidAddress(t *testing.T) {
	fx := createTestOrderStore(t)

	require.NoError(t, fx.auth.Login(context.Background(), validLogin()))
	seedCart(t, fx.cart, fx.cartGW, cartLine("c1", "100", 1))

	address := validAddress()
	address.Phone = "12345"

	_, err := fx.orders.PlaceOrder(context.Background(), store.PlaceOrderInput{Address: address})
	require.Error(t, err)

	assert.Empty(t, fx.orderGW.requests(), "precondition failures must not reach the network")
	assert.Contains(t, fx.alerts.messages(), "Please fill in all required fields")
}

func TestOrderStore_PlaceOrder_BackendFailureKeepsCart(t *testing.T) {
	fx := createTestOrderStore(t)

	require.NoError(t, fx.auth.Login(context.Background(), validLogin()))
	seedCart(t, fx.cart, fx.cartGW, cartLine("c1", "100", 1))

	fx.orderGW.placeFn = func(context.Context, gateway.OrderRequest) (*entity.Order, error) {
		return nil, domainerrors.ErrServer
	}

	_, err := fx.orders.PlaceOrder(context.Background(), store.PlaceOrderInput{Address: validAddress()})
	require.Error(t, err)

	assert.True(t, fx.cart.HasItems(), "a failed checkout leaves the cart intact")
	assert.Zero(t, fx.cartGW.clearCalls)
	assert.Contains(t, fx.alerts.messages(), "Internal server error. Please try again later.")
}

func TestOrderStore_LoadOrders(t *testing.T) {
	fx := createTestOrderStore(t)

	fx.orderGW.fetchFn = func(context.Context) ([]entity.Order, error) {
		return []entity.Order{
			{ID: "o1", Status: entity.OrderStatusDelivered},
			{ID: "o2", Status: entity.OrderStatusPending},
		}, nil
	}

	require.NoError(t, fx.orders.LoadOrders(context.Background()))

	orders := fx.orders.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, "o1", orders[0].ID)

	got, ok := fx.orders.OrderByID("o2")
	require.True(t, ok)
	assert.Equal(t, entity.OrderStatusPending, got.Status)

	_, ok = fx.orders.OrderByID("missing")
	assert.False(t, ok)
}

func TestOrderStore_LoadOrders_Failure(t *testing.T) {
	fx := createTestOrderStore(t)

	fx.orderGW.fetchFn = func(context.Context) ([]entity.Order, error) {
		return nil, domainerrors.ErrServer
	}

	err := fx.orders.LoadOrders(context.Background())
	require.Error(t, err)

	assert.Empty(t, fx.orders.Orders())
	assert.Contains(t, fx.alerts.messages(), "Internal server error. Please try again later.")
}
