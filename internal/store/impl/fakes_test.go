package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/memblob"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/gateway"
	"storefront/internal/domain/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func openTestBucket(t *testing.T) *blob.Bucket {
	t.Helper()

	bucket, err := blob.OpenBucket(context.Background(), "mem://")
	if err != nil {
		t.Fatalf("open memblob bucket: %v", err)
	}
	t.Cleanup(func() { _ = bucket.Close() })

	return bucket
}

// fakeAlerts records published alerts for assertions.
type fakeAlerts struct {
	mu     sync.Mutex
	alerts []entity.Alert
}

func (f *fakeAlerts) publish(level entity.AlertLevel, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.alerts = append(f.alerts, entity.Alert{Level: level, Message: message})
}

func (f *fakeAlerts) Success(message string) { f.publish(entity.AlertSuccess, message) }
func (f *fakeAlerts) Danger(message string)  { f.publish(entity.AlertDanger, message) }
func (f *fakeAlerts) Warning(message string) { f.publish(entity.AlertWarning, message) }
func (f *fakeAlerts) Info(message string)    { f.publish(entity.AlertInfo, message) }

func (f *fakeAlerts) Subscribe() (<-chan entity.Alert, func()) {
	ch := make(chan entity.Alert)

	return ch, func() {}
}

func (f *fakeAlerts) Close() error { return nil }

func (f *fakeAlerts) recorded() []entity.Alert {
	f.mu.Lock()
	defer f.mu.Unlock()

	alerts := make([]entity.Alert, len(f.alerts))
	copy(alerts, f.alerts)

	return alerts
}

func (f *fakeAlerts) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	msgs := make([]string, 0, len(f.alerts))
	for _, alert := range f.alerts {
		msgs = append(msgs, alert.Message)
	}

	return msgs
}

// fakeNavigator records navigation targets.
type fakeNavigator struct {
	mu     sync.Mutex
	routes []service.Route
}

func (f *fakeNavigator) Navigate(route service.Route) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.routes = append(f.routes, route)
}

func (f *fakeNavigator) visited() []service.Route {
	f.mu.Lock()
	defer f.mu.Unlock()

	routes := make([]service.Route, len(f.routes))
	copy(routes, f.routes)

	return routes
}

// fakeTokens returns a fixed expiry answer.
type fakeTokens struct {
	remaining time.Duration
	ok        bool
}

func (f *fakeTokens) Expiry(string, time.Time) (time.Duration, bool) {
	return f.remaining, f.ok
}

// fakeCartGateway lets each endpoint be scripted per test; unscripted
// endpoints succeed.
type fakeCartGateway struct {
	mu          sync.Mutex
	fetchCalls  int
	addCalls    int
	removeCalls []string
	clearCalls  int

	fetchFn  func(ctx context.Context) ([]entity.CartItem, error)
	addFn    func(ctx context.Context, productID string, quantity int) error
	removeFn func(ctx context.Context, id string) error
	clearFn  func(ctx context.Context) error
}

func (f *fakeCartGateway) FetchCart(ctx context.Context) ([]entity.CartItem, error) {
	f.mu.Lock()
	f.fetchCalls++
	fn := f.fetchFn
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}

	return nil, nil
}

func (f *fakeCartGateway) AddItem(ctx context.Context, productID string, quantity int) error {
	f.mu.Lock()
	f.addCalls++
	fn := f.addFn
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, productID, quantity)
	}

	return nil
}

func (f *fakeCartGateway) RemoveItem(ctx context.Context, id string) error {
	f.mu.Lock()
	f.removeCalls = append(f.removeCalls, id)
	fn := f.removeFn
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, id)
	}

	return nil
}

func (f *fakeCartGateway) Clear(ctx context.Context) error {
	f.mu.Lock()
	f.clearCalls++
	fn := f.clearFn
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}

	return nil
}

// fakeAuthGateway scripts the /auth endpoints.
type fakeAuthGateway struct {
	mu             sync.Mutex
	loginCalls     int
	registerCalls  int
	changeCalls    int
	loginFn        func(ctx context.Context, email, password string) (*entity.Session, error)
	registerFn     func(ctx context.Context, req gateway.RegisterRequest) (*entity.Session, error)
	changePasswdFn func(ctx context.Context, password string) (*entity.User, error)
}

func (f *fakeAuthGateway) Login(ctx context.Context, email, password string) (*entity.Session, error) {
	f.mu.Lock()
	f.loginCalls++
	fn := f.loginFn
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, email, password)
	}

	return &entity.Session{AccessToken: "token", User: entity.User{ID: "u1", Email: email}}, nil
}

func (f *fakeAuthGateway) Register(ctx context.Context, req gateway.RegisterRequest) (*entity.Session, error) {
	f.mu.Lock()
	f.registerCalls++
	fn := f.registerFn
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}

	return &entity.Session{AccessToken: "token", User: entity.User{ID: "u1", Email: req.Email, FirstName: req.FirstName, LastName: req.LastName}}, nil
}

func (f *fakeAuthGateway) ChangePassword(ctx context.Context, password string) (*entity.User, error) {
	f.mu.Lock()
	f.changeCalls++
	fn := f.changePasswdFn
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, password)
	}

	return nil, nil
}

func (f *fakeAuthGateway) calls() (login, register, change int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.loginCalls, f.registerCalls, f.changeCalls
}

// fakeCatalogGateway scripts the /products endpoint.
type fakeCatalogGateway struct {
	mu         sync.Mutex
	fetchCalls int
	fetchFn    func(ctx context.Context) (entity.Catalog, error)
}

func (f *fakeCatalogGateway) FetchCatalog(ctx context.Context) (entity.Catalog, error) {
	f.mu.Lock()
	f.fetchCalls++
	fn := f.fetchFn
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}

	return entity.Catalog{}, nil
}

func (f *fakeCatalogGateway) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.fetchCalls
}

// fakeOrderGateway scripts the /orders endpoints.
type fakeOrderGateway struct {
	mu         sync.Mutex
	placed     []gateway.OrderRequest
	fetchCalls int
	placeFn    func(ctx context.Context, req gateway.OrderRequest) (*entity.Order, error)
	fetchFn    func(ctx context.Context) ([]entity.Order, error)
}

func (f *fakeOrderGateway) PlaceOrder(ctx context.Context, req gateway.OrderRequest) (*entity.Order, error) {
	f.mu.Lock()
	f.placed = append(f.placed, req)
	fn := f.placeFn
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}

	return &entity.Order{ID: "order-1", Items: req.Items, Total: req.Total}, nil
}

func (f *fakeOrderGateway) FetchOrders(ctx context.Context) ([]entity.Order, error) {
	f.mu.Lock()
	f.fetchCalls++
	fn := f.fetchFn
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}

	return nil, nil
}

func (f *fakeOrderGateway) requests() []gateway.OrderRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	reqs := make([]gateway.OrderRequest, len(f.placed))
	copy(reqs, f.placed)

	return reqs
}
