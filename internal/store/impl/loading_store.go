package impl

import (
	"log/slog"
	"sync"

	"go.uber.org/fx"

	"storefront/internal/store"
)

// loadingStore implements the LoadingStore interface. Tracking a set of task
// ids instead of a boolean keeps the indicator correct under concurrent
// requests: it only clears once the last outstanding task stops.
type loadingStore struct {
	logger *slog.Logger

	mu    sync.RWMutex
	tasks map[string]struct{}
}

// LoadingStoreParams holds dependencies for the loading store, injected by Fx.
type LoadingStoreParams struct {
	fx.In

	Logger *slog.Logger
}

// NewLoadingStore is the constructor for loadingStore.
func NewLoadingStore(params LoadingStoreParams) store.LoadingStore {
	return &loadingStore{
		logger: params.Logger,
		tasks:  make(map[string]struct{}),
	}
}

func (srv *loadingStore) StartLoading(taskID string) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	srv.tasks[taskID] = struct{}{}
	srv.logger.Debug("Task started", slog.String("taskID", taskID), slog.Int("inFlight", len(srv.tasks)))
}

func (srv *loadingStore) StopLoading(taskID string) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	// Stopping an unknown task is a no-op: the set cannot go negative.
	delete(srv.tasks, taskID)
	srv.logger.Debug("Task stopped", slog.String("taskID", taskID), slog.Int("inFlight", len(srv.tasks)))
}

func (srv *loadingStore) StopAllLoading() {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if len(srv.tasks) > 0 {
		srv.logger.Debug("Clearing all tasks", slog.Int("dropped", len(srv.tasks)))
	}
	srv.tasks = make(map[string]struct{})
}

func (srv *loadingStore) IsLoading() bool {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	return len(srv.tasks) > 0
}

func (srv *loadingStore) IsTaskLoading(taskID string) bool {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	_, ok := srv.tasks[taskID]

	return ok
}
