package rest

import (
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// authTransport attaches the bearer credential to every outgoing request and
// reports authorization failures. The forced-logout contract lives here, at
// the transport boundary, so no call site has to handle 401 individually.
type authTransport struct {
	tokens TokenSource
	next   http.RoundTripper

	mu             sync.RWMutex
	onUnauthorized func()
}

func (t *authTransport) setUnauthorizedHandler(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onUnauthorized = fn
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token := ""
	if t.tokens != nil {
		token = t.tokens.Token()
	}
	if token != "" {
		// Clone before mutating: RoundTrippers must not modify the request.
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	// A 401 on an authenticated request means the session died server-side.
	// Unauthenticated requests (login itself) fail without forcing logout.
	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		t.mu.RLock()
		fn := t.onUnauthorized
		t.mu.RUnlock()
		if fn != nil {
			fn()
		}
	}

	return resp, err
}

// loadingTransport marks a loading task for the lifetime of each request so
// the global indicator stays up while anything is in flight. Asset and
// health traffic is excluded.
type loadingTransport struct {
	tracker  LoadingTracker
	excluded []string
	next     http.RoundTripper
}

func (t *loadingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.tracker == nil || t.skip(req.URL.Path) {
		return t.next.RoundTrip(req)
	}

	taskID := req.Method + "-" + req.URL.Path + "-" + uuid.NewString()
	t.tracker.StartLoading(taskID)
	defer t.tracker.StopLoading(taskID)

	return t.next.RoundTrip(req)
}

func (t *loadingTransport) skip(path string) bool {
	for _, fragment := range t.excluded {
		if strings.Contains(path, fragment) {
			return true
		}
	}

	return false
}
