// Package rest implements the data access layer over the storefront REST
// backend. It owns the transport chain that attaches bearer credentials,
// drives the global loading indicator, and converts authorization failures
// into a forced logout signal.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"
)

// TokenSource supplies the current bearer credential. An empty string means
// no session is active and the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// LoadingTracker receives the start/stop signals that drive the global
// loading indicator. One opaque task id per in-flight request.
type LoadingTracker interface {
	StartLoading(taskID string)
	StopLoading(taskID string)
}

// Client is the shared HTTP client all endpoint gateways are built on.
type Client struct {
	baseURL string
	http    *http.Client
	auth    *authTransport
	logger  *slog.Logger
}

// Params holds dependencies for the REST client, injected by Fx.
type Params struct {
	fx.In

	Config  *config.Config
	Tokens  TokenSource
	Loading LoadingTracker
	Logger  *slog.Logger
}

// NewClient builds the client with its transport chain: loading tracking on
// the outside, bearer injection and 401 interception beneath it.
func NewClient(params Params) *Client {
	auth := &authTransport{
		tokens: params.Tokens,
		next:   http.DefaultTransport,
	}
	loading := &loadingTransport{
		tracker:  params.Loading,
		excluded: params.Config.API.ExcludedPaths,
		next:     auth,
	}

	return &Client{
		baseURL: strings.TrimRight(params.Config.API.BaseURL, "/"),
		http: &http.Client{
			Timeout:   params.Config.API.Timeout,
			Transport: loading,
		},
		auth:   auth,
		logger: params.Logger,
	}
}

// OnUnauthorized registers the handler invoked when an authenticated request
// comes back 401. Registered after construction to break the dependency
// cycle between the client and the auth store.
func (c *Client) OnUnauthorized(fn func()) {
	c.auth.setUnauthorizedHandler(fn)
}

// doJSON performs one request against the backend. A non-nil body is sent as
// JSON; a non-nil out receives the decoded response body. Null and empty
// response bodies leave out untouched.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "encode %s %s payload", method, path)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrapf(err, "build %s %s request", method, path)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("Request failed before a response arrived",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err),
		)

		return domainerrors.NewTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return domainerrors.NewTransportError(err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		appErr := mapResponseError(resp.StatusCode, payload)
		c.logger.Warn("Backend returned an error",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("message", appErr.Message()),
		)

		return appErr
	}

	if out == nil || len(payload) == 0 || string(payload) == "null" {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return errors.Wrapf(err, "decode %s %s response", method, path)
	}

	return nil
}
