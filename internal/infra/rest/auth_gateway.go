package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/gateway"
)

// authGateway implements gateway.AuthGateway against the /auth endpoints.
type authGateway struct {
	client *Client
}

// NewAuthGateway is the constructor for the auth gateway.
func NewAuthGateway(client *Client) gateway.AuthGateway {
	return &authGateway{client: client}
}

// sessionResponse is the wire shape shared by login and register. The
// expiresIn field arrives as a string or a number depending on backend
// version.
type sessionResponse struct {
	AccessToken string      `json:"access_token"`
	User        entity.User `json:"user"`
	ExpiresIn   json.Number `json:"expiresIn"`
}

func (r sessionResponse) toSession() *entity.Session {
	s := &entity.Session{
		AccessToken: r.AccessToken,
		User:        r.User,
	}
	if seconds, err := r.ExpiresIn.Int64(); err == nil {
		s.ExpiresIn = seconds
	}

	return s
}

// Login authenticates with email and password.
func (g *authGateway) Login(ctx context.Context, email, password string) (*entity.Session, error) {
	payload := map[string]string{"email": email, "password": password}

	var resp sessionResponse
	if err := g.client.doJSON(ctx, http.MethodPost, "/auth/login", payload, &resp); err != nil {
		return nil, err
	}

	return resp.toSession(), nil
}

// Register creates a new account.
func (g *authGateway) Register(ctx context.Context, req gateway.RegisterRequest) (*entity.Session, error) {
	var resp sessionResponse
	if err := g.client.doJSON(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}

	return resp.toSession(), nil
}

// ChangePassword rotates the credential. The backend may return refreshed
// partial user fields.
func (g *authGateway) ChangePassword(ctx context.Context, password string) (*entity.User, error) {
	payload := map[string]string{"password": password}

	var resp struct {
		User *entity.User `json:"user"`
	}
	if err := g.client.doJSON(ctx, http.MethodPost, "/auth/change-password", payload, &resp); err != nil {
		return nil, err
	}

	return resp.User, nil
}
