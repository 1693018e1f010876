package rest

import (
	"context"
	"net/http"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/gateway"
)

// orderGateway implements gateway.OrderGateway against the /orders endpoints.
type orderGateway struct {
	client *Client
}

// NewOrderGateway is the constructor for the order gateway.
func NewOrderGateway(client *Client) gateway.OrderGateway {
	return &orderGateway{client: client}
}

// PlaceOrder submits the checkout payload.
func (g *orderGateway) PlaceOrder(ctx context.Context, req gateway.OrderRequest) (*entity.Order, error) {
	var confirmation entity.Order
	if err := g.client.doJSON(ctx, http.MethodPost, "/orders", req, &confirmation); err != nil {
		return nil, err
	}

	return &confirmation, nil
}

// FetchOrders lists the user's past orders, newest shape preserved as
// returned by the backend.
func (g *orderGateway) FetchOrders(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	if err := g.client.doJSON(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}
