package rest

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/gateway"
)

// cartGateway implements gateway.CartGateway against the /cart endpoints.
type cartGateway struct {
	client *Client
}

// NewCartGateway is the constructor for the cart gateway.
func NewCartGateway(client *Client) gateway.CartGateway {
	return &cartGateway{client: client}
}

// cartLineResponse is the nested wire shape of one cart line.
type cartLineResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	UserID    string `json:"userId"`
	Quantity  int    `json:"quantity"`
	Product   *struct {
		Name     string          `json:"name"`
		Image    string          `json:"image"`
		Price    decimal.Decimal `json:"price"`
		Title    string          `json:"title"`
		Category string          `json:"category"`
	} `json:"product"`
}

// flatten merges the nested product details into the cart line itself and
// computes the two-place line total.
func (r cartLineResponse) flatten() entity.CartItem {
	item := entity.CartItem{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		Qty:       r.Quantity,
		Name:      "Unknown Product",
	}
	if r.Product != nil {
		if r.Product.Name != "" {
			item.Name = r.Product.Name
		}
		item.Image = r.Product.Image
		item.Price = r.Product.Price
		item.Title = r.Product.Title
		item.Category = r.Product.Category
	}
	item.RefreshTotal()

	return item
}

// FetchCart lists the current user's cart lines, normalized.
func (g *cartGateway) FetchCart(ctx context.Context) ([]entity.CartItem, error) {
	var lines []cartLineResponse
	if err := g.client.doJSON(ctx, http.MethodGet, "/cart", nil, &lines); err != nil {
		return nil, err
	}

	items := make([]entity.CartItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, line.flatten())
	}

	return items, nil
}

// AddItem creates a new cart line for the product.
func (g *cartGateway) AddItem(ctx context.Context, productID string, quantity int) error {
	payload := map[string]any{"productId": productID, "quantity": quantity}

	return g.client.doJSON(ctx, http.MethodPost, "/cart", payload, nil)
}

// RemoveItem deletes a single cart line.
func (g *cartGateway) RemoveItem(ctx context.Context, id string) error {
	return g.client.doJSON(ctx, http.MethodDelete, "/cart/"+id, nil, nil)
}

// Clear deletes every cart line.
func (g *cartGateway) Clear(ctx context.Context) error {
	return g.client.doJSON(ctx, http.MethodDelete, "/cart", nil, nil)
}
