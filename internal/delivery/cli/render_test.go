package cli

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"storefront/internal/domain/entity"
)

func TestRenderCart_EmptyCart(t *testing.T) {
	var buf bytes.Buffer

	renderCart(&buf, nil, cartTotals{})

	assert.Contains(t, buf.String(), "Your cart is empty.")
}

func TestRenderCart_TableAndTotals(t *testing.T) {
	var buf bytes.Buffer

	items := []entity.CartItem{
		{ID: "c1", Name: "Field Watch", Price: decimal.NewFromInt(100), Qty: 1, TotalAmt: "100.00"},
		{ID: "c2", Name: "Diver", Price: decimal.NewFromInt(50), Qty: 1, TotalAmt: "50.00"},
	}
	totals := cartTotals{
		Subtotal:   decimal.NewFromInt(150),
		Tax:        decimal.NewFromInt(27),
		Shipping:   decimal.NewFromInt(50),
		GrandTotal: decimal.NewFromInt(227),
	}

	renderCart(&buf, items, totals)

	out := buf.String()
	assert.Contains(t, out, "Field Watch")
	assert.Contains(t, out, "Subtotal:    150.00")
	assert.Contains(t, out, "Tax (18%):   27.00")
	assert.Contains(t, out, "Shipping:    50.00")
	assert.Contains(t, out, "Grand total: 227.00")
}

func TestRenderOrders_Empty(t *testing.T) {
	var buf bytes.Buffer

	renderOrders(&buf, nil)

	assert.Contains(t, buf.String(), "No orders yet.")
}

func TestRenderOrder_Detail(t *testing.T) {
	var buf bytes.Buffer

	order := entity.Order{
		ID:     "o1",
		Status: entity.OrderStatusShipped,
		Total:  decimal.NewFromInt(227),
		Items: []entity.OrderLine{
			{Name: "Field Watch", Quantity: 2, Price: decimal.NewFromInt(100)},
		},
		ShippingAddress: &entity.ShippingAddress{
			FullName: "Jane Customer",
			City:     "Pune",
			State:    "MH",
			ZipCode:  "411001",
		},
	}

	renderOrder(&buf, order)

	out := buf.String()
	assert.Contains(t, out, "Order o1 (shipped)")
	assert.Contains(t, out, "Total: 227.00")
	assert.Contains(t, out, "Jane Customer")
}

func TestRenderCatalog_SortsCategories(t *testing.T) {
	var buf bytes.Buffer

	catalog := entity.Catalog{
		"watches": {{ID: "w1", Name: "Field Watch", Price: decimal.NewFromInt(120)}},
		"cameras": {{ID: "c1", Name: "Rangefinder", Price: decimal.NewFromInt(900)}},
	}

	renderCatalog(&buf, catalog)

	out := buf.String()
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("cameras")), bytes.Index(buf.Bytes(), []byte("watches")))
	assert.Contains(t, out, "Rangefinder")
}

func TestRenderAlert(t *testing.T) {
	var buf bytes.Buffer

	renderAlert(&buf, entity.Alert{Level: entity.AlertDanger, Message: "Session Expired kindly login"})

	assert.Equal(t, "[danger] Session Expired kindly login\n", buf.String())
}
