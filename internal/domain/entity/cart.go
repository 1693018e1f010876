// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "github.com/shopspring/decimal"

// CartItem is a single line of the user's shopping cart. It is the flattened
// shape produced by cart normalization: product details from the nested wire
// response are merged into the line item itself.
type CartItem struct {
	ID        string          // The server-assigned identity of this cart line.
	ProductID string          // The identity of the product this line refers to.
	UserID    string          // The owning user, when the backend includes it. Optional.
	Name      string          // Product display name, "Unknown Product" when the backend omits it.
	Image     string          // Product image path or URL.
	Price     decimal.Decimal // Unit price. Transported as a JSON string or number.
	Qty       int             // Quantity, always >= 1 for a live line.
	Title     string          // Optional marketing title of the product.
	Category  string          // Catalog category the product belongs to.
	TotalAmt  string          // Price x Qty rendered with two decimal places.
}

// LineTotal returns the exact price multiplied by quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Qty)))
}

// RefreshTotal recomputes the two-place presentation total after a
// quantity change.
func (i *CartItem) RefreshTotal() {
	i.TotalAmt = i.LineTotal().StringFixed(2)
}
