package entity

import "github.com/shopspring/decimal"

// Product is a read-only catalog record. Products lacking a server-assigned
// id receive a locally generated placeholder identity during normalization,
// so every rendered product has a non-empty ID.
type Product struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Image string          `json:"image"`
	Price decimal.Decimal `json:"price"`
	Title string          `json:"title,omitempty"`
}

// Catalog maps a category name to its ordered sequence of products.
type Catalog map[string][]Product
