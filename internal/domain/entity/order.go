package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of a placed order, owned by the backend.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderLine is one line item of a placed order.
type OrderLine struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
}

// ShippingAddress is the delivery address captured at checkout.
type ShippingAddress struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
	Country      string `json:"country"`
}

// Order is a confirmed purchase. It is created by the checkout call and is
// read-only from the client's perspective: never mutated locally, only
// re-fetched.
type Order struct {
	ID              string           `json:"id"`
	Items           []OrderLine      `json:"items"`
	Total           decimal.Decimal  `json:"total"`
	ShippingAddress *ShippingAddress `json:"shippingAddress,omitempty"`
	Status          OrderStatus      `json:"status,omitempty"`
	Date            time.Time        `json:"date,omitempty"`
}
