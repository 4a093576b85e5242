package models

import (
	"time"
)

// Product is a denormalized snapshot of a catalog product, captured at the
// moment it enters a cart or the favorites set. It is not refreshed when the
// catalog changes; re-adding the product captures a fresh copy.
type Product struct {
	ProductID   string  `json:"productId"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
}

type Address struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusDelivered = "delivered"
)

type Order struct {
	ID            uint    `gorm:"primaryKey"      json:"id"`
	SessionID     string  `gorm:"index;not null"  json:"session_id"`
	Status        string  `gorm:"not null"        json:"status"`
	PaymentMethod string  `gorm:"not null"        json:"payment_method"`
	ItemsPrice    float64 `gorm:"not null"        json:"items_price"`
	ShippingPrice float64 `gorm:"not null"        json:"shipping_price"`
	TaxPrice      float64 `gorm:"not null"        json:"tax_price"`
	TotalPrice    float64 `gorm:"not null"        json:"total_price"`

	ShippingAddress Address `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"`

	PaymentRef  string     `json:"payment_ref,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey"                  json:"id"`
	OrderID   uint    `gorm:"index;not null"              json:"order_id"`
	ProductID string  `gorm:"not null"                    json:"product_id"`
	Name      string  `gorm:"not null"                    json:"name"`
	Image     string  `json:"image"`
	UnitPrice float64 `gorm:"not null"                    json:"unit_price"`
	Quantity  uint    `gorm:"default:1;check:quantity>0"  json:"quantity"`
	LineTotal float64 `gorm:"not null"                    json:"line_total"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
