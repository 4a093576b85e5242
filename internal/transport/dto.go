package transport

import (
	"github.com/vkarpenko/storefront/internal/models"
)

type AddToCartRequest struct {
	ProductID   string  `json:"productId"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
	Qty         uint    `json:"qty"`
}

type SetQuantityRequest struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

type SetPaymentMethodRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

type ToggleFavoriteRequest struct {
	ProductID   string  `json:"productId"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
}

type ToggleFavoriteResponse struct {
	Favorite bool             `json:"favorite"`
	Items    []models.Product `json:"items"`
}

// CreateOrderItem mirrors one serialized cart line in an order submission.
type CreateOrderItem struct {
	Name      string  `json:"name"`
	Qty       uint    `json:"qty"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	ProductID string  `json:"productId"`
}

// CreateOrderRequest is the order submission payload. The price fields are
// what the client displayed; the server recomputes all of them from the
// items and the recomputed values are authoritative.
type CreateOrderRequest struct {
	OrderItems      []CreateOrderItem `json:"orderItems"`
	ShippingAddress models.Address    `json:"shippingAddress"`
	PaymentMethod   string            `json:"paymentMethod"`
	ItemsPrice      float64           `json:"itemsPrice"`
	ShippingPrice   float64           `json:"shippingPrice"`
	TaxPrice        float64           `json:"taxPrice"`
	TotalPrice      float64           `json:"totalPrice"`
}

type CheckoutRequest struct {
	ShippingAddress *models.Address `json:"shippingAddress,omitempty"`
	PaymentMethod   string          `json:"paymentMethod,omitempty"`
}

type PayOrderRequest struct {
	PaymentMethod string `json:"paymentMethod,omitempty"`
}
