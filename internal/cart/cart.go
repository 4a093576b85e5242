package cart

import (
	"github.com/vkarpenko/storefront/internal/models"
)

// LineItem is one product-and-quantity entry in a cart. Identity is
// ProductID: a cart never holds two line items for the same product.
type LineItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	UnitPrice float64 `json:"price"`
	Quantity  uint    `json:"qty"`
}

// Cart is the per-session shopping cart. Items keeps insertion order, which
// is also display order. The zero value is a usable empty cart.
type Cart struct {
	Items           []LineItem      `json:"cartItems"`
	ShippingAddress *models.Address `json:"shippingAddress,omitempty"`
	PaymentMethod   string          `json:"paymentMethod,omitempty"`
}

func New() *Cart {
	return &Cart{}
}

// Add puts the product into the cart with the given quantity. If the product
// is already present its quantity is replaced, not incremented, and the item
// keeps its position. Quantity validation is the caller's job.
func (c *Cart) Add(p models.Product, qty uint) {
	for i := range c.Items {
		if c.Items[i].ProductID == p.ProductID {
			c.Items[i] = LineItem{
				ProductID: p.ProductID,
				Name:      p.Name,
				Image:     p.Image,
				UnitPrice: p.Price,
				Quantity:  qty,
			}
			return
		}
	}
	c.Items = append(c.Items, LineItem{
		ProductID: p.ProductID,
		Name:      p.Name,
		Image:     p.Image,
		UnitPrice: p.Price,
		Quantity:  qty,
	})
}

// Remove deletes the line item for productID. Removing an absent product is
// a no-op and reports false.
func (c *Cart) Remove(productID string) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// SetQuantity updates the quantity of an existing line item in place. A
// quantity below one removes the item: a zero-quantity entry must never
// exist. Reports false when the product is not in the cart.
func (c *Cart) SetQuantity(productID string, qty int) bool {
	if qty < 1 {
		return c.Remove(productID)
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = uint(qty)
			return true
		}
	}
	return false
}

// Clear empties the line items. Shipping address and payment method are kept
// so a follow-up order from the same session does not re-enter them.
func (c *Cart) Clear() {
	c.Items = nil
}

func (c *Cart) Find(productID string) (LineItem, bool) {
	for _, it := range c.Items {
		if it.ProductID == productID {
			return it, true
		}
	}
	return LineItem{}, false
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Snapshot returns a copy of the line items, detached from the cart so later
// mutations do not leak into an order already being placed.
func (c *Cart) Snapshot() []LineItem {
	if len(c.Items) == 0 {
		return nil
	}
	out := make([]LineItem, len(c.Items))
	copy(out, c.Items)
	return out
}
