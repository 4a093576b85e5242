package pricing

import (
	"math"

	"github.com/vkarpenko/storefront/internal/cart"
)

// Shipping is free above the threshold, a flat fee below or at it. Tax is a
// flat rate on the items total.
const (
	FreeShippingThreshold = 500.0
	FlatShippingFee       = 50.0
	TaxRate               = 0.18
)

// Quote holds the totals derived from a set of line items. Quotes are
// recomputed on every read and never stored, so they cannot drift from the
// cart they were derived from.
type Quote struct {
	ItemsTotal  float64 `json:"itemsPrice"`
	ShippingFee float64 `json:"shippingPrice"`
	Tax         float64 `json:"taxPrice"`
	GrandTotal  float64 `json:"totalPrice"`
}

// Compute derives the totals for the given line items. The raw items sum is
// carried unrounded through the shipping and tax steps; rounding to two
// decimals happens only on the values leaving this package. An empty item
// list yields an all-zero quote.
func Compute(items []cart.LineItem) Quote {
	if len(items) == 0 {
		return Quote{}
	}

	var sum float64
	for _, it := range items {
		sum += it.UnitPrice * float64(it.Quantity)
	}

	fee := FlatShippingFee
	if sum > FreeShippingThreshold {
		fee = 0
	}
	tax := Round2(TaxRate * sum)

	return Quote{
		ItemsTotal:  Round2(sum),
		ShippingFee: fee,
		Tax:         tax,
		GrandTotal:  Round2(sum + fee + tax),
	}
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
