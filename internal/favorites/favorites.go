package favorites

import (
	"github.com/vkarpenko/storefront/internal/models"
)

// Set is a session's favorite products, deduplicated by ProductID. Entries
// are snapshots taken at toggle time: server-side price or name changes are
// not reflected until the product is toggled off and on again.
type Set struct {
	items []models.Product
}

func NewSet(items []models.Product) *Set {
	return &Set{items: Sanitize(items)}
}

// Toggle flips membership for the product: present means remove, absent
// means add the snapshot. Reports whether the product ended up in the set.
func (s *Set) Toggle(p models.Product) bool {
	for i := range s.items {
		if s.items[i].ProductID == p.ProductID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return false
		}
	}
	s.items = append(s.items, p)
	return true
}

// Remove deletes the snapshot for productID; absent is a no-op.
func (s *Set) Remove(productID string) bool {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Set) Has(productID string) bool {
	for _, p := range s.items {
		if p.ProductID == productID {
			return true
		}
	}
	return false
}

func (s *Set) Len() int {
	return len(s.items)
}

// Items returns the snapshots in insertion order, detached from the set.
func (s *Set) Items() []models.Product {
	if len(s.items) == 0 {
		return nil
	}
	out := make([]models.Product, len(s.items))
	copy(out, s.items)
	return out
}

// Sanitize drops invalid entries, ones with no product id. Persisted blobs
// are filtered through this on every load.
func Sanitize(items []models.Product) []models.Product {
	out := make([]models.Product, 0, len(items))
	for _, p := range items {
		if p.ProductID == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
