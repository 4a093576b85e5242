package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/vkarpenko/storefront/internal/logging"
	"github.com/vkarpenko/storefront/internal/models"
)

var (
	ErrValidation  = errors.New("validation")
	ErrItemMissing = errors.New("not found")
)

// Service applies cart transitions for a session and persists the result
// through the injected Store. Persistence is best effort: a failed save is
// logged and swallowed, the in-memory result is still returned and stays
// authoritative for the request.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Get loads the session's cart. A session that has never saved one gets a
// fresh empty cart.
func (s *Service) Get(ctx context.Context, sessionID string) (*Cart, error) {
	c, err := s.store.Load(ctx, sessionID)
	if errors.Is(err, ErrNotFound) {
		return New(), nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Add(ctx context.Context, sessionID string, p models.Product, qty uint) (*Cart, error) {
	if p.ProductID == "" {
		return nil, fmt.Errorf("product id required: %w", ErrValidation)
	}
	if qty == 0 {
		return nil, fmt.Errorf("quantity must be more than zero: %w", ErrValidation)
	}

	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.Add(p, qty)
	s.persist(ctx, sessionID, c)
	return c, nil
}

func (s *Service) SetQuantity(ctx context.Context, sessionID, productID string, qty int) (*Cart, error) {
	if productID == "" {
		return nil, fmt.Errorf("product id required: %w", ErrValidation)
	}

	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !c.SetQuantity(productID, qty) {
		return nil, fmt.Errorf("product %s not in cart: %w", productID, ErrItemMissing)
	}
	s.persist(ctx, sessionID, c)
	return c, nil
}

// Remove deletes a line item. An absent product is a no-op, not an error.
func (s *Service) Remove(ctx context.Context, sessionID, productID string) (*Cart, error) {
	if productID == "" {
		return nil, fmt.Errorf("product id required: %w", ErrValidation)
	}

	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c.Remove(productID) {
		s.persist(ctx, sessionID, c)
	}
	return c, nil
}

func (s *Service) Clear(ctx context.Context, sessionID string) (*Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.Clear()
	s.persist(ctx, sessionID, c)
	return c, nil
}

func (s *Service) SetShippingAddress(ctx context.Context, sessionID string, addr models.Address) (*Cart, error) {
	if addr.Address == "" || addr.City == "" || addr.PostalCode == "" {
		return nil, fmt.Errorf("address, city and postal code required: %w", ErrValidation)
	}

	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.ShippingAddress = &addr
	s.persist(ctx, sessionID, c)
	return c, nil
}

func (s *Service) SetPaymentMethod(ctx context.Context, sessionID, method string) (*Cart, error) {
	if method == "" {
		return nil, fmt.Errorf("payment method required: %w", ErrValidation)
	}

	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.PaymentMethod = method
	s.persist(ctx, sessionID, c)
	return c, nil
}

func (s *Service) persist(ctx context.Context, sessionID string, c *Cart) {
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		logging.FromContext(ctx).Warn("cart persist failed", "session_id", sessionID, "error", err)
	}
}
