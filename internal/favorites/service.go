package favorites

import (
	"context"
	"errors"
	"fmt"

	"github.com/vkarpenko/storefront/internal/logging"
	"github.com/vkarpenko/storefront/internal/models"
)

var ErrValidation = errors.New("validation")

// ErrNotFound is returned by Store.Load when the session has no saved
// favorites yet.
var ErrNotFound = errors.New("favorites not found")

// Store persists a session's favorite snapshots as one blob, independently
// of the cart.
type Store interface {
	Load(ctx context.Context, sessionID string) ([]models.Product, error)
	Save(ctx context.Context, sessionID string, items []models.Product) error
	Delete(ctx context.Context, sessionID string) error
}

// Service applies favorite toggles for a session. Like the cart, a failed
// save is logged and swallowed.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context, sessionID string) ([]models.Product, error) {
	set, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return set.Items(), nil
}

// Toggle flips membership for the product and reports whether it is now a
// favorite. Toggling twice restores the original membership.
func (s *Service) Toggle(ctx context.Context, sessionID string, p models.Product) (bool, []models.Product, error) {
	if p.ProductID == "" {
		return false, nil, fmt.Errorf("product id required: %w", ErrValidation)
	}

	set, err := s.load(ctx, sessionID)
	if err != nil {
		return false, nil, err
	}
	added := set.Toggle(p)
	if err := s.store.Save(ctx, sessionID, set.Items()); err != nil {
		logging.FromContext(ctx).Warn("favorites persist failed", "session_id", sessionID, "error", err)
	}
	return added, set.Items(), nil
}

func (s *Service) load(ctx context.Context, sessionID string) (*Set, error) {
	items, err := s.store.Load(ctx, sessionID)
	if errors.Is(err, ErrNotFound) {
		return NewSet(nil), nil
	}
	if err != nil {
		return nil, err
	}
	return NewSet(items), nil
}
