package cart

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Store.Load when no cart has been saved for the
// session yet. The service treats it as an empty cart, not a failure.
var ErrNotFound = errors.New("cart not found")

// Store persists one cart per session key. Implementations are expected to
// serialize the whole cart as a single blob; partial updates are not part of
// the contract.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, c *Cart) error
	Delete(ctx context.Context, sessionID string) error
}
