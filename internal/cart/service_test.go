package cart_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkarpenko/storefront/internal/cart"
	"github.com/vkarpenko/storefront/internal/models"
	"github.com/vkarpenko/storefront/internal/storage"
)

// brokenStore loads nothing and fails every save, standing in for an
// unreachable persistence backend.
type brokenStore struct {
	saves int
}

func (b *brokenStore) Load(context.Context, string) (*cart.Cart, error) {
	return nil, cart.ErrNotFound
}

func (b *brokenStore) Save(context.Context, string, *cart.Cart) error {
	b.saves++
	return errors.New("storage unavailable")
}

func (b *brokenStore) Delete(context.Context, string) error {
	return errors.New("storage unavailable")
}

func testProduct(id string, price float64) models.Product {
	return models.Product{ProductID: id, Name: "product " + id, Price: price}
}

func TestService_Get_MissingCartIsEmpty(t *testing.T) {
	t.Parallel()

	svc := cart.NewService(storage.NewMemoryCartStore())

	c, err := svc.Get(context.Background(), "fresh-session")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestService_Add_Validation(t *testing.T) {
	t.Parallel()

	svc := cart.NewService(storage.NewMemoryCartStore())
	ctx := context.Background()

	tests := []struct {
		name    string
		product models.Product
		qty     uint
	}{
		{name: "missing product id", product: models.Product{Name: "x"}, qty: 1},
		{name: "zero quantity", product: testProduct("p1", 10), qty: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := svc.Add(ctx, "s1", tt.product, tt.qty)
			require.Error(t, err)
			assert.Nil(t, c)
			assert.ErrorIs(t, err, cart.ErrValidation)
		})
	}
}

func TestService_MutationsPersistAcrossLoads(t *testing.T) {
	t.Parallel()

	svc := cart.NewService(storage.NewMemoryCartStore())
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", testProduct("p1", 100), 2)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "s1", testProduct("p2", 50), 1)
	require.NoError(t, err)

	c, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, c.Items, 2)
	assert.Equal(t, "p1", c.Items[0].ProductID)
	assert.Equal(t, uint(2), c.Items[0].Quantity)
}

func TestService_SessionsAreIsolated(t *testing.T) {
	t.Parallel()

	svc := cart.NewService(storage.NewMemoryCartStore())
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", testProduct("p1", 100), 2)
	require.NoError(t, err)

	c, err := svc.Get(ctx, "s2")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestService_SetQuantity_ZeroRemoves(t *testing.T) {
	t.Parallel()

	svc := cart.NewService(storage.NewMemoryCartStore())
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", testProduct("p1", 100), 2)
	require.NoError(t, err)

	c, err := svc.SetQuantity(ctx, "s1", "p1", 0)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	c, err = svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestService_SetQuantity_UnknownProduct(t *testing.T) {
	t.Parallel()

	svc := cart.NewService(storage.NewMemoryCartStore())

	_, err := svc.SetQuantity(context.Background(), "s1", "missing", 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, cart.ErrItemMissing)
}

func TestService_Remove_AbsentProductIsNoop(t *testing.T) {
	t.Parallel()

	svc := cart.NewService(storage.NewMemoryCartStore())
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", testProduct("p1", 100), 1)
	require.NoError(t, err)

	c, err := svc.Remove(ctx, "s1", "missing")
	require.NoError(t, err)
	assert.Len(t, c.Items, 1)
}

func TestService_PersistFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	store := &brokenStore{}
	svc := cart.NewService(store)

	c, err := svc.Add(context.Background(), "s1", testProduct("p1", 100), 2)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 1, store.saves)
}

func TestService_SetShippingAddress_Validation(t *testing.T) {
	t.Parallel()

	svc := cart.NewService(storage.NewMemoryCartStore())

	_, err := svc.SetShippingAddress(context.Background(), "s1", models.Address{City: "Pune"})
	require.Error(t, err)
	assert.ErrorIs(t, err, cart.ErrValidation)
}
