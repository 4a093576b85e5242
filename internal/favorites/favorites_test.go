package favorites_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkarpenko/storefront/internal/favorites"
	"github.com/vkarpenko/storefront/internal/models"
	"github.com/vkarpenko/storefront/internal/storage"
)

func snapshot(id string, price float64) models.Product {
	return models.Product{ProductID: id, Name: "product " + id, Price: price}
}

func TestSet_Toggle_TwiceRestoresMembership(t *testing.T) {
	t.Parallel()

	s := favorites.NewSet(nil)

	assert.True(t, s.Toggle(snapshot("p1", 10)))
	assert.True(t, s.Has("p1"))

	assert.False(t, s.Toggle(snapshot("p1", 10)))
	assert.False(t, s.Has("p1"))
	assert.Equal(t, 0, s.Len())
}

func TestSet_Toggle_DeduplicatesByProductID(t *testing.T) {
	t.Parallel()

	s := favorites.NewSet([]models.Product{snapshot("p1", 10)})

	// Same product with a newer price toggles OFF, it does not duplicate.
	assert.False(t, s.Toggle(snapshot("p1", 99)))
	assert.Equal(t, 0, s.Len())
}

func TestSet_SnapshotIsFrozenAtToggleTime(t *testing.T) {
	t.Parallel()

	s := favorites.NewSet(nil)
	s.Toggle(snapshot("p1", 10))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 10.0, items[0].Price)

	// Mutating the returned slice must not reach the set.
	items[0].Price = 999
	again := s.Items()
	assert.Equal(t, 10.0, again[0].Price)
}

func TestSet_Remove_AbsentIsNoop(t *testing.T) {
	t.Parallel()

	s := favorites.NewSet([]models.Product{snapshot("p1", 10)})

	assert.False(t, s.Remove("missing"))
	assert.Equal(t, 1, s.Len())
}

func TestSanitize_DropsEntriesWithoutProductID(t *testing.T) {
	t.Parallel()

	in := []models.Product{
		snapshot("p1", 10),
		{Name: "corrupt entry"},
		snapshot("p2", 20),
		{},
	}

	out := favorites.Sanitize(in)
	require.Len(t, out, 2)
	assert.Equal(t, "p1", out[0].ProductID)
	assert.Equal(t, "p2", out[1].ProductID)
}

func TestService_Toggle_PersistsIndependently(t *testing.T) {
	t.Parallel()

	svc := favorites.NewService(storage.NewMemoryFavoritesStore())
	ctx := context.Background()

	added, items, err := svc.Toggle(ctx, "s1", snapshot("p1", 10))
	require.NoError(t, err)
	assert.True(t, added)
	require.Len(t, items, 1)

	listed, err := svc.List(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "p1", listed[0].ProductID)

	other, err := svc.List(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestService_Toggle_Validation(t *testing.T) {
	t.Parallel()

	svc := favorites.NewService(storage.NewMemoryFavoritesStore())

	_, _, err := svc.Toggle(context.Background(), "s1", models.Product{Name: "no id"})
	require.Error(t, err)
	assert.ErrorIs(t, err, favorites.ErrValidation)
}

func TestService_List_FiltersInvalidPersistedEntries(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryFavoritesStore()
	ctx := context.Background()

	// A blob written by an older client with a partial entry.
	require.NoError(t, store.Save(ctx, "s1", []models.Product{
		snapshot("p1", 10),
		{Name: "partial"},
	}))

	svc := favorites.NewService(store)
	items, err := svc.List(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID)
}
