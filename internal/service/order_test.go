package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vkarpenko/storefront/internal/models"
	"github.com/vkarpenko/storefront/internal/payment"
	"github.com/vkarpenko/storefront/internal/repo"
	"github.com/vkarpenko/storefront/internal/transport"
)

func newTestOrderService(t *testing.T) *OrderService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Order{}, &models.OrderItem{}))

	return &OrderService{
		Repo:    &repo.GormRepo{DB: db},
		Gateway: payment.NewProcessor(0),
	}
}

func validRequest() transport.CreateOrderRequest {
	return transport.CreateOrderRequest{
		OrderItems: []transport.CreateOrderItem{
			{Name: "keyboard", Qty: 2, Image: "/images/p1.jpg", Price: 100, ProductID: "p1"},
		},
		ShippingAddress: models.Address{Address: "1 Main St", City: "Pune", PostalCode: "411001", Country: "India"},
		PaymentMethod:   "card",
	}
}

func TestOrderService_PlaceOrder_RecomputesTotals(t *testing.T) {
	t.Parallel()

	svc := newTestOrderService(t)

	req := validRequest()
	// Client-side totals are lies; the server must ignore them.
	req.ItemsPrice = 1
	req.TotalPrice = 1

	order, err := svc.PlaceOrder(context.Background(), "s1", req)
	require.NoError(t, err)
	require.NotZero(t, order.ID)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 200.0, order.ItemsPrice)
	assert.Equal(t, 50.0, order.ShippingPrice)
	assert.Equal(t, 36.0, order.TaxPrice)
	assert.Equal(t, 286.0, order.TotalPrice)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 200.0, order.Items[0].LineTotal)
}

func TestOrderService_PlaceOrder_FreeShippingAboveThreshold(t *testing.T) {
	t.Parallel()

	svc := newTestOrderService(t)

	req := validRequest()
	req.OrderItems = []transport.CreateOrderItem{
		{Name: "a", Qty: 1, Price: 200, ProductID: "p1"},
		{Name: "b", Qty: 1, Price: 200, ProductID: "p2"},
		{Name: "c", Qty: 1, Price: 200, ProductID: "p3"},
	}

	order, err := svc.PlaceOrder(context.Background(), "s1", req)
	require.NoError(t, err)
	assert.Equal(t, 600.0, order.ItemsPrice)
	assert.Equal(t, 0.0, order.ShippingPrice)
	assert.Equal(t, 108.0, order.TaxPrice)
	assert.Equal(t, 708.0, order.TotalPrice)
}

func TestOrderService_PlaceOrder_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestOrderService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*transport.CreateOrderRequest)
	}{
		{name: "no items", mutate: func(r *transport.CreateOrderRequest) { r.OrderItems = nil }},
		{name: "missing address", mutate: func(r *transport.CreateOrderRequest) { r.ShippingAddress.Address = "" }},
		{name: "missing city", mutate: func(r *transport.CreateOrderRequest) { r.ShippingAddress.City = "" }},
		{name: "missing postal code", mutate: func(r *transport.CreateOrderRequest) { r.ShippingAddress.PostalCode = "" }},
		{name: "missing product id", mutate: func(r *transport.CreateOrderRequest) { r.OrderItems[0].ProductID = "" }},
		{name: "zero quantity", mutate: func(r *transport.CreateOrderRequest) { r.OrderItems[0].Qty = 0 }},
		{name: "negative price", mutate: func(r *transport.CreateOrderRequest) { r.OrderItems[0].Price = -1 }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := validRequest()
			tt.mutate(&req)

			order, err := svc.PlaceOrder(ctx, "s1", req)
			require.Error(t, err)
			assert.Nil(t, order)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestOrderService_PlaceOrder_DefaultsPaymentMethod(t *testing.T) {
	t.Parallel()

	svc := newTestOrderService(t)

	req := validRequest()
	req.PaymentMethod = ""

	order, err := svc.PlaceOrder(context.Background(), "s1", req)
	require.NoError(t, err)
	assert.Equal(t, "pending", order.PaymentMethod)
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	t.Parallel()

	svc := newTestOrderService(t)

	order, err := svc.GetOrder(context.Background(), 424242)
	require.Error(t, err)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderService_PayOrder(t *testing.T) {
	t.Parallel()

	svc := newTestOrderService(t)
	ctx := context.Background()

	placed, err := svc.PlaceOrder(ctx, "s1", validRequest())
	require.NoError(t, err)

	paid, err := svc.PayOrder(ctx, placed.ID, "card")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, paid.Status)
	assert.NotEmpty(t, paid.PaymentRef)
	require.NotNil(t, paid.PaidAt)
	assert.WithinDuration(t, time.Now().UTC(), *paid.PaidAt, 5*time.Second)
}

func TestOrderService_PayOrder_TwiceIsConflict(t *testing.T) {
	t.Parallel()

	svc := newTestOrderService(t)
	ctx := context.Background()

	placed, err := svc.PlaceOrder(ctx, "s1", validRequest())
	require.NoError(t, err)

	_, err = svc.PayOrder(ctx, placed.ID, "card")
	require.NoError(t, err)

	_, err = svc.PayOrder(ctx, placed.ID, "card")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestOrderService_DeliverOrder_RequiresPaid(t *testing.T) {
	t.Parallel()

	svc := newTestOrderService(t)
	ctx := context.Background()

	placed, err := svc.PlaceOrder(ctx, "s1", validRequest())
	require.NoError(t, err)

	_, err = svc.DeliverOrder(ctx, placed.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.PayOrder(ctx, placed.ID, "card")
	require.NoError(t, err)

	delivered, err := svc.DeliverOrder(ctx, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, delivered.Status)
	require.NotNil(t, delivered.DeliveredAt)
}

func TestOrderService_ListBySession(t *testing.T) {
	t.Parallel()

	svc := newTestOrderService(t)
	ctx := context.Background()

	_, err := svc.PlaceOrder(ctx, "s1", validRequest())
	require.NoError(t, err)
	_, err = svc.PlaceOrder(ctx, "s1", validRequest())
	require.NoError(t, err)
	_, err = svc.PlaceOrder(ctx, "s2", validRequest())
	require.NoError(t, err)

	mine, err := svc.ListBySession(ctx, "s1", 0, 0)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := svc.ListAll(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
