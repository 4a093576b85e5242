package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/vkarpenko/storefront/internal/cart"
	"github.com/vkarpenko/storefront/internal/events"
	"github.com/vkarpenko/storefront/internal/logging"
	"github.com/vkarpenko/storefront/internal/models"
	"github.com/vkarpenko/storefront/internal/payment"
	"github.com/vkarpenko/storefront/internal/pricing"
	"github.com/vkarpenko/storefront/internal/repo"
	"github.com/vkarpenko/storefront/internal/transport"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
	ErrConflict   = errors.New("conflict")   // 409
)

const defaultPaymentMethod = "pending"

// OrderService turns cart snapshots into persisted orders and drives the
// pay/deliver lifecycle. Events is optional; a nil producer disables
// publishing.
type OrderService struct {
	Repo    *repo.GormRepo
	Gateway *payment.Processor
	Events  *events.Producer
}

// PlaceOrder validates the submission, recomputes all totals from the items
// and persists the order as pending. Client-sent prices are ignored: the
// recomputed quote is authoritative. Nothing is mutated on a validation
// failure so the caller can fix the request and retry.
func (s *OrderService) PlaceOrder(ctx context.Context, sessionID string, req transport.CreateOrderRequest) (*models.Order, error) {
	if len(req.OrderItems) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}
	if req.ShippingAddress.Address == "" || req.ShippingAddress.City == "" || req.ShippingAddress.PostalCode == "" {
		return nil, fmt.Errorf("%w: address, city and postal code required", ErrValidation)
	}

	lines := make([]cart.LineItem, 0, len(req.OrderItems))
	items := make([]models.OrderItem, 0, len(req.OrderItems))
	for i := range req.OrderItems {
		it := req.OrderItems[i]
		if it.ProductID == "" {
			return nil, fmt.Errorf("%w: product id required", ErrValidation)
		}
		if it.Qty == 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}
		if it.Price < 0 {
			return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
		}

		lines = append(lines, cart.LineItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Image:     it.Image,
			UnitPrice: it.Price,
			Quantity:  it.Qty,
		})
		items = append(items, models.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Image:     it.Image,
			UnitPrice: it.Price,
			Quantity:  it.Qty,
			LineTotal: pricing.Round2(it.Price * float64(it.Qty)),
		})
	}

	quote := pricing.Compute(lines)

	method := req.PaymentMethod
	if method == "" {
		method = defaultPaymentMethod
	}

	order := &models.Order{
		SessionID:       sessionID,
		Status:          models.OrderStatusPending,
		PaymentMethod:   method,
		ShippingAddress: req.ShippingAddress,
		ItemsPrice:      quote.ItemsTotal,
		ShippingPrice:   quote.ShippingFee,
		TaxPrice:        quote.Tax,
		TotalPrice:      quote.GrandTotal,
		Items:           items,
	}

	created, err := s.Repo.CreateOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeOrderCreated, created)
	return created, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ListBySession(ctx context.Context, sessionID string, limit, offset int) ([]models.Order, error) {
	return s.Repo.ListBySession(ctx, sessionID, normalizeLimit(limit), offset)
}

func (s *OrderService) ListAll(ctx context.Context, limit, offset int) ([]models.Order, error) {
	return s.Repo.ListAll(ctx, normalizeLimit(limit), offset)
}

// PayOrder charges the mock gateway for the order total and marks the order
// paid. Paying a non-pending order is a conflict; the charge runs before the
// transition, so a lost race leaves a settled mock charge and no state
// change, which the mock gateway does not care about.
func (s *OrderService) PayOrder(ctx context.Context, id uint, method string) (*models.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPending {
		return nil, fmt.Errorf("order %d is %s: %w", id, order.Status, ErrConflict)
	}

	if method == "" {
		method = order.PaymentMethod
	}
	receipt, err := s.Gateway.Charge(ctx, order.TotalPrice, method)
	if err != nil {
		if errors.Is(err, payment.ErrInvalidAmount) {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return nil, err
	}

	ok, err := s.Repo.MarkPaid(ctx, id, receipt.Reference, receipt.PaidAt)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("order %d already paid: %w", id, ErrConflict)
	}

	order, err = s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.TypeOrderPaid, order)
	return order, nil
}

// DeliverOrder marks a paid order delivered. Admin-only at the transport
// layer.
func (s *OrderService) DeliverOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPaid {
		return nil, fmt.Errorf("order %d is %s, must be paid: %w", id, order.Status, ErrConflict)
	}

	ok, err := s.Repo.MarkDelivered(ctx, id, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("order %d already delivered: %w", id, ErrConflict)
	}

	order, err = s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.TypeOrderDelivered, order)
	return order, nil
}

func (s *OrderService) publish(ctx context.Context, eventType string, order *models.Order) {
	if s.Events == nil {
		return
	}
	ev := events.OrderEvent{
		Type:      eventType,
		OrderID:   order.ID,
		SessionID: order.SessionID,
		Total:     order.TotalPrice,
		At:        time.Now().UTC(),
	}
	if err := s.Events.Publish(ctx, strconv.FormatUint(uint64(order.ID), 10), ev); err != nil {
		logging.FromContext(ctx).Warn("order event publish failed", "type", eventType, "order_id", order.ID, "error", err)
	}
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 20
	}
	return limit
}
