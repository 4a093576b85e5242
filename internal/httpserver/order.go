package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vkarpenko/storefront/internal/cart"
	"github.com/vkarpenko/storefront/internal/logging"
	appmw "github.com/vkarpenko/storefront/internal/middleware"
	"github.com/vkarpenko/storefront/internal/service"
	"github.com/vkarpenko/storefront/internal/transport"
)

type OrderHTTP struct {
	Svc  *service.OrderService
	Cart *cart.Service
}

// CreateOrder accepts a full order submission: serialized items plus
// address and payment method. The session cart is not touched here; clearing
// after success is the Checkout flow's job.
func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create.order")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.PlaceOrder(ctx, appmw.SessionID(c), req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_order_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, err.Error())
		}
		l.Error("create_order_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	l.Info("order created", "order_id", order.ID, "total", order.TotalPrice)
	return c.JSON(http.StatusCreated, order)
}

// Checkout serializes the current session cart into an order. The cart is
// cleared only after the order is confirmed created; any failure leaves it
// untouched so the user can retry.
func (h *OrderHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout")
	sessionID := appmw.SessionID(c)

	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("checkout_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	crt, err := h.Cart.Get(ctx, sessionID)
	if err != nil {
		l.Error("checkout_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	if crt.IsEmpty() {
		l.Warn("checkout_error", "status", 400)
		return c.JSON(http.StatusBadRequest, "cart is empty")
	}

	submission := transport.CreateOrderRequest{
		PaymentMethod: crt.PaymentMethod,
	}
	if crt.ShippingAddress != nil {
		submission.ShippingAddress = *crt.ShippingAddress
	}
	if req.ShippingAddress != nil {
		submission.ShippingAddress = *req.ShippingAddress
	}
	if req.PaymentMethod != "" {
		submission.PaymentMethod = req.PaymentMethod
	}
	for _, it := range crt.Snapshot() {
		submission.OrderItems = append(submission.OrderItems, transport.CreateOrderItem{
			Name:      it.Name,
			Qty:       it.Quantity,
			Image:     it.Image,
			Price:     it.UnitPrice,
			ProductID: it.ProductID,
		})
	}

	order, err := h.Svc.PlaceOrder(ctx, sessionID, submission)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("checkout_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, err.Error())
		}
		l.Error("checkout_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	if _, err := h.Cart.Clear(ctx, sessionID); err != nil {
		l.Warn("checkout_cart_clear_failed", "order_id", order.ID, "error", err)
	}

	l.Info("checkout complete", "order_id", order.ID, "total", order.TotalPrice)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.order")

	id, err := parseID(c)
	if err != nil {
		l.Warn("get_order_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid order id")
	}

	order, err := h.Svc.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_order_not_found", "status", 404, "error", err)
			return c.JSON(http.StatusNotFound, "order not found")
		}
		l.Error("get_order_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) ListMine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "list.orders.mine")

	limit, offset := pagination(c)
	orders, err := h.Svc.ListBySession(ctx, appmw.SessionID(c), limit, offset)
	if err != nil {
		l.Error("list_orders_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) ListAll(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "list.orders.all")

	limit, offset := pagination(c)
	orders, err := h.Svc.ListAll(ctx, limit, offset)
	if err != nil {
		l.Error("list_all_orders_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) PayOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "pay.order")

	id, err := parseID(c)
	if err != nil {
		l.Warn("pay_order_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid order id")
	}

	var req transport.PayOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("pay_order_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.PayOrder(ctx, id, req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("pay_order_not_found", "status", 404, "error", err)
			return c.JSON(http.StatusNotFound, "order not found")
		case errors.Is(err, service.ErrConflict):
			l.Warn("pay_order_conflict", "status", 409, "error", err)
			return c.JSON(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrValidation):
			l.Warn("pay_order_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, err.Error())
		default:
			l.Error("pay_order_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, "internal error")
		}
	}

	l.Info("order paid", "order_id", order.ID, "payment_ref", order.PaymentRef)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) DeliverOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "deliver.order")

	id, err := parseID(c)
	if err != nil {
		l.Warn("deliver_order_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid order id")
	}

	order, err := h.Svc.DeliverOrder(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("deliver_order_not_found", "status", 404, "error", err)
			return c.JSON(http.StatusNotFound, "order not found")
		case errors.Is(err, service.ErrConflict):
			l.Warn("deliver_order_conflict", "status", 409, "error", err)
			return c.JSON(http.StatusConflict, err.Error())
		default:
			l.Error("deliver_order_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, "internal error")
		}
	}

	l.Info("order delivered", "order_id", order.ID)
	return c.JSON(http.StatusOK, order)
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func pagination(c echo.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	offset, _ = strconv.Atoi(c.QueryParam("offset"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
