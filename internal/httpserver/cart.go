package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vkarpenko/storefront/internal/cart"
	"github.com/vkarpenko/storefront/internal/logging"
	appmw "github.com/vkarpenko/storefront/internal/middleware"
	"github.com/vkarpenko/storefront/internal/models"
	"github.com/vkarpenko/storefront/internal/pricing"
	"github.com/vkarpenko/storefront/internal/transport"
)

type CartHTTP struct {
	Svc *cart.Service
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.cart")

	crt, err := h.Svc.Get(ctx, appmw.SessionID(c))
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, crt)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "add.cart")

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	product := models.Product{
		ProductID:   req.ProductID,
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
	}
	crt, err := h.Svc.Add(ctx, appmw.SessionID(c), product, req.Qty)
	if err != nil {
		if errors.Is(err, cart.ErrValidation) {
			l.Warn("add_to_cart_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, "qty>0 and productId required")
		}
		l.Error("add_to_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	l.Info("item added to cart", "product_id", req.ProductID, "qty", req.Qty)
	return c.JSON(http.StatusCreated, crt)
}

func (h *CartHTTP) SetQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "set.quantity.cart")

	var req transport.SetQuantityRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("set_quantity_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	crt, err := h.Svc.SetQuantity(ctx, appmw.SessionID(c), req.ProductID, req.Qty)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrValidation):
			l.Warn("set_quantity_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, "productId required")
		case errors.Is(err, cart.ErrItemMissing):
			l.Warn("set_quantity_not_found", "status", 404, "error", err)
			return c.JSON(http.StatusNotFound, "item not found")
		default:
			l.Error("set_quantity_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, "internal error")
		}
	}
	return c.JSON(http.StatusOK, crt)
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "remove.item.cart")

	crt, err := h.Svc.Remove(ctx, appmw.SessionID(c), c.Param("productId"))
	if err != nil {
		if errors.Is(err, cart.ErrValidation) {
			l.Warn("remove_item_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, "productId required")
		}
		l.Error("remove_item_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, crt)
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "clear.cart")

	if _, err := h.Svc.Clear(ctx, appmw.SessionID(c)); err != nil {
		l.Error("clear_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	l.Info("cart cleared")
	return c.JSON(http.StatusOK, "cart cleared")
}

func (h *CartHTTP) SetShipping(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "set.shipping.cart")

	var req models.Address
	if err := c.Bind(&req); err != nil {
		l.Warn("set_shipping_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	crt, err := h.Svc.SetShippingAddress(ctx, appmw.SessionID(c), req)
	if err != nil {
		if errors.Is(err, cart.ErrValidation) {
			l.Warn("set_shipping_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, "address, city and postalCode required")
		}
		l.Error("set_shipping_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, crt)
}

func (h *CartHTTP) SetPaymentMethod(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "set.payment.cart")

	var req transport.SetPaymentMethodRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("set_payment_method_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	crt, err := h.Svc.SetPaymentMethod(ctx, appmw.SessionID(c), req.PaymentMethod)
	if err != nil {
		if errors.Is(err, cart.ErrValidation) {
			l.Warn("set_payment_method_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, "paymentMethod required")
		}
		l.Error("set_payment_method_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, crt)
}

// Summary recomputes the pricing quote from the current cart. Totals are
// derived on every read, never cached.
func (h *CartHTTP) Summary(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "summary.cart")

	crt, err := h.Svc.Get(ctx, appmw.SessionID(c))
	if err != nil {
		l.Error("cart_summary_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, pricing.Compute(crt.Items))
}
