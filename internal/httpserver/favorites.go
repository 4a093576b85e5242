package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vkarpenko/storefront/internal/favorites"
	"github.com/vkarpenko/storefront/internal/logging"
	appmw "github.com/vkarpenko/storefront/internal/middleware"
	"github.com/vkarpenko/storefront/internal/models"
	"github.com/vkarpenko/storefront/internal/transport"
)

type FavoritesHTTP struct {
	Svc *favorites.Service
}

func (h *FavoritesHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "list.favorites")

	items, err := h.Svc.List(ctx, appmw.SessionID(c))
	if err != nil {
		l.Error("list_favorites_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	if items == nil {
		items = []models.Product{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *FavoritesHTTP) Toggle(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "toggle.favorites")

	var req transport.ToggleFavoriteRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("toggle_favorite_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	product := models.Product{
		ProductID:   req.ProductID,
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
	}
	added, items, err := h.Svc.Toggle(ctx, appmw.SessionID(c), product)
	if err != nil {
		if errors.Is(err, favorites.ErrValidation) {
			l.Warn("toggle_favorite_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, "productId required")
		}
		l.Error("toggle_favorite_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	if items == nil {
		items = []models.Product{}
	}

	l.Info("favorite toggled", "product_id", req.ProductID, "favorite", added)
	return c.JSON(http.StatusOK, transport.ToggleFavoriteResponse{Favorite: added, Items: items})
}
