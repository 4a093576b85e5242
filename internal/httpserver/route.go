package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	appmw "github.com/vkarpenko/storefront/internal/middleware"
)

type Deps struct {
	CartHandler      *CartHTTP
	FavoritesHandler *FavoritesHTTP
	OrderHandler     *OrderHTTP
	JWTSecret        []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")
	api.Use(appmw.Session())

	crt := api.Group("/cart")
	crt.GET("", d.CartHandler.GetCart)
	crt.POST("", d.CartHandler.AddToCart)
	crt.DELETE("", d.CartHandler.ClearCart)
	crt.GET("/summary", d.CartHandler.Summary)
	crt.PUT("/items", d.CartHandler.SetQuantity)
	crt.DELETE("/items/:productId", d.CartHandler.RemoveItem)
	crt.PUT("/shipping", d.CartHandler.SetShipping)
	crt.PUT("/payment-method", d.CartHandler.SetPaymentMethod)

	fav := api.Group("/favorites")
	fav.GET("", d.FavoritesHandler.List)
	fav.POST("/toggle", d.FavoritesHandler.Toggle)

	adminOnly := appmw.RequireAdmin(d.JWTSecret)

	api.POST("/checkout", d.OrderHandler.Checkout)
	api.POST("/orders", d.OrderHandler.CreateOrder)
	api.GET("/orders", d.OrderHandler.ListAll, adminOnly)
	api.GET("/orders/mine", d.OrderHandler.ListMine)
	api.GET("/orders/:id", d.OrderHandler.GetOrder)
	api.PUT("/orders/:id/pay", d.OrderHandler.PayOrder)
	api.PUT("/orders/:id/deliver", d.OrderHandler.DeliverOrder, adminOnly)
}
