package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/vkarpenko/storefront/internal/cart"
	"github.com/vkarpenko/storefront/internal/config"
	"github.com/vkarpenko/storefront/internal/events"
	"github.com/vkarpenko/storefront/internal/favorites"
	"github.com/vkarpenko/storefront/internal/httpserver"
	"github.com/vkarpenko/storefront/internal/logging"
	appmw "github.com/vkarpenko/storefront/internal/middleware"
	"github.com/vkarpenko/storefront/internal/payment"
	"github.com/vkarpenko/storefront/internal/repo"
	"github.com/vkarpenko/storefront/internal/service"
	"github.com/vkarpenko/storefront/internal/storage"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.ServiceName, cfg.LogLevel)

	e := echo.New()
	e.HideBanner = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(appmw.RequestLogger(logger))
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var cartStore cart.Store
	var favStore favorites.Store
	if cfg.RedisAddr != "" {
		client := config.NewRedisClient(cfg)
		cartStore = storage.NewRedisCartStore(client, cfg.SessionTTL)
		favStore = storage.NewRedisFavoritesStore(client, cfg.SessionTTL)
		defer client.Close()
	} else {
		logger.Warn("REDIS_ADDR not set, session state is held in memory only")
		cartStore = storage.NewMemoryCartStore()
		favStore = storage.NewMemoryFavoritesStore()
	}

	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers, cfg.OrderEventTopic)
		defer producer.Close()
	}

	cartService := cart.NewService(cartStore)
	favoritesService := favorites.NewService(favStore)
	orderService := &service.OrderService{
		Repo:    &repo.GormRepo{DB: db},
		Gateway: payment.NewProcessor(cfg.PaymentGatewayDelay),
		Events:  producer,
	}

	httpserver.Register(e, &httpserver.Deps{
		CartHandler:      &httpserver.CartHTTP{Svc: cartService},
		FavoritesHandler: &httpserver.FavoritesHTTP{Svc: favoritesService},
		OrderHandler:     &httpserver.OrderHTTP{Svc: orderService, Cart: cartService},
		JWTSecret:        cfg.JWTSecret,
	})

	go func() {
		logger.Info("starting storefront", "port", cfg.ServerPort)
		if err := e.Start(fmt.Sprintf(":%d", cfg.ServerPort)); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Info("server stopped")
}
