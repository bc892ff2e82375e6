package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/cartoolsbd/storefront/internal/cart"
	"github.com/cartoolsbd/storefront/internal/config"
	"github.com/cartoolsbd/storefront/internal/db"
	"github.com/cartoolsbd/storefront/internal/events"
	"github.com/cartoolsbd/storefront/internal/httpserver"
	"github.com/cartoolsbd/storefront/internal/logging"
	loggingmw "github.com/cartoolsbd/storefront/internal/middleware/logging"
	"github.com/cartoolsbd/storefront/internal/repo"
	"github.com/cartoolsbd/storefront/internal/search"
	"github.com/cartoolsbd/storefront/internal/service"
	"github.com/cartoolsbd/storefront/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	config.MustNonEmptyBytes(cfg.RefreshSecret, "REFRESH_SECRET")

	logger := logging.New(config.EnvDefault("LOG_LEVEL", "info"))

	ctx := context.Background()
	gormDB, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	var publisher events.Publisher = events.Nop{}
	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers)
		publisher = producer
	} else {
		logger.Warn("KAFKA_BROKERS not set, domain events disabled")
	}

	images, err := storage.NewImageStore(cfg.ImageDir, cfg.PublicBaseURL)
	if err != nil {
		log.Fatalf("image store init: %v", err)
	}

	productRepo := &repo.ProductRepo{DB: gormDB}
	orderRepo := &repo.OrderRepo{DB: gormDB}
	contactRepo := &repo.ContactRepo{DB: gormDB}
	userRepo := &repo.UserRepo{DB: gormDB}
	tokenRepo := &repo.RefreshTokenRepo{DB: gormDB}

	productsSvc := &service.ProductsService{
		Repo:   productRepo,
		Images: images,
		Events: publisher,
	}

	var searchHandler *httpserver.SearchHandler
	var indexer *search.Indexer
	if cfg.ESURL != "" {
		esClient, err := search.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch init: %v", err)
		}
		indexer = search.NewIndexer(esClient, cfg.ESIndex, productRepo, logger)
		productsSvc.Index = indexer
		searchHandler = &httpserver.SearchHandler{ES: esClient, Index: cfg.ESIndex}
		indexer.NotifyChanged()
	} else {
		logger.Warn("ES_URL not set, product search disabled")
	}

	authSvc := &service.AuthService{
		Users:         userRepo,
		Tokens:        tokenRepo,
		JWTSecret:     cfg.JWTSecret,
		RefreshSecret: cfg.RefreshSecret,
	}

	cartStore := cart.NewStore()

	deps := httpserver.Deps{
		Catalog:  &httpserver.CatalogHandler{Products: productsSvc},
		Cart:     &httpserver.CartHandler{Store: cartStore, Products: productsSvc},
		Checkout: &httpserver.CheckoutHandler{Store: cartStore, Checkout: &service.CheckoutService{Orders: orderRepo, Events: publisher}},
		Products: &httpserver.ProductsHandler{Svc: productsSvc},
		Orders:   &httpserver.OrdersHandler{Svc: &service.OrdersService{Repo: orderRepo, Events: publisher}},
		Contacts: &httpserver.ContactsHandler{Svc: &service.ContactsService{Repo: contactRepo, Events: publisher}},
		Auth:     &httpserver.AuthHandler{Svc: authSvc},
		Stats:    &httpserver.StatsHandler{Svc: &service.StatsService{Orders: orderRepo, Products: productRepo, Contacts: contactRepo}},
		Search:   searchHandler,
		Session:  &httpserver.SessionMiddleware{Auth: authSvc, JWTSecret: cfg.JWTSecret},
		ImageDir: images.Dir(),
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	httpserver.Register(e, &deps)

	pruneDone := make(chan struct{})
	go func() {
		t := time.NewTicker(time.Hour)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				if n := cartStore.Prune(); n > 0 {
					logger.Info("pruned idle carts", "count", n)
				}
			case <-pruneDone:
				return
			}
		}
	}()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()
	logger.Info("server started", "port", cfg.ServerPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	close(pruneDone)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if indexer != nil {
		indexer.Stop()
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	} else {
		logger.Error("db unwrap error", "error", err)
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
