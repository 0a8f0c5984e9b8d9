package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/httpserver"
	categoryrepo "storefront/internal/repository/category"
	orderrepo "storefront/internal/repository/order"
	productrepo "storefront/internal/repository/product"
	profilerepo "storefront/internal/repository/profile"
	reviewrepo "storefront/internal/repository/review"
	salerepo "storefront/internal/repository/sale"
	sessionrepo "storefront/internal/repository/session"
	tagrepo "storefront/internal/repository/tag"
	cartsvc "storefront/internal/service/cart"
	catalogsvc "storefront/internal/service/catalog"
	checkoutsvc "storefront/internal/service/checkout"
	profilesvc "storefront/internal/service/profile"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	rdb, err := db.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logger.Fatalf("connect to redis: %v", err)
	}
	defer rdb.Close()

	sessionRepo := sessionrepo.NewRedis(rdb, cfg.SessionTTL)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	saleRepo := salerepo.NewPostgres(dbpool)
	categoryRepo := categoryrepo.NewPostgres(dbpool)
	tagRepo := tagrepo.NewPostgres(dbpool)
	reviewRepo := reviewrepo.NewPostgres(dbpool)
	profileRepo := profilerepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool)

	cartService := cartsvc.New(sessionRepo, productRepo, saleRepo, logger)
	catalogService := catalogsvc.New(productRepo, saleRepo, categoryRepo, tagRepo, reviewRepo)
	checkoutService := checkoutsvc.New(orderRepo, cartService, productRepo, logger)
	profileService := profilesvc.New(profileRepo, cfg.JWTSecret, cfg.SessionTTL)

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, rdb, httpserver.Deps{
		Cart:     cartService,
		Catalog:  catalogService,
		Checkout: checkoutService,
		Profiles: profileService,
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
