package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/dvillela/ecommerce-api/internal/config"
	delivery "github.com/dvillela/ecommerce-api/internal/delivery/http"
	"github.com/dvillela/ecommerce-api/internal/repository/gormstore"
	"github.com/dvillela/ecommerce-api/internal/service"
)

const serviceName = "ecommerce-api"

func init() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(log.InfoLevel)
}

func main() {
	cfg := config.Load()

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	store, err := gormstore.Open(cfg.DatabaseURL, cfg.DBBulkheadSize)
	if err != nil {
		log.Fatal("Failed to open store: ", err)
	}

	repos := store.Repositories()
	productService := service.NewProductService(repos.Products)
	orderService := service.NewOrderService(repos, store)

	handler := delivery.NewHandler(productService, orderService, store.Circuit(), store.Bulkhead())
	router := handler.Router(serviceName)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		log.WithField("port", cfg.Port).Info("E-commerce API starting")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: ", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Shutdown error: ", err)
	}
}
