package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/orderform-demo/internal/config"
	"github.com/nikolayk812/orderform-demo/internal/handlers"
	"github.com/nikolayk812/orderform-demo/internal/port"
	"github.com/nikolayk812/orderform-demo/internal/repository"
	"github.com/nikolayk812/orderform-demo/internal/service"
	"github.com/nikolayk812/orderform-demo/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting order form server",
		"address", cfg.Addr(),
		"currency", cfg.Currency.String(),
		"storage", storageName(cfg),
		"log_level", cfg.LogLevel,
	)

	products, orders, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("openStore: %w", err)
	}
	defer closeStore()

	if cfg.Database.SeedDefault || cfg.Database.URL == "" {
		added, err := repository.SeedProducts(ctx, products, repository.DefaultProducts(cfg.Currency))
		if err != nil {
			return fmt.Errorf("repository.SeedProducts: %w", err)
		}
		log.Info("product catalog seeded", "added", added)
	}

	forms, err := service.NewFormService(products, cfg.Currency)
	if err != nil {
		return fmt.Errorf("service.NewFormService: %w", err)
	}

	orderService, err := service.NewOrderService(forms, products, orders)
	if err != nil {
		return fmt.Errorf("service.NewOrderService: %w", err)
	}

	templates, err := handlers.ParseTemplates()
	if err != nil {
		return fmt.Errorf("handlers.ParseTemplates: %w", err)
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestTimeout: 60 * time.Second,
	}, forms, orderService, templates, log)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("srv.ListenAndServe: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown: %w", err)
	}

	return nil
}

// openStore connects to Postgres when DATABASE_URL is set and falls back to memory otherwise.
func openStore(ctx context.Context, cfg *config.Config) (port.ProductRepository, port.OrderRepository, func(), error) {
	if cfg.Database.URL == "" {
		return repository.NewInMemoryProduct(), repository.NewInMemoryOrder(), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, nil, fmt.Errorf("pool.Ping: %w", err)
	}

	products, err := repository.NewProduct(pool)
	if err != nil {
		pool.Close()
		return nil, nil, nil, fmt.Errorf("repository.NewProduct: %w", err)
	}

	orders, err := repository.NewOrder(pool)
	if err != nil {
		pool.Close()
		return nil, nil, nil, fmt.Errorf("repository.NewOrder: %w", err)
	}

	return products, orders, pool.Close, nil
}

func storageName(cfg *config.Config) string {
	if cfg.Database.URL == "" {
		return "memory"
	}
	return "postgres"
}
