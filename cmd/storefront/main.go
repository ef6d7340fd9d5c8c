package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	cartapp "github.com/gymkart/storefront/internal/cart/app"
	cartdomain "github.com/gymkart/storefront/internal/cart/domain"
	cartadapter "github.com/gymkart/storefront/internal/cart/infra/adapter"
	"github.com/gymkart/storefront/internal/cart/infra/storage"
	catalogapp "github.com/gymkart/storefront/internal/catalog/app"
	catalogrest "github.com/gymkart/storefront/internal/catalog/infra/rest"
	checkoutapp "github.com/gymkart/storefront/internal/checkout/app"
	checkoutdomain "github.com/gymkart/storefront/internal/checkout/domain"
	orderrest "github.com/gymkart/storefront/internal/order/infra/rest"
	"github.com/gymkart/storefront/internal/session"
	"github.com/gymkart/storefront/pkg/config"
	"github.com/gymkart/storefront/pkg/logger"
	"github.com/gymkart/storefront/pkg/shutdown"
)

// localStorage is the full key/value surface the storefront keeps between
// runs: the cart plus the session token.
type localStorage interface {
	cartapp.Storage
	session.Storage
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Service:   "storefront",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	store, closeStore := mustStorage(cfg, log)
	defer closeStore()

	httpClient := &http.Client{Timeout: 15 * time.Second}

	catalogSvc := catalogapp.NewService(catalogrest.NewClient(cfg.APIBaseURL, httpClient), cfg.CatalogCacheTTL)
	catalogReader := cartadapter.NewCatalogServiceReader(catalogSvc)

	cartStore := cartapp.NewStore(store, 10)
	if err := cartStore.Load(ctx); err != nil {
		log.Error("cart load failed", slog.Any("err", err))
		os.Exit(1)
	}
	// Saved carts can carry stale stock ceilings; refresh is best effort.
	if err := cartStore.RefreshSnapshots(ctx, catalogReader); err != nil {
		log.Warn("snapshot refresh failed", slog.Any("err", err))
	}

	members := session.NewManager(store)
	orders := orderrest.NewClient(cfg.APIBaseURL, httpClient)

	pricing := checkoutdomain.Pricing{ShippingFee: cfg.ShippingFee, TaxRate: cfg.TaxRate}
	flow := checkoutapp.NewFlow(cartStore, orders, members, pricing, cfg.SubmitTimeout)

	cartStore.Subscribe(func(c cartdomain.Cart) {
		log.Debug("cart changed",
			slog.Int("lines", len(c.Items)),
			slog.Int64("subtotal", c.Subtotal()))
	})

	h := newHandler(cartStore, catalogSvc, flow, members, log)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}

func mustStorage(cfg config.Config, log *slog.Logger) (localStorage, func()) {
	if cfg.StoragePath == "" {
		log.Warn("no storage path configured, state is in-memory only")
		return storage.NewMemoryStore(), func() {}
	}

	switch cfg.StorageDriver {
	case "sqlite":
		s, err := storage.OpenSQLite(cfg.StoragePath)
		if err != nil {
			log.Error("sqlite storage open failed", slog.Any("err", err))
			os.Exit(1)
		}
		return s, func() { _ = s.Close() }
	case "file":
		s, err := storage.NewFileStore(cfg.StoragePath)
		if err != nil {
			log.Error("file storage open failed", slog.Any("err", err))
			os.Exit(1)
		}
		return s, func() {}
	default:
		log.Error("unknown storage driver", slog.String("driver", cfg.StorageDriver))
		os.Exit(1)
		return nil, nil
	}
}
