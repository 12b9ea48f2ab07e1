package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/minhvodev/eatzy-gateway/api/routes"
	"github.com/minhvodev/eatzy-gateway/internal/address"
	cartsvc "github.com/minhvodev/eatzy-gateway/internal/cart"
	"github.com/minhvodev/eatzy-gateway/internal/catalog"
	checkoutsvc "github.com/minhvodev/eatzy-gateway/internal/checkout"
	"github.com/minhvodev/eatzy-gateway/internal/orders"
	"github.com/minhvodev/eatzy-gateway/internal/selection"
	"github.com/minhvodev/eatzy-gateway/internal/shipping"
	"github.com/minhvodev/eatzy-gateway/pkg/backend"
	"github.com/minhvodev/eatzy-gateway/pkg/config"
	"github.com/minhvodev/eatzy-gateway/pkg/logger"
	"github.com/minhvodev/eatzy-gateway/pkg/maps"
	"github.com/minhvodev/eatzy-gateway/pkg/metrics"
	"github.com/minhvodev/eatzy-gateway/pkg/momo"
	"github.com/minhvodev/eatzy-gateway/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "gateway"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "gateway",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	backendClient, err := backend.New(cfg.Backend)
	if err != nil {
		logg.Error(context.Background(), "failed to build backend client", err)
		os.Exit(1)
	}

	mapsClient, err := maps.NewClient(cfg.Maps.APIKey,
		maps.WithBaseURL(cfg.Maps.BaseURL),
		maps.WithHTTPClient(&http.Client{Timeout: cfg.Maps.Timeout}),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to build maps client", err)
		os.Exit(1)
	}

	momoClient, err := momo.NewClient(cfg.Momo)
	if err != nil {
		logg.Error(context.Background(), "failed to build momo client", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	cartClient, err := cartsvc.NewClient(backendClient)
	if err != nil {
		logg.Error(context.Background(), "failed to build cart client", err)
		os.Exit(1)
	}
	cartService, err := cartsvc.NewService(cartClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build cart service", err)
		os.Exit(1)
	}

	catalogClient, err := catalog.NewClient(backendClient)
	if err != nil {
		logg.Error(context.Background(), "failed to build catalog client", err)
		os.Exit(1)
	}
	catalogService := catalog.NewService(catalogClient, redisClient, cfg.Cache.RestaurantTTL, logg)

	addressClient, err := address.NewClient(backendClient)
	if err != nil {
		logg.Error(context.Background(), "failed to build address client", err)
		os.Exit(1)
	}

	orderClient, err := orders.NewClient(backendClient)
	if err != nil {
		logg.Error(context.Background(), "failed to build order client", err)
		os.Exit(1)
	}

	selectionStore := selection.NewStore()
	calculator := shipping.NewCalculator(catalogService, mapsClient, redisClient, checkoutMetrics, logg)
	labelResolver := address.NewResolver(mapsClient, logg)
	orchestrator := checkoutsvc.NewOrchestrator(
		cartService,
		selectionStore,
		calculator,
		addressClient,
		labelResolver,
		orderClient,
		momoClient,
		checkoutMetrics,
		logg,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting checkout gateway")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			backendClient,
			redisClient,
			cartService,
			selectionStore,
			orchestrator,
			promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "gateway stopped unexpectedly", err)
		os.Exit(1)
	}
}
