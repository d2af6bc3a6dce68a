package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/tijaralink/tijaralink-backend/api/routes"
	"github.com/tijaralink/tijaralink-backend/internal/auth"
	"github.com/tijaralink/tijaralink-backend/internal/contracts"
	"github.com/tijaralink/tijaralink-backend/internal/customs"
	"github.com/tijaralink/tijaralink-backend/internal/orders"
	"github.com/tijaralink/tijaralink-backend/internal/quotes"
	"github.com/tijaralink/tijaralink-backend/internal/reviews"
	"github.com/tijaralink/tijaralink-backend/internal/rfq"
	"github.com/tijaralink/tijaralink-backend/internal/shipments"
	"github.com/tijaralink/tijaralink-backend/pkg/config"
	"github.com/tijaralink/tijaralink-backend/pkg/db"
	"github.com/tijaralink/tijaralink-backend/pkg/logger"
	"github.com/tijaralink/tijaralink-backend/pkg/metrics"
	"github.com/tijaralink/tijaralink-backend/pkg/migrate"
	"github.com/tijaralink/tijaralink-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	authService, err := auth.NewService(auth.ServiceParams{
		Repo:           auth.NewRepository(dbClient.DB()),
		Tx:             dbClient,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	rfqService, err := rfq.NewService(rfq.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create rfq service", err)
		os.Exit(1)
	}

	quoteService, err := quotes.NewService(quotes.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create quote service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orders.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	shipmentService, err := shipments.NewService(shipments.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create shipment service", err)
		os.Exit(1)
	}

	contractService, err := contracts.NewService(contracts.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create contract service", err)
		os.Exit(1)
	}

	reviewService, err := reviews.NewService(reviews.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create review service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:          cfg,
			Logger:          logg,
			DBPinger:        dbClient,
			Redis:           redisClient,
			Registry:        registry,
			HTTPMetrics:     httpMetrics,
			AuthService:     authService,
			RfqService:      rfqService,
			QuoteService:    quoteService,
			OrderService:    orderService,
			ShipmentService: shipmentService,
			ContractService: contractService,
			ReviewService:   reviewService,
			CustomsService:  customs.NewService(),
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
