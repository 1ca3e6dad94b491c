package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bfb-software/foodconnect-backend/api/routes"
	"github.com/bfb-software/foodconnect-backend/internal/auth"
	"github.com/bfb-software/foodconnect-backend/internal/inventory"
	"github.com/bfb-software/foodconnect-backend/internal/kpi"
	"github.com/bfb-software/foodconnect-backend/internal/ledger"
	request "github.com/bfb-software/foodconnect-backend/internal/requests"
	role "github.com/bfb-software/foodconnect-backend/internal/roles"
	user "github.com/bfb-software/foodconnect-backend/internal/users"
	"github.com/bfb-software/foodconnect-backend/pkg/auth/session"
	"github.com/bfb-software/foodconnect-backend/pkg/config"
	"github.com/bfb-software/foodconnect-backend/pkg/db"
	"github.com/bfb-software/foodconnect-backend/pkg/logger"
	"github.com/bfb-software/foodconnect-backend/pkg/metrics"
	"github.com/bfb-software/foodconnect-backend/pkg/migrate"
	"github.com/bfb-software/foodconnect-backend/pkg/redis"
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

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       user.NewRepository(dbClient.DB()),
		RoleRepo:       role.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	itemRepo := inventory.NewRepository(dbClient.DB())
	requestRepo := request.NewRepository(dbClient.DB())
	ledgerRepo := ledger.NewRepository(dbClient.DB())

	inventoryService, err := inventory.NewService(itemRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	requestService, err := request.NewService(requestRepo, itemRepo, ledgerRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create request service", err)
		os.Exit(1)
	}

	kpiService, err := kpi.NewService(itemRepo, requestRepo, ledgerRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create kpi service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
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
			DB:              dbClient,
			Redis:           redisClient,
			SessionChecker:  sessionManager,
			AuthService:     authService,
			RegisterService: registerService,
			Inventory:       inventoryService,
			Requests:        requestService,
			KPIs:            kpiService,
			HTTPMetrics:     httpMetrics,
			PromRegistry:    registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
