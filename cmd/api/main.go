package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/mercato-app/mercato-backend/api"
	"github.com/mercato-app/mercato-backend/api/routes"
	"github.com/mercato-app/mercato-backend/internal/auth"
	"github.com/mercato-app/mercato-backend/internal/categories"
	"github.com/mercato-app/mercato-backend/internal/orders"
	"github.com/mercato-app/mercato-backend/internal/products"
	"github.com/mercato-app/mercato-backend/internal/reviews"
	"github.com/mercato-app/mercato-backend/internal/users"
	"github.com/mercato-app/mercato-backend/internal/vendors"
	"github.com/mercato-app/mercato-backend/pkg/config"
	"github.com/mercato-app/mercato-backend/pkg/db"
	"github.com/mercato-app/mercato-backend/pkg/logger"
	"github.com/mercato-app/mercato-backend/pkg/metrics"
	"github.com/mercato-app/mercato-backend/pkg/migrate"
	"github.com/mercato-app/mercato-backend/pkg/redis"
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

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	conn := dbClient.DB()

	authService, err := auth.NewService(auth.ServiceParams{
		DB:             dbClient,
		Tokens:         redisClient,
		Notifier:       auth.NewNotifier(cfg.Mailer, logg),
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	userService, err := users.NewService(users.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	vendorService, err := vendors.NewService(vendors.NewRepository(conn), conn)
	if err != nil {
		logg.Error(context.Background(), "failed to create vendors service", err)
		os.Exit(1)
	}

	categoryService, err := categories.NewService(categories.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create categories service", err)
		os.Exit(1)
	}

	productService, err := products.NewService(products.NewRepository(conn), conn)
	if err != nil {
		logg.Error(context.Background(), "failed to create products service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(
		orders.NewRepository(conn),
		users.NewRepository(conn),
		products.NewRepository(conn),
		dbClient,
		conn,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	reviewService, err := reviews.NewService(reviews.NewRepository(conn), orders.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create reviews service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.RouterParams{
		Config:   cfg,
		Logger:   logg,
		DB:       dbClient,
		Redis:    redisClient,
		Registry: registry,
		Metrics:  httpMetrics,

		Resolver: auth.NewDirectory(conn),

		AuthService:     authService,
		UserService:     userService,
		VendorService:   vendorService,
		CategoryService: categoryService,
		ProductService:  productService,
		OrderService:    orderService,
		ReviewService:   reviewService,
	})

	srv := api.NewServer(cfg, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logg.Info(context.Background(), "api listening on "+srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(context.Background(), "server stopped", err)
			stop()
		}
	}()

	<-ctx.Done()
	logg.Info(context.Background(), "shutting down")
	if err := api.Shutdown(srv, 15*time.Second); err != nil {
		logg.Error(context.Background(), "graceful shutdown failed", err)
	}
}
