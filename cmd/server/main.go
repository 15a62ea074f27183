package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tabletap/tabletap-backend/config"
	"github.com/tabletap/tabletap-backend/internal/app/controller"
	"github.com/tabletap/tabletap-backend/internal/app/repository"
	"github.com/tabletap/tabletap-backend/internal/app/service"
	"github.com/tabletap/tabletap-backend/internal/db"
	"github.com/tabletap/tabletap-backend/internal/middleware"
	"github.com/tabletap/tabletap-backend/internal/router"
	"github.com/tabletap/tabletap-backend/internal/scheduler"
	"github.com/tabletap/tabletap-backend/pkg/logger"
	"github.com/tabletap/tabletap-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: cfg.Server.Environment == "development",
	})

	logger.Info("Starting TABLETAP Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize Redis
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to initialize Redis", err)
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	storeRepo := repository.NewStoreRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	menuRepo := repository.NewMenuRepository(db.GetDB())
	optionRepo := repository.NewOptionRepository(db.GetDB())
	servicePointRepo := repository.NewServicePointRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(redis.GetClient(), cfg.Cart.TTL)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	storeService := service.NewStoreService(storeRepo, redis.GetClient())
	categoryService := service.NewCategoryService(categoryRepo, storeRepo)
	menuService := service.NewMenuService(menuRepo, categoryRepo, storeRepo, storeService)
	optionService := service.NewOptionService(optionRepo, menuRepo, storeRepo)
	servicePointService := service.NewServicePointService(servicePointRepo, storeRepo)
	cartService := service.NewCartService(cartRepo, menuRepo, storeRepo)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	storeController := controller.NewStoreController(storeService, menuService)
	categoryController := controller.NewCategoryController(categoryService)
	menuController := controller.NewMenuController(menuService)
	optionController := controller.NewOptionController(optionService)
	servicePointController := controller.NewServicePointController(servicePointService)
	cartController := controller.NewCartController(cartService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Keep the cached open/closed flags fresh
	availabilityScheduler := scheduler.NewAvailabilityScheduler(storeService, cfg.Scheduler.AvailabilitySpec)
	if err := availabilityScheduler.Start(); err != nil {
		logger.Fatal("Failed to start availability scheduler", err)
	}
	defer availabilityScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		storeController,
		categoryController,
		menuController,
		optionController,
		servicePointController,
		cartController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}

	logger.Info("Server stopped successfully")
}
