package main

import (
	"context"
	"net/http"
	"time"

	_ "unimarket/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"unimarket/internal/auth"
	"unimarket/internal/cache"
	"unimarket/internal/config"
	"unimarket/internal/db"
	"unimarket/internal/handler"
	"unimarket/internal/model"
	"unimarket/internal/repository"
	"unimarket/internal/router"
	"unimarket/internal/service"
	"unimarket/internal/storage"
)

// @title UniMarket API
// @version 0.1.0
// @description Marketplace API with JWT authentication, categories, and item listings.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	gormDB, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Item{},
	); err != nil {
		logger.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(context.Background()); err != nil {
		logger.Warnf("redis unavailable, catalog caching disabled: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	itemRepo := repository.NewItemRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenTTL := time.Duration(cfg.AccessTokenTTL) * time.Minute

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenTTL)
	categoryService := service.NewCategoryService(categoryRepo, cacheClient)
	itemService := service.NewItemService(itemRepo, categoryRepo, storage.NewLocalStore(cfg.UploadDir))

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler()
	categoryHandler := handler.NewCategoryHandler(categoryService)
	itemHandler := handler.NewItemHandler(itemService)
	healthHandler := handler.NewHealthHandler(config.Version)

	e := echo.New()
	e.HideBanner = true

	// Register routes
	router.Register(
		e,
		cfg,
		logger,
		jwtService,
		authService,
		authHandler,
		userHandler,
		categoryHandler,
		itemHandler,
		healthHandler,
	)

	logger.Infof("starting %s server on :%s", cfg.Environment, cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("server start: %v", err)
	}
}
