package main

import (
	"log"
	"net/http"
	"os"

	"practicas/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"practicas/internal/auth"
	"practicas/internal/cache"
	"practicas/internal/config"
	"practicas/internal/db"
	"practicas/internal/handler"
	"practicas/internal/model"
	"practicas/internal/remote"
	"practicas/internal/repository"
	"practicas/internal/router"
	"practicas/internal/service"
)

// @title Practicas API
// @version 1.0
// @description Internship placement platform: offers, applications and the company/admin review workflow.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		for _, table := range []interface{}{
			&model.Application{},
			&model.Offer{},
			&model.User{},
		} {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Offer{},
		&model.Application{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(gormDB)
	offerRepo := repository.NewOfferRepository(gormDB)
	applicationRepo := repository.NewApplicationRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Authentication always runs locally; tokens are owned by this server.
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)

	// Data operations go through one provider, chosen once at startup:
	// either the local database or an upstream API with the same contract.
	var (
		offerService       service.OfferService
		applicationService service.ApplicationService
		userService        service.UserService
		metricsService     service.MetricsService
		seedHandler        *handler.SeedHandler
	)
	switch cfg.DataProvider {
	case config.ProviderRemote:
		log.Printf("Using remote data provider: %s", cfg.RemoteAPIBase)
		client := remote.New(cfg.RemoteAPIBase, cfg.RemoteAPIToken)
		offerService = client
		applicationService = client
		userService = client
		metricsService = client
	default:
		offerService = service.NewOfferService(offerRepo, userRepo, cacheClient)
		applicationService = service.NewApplicationService(applicationRepo, offerRepo, userRepo, cacheClient)
		userService = service.NewUserService(userRepo)
		metricsService = service.NewMetricsService(userRepo, offerRepo, applicationRepo, cacheClient)
		seedHandler = handler.NewSeedHandler(service.NewSeedService(gormDB))
	}

	authHandler := handler.NewAuthHandler(authService)
	offerHandler := handler.NewOfferHandler(offerService)
	applicationHandler := handler.NewApplicationHandler(applicationService)
	adminHandler := handler.NewAdminHandler(userService, metricsService)

	router.Register(
		e,
		cfg,
		authHandler,
		offerHandler,
		applicationHandler,
		adminHandler,
		seedHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
