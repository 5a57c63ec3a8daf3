package main

import (
	"net/http"

	"github.com/angelcamposm/atlas-catalog-sub002/internal/catalog/handler"
	"github.com/angelcamposm/atlas-catalog-sub002/internal/catalog/registry"
	"github.com/angelcamposm/atlas-catalog-sub002/internal/catalog/repository"
	"github.com/angelcamposm/atlas-catalog-sub002/internal/catalog/secret"
	"github.com/angelcamposm/atlas-catalog-sub002/internal/metrics"
	mid "github.com/angelcamposm/atlas-catalog-sub002/internal/middleware"
	"github.com/angelcamposm/atlas-catalog-sub002/pkg/config"
	"github.com/angelcamposm/atlas-catalog-sub002/pkg/database"
	"github.com/angelcamposm/atlas-catalog-sub002/pkg/jwtutil"
	"github.com/angelcamposm/atlas-catalog-sub002/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	appConfig, err := config.Load("catalog-service")
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       appConfig.Log.Level,
		Environment: appConfig.Server.Env,
		ServiceName: appConfig.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting catalog-service", appConfig.LogConfig()...)

	// Initialize JWT utility
	jwtUtil := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
		SigningKey:      appConfig.JWT.SigningKey,
		ExpirationHours: appConfig.JWT.ExpirationHours,
	})
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	httpMetrics := metrics.NewHTTPMetrics(appConfig.Metrics.Prefix)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize credential encryption
	encryptor, err := secret.NewEncryptor(appConfig.Crypto.CredentialKey)
	if err != nil {
		log.Fatal("Failed to initialize credential encryption", zap.Error(err))
	}

	// Initialize database
	db, err := database.InitDB(&appConfig.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Register entities and migrate their tables
	reg := registry.New(encryptor)
	if err := database.MigrateModels(reg.Models()...); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database migrations completed",
		zap.Int("entities", len(reg.All())))

	repo := repository.New(db)

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(httpMetrics.Middleware())
	e.Use(mid.ActorMiddleware(jwtUtil))

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(metrics.GetPrometheusHandler()))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Entity CRUD routes
	handler.RegisterRoutes(e, reg, repo, encryptor, httpMetrics)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
