// Package bootstrap wires configuration, storage, the registry and the HTTP
// layer together.
package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/emre/enrollhub/internal/app/controllers"
	"github.com/emre/enrollhub/internal/app/registry"
	appRoutes "github.com/emre/enrollhub/internal/app/routes"
	"github.com/emre/enrollhub/internal/app/store"
	"github.com/emre/enrollhub/internal/config"
	"github.com/emre/enrollhub/internal/db"
	appMiddleware "github.com/emre/enrollhub/internal/middleware"
	pkgAuth "github.com/emre/enrollhub/internal/pkg/auth"
	"github.com/emre/enrollhub/internal/pkg/logger"
	"github.com/emre/enrollhub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Registry             *registry.Registry
	Store                store.Store
	JWTService           *pkgAuth.JWTService
	Sessions             *pkgAuth.SessionRegistry
	AuthController       *appControllers.AuthController
	CourseController     *appControllers.CourseController
	EnrollmentController *appControllers.EnrollmentController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Logger               zerolog.Logger
	Postgres             *db.PostgresDB
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// A .env file in the working directory is applied first when present.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	_ = godotenv.Load()

	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore builds the persistence backend selected by config. The
// returned PostgresDB handle is nil for the csv driver.
func SetupStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (store.Store, *db.PostgresDB, error) {
	switch cfg.Storage.Driver {
	case "csv":
		lgr.Info().Str("dataDir", cfg.Storage.DataDir).Msg("Using csv storage")
		st, err := store.NewCSVStore(cfg.Storage.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return st, nil, nil
	case "postgres":
		lgr.Info().Str("host", cfg.Storage.Postgres.Host).Msg("Using postgres storage")
		database, err := db.NewPostgresDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		st, err := store.NewPostgresStore(ctx, database.Pool)
		if err != nil {
			database.Close()
			return nil, nil, err
		}
		return st, database, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver: %q", cfg.Storage.Driver)
	}
}

// BuildDependencies constructs the registry and all HTTP-facing components.
func BuildDependencies(ctx context.Context, cfg *config.Config, st store.Store, pg *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	reg := registry.New(st, lgr)
	if err := reg.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}

	if err := seed.CreateDefaultCatalog(ctx, reg, lgr); err != nil {
		return nil, fmt.Errorf("failed to seed catalog: %w", err)
	}

	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenExpiration(),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	sessions := pkgAuth.NewSessionRegistry()

	deps := &Dependencies{
		Registry:             reg,
		Store:                st,
		JWTService:           jwtService,
		Sessions:             sessions,
		AuthController:       appControllers.NewAuthController(reg, jwtService, sessions, lgr),
		CourseController:     appControllers.NewCourseController(reg, lgr),
		EnrollmentController: appControllers.NewEnrollmentController(reg, lgr),
		AuthMiddleware:       appMiddleware.NewAuthMiddleware(jwtService, sessions),
		Logger:               lgr,
		Postgres:             pg,
	}
	return deps, nil
}

// SetupRouter builds the gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))

	appRoutes.SetupRouter(
		router,
		deps.AuthController,
		deps.CourseController,
		deps.EnrollmentController,
		deps.AuthMiddleware,
	)

	return router
}
