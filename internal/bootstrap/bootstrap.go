package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	appControllers "github.com/AriaGT/sistema-libreria/internal/app/controllers"
	appMigrations "github.com/AriaGT/sistema-libreria/internal/app/migrations"
	appRepos "github.com/AriaGT/sistema-libreria/internal/app/repositories"
	"github.com/AriaGT/sistema-libreria/internal/app/repositories/memory"
	appRoutes "github.com/AriaGT/sistema-libreria/internal/app/routes"
	appServices "github.com/AriaGT/sistema-libreria/internal/app/services"
	"github.com/AriaGT/sistema-libreria/internal/config"
	"github.com/AriaGT/sistema-libreria/internal/db"
	appMiddleware "github.com/AriaGT/sistema-libreria/internal/middleware"
	pkgAuth "github.com/AriaGT/sistema-libreria/internal/pkg/auth"
	"github.com/AriaGT/sistema-libreria/internal/pkg/logger"
	"github.com/AriaGT/sistema-libreria/internal/pkg/metrics"
	"github.com/AriaGT/sistema-libreria/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store             appRepos.Store
	JWTService        *pkgAuth.JWTService
	AuthService       *appServices.AuthService
	UserService       *appServices.UserService
	GradeService      appServices.GradeService
	SectionService    appServices.SectionService
	CourseService     appServices.CourseService
	BookService       appServices.BookService
	EnrollmentService appServices.EnrollmentService
	Controllers       appRoutes.Controllers
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:  strings.ToLower(cfg.Logging.Level),
		Format: strings.ToLower(cfg.Logging.Format),
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore opens the configured store. For PostgreSQL it also applies pending migrations.
func SetupStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (appRepos.Store, error) {
	if cfg.Database.Driver == config.DriverMemory {
		lgr.Warn().Msg("Using in-memory store; data is lost on shutdown")
		return memory.NewStore(), nil
	}

	lgr.Info().Str("host", cfg.Database.Host).Str("dbname", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database.Pool).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return appRepos.NewPostgresStore(database), nil
}

// BuildDependencies initializes services, middleware and controllers on top of store.
func BuildDependencies(cfg *config.Config, store appRepos.Store, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Store: store, Logger: lgr}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenTTL(),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	hasher := pkgAuth.NewBcryptHasher(cfg.Security.BcryptCost)

	deps.UserService = appServices.NewUserService(store, hasher)
	deps.AuthService = appServices.NewAuthService(store, hasher, deps.JWTService)
	deps.GradeService = appServices.NewGradeService(store)
	deps.SectionService = appServices.NewSectionService(store)
	deps.CourseService = appServices.NewCourseService(store)
	deps.BookService = appServices.NewBookService(store)
	deps.EnrollmentService = appServices.NewEnrollmentService(store)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = appRoutes.Controllers{
		Auth:       appControllers.NewAuthController(deps.AuthService, logger.WithComponent("auth")),
		User:       appControllers.NewUserController(deps.UserService, logger.WithComponent("users")),
		Grade:      appControllers.NewGradeController(deps.GradeService),
		Section:    appControllers.NewSectionController(deps.SectionService),
		Course:     appControllers.NewCourseController(deps.CourseService),
		Book:       appControllers.NewBookController(deps.BookService),
		Enrollment: appControllers.NewEnrollmentController(deps.EnrollmentService),
		Health:     appControllers.NewHealthController(store),
	}

	return deps
}

// SeedDefaults creates the configured default data when seeding is enabled
func SeedDefaults(ctx context.Context, cfg *config.Config, deps *Dependencies) {
	if !cfg.Seed.Enabled {
		return
	}
	opts := seed.Options{
		AdminFullName: cfg.Seed.AdminFullName,
		AdminEmail:    cfg.Seed.AdminEmail,
		AdminPassword: cfg.Seed.AdminPassword,
		Grades:        cfg.Seed.Grades,
	}
	if err := seed.CreateDefaultData(ctx, deps.UserService, deps.GradeService, opts, deps.Logger); err != nil {
		deps.Logger.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", appMiddleware.HeaderRequestID},
		ExposeHeaders: []string{appMiddleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		deps.Logger.Info().Msg("Setting Gin mode to release")
	}

	router := gin.New()
	router.Use(appMiddleware.Recovery())
	if cfg.Tracing.Enabled {
		router.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	router.Use(appMiddleware.RequestLogger())
	router.Use(cors.New(corsConfig(cfg.Server.CORSOrigins)))
	router.Use(metrics.Middleware())

	router.GET("/metrics", metrics.Handler())
	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}
