package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/emirkay/schoolregistry/internal/app/auth"
	appControllers "github.com/emirkay/schoolregistry/internal/app/controllers"
	"github.com/emirkay/schoolregistry/internal/app/integrity"
	appMigrations "github.com/emirkay/schoolregistry/internal/app/migrations"
	appRepos "github.com/emirkay/schoolregistry/internal/app/repositories"
	appRoutes "github.com/emirkay/schoolregistry/internal/app/routes"
	appServices "github.com/emirkay/schoolregistry/internal/app/services"
	"github.com/emirkay/schoolregistry/internal/config"
	"github.com/emirkay/schoolregistry/internal/db"
	"github.com/emirkay/schoolregistry/internal/middleware"
	pkgAuth "github.com/emirkay/schoolregistry/internal/pkg/auth"
	"github.com/emirkay/schoolregistry/internal/pkg/logger"
	"github.com/emirkay/schoolregistry/internal/seed"
)

// Dependencies holds the wired application graph.
type Dependencies struct {
	Repos       *appRepos.Repositories
	Engine      *integrity.Engine
	Gate        *appAuth.Gate
	Services    *appServices.Services
	Controllers *appRoutes.Controllers
	JWTService  *pkgAuth.JWTService
	Logger      zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
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

// SetupDatabase establishes the database connection, runs migrations and
// seeds the role table.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, the integrity engine, the
// access gate, services and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)
	deps.Engine = integrity.NewEngine(dbPool)
	deps.Gate = appAuth.NewGate(deps.Repos.UserRepository, deps.Repos.ScopeRepository)

	accessTokenExp, err := time.ParseDuration(cfg.JWT.AccessTokenExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration: %w", err)
	}
	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: accessTokenExp,
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Services = appServices.NewServices(deps.Repos, deps.Engine, deps.JWTService, cfg, lgr)

	deps.Controllers = &appRoutes.Controllers{
		Auth:    appControllers.NewAuthController(deps.Services.AuthService),
		Account: appControllers.NewAccountController(deps.Services.AccountService, deps.Gate),
		Class:   appControllers.NewClassController(deps.Services.ClassService, deps.Services.StudentService, deps.Gate),
		Student: appControllers.NewStudentController(
			deps.Services.StudentService,
			deps.Services.AbsenceService,
			deps.Services.GradeService,
			deps.Services.PaymentService,
			deps.Services.TransportService,
			deps.Gate,
		),
		Parent:     appControllers.NewParentController(deps.Services.ParentService, deps.Gate),
		Accountant: appControllers.NewAccountantController(deps.Services.AccountantService, deps.Gate),
		Subject:    appControllers.NewSubjectController(deps.Services.SubjectService, deps.Gate),
		Absence:    appControllers.NewAbsenceController(deps.Services.AbsenceService, deps.Gate),
		Grade:      appControllers.NewGradeController(deps.Services.GradeService, deps.Gate),
		Payment:    appControllers.NewPaymentController(deps.Services.PaymentService, deps.Gate),
		Transport:  appControllers.NewTransportController(deps.Services.TransportService, deps.Gate),
		Timetable:  appControllers.NewTimetableController(deps.Services.TimetableService, deps.Gate),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())

	appRoutes.SetupRouter(router, deps.Controllers, deps.JWTService)

	return router
}
