package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/consultia/expense-system/internal/api/handler"
	"github.com/consultia/expense-system/internal/api/middleware"
	"github.com/consultia/expense-system/internal/core/domain"
	"github.com/consultia/expense-system/internal/core/service"
	"github.com/consultia/expense-system/internal/infrastructure/db/kv"
	mongoidentity "github.com/consultia/expense-system/internal/infrastructure/db/mongo"
	redisstore "github.com/consultia/expense-system/internal/infrastructure/db/redis"
	"github.com/consultia/expense-system/internal/infrastructure/storage"
	"github.com/consultia/expense-system/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, files *storage.DiskStore, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("expense_system"))

	// --- Dependencies ---
	store := redisstore.NewStore(rdb)
	users := kv.NewUserRepository(store)
	projects := kv.NewProjectRepository(store)
	expenses := kv.NewExpenseRepository(store)
	logos := kv.NewLogoRepository(store)
	identity := mongoidentity.NewIdentityProvider(db)

	authService := service.NewAuthService(users, identity, files, cfg.JWTSecret, cfg.TokenTTL, log)
	projectService := service.NewProjectService(projects, users, log)
	expenseService := service.NewExpenseService(expenses, projects, files, log)
	propagator := service.NewPropagator(users, projects, expenses, identity, log)
	userService := service.NewUserService(users, identity, files, propagator, log)
	logoService := service.NewLogoService(logos, files, log)

	authHandler := handler.NewAuthHandler(authService)
	projectHandler := handler.NewProjectHandler(projectService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	consultantHandler := handler.NewConsultantHandler(userService)
	profileHandler := handler.NewProfileHandler(userService)
	logoHandler := handler.NewLogoHandler(logoService)
	filesHandler := handler.NewFilesHandler(files)

	// --- Public routes ---
	e.POST("/signup", authHandler.Signup)
	e.POST("/login", authHandler.Login)
	e.GET("/logo", logoHandler.Get)
	e.GET("/files/:bucket/:name", filesHandler.Download)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	if !cfg.IsProduction() {
		seedHandler := handler.NewSeedHandler(authService, projectService, log)
		e.POST("/seed", seedHandler.Seed)
	}

	// --- Authenticated routes ---
	auth := e.Group("", middleware.Auth(cfg.JWTSecret))
	managerOnly := middleware.RBAC(domain.RoleManager)

	auth.GET("/session", authHandler.Session)
	auth.PUT("/profile", profileHandler.Update)
	auth.POST("/profile/avatar", profileHandler.SetAvatar)

	auth.GET("/projects", projectHandler.List)
	auth.POST("/projects", projectHandler.Create, managerOnly)
	auth.POST("/projects/:id/assign", projectHandler.Assign, managerOnly)
	auth.PATCH("/projects/:id/status", projectHandler.SetStatus, managerOnly)
	auth.DELETE("/projects/:id", projectHandler.Delete, managerOnly)

	auth.GET("/expenses", expenseHandler.List)
	auth.POST("/expenses", expenseHandler.Create)
	auth.PUT("/expenses/:id", expenseHandler.Review, managerOnly)

	auth.GET("/consultants", consultantHandler.List, managerOnly)
	auth.POST("/consultants", consultantHandler.Create, managerOnly)
	auth.PATCH("/consultants/:email", consultantHandler.Update, managerOnly)
	auth.PATCH("/consultants/:email/password", consultantHandler.ResetPassword, managerOnly)

	auth.POST("/logo", logoHandler.Update, managerOnly)

	return e
}
