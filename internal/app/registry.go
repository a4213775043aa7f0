package app

import (
	"net/http"

	"go-rrhh/internal/auth"
	"go-rrhh/internal/bootstrap"
	"go-rrhh/internal/diagnosis"
	"go-rrhh/internal/employee"
	"go-rrhh/internal/leave"
	"go-rrhh/internal/messaging/kafka"
	"go-rrhh/internal/middleware"
	"go-rrhh/internal/payroll"
	"go-rrhh/internal/rbac"
	"go-rrhh/internal/rbac/infra"
	"go-rrhh/internal/salarycategory"

	"github.com/bsm/redislock"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func registerModules(
	router *gin.Engine,
	cfg bootstrap.Config,
	deps infrastructure,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(deps.gormDB)
	employeeRepo := employee.NewRepository(deps.gormDB)
	leaveRepo := leave.NewRepository(deps.gormDB)
	outboxRepo := kafka.NewOutboxRepository(deps.sqlDB)
	payrollRepo := payroll.NewRepository(deps.gormDB)
	rbacRepo := rbac.NewRepository(deps.gormDB)
	salaryRepo := salarycategory.NewRepository(deps.gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)

	// --- Services ---
	authService := auth.NewService(authRepo, auth.TokenConfig{
		Secret:     cfg.JWTSecret,
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
	}, logger)
	employeeService := employee.NewService(deps.sqlDB, employeeRepo, deps.rdb, logger)
	leaveService := leave.NewService(deps.sqlDB, leaveRepo,
		leave.WithOutbox(outboxRepo),
		leave.WithLogger(logger),
	)
	payrollService := payroll.NewService(deps.sqlDB, payrollRepo, deps.files, logger)

	salaryOpts := []salarycategory.Option{salarycategory.WithLogger(logger)}
	if deps.rdb != nil {
		salaryOpts = append(salaryOpts, salarycategory.WithLocker(redislock.New(deps.rdb)))
	}
	salaryService := salarycategory.NewService(deps.sqlDB, salaryRepo, salaryOpts...)

	diagnosisService := diagnosis.NewService(deps.rdb, diagnosisProviders(cfg),
		diagnosis.WithTimeout(cfg.CIE10Timeout),
		diagnosis.WithLogger(logger),
	)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, logger)
	diagnosisHandler := diagnosis.NewHandler(diagnosisService)
	employeeHandler := employee.NewHandler(employeeService, logger)
	leaveHandler := leave.NewHandler(leaveService, deps.files, logger)
	payrollHandler := payroll.NewHandler(payrollService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)
	salaryHandler := salarycategory.NewHandler(salaryService, logger)

	guard := middleware.Guard{
		Authenticate: middleware.AuthMiddleware(cfg.JWTSecret, authService),
		RBAC:         rbacService,
	}

	// --- Routes Registration ---
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, guard)
		diagnosis.RegisterRoutes(api, diagnosisHandler, guard)
		employee.RegisterRoutes(api, employeeHandler, guard)
		leave.RegisterRoutes(api, leaveHandler, guard, deps.rdb)
		payroll.RegisterRoutes(api, payrollHandler, guard, deps.rdb)
		rbac.RegisterRoutes(api, rbacHandler, guard)
		salarycategory.RegisterRoutes(api, salaryHandler, guard)
	}

	return nil
}

func diagnosisProviders(cfg bootstrap.Config) []diagnosis.Provider {
	client := &http.Client{Timeout: cfg.CIE10Timeout}

	var providers []diagnosis.Provider
	if cfg.CIE10PrimaryURL != "" {
		providers = append(providers, diagnosis.NewHTTPProvider("primary", cfg.CIE10PrimaryURL, client))
	}
	if cfg.CIE10FallbackURL != "" {
		providers = append(providers, diagnosis.NewHTTPProvider("fallback", cfg.CIE10FallbackURL, client))
	}
	return providers
}
