package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finanzas/internal/advisor"
	"finanzas/internal/config"
	"finanzas/internal/database"
	"finanzas/internal/gateway"
	"finanzas/internal/handlers"
	"finanzas/internal/logger"
	"finanzas/internal/middleware"
	"finanzas/internal/reminders"
	"finanzas/internal/services"
	"finanzas/internal/session"
	"finanzas/internal/state"
	"finanzas/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "finanzas/internal/docs" // Import swagger docs
)

// @title           Finanzas API
// @version         1.0
// @description     Finanzas is a personal finance tracker for income, expenses, debts and savings goals, with dashboards, a payment calendar and AI advice.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey InternalAPIKey
// @in header
// @name X-API-Key

const shutdownTimeout = 10 * time.Second

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.InitWithLevel(appConfig.Env, appConfig.LogLevel)
	log := logger.Get()

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	db := dbManager.DB()
	gw := gateway.New(db)
	registry := state.NewRegistry(gw, state.Options{PersistTimeout: appConfig.StatePersistTimeout})
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	sessions := session.NewManager(session.NewGormStore(db))
	adv := advisor.New(appConfig, &http.Client{Timeout: appConfig.AdvisorTimeout})
	if !adv.Configured() {
		log.Warn("Advisor API key not set; advice endpoints will return ADVISOR_NOT_CONFIGURED")
	}

	runner := reminders.NewRunner(gw, reminders.LogNotifier{}, appConfig.ReminderWindowDays)
	scheduler, err := reminders.Schedule(appConfig.ReminderSchedule, runner, time.Minute)
	if err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", appConfig.ReminderSchedule, err)
	}
	scheduler.Start()
	defer func() { <-scheduler.Stop().Done() }()

	syncTimeout := appConfig.StateSyncTimeout
	authHandler := handlers.NewAuthHandler(userService, auditService, sessions, registry)
	sessionHandler := handlers.NewSessionHandler(sessions)
	transactionHandler := handlers.NewTransactionHandler(registry, auditService, syncTimeout)
	debtHandler := handlers.NewDebtHandler(registry, auditService, syncTimeout)
	goalHandler := handlers.NewGoalHandler(registry, auditService, syncTimeout)
	tagHandler := handlers.NewTagHandler(registry, auditService, syncTimeout)
	insightsHandler := handlers.NewInsightsHandler(registry, appConfig.ReminderWindowDays)
	advisorHandler := handlers.NewAdvisorHandler(registry, adv)
	activityHandler := handlers.NewActivityHandler(auditService)
	internalHandler := handlers.NewInternalHandler(runner)

	validator.Register()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Per-browser session state, keyed by X-Client-ID
	sessionRoutes := v1.Group("/session")
	sessionRoutes.Use(middleware.ClientID())
	sessionRoutes.GET("", sessionHandler.GetSession)
	sessionRoutes.PUT("/theme", sessionHandler.UpdateTheme)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/profile", authHandler.GetProfile)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	debts := protected.Group("/debts")
	debts.POST("", debtHandler.CreateDebt)
	debts.GET("", debtHandler.GetDebts)
	debts.DELETE("/:id", debtHandler.DeleteDebt)
	debts.POST("/:id/payments", debtHandler.PayDebt)

	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.POST("/:id/contributions", goalHandler.ContributeToGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	tags := protected.Group("/tags")
	tags.GET("", tagHandler.GetTags)
	tags.POST("", tagHandler.CreateTag)

	protected.GET("/dashboard", insightsHandler.GetDashboard)
	protected.GET("/calendar", insightsHandler.GetCalendar)
	protected.GET("/reports", insightsHandler.GetReport)
	protected.GET("/reminders", insightsHandler.GetReminders)

	advice := protected.Group("/advisor")
	advice.POST("/snapshot", advisorHandler.SnapshotAdvice)
	advice.POST("/period", advisorHandler.PeriodAdvice)

	protected.GET("/activity", activityHandler.GetActivity)

	// Internal routes for schedulers and ops tooling
	internal := v1.Group("/internal")
	internal.Use(middleware.InternalAuthMiddleware(appConfig.InternalAPIKey))
	internal.POST("/reminders/run", internalHandler.RunReminders)

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting Finanzas backend server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Infof("Received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warnf("server shutdown error: %v", err)
	}

	// Let background saves finish before the database closes.
	registry.Drain()
	log.Info("Server stopped")
	return nil
}
