package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"finledger/internal/config"
	"finledger/internal/database"
	"finledger/internal/handlers"
	"finledger/internal/logger"
	"finledger/internal/middleware"
	"finledger/internal/services"
	"finledger/internal/validator"

	_ "finledger/internal/docs" // Import swagger docs
)

// @title           FinLedger API
// @version         1.0
// @description     FinLedger is a financial account ledger that records deposits, withdrawals, and transfers, applies fee schedules, flags suspicious transfer patterns, and periodically accrues interest on investment accounts.

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	locker := services.NewAccountLocker()
	investmentLogService := services.NewInvestmentLogService(db)
	userService := services.NewUserService(db)
	tokenService := services.NewTokenService(db)
	accountService := services.NewAccountService(db, investmentLogService)
	transactionService := services.NewTransactionService(db, accountService, locker)
	interestService := services.NewInterestService(db, locker, investmentLogService, appConfig.InterestInterval)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, tokenService)
	accountHandler := handlers.NewAccountHandler(accountService, transactionService)
	dashboardHandler := handlers.NewDashboardHandler(userService, accountService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// Public routes
	users := api.Group("/users")
	users.POST("/register", authHandler.Register)
	users.POST("/login", authHandler.Login)

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenService))
	protected.GET("/users/logout", authHandler.Logout)

	account := protected.Group("/account")
	account.POST("/create", accountHandler.CreateAccount)
	account.POST("/deposit", accountHandler.Deposit)
	account.POST("/withdraw", accountHandler.Withdraw)
	account.POST("/fund-transfer", accountHandler.Transfer)
	account.GET("/transactions", accountHandler.GetTransactions)

	dashboard := protected.Group("/dashboard")
	dashboard.GET("/user", dashboardHandler.GetUserProfile)
	dashboard.GET("/account", dashboardHandler.GetMainAccount)
	dashboard.GET("/account/:index", dashboardHandler.GetAccountByIndex)
	dashboard.GET("/accounts", dashboardHandler.GetAccounts)

	// Start the interest accrual job; it stops on shutdown signals.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	interestService.Start(ctx)

	log.Infof("Starting FinLedger backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
