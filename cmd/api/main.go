package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"khplwak/internal/config"
	"khplwak/internal/database"
	"khplwak/internal/handlers"
	"khplwak/internal/logger"
	"khplwak/internal/middleware"
	"khplwak/internal/services"
	"khplwak/internal/validator"

	_ "khplwak/internal/docs" // Import swagger docs
)

// @title           Khplwak Property API
// @version         1.0
// @description     Back-office API for a real-estate dealing office: investors, properties, transactions, commissions, and office finance.

// @host      localhost:8080
// @BasePath  /api/v1

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

	// Register custom request validators on the Gin binding engine
	validator.Register()

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

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	investorService := services.NewInvestorService(db)
	propertyService := services.NewPropertyService(db)
	transactionService := services.NewTransactionService(db)
	commissionService := services.NewCommissionService(db)
	expenseService := services.NewExpenseService(db)
	incomeService := services.NewIncomeService(db)
	reportService := services.NewReportService(db)
	exportService := services.NewExportService(db, propertyService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	investorHandler := handlers.NewInvestorHandler(investorService, auditService)
	propertyHandler := handlers.NewPropertyHandler(propertyService, exportService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	commissionHandler := handlers.NewCommissionHandler(commissionService, auditService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, auditService)
	incomeHandler := handlers.NewIncomeHandler(incomeService, auditService)
	reportHandler := handlers.NewReportHandler(reportService)
	backupHandler := handlers.NewBackupHandler(exportService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Pipeline routes, gated by API key instead of a user token
	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(appConfig.PipelineAPIKey))
	pipeline.GET("/backup", backupHandler.GetBackup)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Full-ledger backup download for logged-in users
	protected.GET("/backup/export/csv", backupHandler.GetBackup)

	// Investor routes
	investors := protected.Group("/investors")
	investors.POST("", investorHandler.CreateInvestor)
	investors.GET("", investorHandler.GetInvestors)
	investors.GET("/:id", investorHandler.GetInvestorByID)
	investors.GET("/:id/transactions", investorHandler.GetInvestorTransactions)
	investors.GET("/:id/summary", reportHandler.GetInvestorSummary)
	investors.PUT("/:id", investorHandler.UpdateInvestor)
	investors.DELETE("/:id", investorHandler.DeleteInvestor)

	// Property routes
	properties := protected.Group("/properties")
	properties.POST("", propertyHandler.CreateProperty)
	properties.GET("", propertyHandler.GetProperties)
	properties.GET("/export/csv", propertyHandler.ExportProperties)
	properties.GET("/:id", propertyHandler.GetPropertyByID)
	properties.GET("/:id/transactions", propertyHandler.GetPropertyTransactions)
	properties.GET("/:id/commissions", propertyHandler.GetPropertyCommissions)
	properties.GET("/:id/summary", reportHandler.GetPropertySummary)
	properties.PUT("/:id", propertyHandler.UpdateProperty)
	properties.DELETE("/:id", propertyHandler.DeleteProperty)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Commission routes
	commissions := protected.Group("/commissions")
	commissions.POST("", commissionHandler.CreateCommission)
	commissions.GET("", commissionHandler.GetCommissions)
	commissions.GET("/:id", commissionHandler.GetCommissionByID)
	commissions.PUT("/:id", commissionHandler.UpdateCommission)
	commissions.DELETE("/:id", commissionHandler.DeleteCommission)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/:id", expenseHandler.GetExpenseByID)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Income routes
	income := protected.Group("/income")
	income.POST("", incomeHandler.CreateIncome)
	income.GET("", incomeHandler.GetIncomes)
	income.GET("/:id", incomeHandler.GetIncomeByID)
	income.PUT("/:id", incomeHandler.UpdateIncome)
	income.DELETE("/:id", incomeHandler.DeleteIncome)

	// Report routes
	reports := protected.Group("/reports")
	reports.GET("/dashboard", reportHandler.GetDashboard)
	reports.GET("/finance", reportHandler.GetFinanceReport)

	log.Infof("Starting %s backend server on port %s", appConfig.SiteName, appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
