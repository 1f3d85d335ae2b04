package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"khplwak/internal/handlers"
	"khplwak/internal/logger"
	"khplwak/internal/middleware"
	"khplwak/internal/models"
	"khplwak/internal/services"
	"khplwak/internal/validator"
)

const pipelineTestKey = "pipeline-test-key"

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Investor{},
		&models.PropertyItem{},
		&models.Transaction{},
		&models.Commission{},
		&models.Expense{},
		&models.Income{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	investorService := services.NewInvestorService(db)
	propertyService := services.NewPropertyService(db)
	transactionService := services.NewTransactionService(db)
	commissionService := services.NewCommissionService(db)
	expenseService := services.NewExpenseService(db)
	incomeService := services.NewIncomeService(db)
	reportService := services.NewReportService(db)
	exportService := services.NewExportService(db, propertyService)
	auditService := services.NewAuditService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	investorHandler := handlers.NewInvestorHandler(investorService, auditService)
	propertyHandler := handlers.NewPropertyHandler(propertyService, exportService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	commissionHandler := handlers.NewCommissionHandler(commissionService, auditService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, auditService)
	incomeHandler := handlers.NewIncomeHandler(incomeService, auditService)
	reportHandler := handlers.NewReportHandler(reportService)
	backupHandler := handlers.NewBackupHandler(exportService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Pipeline routes
	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(pipelineTestKey))
	pipeline.GET("/backup", backupHandler.GetBackup)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.GET("/backup/export/csv", backupHandler.GetBackup)

	investors := protected.Group("/investors")
	investors.POST("", investorHandler.CreateInvestor)
	investors.GET("", investorHandler.GetInvestors)
	investors.GET("/:id", investorHandler.GetInvestorByID)
	investors.GET("/:id/transactions", investorHandler.GetInvestorTransactions)
	investors.GET("/:id/summary", reportHandler.GetInvestorSummary)
	investors.PUT("/:id", investorHandler.UpdateInvestor)
	investors.DELETE("/:id", investorHandler.DeleteInvestor)

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

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	commissions := protected.Group("/commissions")
	commissions.POST("", commissionHandler.CreateCommission)
	commissions.GET("", commissionHandler.GetCommissions)
	commissions.GET("/:id", commissionHandler.GetCommissionByID)
	commissions.PUT("/:id", commissionHandler.UpdateCommission)
	commissions.DELETE("/:id", commissionHandler.DeleteCommission)

	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/:id", expenseHandler.GetExpenseByID)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	income := protected.Group("/income")
	income.POST("", incomeHandler.CreateIncome)
	income.GET("", incomeHandler.GetIncomes)
	income.GET("/:id", incomeHandler.GetIncomeByID)
	income.PUT("/:id", incomeHandler.UpdateIncome)
	income.DELETE("/:id", incomeHandler.DeleteIncome)

	reports := protected.Group("/reports")
	reports.GET("/dashboard", reportHandler.GetDashboard)
	reports.GET("/finance", reportHandler.GetFinanceReport)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"first_name":"Test","last_name":"User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(string)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}

// createInvestor creates an investor and returns its ID.
func (app *testApp) createInvestor(t *testing.T, token, fullName string) string {
	t.Helper()
	body := fmt.Sprintf(`{"full_name":%q,"phone":"0700123456","investor_type":"partner"}`, fullName)
	rec := app.request("POST", "/api/v1/investors", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create investor failed: %d %s", rec.Code, rec.Body.String())
	}
	investor := parseJSON(t, rec)["investor"].(map[string]interface{})
	return investor["id"].(string)
}

// createProperty creates a property and returns its ID.
func (app *testApp) createProperty(t *testing.T, token, address string) string {
	t.Helper()
	body := fmt.Sprintf(`{"address":%q,"city":"Kabul","area_name":"Karte Naw","listing_type":"sale"}`, address)
	rec := app.request("POST", "/api/v1/properties", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create property failed: %d %s", rec.Code, rec.Body.String())
	}
	property := parseJSON(t, rec)["property"].(map[string]interface{})
	return property["id"].(string)
}

// createTransaction records a transaction between a property and an investor.
func (app *testApp) createTransaction(t *testing.T, token, propertyID, investorID, transactionType, amount string) {
	t.Helper()
	body := fmt.Sprintf(`{"property_item_id":%q,"investor_id":%q,"type":%q,"amount":%q}`,
		propertyID, investorID, transactionType, amount)
	rec := app.request("POST", "/api/v1/transactions", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create transaction failed: %d %s", rec.Code, rec.Body.String())
	}
}
