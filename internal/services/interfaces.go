package services

import (
	"io"
	"time"

	"github.com/shopspring/decimal"

	"khplwak/internal/models"
	"khplwak/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// InvestorParams carries the full validated field set for an investor
// write. Updates replace every editable field; there is no partial patch
// path around form validation.
type InvestorParams struct {
	FullName       string
	Surname        string
	Location       string
	Phone          string
	Whatsapp       string
	InvestorType   models.InvestorType
	Status         models.InvestorStatus
	IDDocument     string
	Notes          string
	InvestedAmount decimal.Decimal
}

// InvestorServicer defines the contract for investor-related business logic.
type InvestorServicer interface {
	CreateInvestor(p InvestorParams) (*models.Investor, error)
	GetInvestors(page pagination.PageRequest) (*pagination.PageResponse[models.Investor], error)
	GetInvestorByID(id string) (*models.Investor, error)
	GetInvestorTransactions(id string) ([]models.Transaction, error)
	UpdateInvestor(id string, p InvestorParams) (*models.Investor, error)
	DeleteInvestor(id string) error
}

// PropertyParams carries the full validated field set for a property write.
type PropertyParams struct {
	Address        string
	City           string
	AreaName       string
	PropertyType   string
	ListingType    models.ListingType
	Status         models.PropertyStatus
	Size           string
	Bedrooms       *uint
	Bathrooms      *uint
	Kitchens       *uint
	FloorNo        string
	TotalFloors    *uint
	ParkingSpaces  *uint
	FloorAreaSqft  string
	SalePrice      *decimal.Decimal
	RentMonthly    *decimal.Decimal
	RentDeposit    *decimal.Decimal
	MortgageAmount *decimal.Decimal
	MortgageTerms  string
	OwnerName      string
	OwnerContact   string
	Description    string
}

// PropertyFilter holds the optional predicates for listing properties.
// The same filter drives the interactive list and the CSV export, so both
// always see the same rows.
type PropertyFilter struct {
	Query       string
	ListingType models.ListingType
	Status      models.PropertyStatus
}

// PropertyServicer defines the contract for property-related business logic.
type PropertyServicer interface {
	CreateProperty(p PropertyParams) (*models.PropertyItem, error)
	GetProperties(page pagination.PageRequest, filter PropertyFilter) (*pagination.PageResponse[models.PropertyItem], error)
	GetAllProperties(filter PropertyFilter) ([]models.PropertyItem, error)
	GetPropertyByID(id string) (*models.PropertyItem, error)
	GetPropertyTransactions(id string) ([]models.Transaction, error)
	GetPropertyCommissions(id string) ([]models.Commission, error)
	UpdateProperty(id string, p PropertyParams) (*models.PropertyItem, error)
	DeleteProperty(id string) error
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(propertyItemID, investorID string, transactionType models.TransactionType, amount decimal.Decimal) (*models.Transaction, error)
	GetTransactions(page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(id string) (*models.Transaction, error)
	UpdateTransaction(id, propertyItemID, investorID string, transactionType models.TransactionType, amount decimal.Decimal) (*models.Transaction, error)
	DeleteTransaction(id string) error
}

// CommissionParams carries the caller-settable commission fields.
// TotalEarned is derived and deliberately absent.
type CommissionParams struct {
	PropertyItemID  string
	DealType        models.DealType
	DealAmount      decimal.Decimal
	CommissionType  models.CommissionType
	CommissionValue decimal.Decimal
	Notes           string
}

// CommissionServicer defines the contract for commission-related business logic.
type CommissionServicer interface {
	CreateCommission(p CommissionParams) (*models.Commission, error)
	GetCommissions(page pagination.PageRequest) (*pagination.PageResponse[models.Commission], error)
	GetTotalEarned() (decimal.Decimal, error)
	GetCommissionByID(id string) (*models.Commission, error)
	UpdateCommission(id string, p CommissionParams) (*models.Commission, error)
	DeleteCommission(id string) error
}

// ExpenseParams carries the full validated field set for an expense write.
type ExpenseParams struct {
	PropertyItemID *string
	Description    string
	Category       models.ExpenseCategory
	Amount         decimal.Decimal
	Date           time.Time
	Remarks        string
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(p ExpenseParams, createdByID string) (*models.Expense, error)
	GetExpenses(page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	GetTotalExpense() (decimal.Decimal, error)
	GetExpenseByID(id string) (*models.Expense, error)
	UpdateExpense(id string, p ExpenseParams) (*models.Expense, error)
	DeleteExpense(id string) error
}

// IncomeParams carries the full validated field set for an income write.
type IncomeParams struct {
	PropertyItemID *string
	Description    string
	Source         models.IncomeSource
	Amount         decimal.Decimal
	Date           time.Time
	Remarks        string
}

// IncomeServicer defines the contract for income-related business logic.
type IncomeServicer interface {
	CreateIncome(p IncomeParams, createdByID string) (*models.Income, error)
	GetIncomes(page pagination.PageRequest) (*pagination.PageResponse[models.Income], error)
	GetTotalIncome() (decimal.Decimal, error)
	GetIncomeByID(id string) (*models.Income, error)
	UpdateIncome(id string, p IncomeParams) (*models.Income, error)
	DeleteIncome(id string) error
}

// DashboardSummary contains the record counts and global ledger totals
// shown on the home dashboard.
type DashboardSummary struct {
	InvestorCount    int64 `json:"investor_count"`
	PropertyCount    int64 `json:"property_count"`
	TransactionCount int64 `json:"transaction_count"`

	AvailableCount int64 `json:"available_count"`
	RentedCount    int64 `json:"rented_count"`
	SoldCount      int64 `json:"sold_count"`
	MortgagedCount int64 `json:"mortgaged_count"`

	TotalInvested    decimal.Decimal `json:"total_invested"`
	TotalReturned    decimal.Decimal `json:"total_returned"`
	TotalCommissions decimal.Decimal `json:"total_commissions"`
}

// InvestorSummary contains the ledger totals scoped to one investor.
type InvestorSummary struct {
	TotalInvested decimal.Decimal `json:"total_invested"`
	TotalReturned decimal.Decimal `json:"total_returned"`
	NetResult     decimal.Decimal `json:"net_result"`
}

// PropertySummary contains the ledger totals scoped to one property.
type PropertySummary struct {
	TotalInvested   decimal.Decimal `json:"total_invested"`
	TotalReturned   decimal.Decimal `json:"total_returned"`
	NetResult       decimal.Decimal `json:"net_result"`
	TotalCommission decimal.Decimal `json:"total_commission_earned"`
}

// CategoryTotal is one row of the expense-by-category breakdown.
type CategoryTotal struct {
	Category models.ExpenseCategory `json:"category"`
	Total    decimal.Decimal        `json:"total"`
}

// SourceTotal is one row of the income-by-source breakdown.
type SourceTotal struct {
	Source models.IncomeSource `json:"source"`
	Total  decimal.Decimal     `json:"total"`
}

// FinanceReport contains the office-level income/expense picture.
type FinanceReport struct {
	TotalIncome       decimal.Decimal `json:"total_income"`
	TotalExpense      decimal.Decimal `json:"total_expense"`
	NetBalance        decimal.Decimal `json:"net_balance"`
	ExpenseByCategory []CategoryTotal `json:"expense_by_category"`
	IncomeBySource    []SourceTotal   `json:"income_by_source"`
}

// ReportServicer computes ledger aggregates. Every call reads current
// store state; nothing is cached.
type ReportServicer interface {
	GetDashboardSummary() (*DashboardSummary, error)
	GetInvestorSummary(investorID string) (*InvestorSummary, error)
	GetPropertySummary(propertyID string) (*PropertySummary, error)
	GetFinanceReport() (*FinanceReport, error)
}

// ExportServicer renders entity sets to CSV.
type ExportServicer interface {
	WritePropertiesCSV(w io.Writer, filter PropertyFilter) error
	WriteBackupCSV(w io.Writer) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
