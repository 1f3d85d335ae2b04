package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"khplwak/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestInvestor creates an active partner investor.
func CreateTestInvestor(t *testing.T, db *gorm.DB) *models.Investor {
	t.Helper()

	investor := &models.Investor{
		FullName:     fmt.Sprintf("Test Investor %d", nextID()),
		Location:     "Kabul",
		Phone:        "0700123456",
		InvestorType: models.InvestorTypePartner,
		Status:       models.InvestorStatusActive,
	}
	if err := db.Create(investor).Error; err != nil {
		t.Fatalf("failed to create test investor: %v", err)
	}
	return investor
}

// CreateTestProperty creates an available sale-listed property.
func CreateTestProperty(t *testing.T, db *gorm.DB) *models.PropertyItem {
	t.Helper()

	property := &models.PropertyItem{
		Address:     fmt.Sprintf("House %d, Street 4", nextID()),
		City:        "Kabul",
		AreaName:    "Karte Naw",
		ListingType: models.ListingTypeSale,
		Status:      models.PropertyStatusAvailable,
	}
	if err := db.Create(property).Error; err != nil {
		t.Fatalf("failed to create test property: %v", err)
	}
	return property
}

// CreateTestTransaction records a transaction between an investor and a
// property.
func CreateTestTransaction(t *testing.T, db *gorm.DB, propertyID, investorID string, transactionType models.TransactionType, amount decimal.Decimal) *models.Transaction {
	t.Helper()

	transaction := &models.Transaction{
		PropertyItemID:  propertyID,
		InvestorID:      investorID,
		Type:            transactionType,
		Amount:          amount,
		TransactionDate: time.Now(),
	}
	if err := db.Create(transaction).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return transaction
}

// CreateTestCommission records a percent commission on a sale deal. The
// earned total is filled in by the model hook.
func CreateTestCommission(t *testing.T, db *gorm.DB, propertyID string, dealAmount, commissionValue decimal.Decimal) *models.Commission {
	t.Helper()

	commission := &models.Commission{
		PropertyItemID:  propertyID,
		DealType:        models.DealTypeSale,
		DealAmount:      dealAmount,
		CommissionType:  models.CommissionTypePercent,
		CommissionValue: commissionValue,
	}
	if err := db.Create(commission).Error; err != nil {
		t.Fatalf("failed to create test commission: %v", err)
	}
	return commission
}

// CreateTestExpense records an office expense. propertyID may be nil.
func CreateTestExpense(t *testing.T, db *gorm.DB, propertyID *string, category models.ExpenseCategory, amount decimal.Decimal) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		PropertyItemID: propertyID,
		Description:    fmt.Sprintf("Test expense %d", nextID()),
		Category:       category,
		Amount:         amount,
		Date:           time.Now(),
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestIncome records an office income entry. propertyID may be nil.
func CreateTestIncome(t *testing.T, db *gorm.DB, propertyID *string, source models.IncomeSource, amount decimal.Decimal) *models.Income {
	t.Helper()

	income := &models.Income{
		PropertyItemID: propertyID,
		Description:    fmt.Sprintf("Test income %d", nextID()),
		Source:         source,
		Amount:         amount,
		Date:           time.Now(),
	}
	if err := db.Create(income).Error; err != nil {
		t.Fatalf("failed to create test income: %v", err)
	}
	return income
}
