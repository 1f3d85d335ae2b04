package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"khplwak/internal/models"
	"khplwak/internal/pagination"
	"khplwak/internal/testutil"
)

func TestCreateExpense(t *testing.T) {
	t.Run("date_defaults_to_today", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		expense, err := svc.CreateExpense(ExpenseParams{
			Description: "Office rent",
			Category:    models.ExpenseCategoryOffice,
			Amount:      decimal.NewFromInt(5000),
		}, user.ID)
		testutil.AssertNoError(t, err)

		if expense.Date.IsZero() {
			t.Error("expected date defaulted")
		}
		if expense.CreatedByID == nil || *expense.CreatedByID != user.ID {
			t.Error("expected creator attached")
		}
	})

	t.Run("missing_description", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)

		_, err := svc.CreateExpense(ExpenseParams{
			Category: models.ExpenseCategoryOffice,
		}, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)

		_, err := svc.CreateExpense(ExpenseParams{
			Description: "X",
			Category:    "groceries",
		}, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("negative_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)

		_, err := svc.CreateExpense(ExpenseParams{
			Description: "X",
			Category:    models.ExpenseCategoryOther,
			Amount:      decimal.NewFromInt(-1),
		}, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_property", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		missing := "019581b4-0000-7000-8000-000000000000"

		_, err := svc.CreateExpense(ExpenseParams{
			PropertyItemID: &missing,
			Description:    "X",
			Category:       models.ExpenseCategoryOther,
		}, "")
		testutil.AssertAppError(t, err, "PROPERTY_NOT_FOUND")
	})
}

func TestUpdateExpense(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewExpenseService(db)
	user := testutil.CreateTestUser(t, db)

	expense, err := svc.CreateExpense(ExpenseParams{
		Description: "Fuel",
		Category:    models.ExpenseCategoryOffice,
		Amount:      decimal.NewFromInt(300),
		Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}, user.ID)
	testutil.AssertNoError(t, err)

	updated, err := svc.UpdateExpense(expense.ID, ExpenseParams{
		Description: "Fuel and travel",
		Category:    models.ExpenseCategoryOffice,
		Amount:      decimal.NewFromInt(450),
	})
	testutil.AssertNoError(t, err)

	if updated.Description != "Fuel and travel" {
		t.Errorf("expected updated description, got %q", updated.Description)
	}
	// Zero date in the update keeps the stored date
	if !updated.Date.Equal(expense.Date) {
		t.Errorf("expected date preserved, got %s", updated.Date)
	}
	// Creator untouched by updates
	if updated.CreatedByID == nil || *updated.CreatedByID != user.ID {
		t.Error("expected creator preserved")
	}
}

func TestGetTotalExpense(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewExpenseService(db)

	total, err := svc.GetTotalExpense()
	testutil.AssertNoError(t, err)
	testutil.AssertDecimalEqual(t, decimal.Zero, total)

	testutil.CreateTestExpense(t, db, nil, models.ExpenseCategoryLegal, decimal.NewFromInt(1200))
	testutil.CreateTestExpense(t, db, nil, models.ExpenseCategoryOffice, decimal.NewFromInt(800))

	total, err = svc.GetTotalExpense()
	testutil.AssertNoError(t, err)
	testutil.AssertDecimalEqual(t, decimal.NewFromInt(2000), total)
}

func TestDeleteExpense(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewExpenseService(db)
	expense := testutil.CreateTestExpense(t, db, nil, models.ExpenseCategoryOther, decimal.NewFromInt(100))

	testutil.AssertNoError(t, svc.DeleteExpense(expense.ID))

	_, err := svc.GetExpenseByID(expense.ID)
	testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
}

func TestGetExpenses(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewExpenseService(db)
	property := testutil.CreateTestProperty(t, db)
	testutil.CreateTestExpense(t, db, &property.ID, models.ExpenseCategoryMaintenance, decimal.NewFromInt(100))

	result, err := svc.GetExpenses(pagination.PageRequest{Page: 1, PageSize: 20})
	testutil.AssertNoError(t, err)
	if result.TotalItems != 1 {
		t.Fatalf("expected 1 expense, got %d", result.TotalItems)
	}
	if result.Data[0].PropertyItem == nil || result.Data[0].PropertyItem.ID != property.ID {
		t.Error("expected property preloaded")
	}
}
