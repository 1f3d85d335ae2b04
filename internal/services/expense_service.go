package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "khplwak/internal/errors"
	"khplwak/internal/models"
	"khplwak/internal/pagination"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

func (s *expenseService) validateParams(p ExpenseParams) error {
	if p.Description == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	switch p.Category {
	case models.ExpenseCategoryPurchase, models.ExpenseCategoryMaintenance,
		models.ExpenseCategoryCommission, models.ExpenseCategoryLegal,
		models.ExpenseCategoryOffice, models.ExpenseCategoryOther:
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid expense category")
	}
	if p.Amount.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}
	if p.PropertyItemID != nil {
		var count int64
		if err := s.db.Model(&models.PropertyItem{}).Where("id = ?", *p.PropertyItemID).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return apperrors.ErrPropertyNotFound
		}
	}
	return nil
}

// CreateExpense records an expense. The date defaults to today and the
// authenticated creator is attached.
func (s *expenseService) CreateExpense(p ExpenseParams, createdByID string) (*models.Expense, error) {
	if err := s.validateParams(p); err != nil {
		return nil, err
	}

	if p.Date.IsZero() {
		p.Date = time.Now()
	}

	expense := &models.Expense{
		PropertyItemID: p.PropertyItemID,
		Description:    p.Description,
		Category:       p.Category,
		Amount:         p.Amount,
		Date:           p.Date,
		Remarks:        p.Remarks,
	}
	if createdByID != "" {
		expense.CreatedByID = &createdByID
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return expense, nil
}

// GetExpenses returns a paginated list of expenses, newest first.
func (s *expenseService) GetExpenses(page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := s.db.Model(&models.Expense{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Preload("PropertyItem").
		Scopes(pagination.Paginate(page)).
		Order("date DESC, id DESC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTotalExpense returns the sum of all expense amounts, zero when there
// are none.
func (s *expenseService) GetTotalExpense() (decimal.Decimal, error) {
	return sumDecimal(s.db.Model(&models.Expense{}), "amount")
}

// GetExpenseByID retrieves an expense by ID.
func (s *expenseService) GetExpenseByID(id string) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Where("id = ?", id).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateExpense replaces an expense's editable fields. The creator
// reference is untouched.
func (s *expenseService) UpdateExpense(id string, p ExpenseParams) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.validateParams(p); err != nil {
		return nil, err
	}

	if p.Date.IsZero() {
		p.Date = expense.Date
	}

	expense.PropertyItemID = p.PropertyItemID
	expense.Description = p.Description
	expense.Category = p.Category
	expense.Amount = p.Amount
	expense.Date = p.Date
	expense.Remarks = p.Remarks

	if err := s.db.Save(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return expense, nil
}

// DeleteExpense deletes an expense.
func (s *expenseService) DeleteExpense(id string) error {
	expense, err := s.GetExpenseByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
