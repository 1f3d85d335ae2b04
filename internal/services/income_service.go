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

// incomeService handles income-related business logic.
type incomeService struct {
	db *gorm.DB
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB) IncomeServicer {
	return &incomeService{db: db}
}

func (s *incomeService) validateParams(p IncomeParams) error {
	if p.Description == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	switch p.Source {
	case models.IncomeSourceSale, models.IncomeSourceRent,
		models.IncomeSourceInvestorReturn, models.IncomeSourceOther:
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid income source")
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

// CreateIncome records an income entry. The date defaults to today and
// the authenticated creator is attached.
func (s *incomeService) CreateIncome(p IncomeParams, createdByID string) (*models.Income, error) {
	if err := s.validateParams(p); err != nil {
		return nil, err
	}

	if p.Date.IsZero() {
		p.Date = time.Now()
	}

	income := &models.Income{
		PropertyItemID: p.PropertyItemID,
		Description:    p.Description,
		Source:         p.Source,
		Amount:         p.Amount,
		Date:           p.Date,
		Remarks:        p.Remarks,
	}
	if createdByID != "" {
		income.CreatedByID = &createdByID
	}

	if err := s.db.Create(income).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return income, nil
}

// GetIncomes returns a paginated list of income entries, newest first.
func (s *incomeService) GetIncomes(page pagination.PageRequest) (*pagination.PageResponse[models.Income], error) {
	page.Defaults()

	base := s.db.Model(&models.Income{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var incomes []models.Income
	if err := base.Preload("PropertyItem").
		Scopes(pagination.Paginate(page)).
		Order("date DESC, id DESC").
		Find(&incomes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(incomes, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTotalIncome returns the sum of all income amounts, zero when there
// are none.
func (s *incomeService) GetTotalIncome() (decimal.Decimal, error) {
	return sumDecimal(s.db.Model(&models.Income{}), "amount")
}

// GetIncomeByID retrieves an income entry by ID.
func (s *incomeService) GetIncomeByID(id string) (*models.Income, error) {
	var income models.Income
	if err := s.db.Where("id = ?", id).First(&income).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIncomeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &income, nil
}

// UpdateIncome replaces an income entry's editable fields. The creator
// reference is untouched.
func (s *incomeService) UpdateIncome(id string, p IncomeParams) (*models.Income, error) {
	income, err := s.GetIncomeByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.validateParams(p); err != nil {
		return nil, err
	}

	if p.Date.IsZero() {
		p.Date = income.Date
	}

	income.PropertyItemID = p.PropertyItemID
	income.Description = p.Description
	income.Source = p.Source
	income.Amount = p.Amount
	income.Date = p.Date
	income.Remarks = p.Remarks

	if err := s.db.Save(income).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return income, nil
}

// DeleteIncome deletes an income entry.
func (s *incomeService) DeleteIncome(id string) error {
	income, err := s.GetIncomeByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(income).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
