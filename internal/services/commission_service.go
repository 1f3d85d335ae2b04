package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "khplwak/internal/errors"
	"khplwak/internal/models"
	"khplwak/internal/pagination"
)

// commissionService handles commission-related business logic.
type commissionService struct {
	db *gorm.DB
}

// NewCommissionService creates a new CommissionServicer.
func NewCommissionService(db *gorm.DB) CommissionServicer {
	return &commissionService{db: db}
}

func (s *commissionService) validateParams(p CommissionParams) error {
	if p.PropertyItemID == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "property is required")
	}
	switch p.DealType {
	case models.DealTypeSale, models.DealTypeRent, models.DealTypeMortgage:
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "deal type must be sale, rent, or mortgage")
	}
	switch p.CommissionType {
	case models.CommissionTypePercent, models.CommissionTypeFixed:
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "commission type must be percent or fixed")
	}
	if p.DealAmount.IsNegative() || p.CommissionValue.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "deal amount and commission value must not be negative")
	}

	var count int64
	if err := s.db.Model(&models.PropertyItem{}).Where("id = ?", p.PropertyItemID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrPropertyNotFound
	}
	return nil
}

// CreateCommission records a commission. TotalEarned is filled in by the
// model's save hook; the caller never supplies it.
func (s *commissionService) CreateCommission(p CommissionParams) (*models.Commission, error) {
	if err := s.validateParams(p); err != nil {
		return nil, err
	}

	commission := &models.Commission{
		PropertyItemID:  p.PropertyItemID,
		DealType:        p.DealType,
		DealAmount:      p.DealAmount,
		CommissionType:  p.CommissionType,
		CommissionValue: p.CommissionValue,
		Notes:           p.Notes,
	}

	if err := s.db.Create(commission).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return commission, nil
}

// GetCommissions returns a paginated list of commissions, newest first.
func (s *commissionService) GetCommissions(page pagination.PageRequest) (*pagination.PageResponse[models.Commission], error) {
	page.Defaults()

	base := s.db.Model(&models.Commission{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var commissions []models.Commission
	if err := base.Preload("PropertyItem").
		Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&commissions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(commissions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTotalEarned returns the sum of total_earned across all commissions,
// zero when there are none.
func (s *commissionService) GetTotalEarned() (decimal.Decimal, error) {
	return sumDecimal(s.db.Model(&models.Commission{}), "total_earned")
}

// GetCommissionByID retrieves a commission by ID.
func (s *commissionService) GetCommissionByID(id string) (*models.Commission, error) {
	var commission models.Commission
	if err := s.db.Where("id = ?", id).First(&commission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCommissionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &commission, nil
}

// UpdateCommission replaces the caller-settable fields and saves, which
// recomputes TotalEarned for the new triple. A stale derived value is
// never observable: the recompute commits atomically with the inputs.
func (s *commissionService) UpdateCommission(id string, p CommissionParams) (*models.Commission, error) {
	commission, err := s.GetCommissionByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.validateParams(p); err != nil {
		return nil, err
	}

	commission.PropertyItemID = p.PropertyItemID
	commission.DealType = p.DealType
	commission.DealAmount = p.DealAmount
	commission.CommissionType = p.CommissionType
	commission.CommissionValue = p.CommissionValue
	commission.Notes = p.Notes

	if err := s.db.Save(commission).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return commission, nil
}

// DeleteCommission deletes a commission.
func (s *commissionService) DeleteCommission(id string) error {
	commission, err := s.GetCommissionByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(commission).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
