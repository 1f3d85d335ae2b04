package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "khplwak/internal/errors"
	"khplwak/internal/models"
	"khplwak/internal/pagination"
	"khplwak/internal/validator"
)

// investorService handles investor-related business logic.
type investorService struct {
	db *gorm.DB
}

// NewInvestorService creates a new InvestorServicer.
func NewInvestorService(db *gorm.DB) InvestorServicer {
	return &investorService{db: db}
}

func validateInvestorParams(p InvestorParams) error {
	if p.FullName == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "full name is required")
	}
	if !validator.ValidAfghanPhone(p.Phone) {
		return apperrors.WithMessage(apperrors.ErrInvalidPhone, "phone: "+apperrors.ErrInvalidPhone.Message)
	}
	if !validator.ValidAfghanPhone(p.Whatsapp) {
		return apperrors.WithMessage(apperrors.ErrInvalidPhone, "whatsapp: "+apperrors.ErrInvalidPhone.Message)
	}
	if p.InvestedAmount.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "invested amount must not be negative")
	}
	return nil
}

// CreateInvestor creates a new investor record.
func (s *investorService) CreateInvestor(p InvestorParams) (*models.Investor, error) {
	if err := validateInvestorParams(p); err != nil {
		return nil, err
	}

	if p.InvestorType == "" {
		p.InvestorType = models.InvestorTypePartner
	}
	if p.Status == "" {
		p.Status = models.InvestorStatusActive
	}

	investor := &models.Investor{
		FullName:       p.FullName,
		Surname:        p.Surname,
		Location:       p.Location,
		Phone:          p.Phone,
		Whatsapp:       p.Whatsapp,
		InvestorType:   p.InvestorType,
		Status:         p.Status,
		IDDocument:     p.IDDocument,
		Notes:          p.Notes,
		InvestedAmount: p.InvestedAmount,
	}

	if err := s.db.Create(investor).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return investor, nil
}

// GetInvestors returns a paginated list of investors.
func (s *investorService) GetInvestors(page pagination.PageRequest) (*pagination.PageResponse[models.Investor], error) {
	page.Defaults()

	base := s.db.Model(&models.Investor{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var investors []models.Investor
	if err := base.Scopes(pagination.Paginate(page)).Order("id").Find(&investors).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(investors, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetInvestorByID retrieves an investor by ID.
func (s *investorService) GetInvestorByID(id string) (*models.Investor, error) {
	var investor models.Investor
	if err := s.db.Where("id = ?", id).First(&investor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestorNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &investor, nil
}

// GetInvestorTransactions returns all transactions naming this investor,
// newest first, with the property loaded for display.
func (s *investorService) GetInvestorTransactions(id string) ([]models.Transaction, error) {
	if _, err := s.GetInvestorByID(id); err != nil {
		return nil, err
	}

	var transactions []models.Transaction
	if err := s.db.Preload("PropertyItem").
		Where("investor_id = ?", id).
		Order("transaction_date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// UpdateInvestor replaces an investor's editable fields through the same
// validated path as creation.
func (s *investorService) UpdateInvestor(id string, p InvestorParams) (*models.Investor, error) {
	investor, err := s.GetInvestorByID(id)
	if err != nil {
		return nil, err
	}

	if err := validateInvestorParams(p); err != nil {
		return nil, err
	}

	if p.InvestorType == "" {
		p.InvestorType = models.InvestorTypePartner
	}
	if p.Status == "" {
		p.Status = models.InvestorStatusActive
	}

	investor.FullName = p.FullName
	investor.Surname = p.Surname
	investor.Location = p.Location
	investor.Phone = p.Phone
	investor.Whatsapp = p.Whatsapp
	investor.InvestorType = p.InvestorType
	investor.Status = p.Status
	investor.IDDocument = p.IDDocument
	investor.Notes = p.Notes
	investor.InvestedAmount = p.InvestedAmount

	if err := s.db.Save(investor).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return investor, nil
}

// DeleteInvestor deletes an investor and all transactions naming them,
// in one database transaction.
func (s *investorService) DeleteInvestor(id string) error {
	investor, err := s.GetInvestorByID(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("investor_id = ?", id).Delete(&models.Transaction{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(investor).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
