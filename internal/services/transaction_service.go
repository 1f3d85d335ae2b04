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

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

func (s *transactionService) resolveReferences(propertyItemID, investorID string) error {
	var count int64
	if err := s.db.Model(&models.PropertyItem{}).Where("id = ?", propertyItemID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrPropertyNotFound
	}
	if err := s.db.Model(&models.Investor{}).Where("id = ?", investorID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrInvestorNotFound
	}
	return nil
}

// CreateTransaction records money moving on a deal. The transaction date
// is stamped here and never changes afterwards.
func (s *transactionService) CreateTransaction(propertyItemID, investorID string, transactionType models.TransactionType, amount decimal.Decimal) (*models.Transaction, error) {
	if propertyItemID == "" || investorID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "property and investor are required")
	}
	if transactionType != models.TransactionTypeBuy && transactionType != models.TransactionTypeSell {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if amount.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}

	if err := s.resolveReferences(propertyItemID, investorID); err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		PropertyItemID:  propertyItemID,
		InvestorID:      investorID,
		Type:            transactionType,
		Amount:          amount,
		TransactionDate: time.Now(),
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// GetTransactions returns a paginated list of transactions, newest first.
func (s *transactionService) GetTransactions(page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Preload("PropertyItem").Preload("Investor").
		Scopes(pagination.Paginate(page)).
		Order("transaction_date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTransactionByID retrieves a transaction by ID.
func (s *transactionService) GetTransactionByID(id string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ?", id).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction replaces the editable fields of a transaction. The
// original transaction date is preserved.
func (s *transactionService) UpdateTransaction(id, propertyItemID, investorID string, transactionType models.TransactionType, amount decimal.Decimal) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(id)
	if err != nil {
		return nil, err
	}

	if propertyItemID == "" || investorID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "property and investor are required")
	}
	if transactionType != models.TransactionTypeBuy && transactionType != models.TransactionTypeSell {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if amount.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}

	if err := s.resolveReferences(propertyItemID, investorID); err != nil {
		return nil, err
	}

	transaction.PropertyItemID = propertyItemID
	transaction.InvestorID = investorID
	transaction.Type = transactionType
	transaction.Amount = amount

	if err := s.db.Save(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// DeleteTransaction deletes a transaction.
func (s *transactionService) DeleteTransaction(id string) error {
	transaction, err := s.GetTransactionByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
