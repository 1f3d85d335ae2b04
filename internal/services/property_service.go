package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "khplwak/internal/errors"
	"khplwak/internal/models"
	"khplwak/internal/pagination"
)

// propertyService handles property-related business logic.
type propertyService struct {
	db *gorm.DB
}

// NewPropertyService creates a new PropertyServicer.
func NewPropertyService(db *gorm.DB) PropertyServicer {
	return &propertyService{db: db}
}

// applyPropertyFilters applies the shared listing predicates: free-text
// match against address, city, or area name, plus exact listing type and
// status matches. Empty filters are skipped; non-empty ones are ANDed.
// The listing view and the CSV export both go through here.
func applyPropertyFilters(q *gorm.DB, f PropertyFilter) *gorm.DB {
	if f.Query != "" {
		pattern := "%" + strings.ToLower(f.Query) + "%"
		q = q.Where("LOWER(address) LIKE ? OR LOWER(city) LIKE ? OR LOWER(area_name) LIKE ?",
			pattern, pattern, pattern)
	}
	if f.ListingType != "" {
		q = q.Where("listing_type = ?", f.ListingType)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return q
}

func (s *propertyService) applyParams(prop *models.PropertyItem, p PropertyParams) {
	if p.ListingType == "" {
		p.ListingType = models.ListingTypeSale
	}
	if p.Status == "" {
		p.Status = models.PropertyStatusAvailable
	}

	prop.Address = p.Address
	prop.City = p.City
	prop.AreaName = p.AreaName
	prop.PropertyType = p.PropertyType
	prop.ListingType = p.ListingType
	prop.Status = p.Status
	prop.Size = p.Size
	prop.Bedrooms = p.Bedrooms
	prop.Bathrooms = p.Bathrooms
	prop.Kitchens = p.Kitchens
	prop.FloorNo = p.FloorNo
	prop.TotalFloors = p.TotalFloors
	prop.ParkingSpaces = p.ParkingSpaces
	prop.FloorAreaSqft = p.FloorAreaSqft
	prop.SalePrice = p.SalePrice
	prop.RentMonthly = p.RentMonthly
	prop.RentDeposit = p.RentDeposit
	prop.MortgageAmount = p.MortgageAmount
	prop.MortgageTerms = p.MortgageTerms
	prop.OwnerName = p.OwnerName
	prop.OwnerContact = p.OwnerContact
	prop.Description = p.Description
}

// CreateProperty creates a new property listing.
func (s *propertyService) CreateProperty(p PropertyParams) (*models.PropertyItem, error) {
	if p.Address == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "address is required")
	}

	prop := &models.PropertyItem{}
	s.applyParams(prop, p)

	if err := s.db.Create(prop).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return prop, nil
}

// GetProperties returns a paginated, filtered list of properties.
func (s *propertyService) GetProperties(page pagination.PageRequest, filter PropertyFilter) (*pagination.PageResponse[models.PropertyItem], error) {
	page.Defaults()

	base := applyPropertyFilters(s.db.Model(&models.PropertyItem{}), filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var properties []models.PropertyItem
	if err := base.Scopes(pagination.Paginate(page)).Order("id").Find(&properties).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(properties, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetAllProperties returns every property matching the filter, in the
// same order the listing view uses. This is the export path.
func (s *propertyService) GetAllProperties(filter PropertyFilter) ([]models.PropertyItem, error) {
	var properties []models.PropertyItem
	q := applyPropertyFilters(s.db.Model(&models.PropertyItem{}), filter)
	if err := q.Order("id").Find(&properties).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return properties, nil
}

// GetPropertyByID retrieves a property by ID.
func (s *propertyService) GetPropertyByID(id string) (*models.PropertyItem, error) {
	var prop models.PropertyItem
	if err := s.db.Where("id = ?", id).First(&prop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPropertyNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &prop, nil
}

// GetPropertyTransactions returns all transactions against this property,
// newest first, with the investor loaded for display.
func (s *propertyService) GetPropertyTransactions(id string) ([]models.Transaction, error) {
	if _, err := s.GetPropertyByID(id); err != nil {
		return nil, err
	}

	var transactions []models.Transaction
	if err := s.db.Preload("Investor").
		Where("property_item_id = ?", id).
		Order("transaction_date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// GetPropertyCommissions returns all commissions recorded on this property,
// newest first.
func (s *propertyService) GetPropertyCommissions(id string) ([]models.Commission, error) {
	if _, err := s.GetPropertyByID(id); err != nil {
		return nil, err
	}

	var commissions []models.Commission
	if err := s.db.Where("property_item_id = ?", id).
		Order("created_at DESC").
		Find(&commissions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return commissions, nil
}

// UpdateProperty replaces a property's editable fields through the same
// validated path as creation.
func (s *propertyService) UpdateProperty(id string, p PropertyParams) (*models.PropertyItem, error) {
	prop, err := s.GetPropertyByID(id)
	if err != nil {
		return nil, err
	}

	if p.Address == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "address is required")
	}

	s.applyParams(prop, p)

	if err := s.db.Save(prop).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return prop, nil
}

// DeleteProperty removes a property and applies the per-relationship
// deletion policies in one transaction: transactions and commissions are
// cascade-deleted, expense and income rows are kept with their property
// reference cleared.
func (s *propertyService) DeleteProperty(id string) error {
	prop, err := s.GetPropertyByID(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_item_id = ?", id).Delete(&models.Transaction{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Where("property_item_id = ?", id).Delete(&models.Commission{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Model(&models.Expense{}).Where("property_item_id = ?", id).
			Update("property_item_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Model(&models.Income{}).Where("property_item_id = ?", id).
			Update("property_item_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(prop).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
