package models

import "github.com/shopspring/decimal"

// ListingType represents how a property is offered on the market.
type ListingType string

const (
	ListingTypeSale     ListingType = "sale"
	ListingTypeRent     ListingType = "rent"
	ListingTypeMortgage ListingType = "mortgage"
	ListingTypeOther    ListingType = "other"
)

// Label returns the human-readable form used in exports and the UI.
func (l ListingType) Label() string {
	switch l {
	case ListingTypeSale:
		return "For Sale"
	case ListingTypeRent:
		return "For Rent"
	case ListingTypeMortgage:
		return "Mortgage / Grawi"
	case ListingTypeOther:
		return "Other"
	}
	return string(l)
}

// PropertyStatus represents where a property stands in its deal lifecycle.
// Status and listing type are independently settable: a property can be
// available while carrying a sell transaction.
type PropertyStatus string

const (
	PropertyStatusAvailable PropertyStatus = "available"
	PropertyStatusSold      PropertyStatus = "sold"
	PropertyStatusRented    PropertyStatus = "rented"
	PropertyStatusMortgaged PropertyStatus = "mortgaged"
	PropertyStatusPending   PropertyStatus = "pending"
)

// PropertyItem represents a property the office is dealing. The sale,
// rent, and mortgage money fields are independent optionals; whichever
// apply to the current listing are filled in.
type PropertyItem struct {
	Base
	Address      string         `gorm:"not null" json:"address"`
	City         string         `json:"city"`
	AreaName     string         `json:"area_name"`
	PropertyType string         `json:"property_type"` // House, Shop, Land, Apartment, etc.
	ListingType  ListingType    `gorm:"not null;default:sale" json:"listing_type"`
	Status       PropertyStatus `gorm:"not null;default:available" json:"status"`

	// Physical / structure details
	Size          string `json:"size"` // in Biswa
	Bedrooms      *uint  `json:"bedrooms,omitempty"`
	Bathrooms     *uint  `json:"bathrooms,omitempty"`
	Kitchens      *uint  `json:"kitchens,omitempty"`
	FloorNo       string `json:"floor_no"`
	TotalFloors   *uint  `json:"total_floors,omitempty"`
	ParkingSpaces *uint  `json:"parking_spaces,omitempty"`
	FloorAreaSqft string `json:"floor_area_sqft"`

	// Deal info
	SalePrice      *decimal.Decimal `gorm:"type:decimal(18,2)" json:"sale_price,omitempty"`
	RentMonthly    *decimal.Decimal `gorm:"type:decimal(18,2)" json:"rent_monthly,omitempty"`
	RentDeposit    *decimal.Decimal `gorm:"type:decimal(18,2)" json:"rent_deposit,omitempty"`
	MortgageAmount *decimal.Decimal `gorm:"type:decimal(18,2)" json:"mortgage_amount,omitempty"`
	MortgageTerms  string           `json:"mortgage_terms"`

	// Internal / owner
	OwnerName    string `json:"owner_name"`
	OwnerContact string `json:"owner_contact"`
	Description  string `json:"description"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:PropertyItemID;constraint:OnDelete:CASCADE" json:"transactions,omitempty"`
	Commissions  []Commission  `gorm:"foreignKey:PropertyItemID;constraint:OnDelete:CASCADE" json:"commissions,omitempty"`
}
