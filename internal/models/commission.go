package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DealType represents the kind of deal a commission was charged on.
type DealType string

const (
	DealTypeSale     DealType = "sale"
	DealTypeRent     DealType = "rent"
	DealTypeMortgage DealType = "mortgage"
)

// Label returns the human-readable form used in exports and the UI.
func (d DealType) Label() string {
	switch d {
	case DealTypeSale:
		return "Sale"
	case DealTypeRent:
		return "Rent"
	case DealTypeMortgage:
		return "Mortgage / Grawi"
	}
	return string(d)
}

// CommissionType determines how CommissionValue is interpreted: a
// percentage number when percent, an absolute AFN amount when fixed.
type CommissionType string

const (
	CommissionTypePercent CommissionType = "percent"
	CommissionTypeFixed   CommissionType = "fixed"
)

// Commission records what the office earned on a deal. TotalEarned is
// derived: the BeforeSave hook recomputes it from the other fields on
// every create and update, so a stored row can never carry a stale value.
type Commission struct {
	Base
	PropertyItemID  string          `gorm:"type:uuid;not null" json:"property_item_id"`
	DealType        DealType        `gorm:"not null" json:"deal_type"`
	DealAmount      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"deal_amount"`
	CommissionType  CommissionType  `gorm:"not null" json:"commission_type"`
	CommissionValue decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"commission_value"`
	TotalEarned     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_earned"`
	Notes           string          `json:"notes"`

	// Relationships
	PropertyItem PropertyItem `gorm:"foreignKey:PropertyItemID" json:"property_item,omitempty"`
}

// CalculateCommission computes the amount earned on a deal. Percent
// values above 100 are accepted as entered.
func CalculateCommission(commissionType CommissionType, dealAmount, commissionValue decimal.Decimal) decimal.Decimal {
	if commissionType == CommissionTypePercent {
		return dealAmount.Mul(commissionValue).Div(decimal.NewFromInt(100))
	}
	return commissionValue
}

// BeforeSave recomputes TotalEarned so it always matches the current
// (commission_type, commission_value, deal_amount) triple.
func (c *Commission) BeforeSave(tx *gorm.DB) error {
	c.TotalEarned = CalculateCommission(c.CommissionType, c.DealAmount, c.CommissionValue)
	return nil
}
