package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncomeSource represents where a payment into the office came from.
type IncomeSource string

const (
	IncomeSourceSale           IncomeSource = "sale"
	IncomeSourceRent           IncomeSource = "rent"
	IncomeSourceInvestorReturn IncomeSource = "investor_return"
	IncomeSourceOther          IncomeSource = "other"
)

// Label returns the human-readable form used in exports and the UI.
func (s IncomeSource) Label() string {
	switch s {
	case IncomeSourceSale:
		return "Property Sale / Installment Received"
	case IncomeSourceRent:
		return "Rental Income"
	case IncomeSourceInvestorReturn:
		return "Paid Back by Buyer / Investor Return"
	case IncomeSourceOther:
		return "Other"
	}
	return string(s)
}

// Income records money received by the office. Same detach-on-delete
// semantics as Expense: the record outlives its property.
type Income struct {
	Base
	PropertyItemID *string         `gorm:"type:uuid" json:"property_item_id,omitempty"`
	Description    string          `gorm:"not null" json:"description"`
	Source         IncomeSource    `gorm:"not null" json:"source"`
	Amount         decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Date           time.Time       `gorm:"not null" json:"date"`
	CreatedByID    *string         `gorm:"type:uuid" json:"created_by_id,omitempty"`
	Remarks        string          `json:"remarks"`

	// Relationships
	PropertyItem *PropertyItem `gorm:"foreignKey:PropertyItemID;constraint:OnDelete:SET NULL" json:"property_item,omitempty"`
	CreatedBy    *User         `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"created_by,omitempty"`
}
