package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory represents what an expense was for.
type ExpenseCategory string

const (
	ExpenseCategoryPurchase    ExpenseCategory = "purchase"
	ExpenseCategoryMaintenance ExpenseCategory = "maintenance"
	ExpenseCategoryCommission  ExpenseCategory = "commission"
	ExpenseCategoryLegal       ExpenseCategory = "legal"
	ExpenseCategoryOffice      ExpenseCategory = "office"
	ExpenseCategoryOther       ExpenseCategory = "other"
)

// Label returns the human-readable form used in exports and the UI.
func (c ExpenseCategory) Label() string {
	switch c {
	case ExpenseCategoryPurchase:
		return "Property Purchase / Payment to Owner"
	case ExpenseCategoryMaintenance:
		return "Repair / Maintenance / Work"
	case ExpenseCategoryCommission:
		return "Broker / Dealer Commission Paid"
	case ExpenseCategoryLegal:
		return "Documents / Legal / Transfer"
	case ExpenseCategoryOffice:
		return "Office / Fuel / Travel"
	case ExpenseCategoryOther:
		return "Other"
	}
	return string(c)
}

// Expense records money paid out by the office. The property reference is
// optional and only detached, never cascaded: deleting the property keeps
// the expense as financial history with the reference cleared.
type Expense struct {
	Base
	PropertyItemID *string         `gorm:"type:uuid" json:"property_item_id,omitempty"`
	Description    string          `gorm:"not null" json:"description"`
	Category       ExpenseCategory `gorm:"not null" json:"category"`
	Amount         decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Date           time.Time       `gorm:"not null" json:"date"`
	CreatedByID    *string         `gorm:"type:uuid" json:"created_by_id,omitempty"`
	Remarks        string          `json:"remarks"`

	// Relationships
	PropertyItem *PropertyItem `gorm:"foreignKey:PropertyItemID;constraint:OnDelete:SET NULL" json:"property_item,omitempty"`
	CreatedBy    *User         `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"created_by,omitempty"`
}
