package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of money on a deal.
type TransactionType string

const (
	TransactionTypeBuy  TransactionType = "buy"  // money spent
	TransactionTypeSell TransactionType = "sell" // money received
)

// Label returns the human-readable form used in exports and the UI.
func (t TransactionType) Label() string {
	switch t {
	case TransactionTypeBuy:
		return "Buy / Money Spent"
	case TransactionTypeSell:
		return "Sell / Money Received"
	}
	return string(t)
}

// Transaction records money moving between an investor and a property
// deal. Deleting either side deletes the transaction. TransactionDate is
// set once at creation and never changed by updates.
type Transaction struct {
	Base
	PropertyItemID  string          `gorm:"type:uuid;not null" json:"property_item_id"`
	InvestorID      string          `gorm:"type:uuid;not null" json:"investor_id"`
	Type            TransactionType `gorm:"not null" json:"transaction_type"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	TransactionDate time.Time       `gorm:"not null" json:"transaction_date"`

	// Relationships
	PropertyItem PropertyItem `gorm:"foreignKey:PropertyItemID" json:"property_item,omitempty"`
	Investor     Investor     `gorm:"foreignKey:InvestorID" json:"investor,omitempty"`
}
