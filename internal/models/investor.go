package models

import "github.com/shopspring/decimal"

// InvestorType classifies the relationship the office has with an investor.
type InvestorType string

const (
	InvestorTypePartner InvestorType = "partner"
	InvestorTypeClient  InvestorType = "client"
	InvestorTypeOther   InvestorType = "other"
)

// InvestorStatus represents an investor's lifecycle status.
type InvestorStatus string

const (
	InvestorStatusActive   InvestorStatus = "active"
	InvestorStatusInactive InvestorStatus = "inactive"
)

// Investor represents a partner, client, or other party money flows
// through. Phone numbers are stored exactly as entered; only the
// validation check runs on a separator-stripped copy.
type Investor struct {
	Base
	FullName       string          `gorm:"not null" json:"full_name"`
	Surname        string          `json:"surname"`
	Location       string          `json:"location"`
	Phone          string          `gorm:"size:20" json:"phone"`
	Whatsapp       string          `gorm:"size:20" json:"whatsapp"`
	InvestorType   InvestorType    `gorm:"not null;default:partner" json:"investor_type"`
	Status         InvestorStatus  `gorm:"not null;default:active" json:"status"`
	IDDocument     string          `json:"id_document"`
	Notes          string          `json:"notes"`
	InvestedAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"invested_amount"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:InvestorID;constraint:OnDelete:CASCADE" json:"transactions,omitempty"`
}
