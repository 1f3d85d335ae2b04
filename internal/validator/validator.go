// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Afghan numbers: +93/0093 prefix followed by 8-9 digits, or a bare local
// form of an optional leading 0 and exactly 9 digits. Checked against a
// copy with separators removed; the stored value keeps them.
var afghanPhoneRegex = regexp.MustCompile(`^((\+93|0093)\d{2,3}\d{3}\d{3}|0?\d{9})$`)

// ValidAfghanPhone reports whether phone is an acceptable Afghan phone
// number. The empty string is valid because the field is optional.
func ValidAfghanPhone(phone string) bool {
	if phone == "" {
		return true
	}
	compact := strings.NewReplacer(" ", "", "-", "").Replace(phone)
	return afghanPhoneRegex.MatchString(compact)
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("afghan_phone", validateAfghanPhone)
		_ = v.RegisterValidation("investor_type", validateInvestorType)
		_ = v.RegisterValidation("investor_status", validateInvestorStatus)
		_ = v.RegisterValidation("listing_type", validateListingType)
		_ = v.RegisterValidation("property_status", validatePropertyStatus)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("deal_type", validateDealType)
		_ = v.RegisterValidation("commission_type", validateCommissionType)
		_ = v.RegisterValidation("expense_category", validateExpenseCategory)
		_ = v.RegisterValidation("income_source", validateIncomeSource)
	}
}

func validateAfghanPhone(fl validator.FieldLevel) bool {
	return ValidAfghanPhone(fl.Field().String())
}

func validateInvestorType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "partner", "client", "other":
		return true
	}
	return false
}

func validateInvestorStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "active", "inactive":
		return true
	}
	return false
}

func validateListingType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "sale", "rent", "mortgage", "other":
		return true
	}
	return false
}

func validatePropertyStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "available", "sold", "rented", "mortgaged", "pending":
		return true
	}
	return false
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "buy", "sell":
		return true
	}
	return false
}

func validateDealType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "sale", "rent", "mortgage":
		return true
	}
	return false
}

func validateCommissionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "percent", "fixed":
		return true
	}
	return false
}

func validateExpenseCategory(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "purchase", "maintenance", "commission", "legal", "office", "other":
		return true
	}
	return false
}

func validateIncomeSource(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "sale", "rent", "investor_return", "other":
		return true
	}
	return false
}
