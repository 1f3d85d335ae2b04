package services

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "khplwak/internal/errors"
	"khplwak/internal/models"
)

const exportDateLayout = "2006-01-02"

// exportService renders entity sets to CSV for office exports and the
// nightly backup snapshot.
type exportService struct {
	db         *gorm.DB
	properties PropertyServicer
}

// NewExportService creates a new ExportServicer.
func NewExportService(db *gorm.DB, properties PropertyServicer) ExportServicer {
	return &exportService{db: db, properties: properties}
}

// oneLine collapses newlines so multi-line text stays one spreadsheet row.
func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}

func uintField(v *uint) string {
	if v == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*v), 10)
}

func decimalField(v *decimal.Decimal) string {
	if v == nil {
		return ""
	}
	return v.String()
}

// propertyCSVHeader matches the column order the office's spreadsheets
// were built around. Changing it breaks downstream imports.
var propertyCSVHeader = []string{
	"ID", "Address", "City", "Area", "Property Type", "Listing Type",
	"Status", "Size (Biswa)", "Bedrooms", "Bathrooms", "Kitchens",
	"Floor No", "Total Floors", "Parking Spaces", "Floor Area (sqft)",
	"Sale Price", "Rent Monthly", "Rent Deposit", "Mortgage Amount",
	"Mortgage Terms", "Owner Name", "Owner Contact", "Description",
}

func propertyCSVRow(p models.PropertyItem) []string {
	return []string{
		p.ID,
		oneLine(p.Address),
		p.City,
		p.AreaName,
		p.PropertyType,
		p.ListingType.Label(),
		string(p.Status),
		p.Size,
		uintField(p.Bedrooms),
		uintField(p.Bathrooms),
		uintField(p.Kitchens),
		p.FloorNo,
		uintField(p.TotalFloors),
		uintField(p.ParkingSpaces),
		p.FloorAreaSqft,
		decimalField(p.SalePrice),
		decimalField(p.RentMonthly),
		decimalField(p.RentDeposit),
		decimalField(p.MortgageAmount),
		oneLine(p.MortgageTerms),
		p.OwnerName,
		p.OwnerContact,
		oneLine(p.Description),
	}
}

// WritePropertiesCSV streams the property list as CSV. The filter is the
// same one the interactive list uses, so an export always contains
// exactly the rows the caller was looking at.
func (s *exportService) WritePropertiesCSV(w io.Writer, filter PropertyFilter) error {
	properties, err := s.properties.GetAllProperties(filter)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(propertyCSVHeader); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, p := range properties {
		if err := cw.Write(propertyCSVRow(p)); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func expensePropertyAddress(p *models.PropertyItem) string {
	if p == nil {
		return ""
	}
	return oneLine(p.Address)
}

// WriteBackupCSV writes the multi-section backup snapshot: investors,
// expenses, and income in one file, sections separated by blank rows.
func (s *exportService) WriteBackupCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	write := func(record []string) error {
		if err := cw.Write(record); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	}

	var investors []models.Investor
	if err := s.db.Order("id").Find(&investors).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := write([]string{"=== INVESTORS ==="}); err != nil {
		return err
	}
	if err := write([]string{"id", "full_name", "surname", "phone", "location", "invested_amount", "created_at"}); err != nil {
		return err
	}
	for _, inv := range investors {
		if err := write([]string{
			inv.ID,
			inv.FullName,
			inv.Surname,
			inv.Phone,
			inv.Location,
			inv.InvestedAmount.String(),
			inv.CreatedAt.Format(time.DateTime),
		}); err != nil {
			return err
		}
	}

	var expenses []models.Expense
	if err := s.db.Preload("PropertyItem").Order("date, id").Find(&expenses).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := write([]string{}); err != nil {
		return err
	}
	if err := write([]string{"=== EXPENSES ==="}); err != nil {
		return err
	}
	if err := write([]string{"id", "date", "category", "description", "amount", "property_item", "remarks"}); err != nil {
		return err
	}
	for _, e := range expenses {
		if err := write([]string{
			e.ID,
			e.Date.Format(exportDateLayout),
			string(e.Category),
			oneLine(e.Description),
			e.Amount.String(),
			expensePropertyAddress(e.PropertyItem),
			oneLine(e.Remarks),
		}); err != nil {
			return err
		}
	}

	var incomes []models.Income
	if err := s.db.Preload("PropertyItem").Order("date, id").Find(&incomes).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := write([]string{}); err != nil {
		return err
	}
	if err := write([]string{"=== INCOME ==="}); err != nil {
		return err
	}
	if err := write([]string{"id", "date", "source", "description", "amount", "property_item", "remarks"}); err != nil {
		return err
	}
	for _, in := range incomes {
		if err := write([]string{
			in.ID,
			in.Date.Format(exportDateLayout),
			string(in.Source),
			oneLine(in.Description),
			in.Amount.String(),
			expensePropertyAddress(in.PropertyItem),
			oneLine(in.Remarks),
		}); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
