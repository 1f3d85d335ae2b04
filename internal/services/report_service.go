package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "khplwak/internal/errors"
	"khplwak/internal/models"
)

// reportService computes ledger aggregates straight from the database.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

// sumDecimal sums one numeric column of a prepared query, treating an
// empty result set as zero.
func sumDecimal(q *gorm.DB, col string) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := q.Select("COALESCE(SUM(" + col + "), 0)").Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

func (s *reportService) countRows(q *gorm.DB) (int64, error) {
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count, nil
}

func (s *reportService) transactionTotal(transactionType models.TransactionType, scope func(*gorm.DB) *gorm.DB) (decimal.Decimal, error) {
	q := s.db.Model(&models.Transaction{}).Where("type = ?", transactionType)
	if scope != nil {
		q = scope(q)
	}
	return sumDecimal(q, "amount")
}

// GetDashboardSummary returns the record counts, per-status property
// counts and global ledger totals for the dashboard.
func (s *reportService) GetDashboardSummary() (*DashboardSummary, error) {
	summary := &DashboardSummary{}

	var err error
	if summary.InvestorCount, err = s.countRows(s.db.Model(&models.Investor{})); err != nil {
		return nil, err
	}
	if summary.PropertyCount, err = s.countRows(s.db.Model(&models.PropertyItem{})); err != nil {
		return nil, err
	}
	if summary.TransactionCount, err = s.countRows(s.db.Model(&models.Transaction{})); err != nil {
		return nil, err
	}

	statusCounts := map[models.PropertyStatus]*int64{
		models.PropertyStatusAvailable: &summary.AvailableCount,
		models.PropertyStatusRented:    &summary.RentedCount,
		models.PropertyStatusSold:      &summary.SoldCount,
		models.PropertyStatusMortgaged: &summary.MortgagedCount,
	}
	for status, dest := range statusCounts {
		count, err := s.countRows(s.db.Model(&models.PropertyItem{}).Where("status = ?", status))
		if err != nil {
			return nil, err
		}
		*dest = count
	}

	if summary.TotalInvested, err = s.transactionTotal(models.TransactionTypeBuy, nil); err != nil {
		return nil, err
	}
	if summary.TotalReturned, err = s.transactionTotal(models.TransactionTypeSell, nil); err != nil {
		return nil, err
	}
	if summary.TotalCommissions, err = sumDecimal(s.db.Model(&models.Commission{}), "total_earned"); err != nil {
		return nil, err
	}

	return summary, nil
}

// GetInvestorSummary returns the buy/sell totals and net result for one
// investor's transactions.
func (s *reportService) GetInvestorSummary(investorID string) (*InvestorSummary, error) {
	count, err := s.countRows(s.db.Model(&models.Investor{}).Where("id = ?", investorID))
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperrors.ErrInvestorNotFound
	}

	scope := func(q *gorm.DB) *gorm.DB {
		return q.Where("investor_id = ?", investorID)
	}

	summary := &InvestorSummary{}
	if summary.TotalInvested, err = s.transactionTotal(models.TransactionTypeBuy, scope); err != nil {
		return nil, err
	}
	if summary.TotalReturned, err = s.transactionTotal(models.TransactionTypeSell, scope); err != nil {
		return nil, err
	}
	summary.NetResult = summary.TotalReturned.Sub(summary.TotalInvested)

	return summary, nil
}

// GetPropertySummary returns the buy/sell totals, net result and earned
// commission for one property.
func (s *reportService) GetPropertySummary(propertyID string) (*PropertySummary, error) {
	count, err := s.countRows(s.db.Model(&models.PropertyItem{}).Where("id = ?", propertyID))
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperrors.ErrPropertyNotFound
	}

	scope := func(q *gorm.DB) *gorm.DB {
		return q.Where("property_item_id = ?", propertyID)
	}

	summary := &PropertySummary{}
	if summary.TotalInvested, err = s.transactionTotal(models.TransactionTypeBuy, scope); err != nil {
		return nil, err
	}
	if summary.TotalReturned, err = s.transactionTotal(models.TransactionTypeSell, scope); err != nil {
		return nil, err
	}
	summary.NetResult = summary.TotalReturned.Sub(summary.TotalInvested)

	commissionQuery := s.db.Model(&models.Commission{}).Where("property_item_id = ?", propertyID)
	if summary.TotalCommission, err = sumDecimal(commissionQuery, "total_earned"); err != nil {
		return nil, err
	}

	return summary, nil
}

// GetFinanceReport returns the office-level income/expense totals with
// per-category and per-source breakdowns, largest totals first.
func (s *reportService) GetFinanceReport() (*FinanceReport, error) {
	report := &FinanceReport{
		ExpenseByCategory: []CategoryTotal{},
		IncomeBySource:    []SourceTotal{},
	}

	var err error
	if report.TotalIncome, err = sumDecimal(s.db.Model(&models.Income{}), "amount"); err != nil {
		return nil, err
	}
	if report.TotalExpense, err = sumDecimal(s.db.Model(&models.Expense{}), "amount"); err != nil {
		return nil, err
	}
	report.NetBalance = report.TotalIncome.Sub(report.TotalExpense)

	if err := s.db.Model(&models.Expense{}).
		Select("category, COALESCE(SUM(amount), 0) AS total").
		Group("category").
		Order("total DESC, category ASC").
		Scan(&report.ExpenseByCategory).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Model(&models.Income{}).
		Select("source, COALESCE(SUM(amount), 0) AS total").
		Group("source").
		Order("total DESC, source ASC").
		Scan(&report.IncomeBySource).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return report, nil
}
