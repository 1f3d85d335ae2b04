package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "khplwak/internal/errors"
	"khplwak/internal/services"
)

// --- mock report service ---

type mockReportService struct {
	getDashboardSummaryFn func() (*services.DashboardSummary, error)
	getInvestorSummaryFn  func(investorID string) (*services.InvestorSummary, error)
	getPropertySummaryFn  func(propertyID string) (*services.PropertySummary, error)
	getFinanceReportFn    func() (*services.FinanceReport, error)
}

func (m *mockReportService) GetDashboardSummary() (*services.DashboardSummary, error) {
	if m.getDashboardSummaryFn != nil {
		return m.getDashboardSummaryFn()
	}
	return &services.DashboardSummary{}, nil
}

func (m *mockReportService) GetInvestorSummary(investorID string) (*services.InvestorSummary, error) {
	if m.getInvestorSummaryFn != nil {
		return m.getInvestorSummaryFn(investorID)
	}
	return &services.InvestorSummary{}, nil
}

func (m *mockReportService) GetPropertySummary(propertyID string) (*services.PropertySummary, error) {
	if m.getPropertySummaryFn != nil {
		return m.getPropertySummaryFn(propertyID)
	}
	return &services.PropertySummary{}, nil
}

func (m *mockReportService) GetFinanceReport() (*services.FinanceReport, error) {
	if m.getFinanceReportFn != nil {
		return m.getFinanceReportFn()
	}
	return &services.FinanceReport{}, nil
}

var _ services.ReportServicer = (*mockReportService)(nil)

func setupReportRouter(handler *ReportHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/reports/dashboard", handler.GetDashboard)
	auth.GET("/reports/finance", handler.GetFinanceReport)
	auth.GET("/investors/:id/summary", handler.GetInvestorSummary)
	auth.GET("/properties/:id/summary", handler.GetPropertySummary)
	return r
}

func TestReportHandler_GetDashboard(t *testing.T) {
	t.Run("returns 200 with counts and totals", func(t *testing.T) {
		svc := &mockReportService{
			getDashboardSummaryFn: func() (*services.DashboardSummary, error) {
				return &services.DashboardSummary{
					InvestorCount:    3,
					PropertyCount:    5,
					TransactionCount: 8,
					AvailableCount:   2,
					SoldCount:        1,
					TotalInvested:    decimal.NewFromInt(100000),
					TotalReturned:    decimal.NewFromInt(150000),
					TotalCommissions: decimal.NewFromInt(2600),
				}, nil
			},
		}
		handler := NewReportHandler(svc)
		r := setupReportRouter(handler)

		rec := doRequest(r, "GET", "/reports/dashboard", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["investor_count"].(float64) != 3 {
			t.Errorf("expected investor_count=3, got %v", result["investor_count"])
		}
		invested, _ := decimal.NewFromString(result["total_invested"].(string))
		if !invested.Equal(decimal.NewFromInt(100000)) {
			t.Errorf("expected total_invested 100000, got %v", result["total_invested"])
		}
	})
}

func TestReportHandler_GetInvestorSummary(t *testing.T) {
	t.Run("returns 200 with net result", func(t *testing.T) {
		svc := &mockReportService{
			getInvestorSummaryFn: func(_ string) (*services.InvestorSummary, error) {
				return &services.InvestorSummary{
					TotalInvested: decimal.NewFromInt(100000),
					TotalReturned: decimal.NewFromInt(150000),
					NetResult:     decimal.NewFromInt(50000),
				}, nil
			},
		}
		handler := NewReportHandler(svc)
		r := setupReportRouter(handler)

		rec := doRequest(r, "GET", "/investors/"+testInvestorID+"/summary", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		net, _ := decimal.NewFromString(result["net_result"].(string))
		if !net.Equal(decimal.NewFromInt(50000)) {
			t.Errorf("expected net_result 50000, got %v", result["net_result"])
		}
	})

	t.Run("returns 404 on unknown investor", func(t *testing.T) {
		svc := &mockReportService{
			getInvestorSummaryFn: func(_ string) (*services.InvestorSummary, error) {
				return nil, apperrors.ErrInvestorNotFound
			},
		}
		handler := NewReportHandler(svc)
		r := setupReportRouter(handler)

		rec := doRequest(r, "GET", "/investors/"+testRecordID+"/summary", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVESTOR_NOT_FOUND")
	})

	t.Run("returns 400 on invalid ID", func(t *testing.T) {
		handler := NewReportHandler(&mockReportService{})
		r := setupReportRouter(handler)

		rec := doRequest(r, "GET", "/investors/abc/summary", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestReportHandler_GetPropertySummary(t *testing.T) {
	t.Run("returns 200 with commission total", func(t *testing.T) {
		svc := &mockReportService{
			getPropertySummaryFn: func(_ string) (*services.PropertySummary, error) {
				return &services.PropertySummary{
					TotalInvested:   decimal.NewFromInt(100000),
					TotalReturned:   decimal.NewFromInt(150000),
					NetResult:       decimal.NewFromInt(50000),
					TotalCommission: decimal.NewFromInt(2600),
				}, nil
			},
		}
		handler := NewReportHandler(svc)
		r := setupReportRouter(handler)

		rec := doRequest(r, "GET", "/properties/"+testPropertyID+"/summary", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		commission, _ := decimal.NewFromString(result["total_commission_earned"].(string))
		if !commission.Equal(decimal.NewFromInt(2600)) {
			t.Errorf("expected total_commission_earned 2600, got %v", result["total_commission_earned"])
		}
	})

	t.Run("returns 404 on unknown property", func(t *testing.T) {
		svc := &mockReportService{
			getPropertySummaryFn: func(_ string) (*services.PropertySummary, error) {
				return nil, apperrors.ErrPropertyNotFound
			},
		}
		handler := NewReportHandler(svc)
		r := setupReportRouter(handler)

		rec := doRequest(r, "GET", "/properties/"+testRecordID+"/summary", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestReportHandler_GetFinanceReport(t *testing.T) {
	t.Run("returns 200 with breakdowns", func(t *testing.T) {
		svc := &mockReportService{
			getFinanceReportFn: func() (*services.FinanceReport, error) {
				return &services.FinanceReport{
					TotalIncome:  decimal.NewFromInt(13000),
					TotalExpense: decimal.NewFromInt(3500),
					NetBalance:   decimal.NewFromInt(9500),
					ExpenseByCategory: []services.CategoryTotal{
						{Category: "maintenance", Total: decimal.NewFromInt(2000)},
						{Category: "office", Total: decimal.NewFromInt(1500)},
					},
					IncomeBySource: []services.SourceTotal{
						{Source: "rent", Total: decimal.NewFromInt(13000)},
					},
				}, nil
			},
		}
		handler := NewReportHandler(svc)
		r := setupReportRouter(handler)

		rec := doRequest(r, "GET", "/reports/finance", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		balance, _ := decimal.NewFromString(result["net_balance"].(string))
		if !balance.Equal(decimal.NewFromInt(9500)) {
			t.Errorf("expected net_balance 9500, got %v", result["net_balance"])
		}
		byCategory := result["expense_by_category"].([]interface{})
		if len(byCategory) != 2 {
			t.Errorf("expected 2 category rows, got %d", len(byCategory))
		}
	})
}
