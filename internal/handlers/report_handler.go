package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"khplwak/internal/services"
)

// ReportHandler serves the dashboard and ledger aggregate endpoints.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetDashboard returns the dashboard summary.
// @Summary     Dashboard summary
// @Description Get record counts, per-status property counts, and global ledger totals
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.DashboardSummary "Dashboard summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/dashboard [get]
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	summary, err := h.reportService.GetDashboardSummary()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetInvestorSummary returns the ledger totals for one investor.
// @Summary     Investor summary
// @Description Get the buy/sell totals and net result for one investor
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investor ID"
// @Success     200 {object} services.InvestorSummary "Investor summary"
// @Failure     400 {object} ErrorResponse "Invalid investor ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investor not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investors/{id}/summary [get]
func (h *ReportHandler) GetInvestorSummary(c *gin.Context) {
	investorID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.reportService.GetInvestorSummary(investorID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetPropertySummary returns the ledger totals for one property.
// @Summary     Property summary
// @Description Get the buy/sell totals, net result, and earned commission for one property
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Property ID"
// @Success     200 {object} services.PropertySummary "Property summary"
// @Failure     400 {object} ErrorResponse "Invalid property ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Property not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /properties/{id}/summary [get]
func (h *ReportHandler) GetPropertySummary(c *gin.Context) {
	propertyID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.reportService.GetPropertySummary(propertyID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetFinanceReport returns the office-level income/expense report.
// @Summary     Finance report
// @Description Get total income, total expense, net balance, and per-category/per-source breakdowns
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.FinanceReport "Finance report"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/finance [get]
func (h *ReportHandler) GetFinanceReport(c *gin.Context) {
	report, err := h.reportService.GetFinanceReport()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
