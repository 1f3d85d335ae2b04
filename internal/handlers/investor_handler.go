package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "khplwak/internal/errors"
	"khplwak/internal/models"
	"khplwak/internal/pagination"
	"khplwak/internal/services"
)

// InvestorHandler handles investor-related requests.
type InvestorHandler struct {
	investorService services.InvestorServicer
	auditService    services.AuditServicer
}

// NewInvestorHandler creates a new InvestorHandler.
func NewInvestorHandler(investorService services.InvestorServicer, auditService services.AuditServicer) *InvestorHandler {
	return &InvestorHandler{investorService: investorService, auditService: auditService}
}

// InvestorRequest represents the request payload for creating or updating
// an investor. Updates replace the full editable field set.
type InvestorRequest struct {
	FullName       string          `json:"full_name" binding:"required,min=1,max=255"`
	Surname        string          `json:"surname" binding:"max=255"`
	Location       string          `json:"location" binding:"max=255"`
	Phone          string          `json:"phone" binding:"omitempty,max=20,afghan_phone"`
	Whatsapp       string          `json:"whatsapp" binding:"omitempty,max=20,afghan_phone"`
	InvestorType   string          `json:"investor_type" binding:"omitempty,investor_type"`
	Status         string          `json:"status" binding:"omitempty,investor_status"`
	IDDocument     string          `json:"id_document" binding:"max=255"`
	Notes          string          `json:"notes"`
	InvestedAmount decimal.Decimal `json:"invested_amount"`
}

func (r InvestorRequest) params() services.InvestorParams {
	return services.InvestorParams{
		FullName:       r.FullName,
		Surname:        r.Surname,
		Location:       r.Location,
		Phone:          r.Phone,
		Whatsapp:       r.Whatsapp,
		InvestorType:   models.InvestorType(r.InvestorType),
		Status:         models.InvestorStatus(r.Status),
		IDDocument:     r.IDDocument,
		Notes:          r.Notes,
		InvestedAmount: r.InvestedAmount,
	}
}

// CreateInvestor handles the creation of a new investor.
// @Summary     Create an investor
// @Description Register a new investor or client in the office ledger
// @Tags        investors
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body InvestorRequest true "Investor details"
// @Success     201 {object} models.Investor "Investor created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investors [post]
func (h *InvestorHandler) CreateInvestor(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req InvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investor, err := h.investorService.CreateInvestor(req.params())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_INVESTOR", "investor", investor.ID, c.ClientIP(),
		map[string]interface{}{"full_name": req.FullName})

	c.JSON(http.StatusCreated, gin.H{"investor": investor})
}

// GetInvestors handles the retrieval of investors.
// @Summary     List investors
// @Description Get a paginated list of investors
// @Tags        investors
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Investor] "Paginated investors"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investors [get]
func (h *InvestorHandler) GetInvestors(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.investorService.GetInvestors(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetInvestorByID handles the retrieval of a specific investor.
// @Summary     Get investor by ID
// @Description Get a specific investor by ID
// @Tags        investors
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investor ID"
// @Success     200 {object} models.Investor "Investor details"
// @Failure     400 {object} ErrorResponse "Invalid investor ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investor not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investors/{id} [get]
func (h *InvestorHandler) GetInvestorByID(c *gin.Context) {
	investorID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	investor, err := h.investorService.GetInvestorByID(investorID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investor": investor})
}

// GetInvestorTransactions lists an investor's transaction history.
// @Summary     List investor transactions
// @Description Get the transaction history of one investor, newest first
// @Tags        investors
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investor ID"
// @Success     200 {object} map[string][]models.Transaction "Investor transactions"
// @Failure     400 {object} ErrorResponse "Invalid investor ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investor not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investors/{id}/transactions [get]
func (h *InvestorHandler) GetInvestorTransactions(c *gin.Context) {
	investorID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactions, err := h.investorService.GetInvestorTransactions(investorID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

// UpdateInvestor handles updating an investor.
// @Summary     Update investor
// @Description Replace an investor's editable fields
// @Tags        investors
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investor ID"
// @Param       request body InvestorRequest true "Updated investor details"
// @Success     200 {object} models.Investor "Updated investor"
// @Failure     400 {object} ErrorResponse "Invalid input or investor ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investor not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investors/{id} [put]
func (h *InvestorHandler) UpdateInvestor(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investorID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req InvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investor, err := h.investorService.UpdateInvestor(investorID, req.params())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_INVESTOR", "investor", investorID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"investor": investor})
}

// DeleteInvestor handles deleting an investor.
// @Summary     Delete investor
// @Description Delete an investor and their transaction history
// @Tags        investors
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investor ID"
// @Success     204 "Investor deleted"
// @Failure     400 {object} ErrorResponse "Invalid investor ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investor not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investors/{id} [delete]
func (h *InvestorHandler) DeleteInvestor(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investorID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.investorService.DeleteInvestor(investorID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_INVESTOR", "investor", investorID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}
