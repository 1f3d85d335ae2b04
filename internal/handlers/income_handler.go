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

// IncomeHandler handles income-related requests.
type IncomeHandler struct {
	incomeService services.IncomeServicer
	auditService  services.AuditServicer
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(incomeService services.IncomeServicer, auditService services.AuditServicer) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService, auditService: auditService}
}

// IncomeRequest represents the request payload for creating or updating
// an income entry. The property reference is optional.
type IncomeRequest struct {
	PropertyItemID *string         `json:"property_item_id" binding:"omitempty,uuid"`
	Description    string          `json:"description" binding:"required,min=1,max=500"`
	Source         string          `json:"source" binding:"required,income_source"`
	Amount         decimal.Decimal `json:"amount"`
	Date           string          `json:"date"`
	Remarks        string          `json:"remarks"`
}

func (r IncomeRequest) params() (services.IncomeParams, error) {
	date, err := parseDate(r.Date, "date")
	if err != nil {
		return services.IncomeParams{}, err
	}
	return services.IncomeParams{
		PropertyItemID: r.PropertyItemID,
		Description:    r.Description,
		Source:         models.IncomeSource(r.Source),
		Amount:         r.Amount,
		Date:           date,
		Remarks:        r.Remarks,
	}, nil
}

// CreateIncome handles the creation of a new income entry.
// @Summary     Create an income entry
// @Description Record money received by the office, optionally tied to a property
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body IncomeRequest true "Income details"
// @Success     201 {object} models.Income "Income created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Property not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income [post]
func (h *IncomeHandler) CreateIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	params, err := req.params()
	if err != nil {
		respondWithError(c, err)
		return
	}

	income, err := h.incomeService.CreateIncome(params, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_INCOME", "income", income.ID, c.ClientIP(),
		map[string]interface{}{"source": req.Source, "amount": req.Amount.String()})

	c.JSON(http.StatusCreated, gin.H{"income": income})
}

// GetIncomes handles the retrieval of income entries with the running total.
// @Summary     List income entries
// @Description Get a paginated list of income entries, newest first, with the all-time total
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Income] "Paginated income entries"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income [get]
func (h *IncomeHandler) GetIncomes(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.incomeService.GetIncomes(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	total, err := h.incomeService.GetTotalIncome()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"income":       result,
		"total_income": total,
	})
}

// GetIncomeByID handles the retrieval of a specific income entry.
// @Summary     Get income by ID
// @Description Get a specific income entry by ID
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Income ID"
// @Success     200 {object} models.Income "Income details"
// @Failure     400 {object} ErrorResponse "Invalid income ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Income not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income/{id} [get]
func (h *IncomeHandler) GetIncomeByID(c *gin.Context) {
	incomeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	income, err := h.incomeService.GetIncomeByID(incomeID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"income": income})
}

// UpdateIncome handles updating an income entry. The original creator is
// preserved.
// @Summary     Update income
// @Description Replace an income entry's editable fields
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Income ID"
// @Param       request body IncomeRequest true "Updated income details"
// @Success     200 {object} models.Income "Updated income"
// @Failure     400 {object} ErrorResponse "Invalid input or income ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Income not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income/{id} [put]
func (h *IncomeHandler) UpdateIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	incomeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	params, err := req.params()
	if err != nil {
		respondWithError(c, err)
		return
	}

	income, err := h.incomeService.UpdateIncome(incomeID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_INCOME", "income", incomeID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"income": income})
}

// DeleteIncome handles deleting an income entry.
// @Summary     Delete income
// @Description Delete an income record
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Income ID"
// @Success     204 "Income deleted"
// @Failure     400 {object} ErrorResponse "Invalid income ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Income not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income/{id} [delete]
func (h *IncomeHandler) DeleteIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	incomeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.incomeService.DeleteIncome(incomeID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_INCOME", "income", incomeID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}
