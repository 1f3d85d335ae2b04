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

// CommissionHandler handles commission-related requests.
type CommissionHandler struct {
	commissionService services.CommissionServicer
	auditService      services.AuditServicer
}

// NewCommissionHandler creates a new CommissionHandler.
func NewCommissionHandler(commissionService services.CommissionServicer, auditService services.AuditServicer) *CommissionHandler {
	return &CommissionHandler{commissionService: commissionService, auditService: auditService}
}

// CommissionRequest represents the request payload for creating or
// updating a commission. The earned total is derived server-side and
// cannot be set by the caller.
type CommissionRequest struct {
	PropertyItemID  string          `json:"property_item_id" binding:"required,uuid"`
	DealType        string          `json:"deal_type" binding:"required,deal_type"`
	DealAmount      decimal.Decimal `json:"deal_amount"`
	CommissionType  string          `json:"commission_type" binding:"required,commission_type"`
	CommissionValue decimal.Decimal `json:"commission_value"`
	Notes           string          `json:"notes"`
}

func (r CommissionRequest) params() services.CommissionParams {
	return services.CommissionParams{
		PropertyItemID:  r.PropertyItemID,
		DealType:        models.DealType(r.DealType),
		DealAmount:      r.DealAmount,
		CommissionType:  models.CommissionType(r.CommissionType),
		CommissionValue: r.CommissionValue,
		Notes:           r.Notes,
	}
}

// CreateCommission handles the creation of a new commission record.
// @Summary     Create a commission
// @Description Record a commission earned on a deal. The earned total is computed from the deal amount and commission terms.
// @Tags        commissions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CommissionRequest true "Commission details"
// @Success     201 {object} models.Commission "Commission created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Property not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /commissions [post]
func (h *CommissionHandler) CreateCommission(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	commission, err := h.commissionService.CreateCommission(req.params())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_COMMISSION", "commission", commission.ID, c.ClientIP(),
		map[string]interface{}{"deal_type": req.DealType, "total_earned": commission.TotalEarned.String()})

	c.JSON(http.StatusCreated, gin.H{"commission": commission})
}

// GetCommissions handles the retrieval of commissions with the running total.
// @Summary     List commissions
// @Description Get a paginated list of commissions, newest first, with the all-time earned total
// @Tags        commissions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Commission] "Paginated commissions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /commissions [get]
func (h *CommissionHandler) GetCommissions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.commissionService.GetCommissions(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totalEarned, err := h.commissionService.GetTotalEarned()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"commissions":  result,
		"total_earned": totalEarned,
	})
}

// GetCommissionByID handles the retrieval of a specific commission.
// @Summary     Get commission by ID
// @Description Get a specific commission by ID
// @Tags        commissions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Commission ID"
// @Success     200 {object} models.Commission "Commission details"
// @Failure     400 {object} ErrorResponse "Invalid commission ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Commission not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /commissions/{id} [get]
func (h *CommissionHandler) GetCommissionByID(c *gin.Context) {
	commissionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	commission, err := h.commissionService.GetCommissionByID(commissionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"commission": commission})
}

// UpdateCommission handles updating a commission. The earned total is
// recomputed from the updated terms.
// @Summary     Update commission
// @Description Replace a commission's editable fields and recompute the earned total
// @Tags        commissions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Commission ID"
// @Param       request body CommissionRequest true "Updated commission details"
// @Success     200 {object} models.Commission "Updated commission"
// @Failure     400 {object} ErrorResponse "Invalid input or commission ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Commission not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /commissions/{id} [put]
func (h *CommissionHandler) UpdateCommission(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	commissionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	commission, err := h.commissionService.UpdateCommission(commissionID, req.params())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_COMMISSION", "commission", commissionID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"commission": commission})
}

// DeleteCommission handles deleting a commission.
// @Summary     Delete commission
// @Description Delete a commission record
// @Tags        commissions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Commission ID"
// @Success     204 "Commission deleted"
// @Failure     400 {object} ErrorResponse "Invalid commission ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Commission not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /commissions/{id} [delete]
func (h *CommissionHandler) DeleteCommission(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	commissionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.commissionService.DeleteCommission(commissionID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_COMMISSION", "commission", commissionID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}
