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

// PropertyHandler handles property-related requests.
type PropertyHandler struct {
	propertyService services.PropertyServicer
	exportService   services.ExportServicer
	auditService    services.AuditServicer
}

// NewPropertyHandler creates a new PropertyHandler.
func NewPropertyHandler(propertyService services.PropertyServicer, exportService services.ExportServicer, auditService services.AuditServicer) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService, exportService: exportService, auditService: auditService}
}

// PropertyRequest represents the request payload for creating or updating
// a property. Deal money fields are independent optionals.
type PropertyRequest struct {
	Address        string           `json:"address" binding:"required,min=1,max=500"`
	City           string           `json:"city" binding:"max=100"`
	AreaName       string           `json:"area_name" binding:"max=255"`
	PropertyType   string           `json:"property_type" binding:"max=100"`
	ListingType    string           `json:"listing_type" binding:"omitempty,listing_type"`
	Status         string           `json:"status" binding:"omitempty,property_status"`
	Size           string           `json:"size" binding:"max=100"`
	Bedrooms       *uint            `json:"bedrooms"`
	Bathrooms      *uint            `json:"bathrooms"`
	Kitchens       *uint            `json:"kitchens"`
	FloorNo        string           `json:"floor_no" binding:"max=50"`
	TotalFloors    *uint            `json:"total_floors"`
	ParkingSpaces  *uint            `json:"parking_spaces"`
	FloorAreaSqft  string           `json:"floor_area_sqft" binding:"max=100"`
	SalePrice      *decimal.Decimal `json:"sale_price"`
	RentMonthly    *decimal.Decimal `json:"rent_monthly"`
	RentDeposit    *decimal.Decimal `json:"rent_deposit"`
	MortgageAmount *decimal.Decimal `json:"mortgage_amount"`
	MortgageTerms  string           `json:"mortgage_terms"`
	OwnerName      string           `json:"owner_name" binding:"max=255"`
	OwnerContact   string           `json:"owner_contact" binding:"max=100"`
	Description    string           `json:"description"`
}

func (r PropertyRequest) params() services.PropertyParams {
	return services.PropertyParams{
		Address:        r.Address,
		City:           r.City,
		AreaName:       r.AreaName,
		PropertyType:   r.PropertyType,
		ListingType:    models.ListingType(r.ListingType),
		Status:         models.PropertyStatus(r.Status),
		Size:           r.Size,
		Bedrooms:       r.Bedrooms,
		Bathrooms:      r.Bathrooms,
		Kitchens:       r.Kitchens,
		FloorNo:        r.FloorNo,
		TotalFloors:    r.TotalFloors,
		ParkingSpaces:  r.ParkingSpaces,
		FloorAreaSqft:  r.FloorAreaSqft,
		SalePrice:      r.SalePrice,
		RentMonthly:    r.RentMonthly,
		RentDeposit:    r.RentDeposit,
		MortgageAmount: r.MortgageAmount,
		MortgageTerms:  r.MortgageTerms,
		OwnerName:      r.OwnerName,
		OwnerContact:   r.OwnerContact,
		Description:    r.Description,
	}
}

// PropertyFilterRequest represents the list/export filter query parameters.
// All predicates are optional and combine with AND.
type PropertyFilterRequest struct {
	Query       string `form:"q"`
	ListingType string `form:"listing_type" binding:"omitempty,listing_type"`
	Status      string `form:"status" binding:"omitempty,property_status"`
}

func (r PropertyFilterRequest) filter() services.PropertyFilter {
	return services.PropertyFilter{
		Query:       r.Query,
		ListingType: models.ListingType(r.ListingType),
		Status:      models.PropertyStatus(r.Status),
	}
}

// CreateProperty handles the creation of a new property.
// @Summary     Create a property
// @Description Register a new property in the office inventory
// @Tags        properties
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body PropertyRequest true "Property details"
// @Success     201 {object} models.PropertyItem "Property created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /properties [post]
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	property, err := h.propertyService.CreateProperty(req.params())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_PROPERTY", "property", property.ID, c.ClientIP(),
		map[string]interface{}{"address": req.Address, "listing_type": req.ListingType})

	c.JSON(http.StatusCreated, gin.H{"property": property})
}

// GetProperties handles the filtered retrieval of properties.
// @Summary     List properties
// @Description Get a paginated, filtered list of properties
// @Tags        properties
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       q            query string false "Case-insensitive match on address, city, or area"
// @Param       listing_type query string false "Listing type (sale, rent, mortgage, other)"
// @Param       status       query string false "Status (available, sold, rented, mortgaged, pending)"
// @Param       page         query int    false "Page number (default 1)"
// @Param       page_size    query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.PropertyItem] "Paginated properties"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /properties [get]
func (h *PropertyHandler) GetProperties(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filterReq PropertyFilterRequest
	if err := c.ShouldBindQuery(&filterReq); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.propertyService.GetProperties(page, filterReq.filter())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExportProperties streams the filtered property list as a CSV download.
// The filter parameters are the same as the list endpoint, so the file
// matches whatever the caller was viewing.
// @Summary     Export properties CSV
// @Description Download the filtered property list as a CSV file
// @Tags        properties
// @Accept      json
// @Produce     text/csv
// @Security    BearerAuth
// @Param       q            query string false "Case-insensitive match on address, city, or area"
// @Param       listing_type query string false "Listing type (sale, rent, mortgage, other)"
// @Param       status       query string false "Status (available, sold, rented, mortgaged, pending)"
// @Success     200 {string} string "CSV file"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /properties/export/csv [get]
func (h *PropertyHandler) ExportProperties(c *gin.Context) {
	var filterReq PropertyFilterRequest
	if err := c.ShouldBindQuery(&filterReq); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="properties_export.csv"`)

	if err := h.exportService.WritePropertiesCSV(c.Writer, filterReq.filter()); err != nil {
		respondWithError(c, err)
		return
	}
}

// GetPropertyTransactions lists a property's transaction history.
// @Summary     List property transactions
// @Description Get the transaction history of one property, newest first
// @Tags        properties
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Property ID"
// @Success     200 {object} map[string][]models.Transaction "Property transactions"
// @Failure     400 {object} ErrorResponse "Invalid property ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Property not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /properties/{id}/transactions [get]
func (h *PropertyHandler) GetPropertyTransactions(c *gin.Context) {
	propertyID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactions, err := h.propertyService.GetPropertyTransactions(propertyID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

// GetPropertyCommissions lists the commissions recorded on a property.
// @Summary     List property commissions
// @Description Get the commissions recorded on one property, newest first
// @Tags        properties
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Property ID"
// @Success     200 {object} map[string][]models.Commission "Property commissions"
// @Failure     400 {object} ErrorResponse "Invalid property ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Property not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /properties/{id}/commissions [get]
func (h *PropertyHandler) GetPropertyCommissions(c *gin.Context) {
	propertyID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	commissions, err := h.propertyService.GetPropertyCommissions(propertyID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"commissions": commissions})
}

// GetPropertyByID handles the retrieval of a specific property.
// @Summary     Get property by ID
// @Description Get a specific property by ID
// @Tags        properties
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Property ID"
// @Success     200 {object} models.PropertyItem "Property details"
// @Failure     400 {object} ErrorResponse "Invalid property ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Property not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /properties/{id} [get]
func (h *PropertyHandler) GetPropertyByID(c *gin.Context) {
	propertyID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	property, err := h.propertyService.GetPropertyByID(propertyID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"property": property})
}

// UpdateProperty handles updating a property.
// @Summary     Update property
// @Description Replace a property's editable fields
// @Tags        properties
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Property ID"
// @Param       request body PropertyRequest true "Updated property details"
// @Success     200 {object} models.PropertyItem "Updated property"
// @Failure     400 {object} ErrorResponse "Invalid input or property ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Property not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /properties/{id} [put]
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	propertyID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	property, err := h.propertyService.UpdateProperty(propertyID, req.params())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_PROPERTY", "property", propertyID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"property": property})
}

// DeleteProperty handles deleting a property.
// @Summary     Delete property
// @Description Delete a property. Its transactions and commissions go with it; expenses and income keep their rows with the property reference cleared.
// @Tags        properties
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Property ID"
// @Success     204 "Property deleted"
// @Failure     400 {object} ErrorResponse "Invalid property ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Property not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /properties/{id} [delete]
func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	propertyID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.propertyService.DeleteProperty(propertyID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_PROPERTY", "property", propertyID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}
