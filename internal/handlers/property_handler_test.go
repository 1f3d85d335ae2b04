package handlers

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "khplwak/internal/errors"
	"khplwak/internal/models"
	"khplwak/internal/pagination"
	"khplwak/internal/services"
)

// --- mock property and export services ---

type mockPropertyService struct {
	createPropertyFn   func(p services.PropertyParams) (*models.PropertyItem, error)
	getPropertiesFn    func(page pagination.PageRequest, filter services.PropertyFilter) (*pagination.PageResponse[models.PropertyItem], error)
	getAllPropertiesFn func(filter services.PropertyFilter) ([]models.PropertyItem, error)
	getPropertyByIDFn  func(id string) (*models.PropertyItem, error)
	getTransactionsFn  func(id string) ([]models.Transaction, error)
	getCommissionsFn   func(id string) ([]models.Commission, error)
	updatePropertyFn   func(id string, p services.PropertyParams) (*models.PropertyItem, error)
	deletePropertyFn   func(id string) error
}

func (m *mockPropertyService) CreateProperty(p services.PropertyParams) (*models.PropertyItem, error) {
	if m.createPropertyFn != nil {
		return m.createPropertyFn(p)
	}
	return &models.PropertyItem{}, nil
}

func (m *mockPropertyService) GetProperties(page pagination.PageRequest, filter services.PropertyFilter) (*pagination.PageResponse[models.PropertyItem], error) {
	if m.getPropertiesFn != nil {
		return m.getPropertiesFn(page, filter)
	}
	resp := pagination.NewPageResponse([]models.PropertyItem{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockPropertyService) GetAllProperties(filter services.PropertyFilter) ([]models.PropertyItem, error) {
	if m.getAllPropertiesFn != nil {
		return m.getAllPropertiesFn(filter)
	}
	return []models.PropertyItem{}, nil
}

func (m *mockPropertyService) GetPropertyByID(id string) (*models.PropertyItem, error) {
	if m.getPropertyByIDFn != nil {
		return m.getPropertyByIDFn(id)
	}
	return &models.PropertyItem{}, nil
}

func (m *mockPropertyService) GetPropertyTransactions(id string) ([]models.Transaction, error) {
	if m.getTransactionsFn != nil {
		return m.getTransactionsFn(id)
	}
	return []models.Transaction{}, nil
}

func (m *mockPropertyService) GetPropertyCommissions(id string) ([]models.Commission, error) {
	if m.getCommissionsFn != nil {
		return m.getCommissionsFn(id)
	}
	return []models.Commission{}, nil
}

func (m *mockPropertyService) UpdateProperty(id string, p services.PropertyParams) (*models.PropertyItem, error) {
	if m.updatePropertyFn != nil {
		return m.updatePropertyFn(id, p)
	}
	return &models.PropertyItem{}, nil
}

func (m *mockPropertyService) DeleteProperty(id string) error {
	if m.deletePropertyFn != nil {
		return m.deletePropertyFn(id)
	}
	return nil
}

var _ services.PropertyServicer = (*mockPropertyService)(nil)

type mockExportService struct {
	writePropertiesCSVFn func(w io.Writer, filter services.PropertyFilter) error
	writeBackupCSVFn     func(w io.Writer) error
}

func (m *mockExportService) WritePropertiesCSV(w io.Writer, filter services.PropertyFilter) error {
	if m.writePropertiesCSVFn != nil {
		return m.writePropertiesCSVFn(w, filter)
	}
	return nil
}

func (m *mockExportService) WriteBackupCSV(w io.Writer) error {
	if m.writeBackupCSVFn != nil {
		return m.writeBackupCSVFn(w)
	}
	return nil
}

var _ services.ExportServicer = (*mockExportService)(nil)

func setupPropertyRouter(handler *PropertyHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/properties", handler.CreateProperty)
	auth.GET("/properties", handler.GetProperties)
	auth.GET("/properties/export/csv", handler.ExportProperties)
	auth.GET("/properties/:id", handler.GetPropertyByID)
	auth.GET("/properties/:id/transactions", handler.GetPropertyTransactions)
	auth.GET("/properties/:id/commissions", handler.GetPropertyCommissions)
	auth.PUT("/properties/:id", handler.UpdateProperty)
	auth.DELETE("/properties/:id", handler.DeleteProperty)
	return r
}

func TestPropertyHandler_CreateProperty(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockPropertyService{
			createPropertyFn: func(p services.PropertyParams) (*models.PropertyItem, error) {
				return &models.PropertyItem{
					Base:        models.Base{ID: testPropertyID},
					Address:     p.Address,
					City:        p.City,
					ListingType: p.ListingType,
					Bedrooms:    p.Bedrooms,
					SalePrice:   p.SalePrice,
				}, nil
			},
		}
		handler := NewPropertyHandler(svc, &mockExportService{}, &mockAuditService{})
		r := setupPropertyRouter(handler)

		rec := doRequest(r, "POST", "/properties",
			`{"address":"House 12, Karte Naw","city":"Kabul","listing_type":"sale","bedrooms":3,"sale_price":"4500000"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		property := result["property"].(map[string]interface{})
		if property["address"] != "House 12, Karte Naw" {
			t.Errorf("expected address, got %v", property["address"])
		}
		if property["bedrooms"].(float64) != 3 {
			t.Errorf("expected 3 bedrooms, got %v", property["bedrooms"])
		}
	})

	t.Run("returns 400 on missing address", func(t *testing.T) {
		handler := NewPropertyHandler(&mockPropertyService{}, &mockExportService{}, &mockAuditService{})
		r := setupPropertyRouter(handler)

		rec := doRequest(r, "POST", "/properties", `{"city":"Kabul"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on unknown listing type", func(t *testing.T) {
		handler := NewPropertyHandler(&mockPropertyService{}, &mockExportService{}, &mockAuditService{})
		r := setupPropertyRouter(handler)

		rec := doRequest(r, "POST", "/properties", `{"address":"House 12","listing_type":"lease"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		handler := NewPropertyHandler(&mockPropertyService{}, &mockExportService{}, &mockAuditService{})
		r := gin.New()
		r.POST("/properties", handler.CreateProperty)

		rec := doRequest(r, "POST", "/properties", `{"address":"House 12"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestPropertyHandler_GetProperties(t *testing.T) {
	t.Run("returns 200 with paginated properties", func(t *testing.T) {
		svc := &mockPropertyService{
			getPropertiesFn: func(_ pagination.PageRequest, _ services.PropertyFilter) (*pagination.PageResponse[models.PropertyItem], error) {
				resp := pagination.NewPageResponse([]models.PropertyItem{
					{Base: models.Base{ID: testPropertyID}, Address: "House 12"},
				}, 1, 20, 1)
				return &resp, nil
			},
		}
		handler := NewPropertyHandler(svc, &mockExportService{}, &mockAuditService{})
		r := setupPropertyRouter(handler)

		rec := doRequest(r, "GET", "/properties", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		data := result["data"].([]interface{})
		if len(data) != 1 {
			t.Errorf("expected 1 property, got %d", len(data))
		}
	})

	t.Run("passes filter params to service", func(t *testing.T) {
		var capturedFilter services.PropertyFilter
		svc := &mockPropertyService{
			getPropertiesFn: func(_ pagination.PageRequest, filter services.PropertyFilter) (*pagination.PageResponse[models.PropertyItem], error) {
				capturedFilter = filter
				resp := pagination.NewPageResponse([]models.PropertyItem{}, 1, 20, 0)
				return &resp, nil
			},
		}
		handler := NewPropertyHandler(svc, &mockExportService{}, &mockAuditService{})
		r := setupPropertyRouter(handler)

		doRequest(r, "GET", "/properties?q=karte&listing_type=rent&status=available", "")

		if capturedFilter.Query != "karte" {
			t.Errorf("expected query karte, got %q", capturedFilter.Query)
		}
		if capturedFilter.ListingType != models.ListingTypeRent {
			t.Errorf("expected listing type rent, got %q", capturedFilter.ListingType)
		}
		if capturedFilter.Status != models.PropertyStatusAvailable {
			t.Errorf("expected status available, got %q", capturedFilter.Status)
		}
	})

	t.Run("returns 400 on invalid status filter", func(t *testing.T) {
		handler := NewPropertyHandler(&mockPropertyService{}, &mockExportService{}, &mockAuditService{})
		r := setupPropertyRouter(handler)

		rec := doRequest(r, "GET", "/properties?status=demolished", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestPropertyHandler_ExportProperties(t *testing.T) {
	t.Run("streams CSV with download headers", func(t *testing.T) {
		exportSvc := &mockExportService{
			writePropertiesCSVFn: func(w io.Writer, _ services.PropertyFilter) error {
				_, err := io.WriteString(w, "ID,Address\n1,House 12\n")
				return err
			},
		}
		handler := NewPropertyHandler(&mockPropertyService{}, exportSvc, &mockAuditService{})
		r := setupPropertyRouter(handler)

		rec := doRequest(r, "GET", "/properties/export/csv", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
			t.Errorf("expected text/csv, got %q", ct)
		}
		if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "properties_export.csv") {
			t.Errorf("expected attachment filename, got %q", cd)
		}
		if !strings.Contains(rec.Body.String(), "House 12") {
			t.Errorf("expected CSV body, got %q", rec.Body.String())
		}
	})

	t.Run("passes filter params to export", func(t *testing.T) {
		var capturedFilter services.PropertyFilter
		exportSvc := &mockExportService{
			writePropertiesCSVFn: func(_ io.Writer, filter services.PropertyFilter) error {
				capturedFilter = filter
				return nil
			},
		}
		handler := NewPropertyHandler(&mockPropertyService{}, exportSvc, &mockAuditService{})
		r := setupPropertyRouter(handler)

		doRequest(r, "GET", "/properties/export/csv?q=shar-e-naw&listing_type=sale", "")

		if capturedFilter.Query != "shar-e-naw" {
			t.Errorf("expected query shar-e-naw, got %q", capturedFilter.Query)
		}
		if capturedFilter.ListingType != models.ListingTypeSale {
			t.Errorf("expected listing type sale, got %q", capturedFilter.ListingType)
		}
	})
}

func TestPropertyHandler_GetPropertyByID(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		price := decimal.NewFromInt(4500000)
		svc := &mockPropertyService{
			getPropertyByIDFn: func(id string) (*models.PropertyItem, error) {
				return &models.PropertyItem{
					Base:      models.Base{ID: id},
					Address:   "House 12",
					SalePrice: &price,
				}, nil
			},
		}
		handler := NewPropertyHandler(svc, &mockExportService{}, &mockAuditService{})
		r := setupPropertyRouter(handler)

		rec := doRequest(r, "GET", "/properties/"+testPropertyID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		property := result["property"].(map[string]interface{})
		if property["address"] != "House 12" {
			t.Errorf("expected House 12, got %v", property["address"])
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		svc := &mockPropertyService{
			getPropertyByIDFn: func(_ string) (*models.PropertyItem, error) {
				return nil, apperrors.ErrPropertyNotFound
			},
		}
		handler := NewPropertyHandler(svc, &mockExportService{}, &mockAuditService{})
		r := setupPropertyRouter(handler)

		rec := doRequest(r, "GET", "/properties/"+testRecordID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "PROPERTY_NOT_FOUND")
	})

	t.Run("returns 400 on invalid ID", func(t *testing.T) {
		handler := NewPropertyHandler(&mockPropertyService{}, &mockExportService{}, &mockAuditService{})
		r := setupPropertyRouter(handler)

		rec := doRequest(r, "GET", "/properties/not-a-uuid", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestPropertyHandler_GetPropertyTransactions(t *testing.T) {
	t.Run("returns 200 with history", func(t *testing.T) {
		svc := &mockPropertyService{
			getTransactionsFn: func(id string) ([]models.Transaction, error) {
				return []models.Transaction{
					{Base: models.Base{ID: testRecordID}, PropertyItemID: id, Type: models.TransactionTypeSell},
				}, nil
			},
		}
		handler := NewPropertyHandler(svc, &mockExportService{}, &mockAuditService{})
		r := setupPropertyRouter(handler)

		rec := doRequest(r, "GET", "/properties/"+testPropertyID+"/transactions", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		transactions := result["transactions"].([]interface{})
		if len(transactions) != 1 {
			t.Errorf("expected 1 transaction, got %d", len(transactions))
		}
	})

	t.Run("returns 404 on unknown property", func(t *testing.T) {
		svc := &mockPropertyService{
			getTransactionsFn: func(_ string) ([]models.Transaction, error) {
				return nil, apperrors.ErrPropertyNotFound
			},
		}
		handler := NewPropertyHandler(svc, &mockExportService{}, &mockAuditService{})
		r := setupPropertyRouter(handler)

		rec := doRequest(r, "GET", "/properties/"+testRecordID+"/transactions", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestPropertyHandler_GetPropertyCommissions(t *testing.T) {
	t.Run("returns 200 with list", func(t *testing.T) {
		svc := &mockPropertyService{
			getCommissionsFn: func(id string) ([]models.Commission, error) {
				return []models.Commission{
					{Base: models.Base{ID: testRecordID}, PropertyItemID: id, DealType: models.DealTypeSale},
				}, nil
			},
		}
		handler := NewPropertyHandler(svc, &mockExportService{}, &mockAuditService{})
		r := setupPropertyRouter(handler)

		rec := doRequest(r, "GET", "/properties/"+testPropertyID+"/commissions", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		commissions := result["commissions"].([]interface{})
		if len(commissions) != 1 {
			t.Errorf("expected 1 commission, got %d", len(commissions))
		}
	})

	t.Run("returns 404 on unknown property", func(t *testing.T) {
		svc := &mockPropertyService{
			getCommissionsFn: func(_ string) ([]models.Commission, error) {
				return nil, apperrors.ErrPropertyNotFound
			},
		}
		handler := NewPropertyHandler(svc, &mockExportService{}, &mockAuditService{})
		r := setupPropertyRouter(handler)

		rec := doRequest(r, "GET", "/properties/"+testRecordID+"/commissions", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestPropertyHandler_UpdateProperty(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		svc := &mockPropertyService{
			updatePropertyFn: func(id string, p services.PropertyParams) (*models.PropertyItem, error) {
				return &models.PropertyItem{Base: models.Base{ID: id}, Address: p.Address, Status: p.Status}, nil
			},
		}
		handler := NewPropertyHandler(svc, &mockExportService{}, &mockAuditService{})
		r := setupPropertyRouter(handler)

		rec := doRequest(r, "PUT", "/properties/"+testPropertyID,
			`{"address":"House 12, Karte Naw","status":"sold"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		property := result["property"].(map[string]interface{})
		if property["status"] != "sold" {
			t.Errorf("expected sold, got %v", property["status"])
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		svc := &mockPropertyService{
			updatePropertyFn: func(_ string, _ services.PropertyParams) (*models.PropertyItem, error) {
				return nil, apperrors.ErrPropertyNotFound
			},
		}
		handler := NewPropertyHandler(svc, &mockExportService{}, &mockAuditService{})
		r := setupPropertyRouter(handler)

		rec := doRequest(r, "PUT", "/properties/"+testRecordID, `{"address":"House 12"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestPropertyHandler_DeleteProperty(t *testing.T) {
	t.Run("returns 204 on success", func(t *testing.T) {
		svc := &mockPropertyService{
			deletePropertyFn: func(_ string) error { return nil },
		}
		handler := NewPropertyHandler(svc, &mockExportService{}, &mockAuditService{})
		r := setupPropertyRouter(handler)

		rec := doRequest(r, "DELETE", "/properties/"+testPropertyID, "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		svc := &mockPropertyService{
			deletePropertyFn: func(_ string) error { return apperrors.ErrPropertyNotFound },
		}
		handler := NewPropertyHandler(svc, &mockExportService{}, &mockAuditService{})
		r := setupPropertyRouter(handler)

		rec := doRequest(r, "DELETE", "/properties/"+testRecordID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
