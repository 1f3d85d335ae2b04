package integration

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
)

func expectDecimal(t *testing.T, result map[string]interface{}, key, want string) {
	t.Helper()
	raw, ok := result[key].(string)
	if !ok {
		t.Fatalf("expected %s in response, got: %v", key, result)
	}
	got, err := decimal.NewFromString(raw)
	if err != nil {
		t.Fatalf("bad decimal for %s: %v", key, err)
	}
	if wantDec, _ := decimal.NewFromString(want); !got.Equal(wantDec) {
		t.Errorf("expected %s=%s, got %s", key, want, raw)
	}
}

func TestLedgerFlow_BuySellNetResult(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "dealer@khplwak.af", "password123")

	investorID := app.createInvestor(t, token, "Haji Karim")
	propertyID := app.createProperty(t, token, "House 12, Karte Naw")

	// Investor puts 100,000 into the property, office later returns 150,000.
	app.createTransaction(t, token, propertyID, investorID, "buy", "100000")
	app.createTransaction(t, token, propertyID, investorID, "sell", "150000")

	rec := app.request("GET", "/api/v1/investors/"+investorID+"/summary", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	summary := parseJSON(t, rec)
	expectDecimal(t, summary, "total_invested", "100000")
	expectDecimal(t, summary, "total_returned", "150000")
	expectDecimal(t, summary, "net_result", "50000")

	rec = app.request("GET", "/api/v1/properties/"+propertyID+"/summary", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	summary = parseJSON(t, rec)
	expectDecimal(t, summary, "net_result", "50000")
}

func TestLedgerFlow_CommissionComputedOnCreate(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "dealer@khplwak.af", "password123")
	propertyID := app.createProperty(t, token, "Shop 3, Shar-e-Naw")

	// 2% of 100,000 = 2,000
	rec := app.request("POST", "/api/v1/commissions",
		`{"property_item_id":"`+propertyID+`","deal_type":"sale","deal_amount":"100000","commission_type":"percent","commission_value":"2"}`,
		token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	commission := parseJSON(t, rec)["commission"].(map[string]interface{})
	expectDecimal(t, commission, "total_earned", "2000")

	// Fixed 600 regardless of deal amount
	rec = app.request("POST", "/api/v1/commissions",
		`{"property_item_id":"`+propertyID+`","deal_type":"rent","deal_amount":"999999","commission_type":"fixed","commission_value":"600"}`,
		token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	commission = parseJSON(t, rec)["commission"].(map[string]interface{})
	expectDecimal(t, commission, "total_earned", "600")

	// Running total on the list endpoint
	rec = app.request("GET", "/api/v1/commissions", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	expectDecimal(t, parseJSON(t, rec), "total_earned", "2600")
}

func TestLedgerFlow_DashboardTotals(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "dealer@khplwak.af", "password123")

	investorID := app.createInvestor(t, token, "Haji Karim")
	propertyID := app.createProperty(t, token, "House 12, Karte Naw")
	app.createTransaction(t, token, propertyID, investorID, "buy", "100000")
	app.createTransaction(t, token, propertyID, investorID, "sell", "150000")

	rec := app.request("GET", "/api/v1/reports/dashboard", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	dashboard := parseJSON(t, rec)
	if dashboard["investor_count"].(float64) != 1 {
		t.Errorf("expected investor_count=1, got %v", dashboard["investor_count"])
	}
	if dashboard["property_count"].(float64) != 1 {
		t.Errorf("expected property_count=1, got %v", dashboard["property_count"])
	}
	if dashboard["transaction_count"].(float64) != 2 {
		t.Errorf("expected transaction_count=2, got %v", dashboard["transaction_count"])
	}
	expectDecimal(t, dashboard, "total_invested", "100000")
	expectDecimal(t, dashboard, "total_returned", "150000")
}

func TestLedgerFlow_PropertyDeleteCascades(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "dealer@khplwak.af", "password123")

	investorID := app.createInvestor(t, token, "Haji Karim")
	propertyID := app.createProperty(t, token, "House 12, Karte Naw")
	app.createTransaction(t, token, propertyID, investorID, "buy", "100000")

	rec := app.request("DELETE", "/api/v1/properties/"+propertyID, "", token)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}

	// The investor survives but their history against the property is gone.
	rec = app.request("GET", "/api/v1/investors/"+investorID+"/transactions", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	transactions := parseJSON(t, rec)["transactions"].([]interface{})
	if len(transactions) != 0 {
		t.Errorf("expected 0 transactions after cascade, got %d", len(transactions))
	}
}

func TestLedgerFlow_FinanceReport(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "dealer@khplwak.af", "password123")

	rec := app.request("POST", "/api/v1/income",
		`{"description":"Monthly rent","source":"rent","amount":"13000"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create income failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("POST", "/api/v1/expenses",
		`{"description":"Repairs","category":"maintenance","amount":"2000"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create expense failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("POST", "/api/v1/expenses",
		`{"description":"Office rent","category":"office","amount":"1500"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create expense failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/reports/finance", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	report := parseJSON(t, rec)
	expectDecimal(t, report, "total_income", "13000")
	expectDecimal(t, report, "total_expense", "3500")
	expectDecimal(t, report, "net_balance", "9500")

	byCategory := report["expense_by_category"].([]interface{})
	if len(byCategory) != 2 {
		t.Fatalf("expected 2 category rows, got %d", len(byCategory))
	}
	first := byCategory[0].(map[string]interface{})
	if first["category"] != "maintenance" {
		t.Errorf("expected largest category first, got %v", first["category"])
	}
}

func TestLedgerFlow_PropertyHistory(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "dealer@khplwak.af", "password123")
	investorID := app.createInvestor(t, token, "Haji Karim")
	propertyID := app.createProperty(t, token, "House 12, Karte Naw")
	otherID := app.createProperty(t, token, "Shop 3, Shar-e-Naw")

	app.createTransaction(t, token, propertyID, investorID, "buy", "100000")
	app.createTransaction(t, token, otherID, investorID, "buy", "40000")
	rec := app.request("POST", "/api/v1/commissions",
		`{"property_item_id":"`+propertyID+`","deal_type":"sale","deal_amount":"100000","commission_type":"percent","commission_value":"2"}`,
		token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create commission failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/properties/"+propertyID+"/transactions", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	transactions := parseJSON(t, rec)["transactions"].([]interface{})
	if len(transactions) != 1 {
		t.Fatalf("expected 1 transaction for the property, got %d", len(transactions))
	}
	tx := transactions[0].(map[string]interface{})
	if tx["investor"].(map[string]interface{})["full_name"] != "Haji Karim" {
		t.Errorf("expected investor attached to transaction, got %v", tx["investor"])
	}

	rec = app.request("GET", "/api/v1/properties/"+propertyID+"/commissions", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	commissions := parseJSON(t, rec)["commissions"].([]interface{})
	if len(commissions) != 1 {
		t.Fatalf("expected 1 commission for the property, got %d", len(commissions))
	}
	expectDecimal(t, commissions[0].(map[string]interface{}), "total_earned", "2000")
}
