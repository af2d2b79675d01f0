package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"centime/internal/merge"
	"centime/internal/statement"
	"centime/internal/testutil"
)

const statementHeader = "Account number,Card number,Account/Cardholder,Purchase date,Booking text,Sector,Amount,Original currency,Rate,Currency,Debit,Credit,Booked"

var marchStatement = statementHeader + "\n" +
	`CH11 1111,1234,Jane Doe,15.03.2024,Restaurant ABC,"Restaurants, Bars",50.00,CHF,,CHF,50.00,,` + "\n" +
	`CH11 1111,1234,Jane Doe,16.03.2024,Grocery Store,Grocery stores,75.50,CHF,,CHF,75.50,,` + "\n" +
	`CH11 1111,,,,Total,,,,,,,,`

var aprilStatement = statementHeader + "\n" +
	`CH11 1111,1234,Jane Doe,16.03.2024,Grocery Store,Grocery stores,75.50,CHF,,CHF,75.50,,` + "\n" +
	`CH11 1111,1234,Jane Doe,02.04.2024,SBB EasyRide,Railways,12.00,CHF,,CHF,12.00,,`

func TestStatementFlow(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "flow@example.com", "password123")

	// Upload a statement.
	rec := app.upload(t, "/api/v1/analyses", "march.csv", marchStatement, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload failed: %d %s", rec.Code, rec.Body.String())
	}
	created := parseJSON(t, rec)
	analysisID := created["id"].(float64)
	transactions := created["transactions"].([]interface{})
	if len(transactions) != 2 {
		t.Fatalf("expected 2 parsed transactions (summary row dropped), got %d", len(transactions))
	}

	// The report reflects both rows.
	rec = app.request("GET", fmt.Sprintf("/api/v1/analyses/%.0f/report", analysisID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("report failed: %d %s", rec.Code, rec.Body.String())
	}
	report := parseJSON(t, rec)
	if report["total_spent"].(float64) != 125.50 {
		t.Errorf("expected total spent 125.50, got %v", report["total_spent"])
	}
	if report["largest_category"] != "Groceries" {
		t.Errorf("expected Groceries as largest category, got %v", report["largest_category"])
	}

	// Merging an overlapping statement only adds the new row.
	rec = app.upload(t, fmt.Sprintf("/api/v1/analyses/%.0f/merge", analysisID), "april.csv", aprilStatement, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("merge failed: %d %s", rec.Code, rec.Body.String())
	}
	mergeResult := parseJSON(t, rec)
	if mergeResult["duplicate_count"].(float64) != 1 {
		t.Errorf("expected 1 duplicate, got %v", mergeResult["duplicate_count"])
	}
	if mergeResult["merged_count"].(float64) != 3 {
		t.Errorf("expected 3 merged, got %v", mergeResult["merged_count"])
	}

	// The merged history stays duplicate-free.
	rec = app.request("GET", fmt.Sprintf("/api/v1/analyses/%.0f/duplicates", analysisID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("duplicates failed: %d %s", rec.Code, rec.Body.String())
	}
	dups := parseJSON(t, rec)
	if len(dups["duplicates"].([]interface{})) != 0 {
		t.Errorf("merged history must be duplicate-free, got %v", dups["duplicates"])
	}

	// Budget evaluation for March.
	rec = app.request("PUT", "/api/v1/budgets", `{"category":"Groceries","amount":100}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("set budget failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", fmt.Sprintf("/api/v1/budgets/status?analysis_id=%.0f&month=2024-03", analysisID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("budget status failed: %d %s", rec.Code, rec.Body.String())
	}
	statuses := parseJSON(t, rec)["statuses"].([]interface{})
	if len(statuses) != 1 {
		t.Fatalf("expected 1 budget status, got %d", len(statuses))
	}
	status := statuses[0].(map[string]interface{})
	if status["spent"].(float64) != 75.50 {
		t.Errorf("expected spent 75.50, got %v", status["spent"])
	}
	if status["tier"] != "warning" {
		t.Errorf("expected warning tier at 75.5%%, got %v", status["tier"])
	}
}

func TestStatementIsolationBetweenUsers(t *testing.T) {
	app := setupApp(t)
	ownerToken, _ := app.registerUser(t, "owner@example.com", "password123")
	otherToken, _ := app.registerUser(t, "other@example.com", "password123")

	rec := app.upload(t, "/api/v1/analyses", "march.csv", marchStatement, ownerToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload failed: %d %s", rec.Code, rec.Body.String())
	}
	analysisID := parseJSON(t, rec)["id"].(float64)

	rec = app.request("GET", fmt.Sprintf("/api/v1/analyses/%.0f", analysisID), "", otherToken)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for another user's analysis, got %d", rec.Code)
	}

	rec = app.request("GET", "/api/v1/analyses", "", otherToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("list failed: %d", rec.Code)
	}
	if parseJSON(t, rec)["total_items"].(float64) != 0 {
		t.Error("expected empty analysis list for second user")
	}
}

func TestOverrideFlow(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "override@example.com", "password123")

	rec := app.upload(t, "/api/v1/analyses", "march.csv", marchStatement, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload failed: %d %s", rec.Code, rec.Body.String())
	}
	analysisID := parseJSON(t, rec)["id"].(float64)

	// Pin the restaurant row to Travel. The hash is content-derived, so the
	// client can compute it from the fields it uploaded.
	restaurant := statement.Transaction{
		PurchaseDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		BookingText:  "Restaurant ABC",
		Debit:        testutil.Amount(50.00),
	}
	hash := merge.Hash(&restaurant)

	rec = app.request("PUT", fmt.Sprintf("/api/v1/analyses/%.0f/overrides", analysisID),
		`{"transaction_hash":"`+hash+`","category":"Travel"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("set override failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", fmt.Sprintf("/api/v1/analyses/%.0f/report", analysisID), "", token)
	report := parseJSON(t, rec)
	found := false
	for _, entry := range report["categories"].([]interface{}) {
		if entry.(map[string]interface{})["category"] == "Travel" {
			found = true
		}
	}
	if !found {
		t.Errorf("override category missing from report: %v", report["categories"])
	}

	// An unknown hash is rejected, not silently stored.
	rec = app.request("PUT", fmt.Sprintf("/api/v1/analyses/%.0f/overrides", analysisID),
		`{"transaction_hash":"`+fmt.Sprintf("%064d", 0)+`","category":"Travel"}`, token)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown hash, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUnauthenticatedAccess(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/api/v1/analyses", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}

	rec = app.request("GET", "/api/v1/analyses", "", "not-a-token")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with malformed header, got %d", rec.Code)
	}
}
