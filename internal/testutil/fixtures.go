package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"centime/internal/categorize"
	"centime/internal/models"
	"centime/internal/statement"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// Amount returns a pointer to the given amount, for building transactions.
func Amount(v float64) *float64 {
	return &v
}

// MakeTransaction builds an in-memory transaction with a debit amount.
func MakeTransaction(day int, booking, sector string, debit float64) statement.Transaction {
	return statement.Transaction{
		PurchaseDate: time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
		BookingText:  booking,
		Sector:       sector,
		Amount:       Amount(debit),
		Currency:     "CHF",
		Debit:        Amount(debit),
	}
}

// CreateTestAnalysis creates an analysis with a small fixed transaction set.
func CreateTestAnalysis(t *testing.T, db *gorm.DB, userID uint) *models.Analysis {
	t.Helper()

	analysis := &models.Analysis{
		UserID: userID,
		Name:   fmt.Sprintf("Test Analysis %d", nextID()),
		Transactions: models.TransactionList{
			MakeTransaction(15, "Restaurant ABC", "Restaurants, Bars", 50.00),
			MakeTransaction(16, "Grocery Store", "Grocery stores", 75.50),
		},
		Overrides: models.OverrideMap{},
	}
	if err := db.Create(analysis).Error; err != nil {
		t.Fatalf("failed to create test analysis: %v", err)
	}
	return analysis
}

// CreateTestBudget creates a budget for the given category.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID uint, category string, amount float64) *models.Budget {
	t.Helper()

	if category == "" {
		category = categorize.CategoryGroceries
	}
	budget := &models.Budget{
		UserID:   userID,
		Category: category,
		Amount:   amount,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestPreference creates a chart preference row.
func CreateTestPreference(t *testing.T, db *gorm.DB, userID uint, key, value string) *models.ChartPreference {
	t.Helper()

	pref := &models.ChartPreference{UserID: userID, Key: key, Value: value}
	if err := db.Create(pref).Error; err != nil {
		t.Fatalf("failed to create test preference: %v", err)
	}
	return pref
}
