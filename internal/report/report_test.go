package report

import (
	"testing"
	"time"

	"centime/internal/categorize"
	"centime/internal/merge"
	"centime/internal/statement"
)

func f(v float64) *float64 { return &v }

func debitTx(day int, booking, sector string, amount float64) statement.Transaction {
	return statement.Transaction{
		PurchaseDate: time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
		BookingText:  booking,
		Sector:       sector,
		Debit:        f(amount),
	}
}

func creditTx(day int, booking string, amount float64) statement.Transaction {
	return statement.Transaction{
		PurchaseDate: time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
		BookingText:  booking,
		Credit:       f(amount),
	}
}

func TestBuild(t *testing.T) {
	t.Run("two_row_totals", func(t *testing.T) {
		r := Build([]statement.Transaction{
			debitTx(15, "Restaurant ABC", "Restaurants, Bars", 50.00),
			debitTx(16, "Grocery Store", "Grocery stores", 75.50),
		}, nil)

		if r.TotalSpent != 125.50 {
			t.Errorf("expected total spent 125.50, got %v", r.TotalSpent)
		}
		if r.TransactionCount != 2 {
			t.Errorf("expected 2 transactions, got %d", r.TransactionCount)
		}
		if len(r.Categories) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(r.Categories))
		}
		// Largest spend first.
		if r.Categories[0].Category != categorize.CategoryGroceries {
			t.Errorf("expected %q first, got %q", categorize.CategoryGroceries, r.Categories[0].Category)
		}
		if r.LargestCategory != categorize.CategoryGroceries {
			t.Errorf("expected largest category %q, got %q", categorize.CategoryGroceries, r.LargestCategory)
		}
	})

	t.Run("income_and_net", func(t *testing.T) {
		r := Build([]statement.Transaction{
			debitTx(10, "Migros", "Grocery stores", 100),
			creditTx(25, "Salary payment", 5000),
		}, nil)
		if r.TotalIncome != 5000 || r.TotalSpent != 100 {
			t.Fatalf("totals wrong: income=%v spent=%v", r.TotalIncome, r.TotalSpent)
		}
		if r.NetBalance != 4900 {
			t.Errorf("expected net 4900, got %v", r.NetBalance)
		}
	})

	t.Run("percentages_sum_to_hundred", func(t *testing.T) {
		r := Build([]statement.Transaction{
			debitTx(1, "A", "Grocery stores", 25),
			debitTx(2, "B", "Restaurants, Bars", 75),
		}, nil)
		var sum float64
		for _, cs := range r.Categories {
			sum += cs.Percentage
		}
		if sum < 99.99 || sum > 100.01 {
			t.Errorf("percentages sum to %v, want 100", sum)
		}
	})

	t.Run("averages", func(t *testing.T) {
		r := Build([]statement.Transaction{
			debitTx(1, "A", "Grocery stores", 10),
			debitTx(2, "B", "Grocery stores", 30),
		}, nil)
		if len(r.Categories) != 1 || r.Categories[0].Average != 20 {
			t.Fatalf("expected average 20, got %+v", r.Categories)
		}
	})

	t.Run("date_range_and_monthly_series", func(t *testing.T) {
		r := Build([]statement.Transaction{
			debitTx(5, "A", "Grocery stores", 10),
			{
				PurchaseDate: time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
				BookingText:  "B",
				Sector:       "Grocery stores",
				Debit:        f(20),
			},
		}, nil)
		if r.StartDate.Month() != time.March || r.EndDate.Month() != time.May {
			t.Errorf("date range wrong: %v – %v", r.StartDate, r.EndDate)
		}
		if len(r.Monthly) != 2 {
			t.Fatalf("expected 2 monthly entries, got %d", len(r.Monthly))
		}
		if r.Monthly[0].Month != "2024-03" || r.Monthly[1].Month != "2024-05" {
			t.Errorf("monthly series out of order: %+v", r.Monthly)
		}
	})

	t.Run("undated_rows_count_toward_totals_only", func(t *testing.T) {
		r := Build([]statement.Transaction{
			debitTx(5, "Dated", "Grocery stores", 10),
			{BookingText: "Undated", Sector: "Grocery stores", Debit: f(90)},
		}, nil)
		if r.TotalSpent != 100 {
			t.Errorf("undated row excluded from totals: %v", r.TotalSpent)
		}
		if len(r.Monthly) != 1 || r.Monthly[0].Count != 1 {
			t.Errorf("undated row must not enter monthly series: %+v", r.Monthly)
		}
		if r.StartDate.Month() != time.March || r.EndDate.Month() != time.March {
			t.Errorf("undated row must not stretch date range: %v – %v", r.StartDate, r.EndDate)
		}
	})

	t.Run("top_expenses_capped_and_sorted", func(t *testing.T) {
		txs := make([]statement.Transaction, 0, 15)
		for i := 1; i <= 15; i++ {
			txs = append(txs, debitTx(1, "expense", "Grocery stores", float64(i)))
		}
		r := Build(txs, nil)
		if len(r.TopExpenses) != 10 {
			t.Fatalf("expected 10 top expenses, got %d", len(r.TopExpenses))
		}
		if *r.TopExpenses[0].Debit != 15 || *r.TopExpenses[9].Debit != 6 {
			t.Errorf("top expenses wrong: first=%v last=%v", *r.TopExpenses[0].Debit, *r.TopExpenses[9].Debit)
		}
	})

	t.Run("override_reassigns_category", func(t *testing.T) {
		tx := debitTx(15, "Restaurant ABC", "Restaurants, Bars", 50)
		overrides := map[string]string{merge.Hash(&tx): categorize.CategoryTravel}
		r := Build([]statement.Transaction{tx}, overrides)
		if len(r.Categories) != 1 || r.Categories[0].Category != categorize.CategoryTravel {
			t.Fatalf("override not applied: %+v", r.Categories)
		}
	})

	t.Run("equal_totals_order_deterministically", func(t *testing.T) {
		txs := []statement.Transaction{
			debitTx(15, "Restaurant ABC", "Restaurants, Bars", 50),
			debitTx(16, "Grocery Store", "Grocery stores", 50),
		}
		// Ties break on the category name, so repeated builds agree.
		for i := 0; i < 5; i++ {
			r := Build(txs, nil)
			if len(r.Categories) != 2 {
				t.Fatalf("expected 2 categories, got %d", len(r.Categories))
			}
			if r.Categories[0].Category != categorize.CategoryGroceries ||
				r.Categories[1].Category != categorize.CategoryDining {
				t.Fatalf("tied categories out of order: %q, %q",
					r.Categories[0].Category, r.Categories[1].Category)
			}
			if r.LargestCategory != categorize.CategoryGroceries {
				t.Fatalf("largest category must be stable on ties, got %q", r.LargestCategory)
			}
		}
	})

	t.Run("empty_input", func(t *testing.T) {
		r := Build(nil, nil)
		if r.TotalSpent != 0 || r.TransactionCount != 0 {
			t.Errorf("expected zero aggregates, got %+v", r)
		}
		if r.Categories == nil || r.Monthly == nil || r.TopExpenses == nil {
			t.Error("collections must be empty, not nil")
		}
		if r.StartDate.IsZero() || r.EndDate.IsZero() {
			t.Error("empty report must default both dates")
		}
	})
}
