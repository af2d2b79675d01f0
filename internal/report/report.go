// Package report reduces transaction sequences into summary statistics:
// totals, per-category breakdowns, monthly series, top expenses, and budget
// status. All computations take a full snapshot and return a new result;
// nothing is patched in place.
package report

import (
	"sort"
	"time"

	"centime/internal/categorize"
	"centime/internal/merge"
	"centime/internal/statement"
)

// CategorySummary is the spending breakdown for one category.
type CategorySummary struct {
	Category string `json:"category"`
	// Total is the sum of debit amounts in this category.
	Total float64 `json:"total"`
	Count int     `json:"count"`
	// Percentage is relative to the sum of all categorized totals, so the
	// listed summaries add up to 100%.
	Percentage float64 `json:"percentage"`
	// Average is the mean debit per contributing transaction.
	Average      float64                 `json:"average"`
	Transactions []statement.Transaction `json:"transactions"`
}

// MonthlySummary is one entry of the chronological year-month series.
type MonthlySummary struct {
	// Month is the series key, formatted YYYY-MM.
	Month  string  `json:"month"`
	Spent  float64 `json:"spent"`
	Income float64 `json:"income"`
	Net    float64 `json:"net"`
	Count  int     `json:"count"`
}

// ExpenseReport is the full aggregate over one transaction sequence.
type ExpenseReport struct {
	TotalSpent       float64 `json:"total_spent"`
	TotalIncome      float64 `json:"total_income"`
	NetBalance       float64 `json:"net_balance"`
	TransactionCount int     `json:"transaction_count"`

	// StartDate/EndDate span the valid purchase dates. Rows with an
	// unparsed (zero) date still count toward totals but are excluded here
	// and from the monthly series; when no date is valid, both ends default
	// to the time of computation.
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	Categories      []CategorySummary       `json:"categories"`
	Monthly         []MonthlySummary        `json:"monthly"`
	TopExpenses     []statement.Transaction `json:"top_expenses"`
	LargestCategory string                  `json:"largest_category"`
}

const topExpenseLimit = 10

// Build aggregates a transaction sequence into an ExpenseReport. The
// overrides map is keyed by content hash and wins over every categorization
// rule. An empty input yields zero aggregates and empty collections.
func Build(transactions []statement.Transaction, overrides map[string]string) ExpenseReport {
	r := ExpenseReport{
		TransactionCount: len(transactions),
		Categories:       []CategorySummary{},
		Monthly:          []MonthlySummary{},
		TopExpenses:      []statement.Transaction{},
	}

	byCategory := make(map[string]*CategorySummary)
	byMonth := make(map[string]*MonthlySummary)

	for i := range transactions {
		t := transactions[i]
		if ov, ok := overrides[merge.Hash(&t)]; ok && ov != "" {
			t.CategoryOverride = ov
		}

		debit := amountOrZero(t.Debit)
		credit := amountOrZero(t.Credit)
		r.TotalSpent += debit
		r.TotalIncome += credit

		category := categorize.Categorize(&t)
		cs, ok := byCategory[category]
		if !ok {
			cs = &CategorySummary{Category: category, Transactions: []statement.Transaction{}}
			byCategory[category] = cs
		}
		cs.Total += debit
		cs.Count++
		cs.Transactions = append(cs.Transactions, t)

		if t.HasPurchaseDate() {
			if r.StartDate.IsZero() || t.PurchaseDate.Before(r.StartDate) {
				r.StartDate = t.PurchaseDate
			}
			if r.EndDate.IsZero() || t.PurchaseDate.After(r.EndDate) {
				r.EndDate = t.PurchaseDate
			}

			month := t.PurchaseDate.Format("2006-01")
			ms, ok := byMonth[month]
			if !ok {
				ms = &MonthlySummary{Month: month}
				byMonth[month] = ms
			}
			ms.Spent += debit
			ms.Income += credit
			ms.Count++
		}

		if t.Debit != nil {
			r.TopExpenses = append(r.TopExpenses, t)
		}
	}

	r.NetBalance = r.TotalIncome - r.TotalSpent

	if r.StartDate.IsZero() {
		now := time.Now()
		r.StartDate, r.EndDate = now, now
	}

	var categorizedTotal float64
	for _, cs := range byCategory {
		categorizedTotal += cs.Total
	}
	for _, cs := range byCategory {
		if categorizedTotal > 0 {
			cs.Percentage = cs.Total / categorizedTotal * 100
		}
		if cs.Count > 0 {
			cs.Average = cs.Total / float64(cs.Count)
		}
		r.Categories = append(r.Categories, *cs)
	}
	// Map iteration order is random, so ties need a deterministic secondary
	// key or equal-total categories would reorder between runs.
	sort.SliceStable(r.Categories, func(i, j int) bool {
		if r.Categories[i].Total != r.Categories[j].Total {
			return r.Categories[i].Total > r.Categories[j].Total
		}
		return r.Categories[i].Category < r.Categories[j].Category
	})
	if len(r.Categories) > 0 {
		r.LargestCategory = r.Categories[0].Category
	}

	for _, ms := range byMonth {
		ms.Net = ms.Income - ms.Spent
		r.Monthly = append(r.Monthly, *ms)
	}
	sort.Slice(r.Monthly, func(i, j int) bool {
		return r.Monthly[i].Month < r.Monthly[j].Month
	})

	sort.SliceStable(r.TopExpenses, func(i, j int) bool {
		return *r.TopExpenses[i].Debit > *r.TopExpenses[j].Debit
	})
	if len(r.TopExpenses) > topExpenseLimit {
		r.TopExpenses = r.TopExpenses[:topExpenseLimit]
	}

	return r
}

func amountOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
