package report

import (
	"sort"
	"time"

	"centime/internal/categorize"
	"centime/internal/merge"
	"centime/internal/statement"
)

// Tier is the risk level of a budget for the evaluated month.
type Tier string

// Tier boundaries are inclusive at the lower bound of each named tier:
// exactly 50% is early, exactly 75% is warning, exactly 100% is still
// warning, and only strictly more than 100% is over.
const (
	TierHealthy Tier = "healthy"
	TierEarly   Tier = "early"
	TierWarning Tier = "warning"
	TierOver    Tier = "over"
)

// Budget is a user-declared monthly limit for one category.
type Budget struct {
	ID       uint    `json:"id"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// BudgetStatus is the evaluation of one budget against one month of spending.
type BudgetStatus struct {
	Budget      Budget  `json:"budget"`
	Spent       float64 `json:"spent"`
	Remaining   float64 `json:"remaining"`
	PercentUsed float64 `json:"percent_used"`
	Tier        Tier    `json:"tier"`
}

// EvaluateBudgets filters transactions to the month containing ref, sums
// debits per category honoring overrides, and scores every budget. Results
// are sorted descending by percent used, most at-risk first. No budgets
// yields an empty list, never an error.
func EvaluateBudgets(
	transactions []statement.Transaction,
	budgets []Budget,
	ref time.Time,
	overrides map[string]string,
) []BudgetStatus {
	monthStart := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	spentByCategory := make(map[string]float64)
	for i := range transactions {
		t := transactions[i]
		if !t.HasPurchaseDate() || t.PurchaseDate.Before(monthStart) || !t.PurchaseDate.Before(monthEnd) {
			continue
		}
		if ov, ok := overrides[merge.Hash(&t)]; ok && ov != "" {
			t.CategoryOverride = ov
		}
		spentByCategory[categorize.Categorize(&t)] += amountOrZero(t.Debit)
	}

	statuses := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		spent := spentByCategory[b.Category]
		var percent float64
		if b.Amount > 0 {
			percent = spent / b.Amount * 100
		}
		statuses = append(statuses, BudgetStatus{
			Budget:      b,
			Spent:       spent,
			Remaining:   b.Amount - spent,
			PercentUsed: percent,
			Tier:        tierFor(percent),
		})
	}

	sort.SliceStable(statuses, func(i, j int) bool {
		return statuses[i].PercentUsed > statuses[j].PercentUsed
	})
	return statuses
}

func tierFor(percent float64) Tier {
	switch {
	case percent < 50:
		return TierHealthy
	case percent < 75:
		return TierEarly
	case percent <= 100:
		return TierWarning
	default:
		return TierOver
	}
}
