package models

// Budget represents a monthly spending limit for one category. At most one
// budget exists per user and category; setting it again replaces the amount.
type Budget struct {
	Base
	UserID   uint    `gorm:"not null;uniqueIndex:idx_budgets_user_category" json:"user_id"`
	Category string  `gorm:"not null;uniqueIndex:idx_budgets_user_category" json:"category"`
	Amount   float64 `gorm:"not null" json:"amount"`
}
