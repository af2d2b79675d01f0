package models

// ChartPreference stores per-user dashboard display settings. Kept as a
// simple key/value row so the frontend can add chart options without schema
// changes.
type ChartPreference struct {
	Base
	UserID uint   `gorm:"not null;uniqueIndex:idx_chart_prefs_user_key" json:"user_id"`
	Key    string `gorm:"not null;uniqueIndex:idx_chart_prefs_user_key" json:"key"`
	Value  string `gorm:"not null" json:"value"`
}
