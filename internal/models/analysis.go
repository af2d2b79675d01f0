package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"centime/internal/statement"
)

// TransactionList stores a full transaction snapshot as a JSON column. An
// analysis is read and rewritten as a unit, so a document column beats a
// per-row table here.
type TransactionList []statement.Transaction

// Value implements driver.Valuer.
func (l TransactionList) Value() (driver.Value, error) {
	if l == nil {
		l = TransactionList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *TransactionList) Scan(src any) error {
	return scanJSON(src, l)
}

// OverrideMap stores per-transaction category overrides keyed by content hash.
type OverrideMap map[string]string

// Value implements driver.Valuer.
func (m OverrideMap) Value() (driver.Value, error) {
	if m == nil {
		m = OverrideMap{}
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *OverrideMap) Scan(src any) error {
	return scanJSON(src, m)
}

func scanJSON(src, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}

// Analysis represents one uploaded (and possibly merged) bank statement with
// its deduplicated transaction history.
type Analysis struct {
	Base
	UserID       uint            `gorm:"not null;index" json:"user_id"`
	Name         string          `gorm:"not null" json:"name"`
	SourceFile   string          `json:"source_file"`
	Transactions TransactionList `gorm:"type:text" json:"transactions"`
	Overrides    OverrideMap     `gorm:"type:text" json:"overrides"`
	StatementAt  *time.Time      `json:"statement_at,omitempty"`
}

// TransactionCount is the number of stored transactions.
func (a *Analysis) TransactionCount() int {
	return len(a.Transactions)
}
