// Package statement parses Swiss bank card-statement CSV exports into
// normalized transaction records.
package statement

import "time"

// Transaction is one normalized statement row. Amount fields are pointers so
// that "no value" stays distinguishable from "value of zero"; Debit and
// Credit are independently nullable and at most one is populated after
// inference.
type Transaction struct {
	// ID is a UUIDv7 assigned at parse time. It identifies the record within
	// a batch but is not stable across re-parses of the same file; use the
	// content hash for stable references.
	ID string `json:"id"`

	AccountNumber string `json:"account_number"`
	CardNumber    string `json:"card_number"`
	Holder        string `json:"holder"`

	// PurchaseDate is the calendar date of the purchase. A zero value marks
	// a row whose date could not be parsed; such rows stay in the batch but
	// are excluded from date-derived aggregation.
	PurchaseDate time.Time `json:"purchase_date"`

	BookingText string `json:"booking_text"`
	Sector      string `json:"sector"`

	Amount           *float64 `json:"amount,omitempty"`
	OriginalCurrency string   `json:"original_currency"`
	Rate             *float64 `json:"rate,omitempty"`
	Currency         string   `json:"currency"`

	Debit  *float64 `json:"debit,omitempty"`
	Credit *float64 `json:"credit,omitempty"`

	BookedDate time.Time `json:"booked_date"`

	// CategoryOverride carries a user-assigned category that takes
	// precedence over every categorization rule.
	CategoryOverride string `json:"category_override,omitempty"`
}

// HasPurchaseDate reports whether the purchase date was parsed successfully.
func (t *Transaction) HasPurchaseDate() bool {
	return !t.PurchaseDate.IsZero()
}
