package statement

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"centime/internal/uuid"
)

// Parse errors. Row-level anomalies (bad dates, unparsable numbers) are
// absorbed into defaults and never surface here.
var (
	// ErrEmptyStatement is returned when the input contains no data at all.
	ErrEmptyStatement = errors.New("statement: empty input")
	// ErrMalformedStatement is returned when the delimited table itself
	// cannot be parsed. It wraps the underlying CSV error.
	ErrMalformedStatement = errors.New("statement: malformed table")
)

// Column headers of the statement schema. Rows are mapped by header name, not
// position, so reordered exports still parse.
const (
	colAccountNumber = "account number"
	colCardNumber    = "card number"
	colHolder        = "account/cardholder"
	colPurchaseDate  = "purchase date"
	colBookingText   = "booking text"
	colSector        = "sector"
	colAmount        = "amount"
	colOrigCurrency  = "original currency"
	colRate          = "rate"
	colCurrency      = "currency"
	colDebit         = "debit"
	colCredit        = "credit"
	colBooked        = "booked"
)

// summaryMarkers flag footer/summary rows that must not become transactions.
var summaryMarkers = []string{"total", "sum", "subtotal", "grand total"}

// inflowMarkers classify an ambiguous amount as a credit when found in the
// booking text. The default is debit, a deliberate bias toward expenses.
var inflowMarkers = []string{"transfer from", "incoming", "deposit", "salary", "refund"}

// Parse turns raw CSV bytes into transaction records in file order. Malformed
// rows degrade to defaults instead of aborting the parse: an unparsable date
// becomes a zero time, an unparsable number becomes nil.
func Parse(raw []byte) ([]Transaction, error) {
	content := strings.TrimPrefix(string(raw), "\ufeff")
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyStatement
	}

	delim, content := detectDelimiter(content)

	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedStatement, err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyStatement
	}

	cols := headerIndex(rows[0])
	transactions := make([]Transaction, 0, len(rows)-1)

	for _, row := range rows[1:] {
		field := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		account := field(colAccountNumber)
		purchaseDate := field(colPurchaseDate)
		booking := field(colBookingText)
		amountRaw := field(colAmount)

		if skipRow(account, purchaseDate, booking, amountRaw) {
			continue
		}

		t := Transaction{
			ID:               uuid.New(),
			AccountNumber:    account,
			CardNumber:       field(colCardNumber),
			Holder:           field(colHolder),
			PurchaseDate:     parseDate(purchaseDate),
			BookingText:      booking,
			Sector:           field(colSector),
			Amount:           parseAmount(amountRaw),
			OriginalCurrency: field(colOrigCurrency),
			Rate:             parseAmount(field(colRate)),
			Currency:         field(colCurrency),
			Debit:            parseAmount(field(colDebit)),
			Credit:           parseAmount(field(colCredit)),
			BookedDate:       parseDate(field(colBooked)),
		}

		inferDebitCredit(&t)
		transactions = append(transactions, t)
	}

	return transactions, nil
}

// detectDelimiter honors a leading "sep=X" declaration line, stripping it
// from the content. Without one it samples the first five lines and picks ';'
// when semicolons outnumber commas, ',' otherwise.
func detectDelimiter(content string) (rune, string) {
	if strings.HasPrefix(content, "sep=") {
		line := content
		rest := ""
		if i := strings.IndexByte(content, '\n'); i >= 0 {
			line = content[:i]
			rest = content[i+1:]
		}
		line = strings.TrimRight(line, "\r")
		if len(line) == len("sep=")+1 {
			return rune(line[len("sep=")]), rest
		}
	}

	lines := strings.SplitN(content, "\n", 6)
	if len(lines) == 6 {
		lines = lines[:5]
	}
	sample := strings.Join(lines, "\n")
	if strings.Count(sample, ";") > strings.Count(sample, ",") {
		return ';', content
	}
	return ',', content
}

// headerIndex maps lower-cased header names to their column positions.
func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}

// skipRow filters blank lines, summary/footer rows, and degenerate repeats of
// the header.
func skipRow(account, purchaseDate, booking, amount string) bool {
	if account == "" && purchaseDate == "" && booking == "" {
		return true
	}

	bookingLower := strings.ToLower(booking)
	accountLower := strings.ToLower(account)
	for _, marker := range summaryMarkers {
		if strings.Contains(bookingLower, marker) || strings.Contains(accountLower, marker) {
			return true
		}
	}

	return purchaseDate == "" && booking == "" && amount == ""
}

// parseDate parses DD.MM.YYYY. An unparsable or invalid date yields the zero
// time sentinel; the row is kept and aggregation decides what to exclude.
func parseDate(s string) time.Time {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return time.Time{}
	}
	for _, p := range parts {
		if _, err := strconv.Atoi(p); err != nil {
			return time.Time{}
		}
	}
	t, err := time.Parse("2.1.2006", s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// parseAmount parses a Swiss-formatted number: ' as thousands separator and
// , or . as decimal separator. Empty or unparsable input yields nil, never
// zero.
func parseAmount(s string) *float64 {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// inferDebitCredit fills in the missing debit/credit side from the bare
// Amount column, using inflow markers in the booking text.
func inferDebitCredit(t *Transaction) {
	if t.Debit != nil || t.Credit != nil || t.Amount == nil || *t.Amount <= 0 {
		return
	}

	bookingLower := strings.ToLower(t.BookingText)
	for _, marker := range inflowMarkers {
		if strings.Contains(bookingLower, marker) {
			amount := *t.Amount
			t.Credit = &amount
			return
		}
	}
	amount := *t.Amount
	t.Debit = &amount
}
