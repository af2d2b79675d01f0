// Package merge combines overlapping statement uploads into one
// duplicate-free history using content hashing.
package merge

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"

	"centime/internal/statement"
)

// Result describes one merge pass.
type Result struct {
	// Merged is existing ++ accepted, stably sorted ascending by purchase date.
	Merged []statement.Transaction `json:"merged"`
	// Added are the incoming records accepted as new.
	Added []statement.Transaction `json:"added"`
	// Duplicates are the incoming records rejected by hash collision.
	Duplicates []statement.Transaction `json:"duplicates"`

	OriginalCount  int `json:"original_count"`
	IncomingCount  int `json:"incoming_count"`
	MergedCount    int `json:"merged_count"`
	DuplicateCount int `json:"duplicate_count"`
}

// Hash derives the content key used for duplicate detection: calendar day,
// normalized booking text, and both amount sides. It deliberately ignores
// account/card identifiers and sector so the same purchase reported by two
// export formats still collides.
func Hash(t *statement.Transaction) string {
	key := t.PurchaseDate.Format("2006-01-02") +
		"|" + strings.Join(strings.Fields(strings.ToLower(t.BookingText)), " ") +
		"|" + amountKey(t.Debit) +
		"|" + amountKey(t.Credit)
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// amountKey formats an amount to exactly two decimals, "0.00" when nil.
func amountKey(v *float64) string {
	if v == nil {
		return "0.00"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

// Merge combines an existing history with an incoming batch. A hash seen in
// the existing list, or earlier in the same incoming batch, marks the record
// as a duplicate; in-batch self-duplicates are suppressed too.
func Merge(existing, incoming []statement.Transaction) Result {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	for i := range existing {
		seen[Hash(&existing[i])] = struct{}{}
	}

	added := make([]statement.Transaction, 0, len(incoming))
	duplicates := make([]statement.Transaction, 0)
	for i := range incoming {
		h := Hash(&incoming[i])
		if _, dup := seen[h]; dup {
			duplicates = append(duplicates, incoming[i])
			continue
		}
		seen[h] = struct{}{}
		added = append(added, incoming[i])
	}

	merged := make([]statement.Transaction, 0, len(existing)+len(added))
	merged = append(merged, existing...)
	merged = append(merged, added...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].PurchaseDate.Before(merged[j].PurchaseDate)
	})

	return Result{
		Merged:         merged,
		Added:          added,
		Duplicates:     duplicates,
		OriginalCount:  len(existing),
		IncomingCount:  len(incoming),
		MergedCount:    len(merged),
		DuplicateCount: len(duplicates),
	}
}

// InternalDuplicates groups a single list by content hash and returns only
// the groups with more than one member, in first-seen order. Used to flag
// self-duplicated source files independent of any merge.
func InternalDuplicates(list []statement.Transaction) [][]statement.Transaction {
	groups := make(map[string][]statement.Transaction)
	order := make([]string, 0)
	for i := range list {
		h := Hash(&list[i])
		if _, ok := groups[h]; !ok {
			order = append(order, h)
		}
		groups[h] = append(groups[h], list[i])
	}

	out := make([][]statement.Transaction, 0)
	for _, h := range order {
		if len(groups[h]) > 1 {
			out = append(out, groups[h])
		}
	}
	return out
}
