// Package categorize assigns spending categories to statement transactions.
//
// No ML, no probabilities: categorization is an ordered list of
// (predicate, category) rules evaluated in sequence, first match wins. The
// ordering is the core design decision — sector data, when the bank supplies
// it, is more reliable than free-text heuristics, so the exact sector table
// is consulted before keyword scanning. Crypto exchanges and
// delivery-vs-transport disambiguation are special-cased ahead of it because
// their sector data is known to be misleading or absent.
package categorize

import (
	"strings"

	"centime/internal/statement"
)

// Rule is one step of the categorization sequence.
type Rule struct {
	// Name identifies the rule in tests and audit output.
	Name string
	// Match reports whether the rule fires for the transaction.
	Match func(t *statement.Transaction) bool
	// Category is the label assigned when the rule fires.
	Category string
}

// Categorize maps a transaction to exactly one category label. It is a total
// function: anything unmatched falls through to Other.
func Categorize(t *statement.Transaction) string {
	if t.CategoryOverride != "" && IsValid(t.CategoryOverride) {
		return t.CategoryOverride
	}

	if c, ok := sectorTable[strings.ToLower(strings.TrimSpace(t.Sector))]; ok {
		// Crypto keywords outrank the sector table; some exchanges report a
		// misleading generic sector.
		if matchesAny(strings.ToUpper(t.BookingText), cryptoExchanges) {
			return CategoryCrypto
		}
		return c
	}

	for _, r := range Rules() {
		if r.Match(t) {
			return r.Category
		}
	}
	return CategoryOther
}

// Rules returns the ordered keyword rules applied when the exact sector table
// has no entry. Exposed so each step of the precedence chain can be tested in
// isolation.
func Rules() []Rule {
	return orderedRules
}

// cryptoExchanges are matched against the upper-cased booking text before
// anything else except a manual override.
var cryptoExchanges = []string{"COINBASE", "KRAKEN", "BINANCE"}

// foodDeliveryBrands must categorize as dining before the generic sector
// substring checks can misfile them as transport.
var foodDeliveryBrands = []string{"uber eats", "just eat", "eat.ch", "deliveroo", "smood", "too good to go"}

// travelPlatforms book hotels and flights but often carry no usable sector.
var travelPlatforms = []string{"booking.com", "airbnb", "expedia", "trivago", "hotelplan", "ebookers"}

var telecomBrands = []string{"swisscom", "sunrise", "salt mobile", "wingo", "yallo"}

var entertainmentBrands = []string{
	"ticketcorner", "starticket", "eventim", "pathe", "kitag", "cinema",
	"steam", "playstation", "nintendo", "xbox",
}

var streamingBrands = []string{"netflix", "spotify", "disney+", "youtube premium", "apple music", "audible"}

var fitnessKeywords = []string{"gym", "fitness", "basefit", "activ fitness", "update fitness"}

// sectorPlaceholders are bare non-values some exports put in the sector
// column, including the QR payment marker.
var sectorPlaceholders = []string{"", "-", "–", ".", "qr"}

var orderedRules = []Rule{
	{
		Name:     "crypto-exchange-booking",
		Category: CategoryCrypto,
		Match: func(t *statement.Transaction) bool {
			return matchesAny(strings.ToUpper(t.BookingText), cryptoExchanges)
		},
	},
	{
		Name:     "food-delivery-booking",
		Category: CategoryDining,
		Match:    bookingContains(foodDeliveryBrands),
	},
	{
		Name:     "travel-platform-booking",
		Category: CategoryTravel,
		Match:    bookingContains(travelPlatforms),
	},
	{
		Name:     "sector-abroad-surcharge",
		Category: CategoryTravel,
		Match:    sectorContains("abroad"),
	},
	{
		Name:     "sector-app-store",
		Category: CategoryDigital,
		Match:    sectorContains("app store", "itunes", "billing"),
	},
	{
		Name:     "sector-restaurant",
		Category: CategoryDining,
		Match:    sectorContains("restaurant", "food"),
	},
	{
		Name:     "sector-grocery",
		Category: CategoryGroceries,
		Match:    sectorContains("grocery", "supermarket"),
	},
	{
		Name:     "sector-transport",
		Category: CategoryTransportation,
		Match:    sectorContains("transport", "taxi"),
	},
	{
		Name:     "sector-hotel-airline",
		Category: CategoryTravel,
		Match:    sectorContains("hotel", "airline"),
	},
	{
		// Checked before the generic shop/retail/store bucket so
		// entertainment retailers aren't misfiled as shopping.
		Name:     "sector-entertainment",
		Category: CategoryEntertainment,
		Match:    sectorContains("entertainment", "cinema", "streaming", "gaming"),
	},
	{
		Name:     "sector-shop",
		Category: CategoryShopping,
		Match:    sectorContains("shop", "retail", "store"),
	},
	{
		Name:     "sector-health",
		Category: CategoryHealth,
		Match:    sectorContains("health", "medical", "pharma"),
	},
	{
		Name:     "sector-insurance",
		Category: CategoryInsurance,
		Match:    sectorContains("insurance"),
	},
	{
		Name:     "booking-telecom",
		Category: CategoryUtilities,
		Match:    bookingContains(telecomBrands),
	},
	{
		Name:     "booking-entertainment",
		Category: CategoryEntertainment,
		Match:    bookingContains(entertainmentBrands),
	},
	{
		Name:     "booking-streaming",
		Category: CategoryEntertainment,
		Match:    bookingContains(streamingBrands),
	},
	{
		Name:     "booking-fitness",
		Category: CategoryFitness,
		Match:    bookingContains(fitnessKeywords),
	},
	{
		// Blank or placeholder sectors map to Other explicitly rather than
		// merely falling through.
		Name:     "sector-placeholder",
		Category: CategoryOther,
		Match: func(t *statement.Transaction) bool {
			s := strings.ToLower(strings.TrimSpace(t.Sector))
			for _, p := range sectorPlaceholders {
				if s == p {
					return true
				}
			}
			return strings.Contains(s, "qr-bill") || strings.Contains(s, "qr payment")
		},
	},
}

func matchesAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func bookingContains(keywords []string) func(*statement.Transaction) bool {
	return func(t *statement.Transaction) bool {
		return matchesAny(strings.ToLower(t.BookingText), keywords)
	}
}

func sectorContains(keywords ...string) func(*statement.Transaction) bool {
	return func(t *statement.Transaction) bool {
		return matchesAny(strings.ToLower(t.Sector), keywords)
	}
}
