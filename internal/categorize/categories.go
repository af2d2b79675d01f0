package categorize

// The fixed category vocabulary. Flat, exhaustive via the Other fallback;
// every categorization result is exactly one of these labels.
const (
	CategoryDining         = "Restaurants & Dining"
	CategoryGroceries      = "Groceries"
	CategoryTransportation = "Transportation"
	CategoryTravel         = "Travel"
	CategoryShopping       = "Shopping"
	CategoryEntertainment  = "Entertainment"
	CategoryHealth         = "Health & Beauty"
	CategoryUtilities      = "Utilities"
	CategoryDigital        = "Digital Services"
	CategoryInsurance      = "Insurance & Financial"
	CategoryFitness        = "Fitness"
	CategoryCrypto         = "Crypto & Investments"
	CategoryIncome         = "Income"
	CategoryEducation      = "Education"
	CategoryHome           = "Home & Living"
	CategoryKids           = "Kids & Family"
	CategoryCash           = "Cash & ATM"
	CategoryFees           = "Fees & Charges"
	CategoryOther          = "Other"
)

// allCategories is the closed vocabulary in display order.
var allCategories = []string{
	CategoryDining,
	CategoryGroceries,
	CategoryTransportation,
	CategoryTravel,
	CategoryShopping,
	CategoryEntertainment,
	CategoryHealth,
	CategoryUtilities,
	CategoryDigital,
	CategoryInsurance,
	CategoryFitness,
	CategoryCrypto,
	CategoryIncome,
	CategoryEducation,
	CategoryHome,
	CategoryKids,
	CategoryCash,
	CategoryFees,
	CategoryOther,
}

// AllCategories returns the closed category vocabulary.
func AllCategories() []string {
	out := make([]string, len(allCategories))
	copy(out, allCategories)
	return out
}

// IsValid reports whether label is part of the category vocabulary.
func IsValid(label string) bool {
	for _, c := range allCategories {
		if c == label {
			return true
		}
	}
	return false
}

// IsBudgetable reports whether a budget may be declared for the label.
// Income and Other are excluded by convention.
func IsBudgetable(label string) bool {
	return IsValid(label) && label != CategoryIncome && label != CategoryOther
}
