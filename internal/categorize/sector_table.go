package categorize

// sectorTable maps the bank-supplied sector label (lower-cased, trimmed) to a
// category. An exact hit here is the most trustworthy signal after a manual
// override, beaten only by the crypto-exchange booking check.
var sectorTable = map[string]string{
	// Dining
	"restaurants":                     CategoryDining,
	"restaurants, bars":               CategoryDining,
	"fast food restaurants":           CategoryDining,
	"bars, discotheques, night clubs": CategoryDining,
	"catering services":               CategoryDining,

	// Groceries
	"grocery stores":               CategoryGroceries,
	"supermarkets":                 CategoryGroceries,
	"grocery stores, supermarkets": CategoryGroceries,
	"bakeries":                     CategoryGroceries,
	"butchers":                     CategoryGroceries,
	"convenience stores":           CategoryGroceries,

	// Transportation
	"railways":                 CategoryTransportation,
	"taxicabs and limousines":  CategoryTransportation,
	"local commuter transport": CategoryTransportation,
	"parking garages":          CategoryTransportation,
	"gas stations":             CategoryTransportation,
	"service stations":         CategoryTransportation,

	// Travel
	"airlines":               CategoryTravel,
	"hotels, motels, resorts": CategoryTravel,
	"travel agencies":        CategoryTravel,
	"tour operators":         CategoryTravel,
	"car rental":             CategoryTravel,

	// Shopping
	"clothing stores":    CategoryShopping,
	"department stores":  CategoryShopping,
	"shoe stores":        CategoryShopping,
	"furniture stores":   CategoryShopping,
	"electronics stores": CategoryShopping,
	"bookstores":         CategoryShopping,

	// Entertainment
	"cinemas":              CategoryEntertainment,
	"theatres":             CategoryEntertainment,
	"digital goods: games": CategoryEntertainment,
	"ticket agencies":      CategoryEntertainment,

	// Health & Beauty
	"pharmacies":                   CategoryHealth,
	"drug stores":                  CategoryHealth,
	"hairdressers, beauty salons":  CategoryHealth,
	"medical services":             CategoryHealth,
	"dentists":                     CategoryHealth,
	"opticians":                    CategoryHealth,

	// Utilities and digital
	"telecommunication services":       CategoryUtilities,
	"utilities: electric, gas, water":  CategoryUtilities,
	"computer software stores":         CategoryDigital,
	"digital goods: applications":      CategoryDigital,

	// Financial
	"insurance sales":        CategoryInsurance,
	"financial institutions": CategoryInsurance,
	"security brokers":       CategoryInsurance,

	// Misc
	"fitness clubs, gyms":           CategoryFitness,
	"schools, educational services": CategoryEducation,
	"universities":                  CategoryEducation,
	"home improvement stores":       CategoryHome,
	"garden supply stores":          CategoryHome,
	"florists":                      CategoryHome,
	"toy stores":                    CategoryKids,
	"child care services":           CategoryKids,
	"atm cash withdrawals":          CategoryCash,
	"cash advances":                 CategoryCash,
	"card fees":                     CategoryFees,
}
