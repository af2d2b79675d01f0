// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"centime/internal/categorize"
)

// statementMonthRegex matches the YYYY-MM month key used by budget queries.
var statementMonthRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("category", validateCategory)
		_ = v.RegisterValidation("budget_category", validateBudgetCategory)
		_ = v.RegisterValidation("statement_month", validateStatementMonth)
	}
}

func validateCategory(fl validator.FieldLevel) bool {
	return categorize.IsValid(fl.Field().String())
}

func validateBudgetCategory(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return categorize.IsValid(value) && categorize.IsBudgetable(value)
}

func validateStatementMonth(fl validator.FieldLevel) bool {
	return statementMonthRegex.MatchString(fl.Field().String())
}
