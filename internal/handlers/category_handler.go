package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"centime/internal/categorize"
)

// CategoryHandler serves the fixed category catalog
type CategoryHandler struct{}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// List returns every category and whether it can carry a budget. The catalog
// is fixed, so the response is the same for every user.
func (h *CategoryHandler) List(c *gin.Context) {
	type entry struct {
		Name       string `json:"name"`
		Budgetable bool   `json:"budgetable"`
	}

	all := categorize.AllCategories()
	out := make([]entry, 0, len(all))
	for _, name := range all {
		out = append(out, entry{Name: name, Budgetable: categorize.IsBudgetable(name)})
	}

	c.JSON(http.StatusOK, gin.H{"categories": out})
}
