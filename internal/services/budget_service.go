package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"centime/internal/categorize"
	apperrors "centime/internal/errors"
	"centime/internal/models"
	"centime/internal/report"
)

// budgetService handles budget storage and monthly status evaluation.
type budgetService struct {
	db       *gorm.DB
	analyses AnalysisServicer
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, analyses AnalysisServicer) BudgetServicer {
	return &budgetService{db: db, analyses: analyses}
}

// SetBudget creates or replaces the single budget for a category. Income and
// the catch-all category cannot carry budgets.
func (s *budgetService) SetBudget(userID uint, category string, amount float64) (*models.Budget, error) {
	if !categorize.IsValid(category) {
		return nil, apperrors.ErrInvalidCategory
	}
	if !categorize.IsBudgetable(category) {
		return nil, apperrors.ErrCategoryNotBudgetable
	}
	if amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget amount must not be negative")
	}

	var budget models.Budget
	err := s.db.Where("user_id = ? AND category = ?", userID, category).First(&budget).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		budget = models.Budget{UserID: userID, Category: category, Amount: amount}
		if err := s.db.Create(&budget).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	case err != nil:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	default:
		if err := s.db.Model(&budget).Update("amount", amount).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		budget.Amount = amount
	}
	return &budget, nil
}

// GetUserBudgets lists all of a user's budgets ordered by category.
func (s *budgetService) GetUserBudgets(userID uint) ([]models.Budget, error) {
	budgets := []models.Budget{}
	if err := s.db.Where("user_id = ?", userID).Order("category").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// DeleteBudget removes one budget by ID. The delete is hard: a soft-deleted
// row would keep occupying the user_id+category unique index and block
// re-creating a budget for the same category.
func (s *budgetService) DeleteBudget(userID, budgetID uint) error {
	result := s.db.Unscoped().Where("id = ? AND user_id = ?", budgetID, userID).Delete(&models.Budget{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrBudgetNotFound
	}
	return nil
}

// GetBudgetStatuses evaluates every budget against one analysis for the
// month containing the given reference time.
func (s *budgetService) GetBudgetStatuses(userID, analysisID uint, month time.Time) ([]report.BudgetStatus, error) {
	analysis, err := s.analyses.GetAnalysisByID(userID, analysisID)
	if err != nil {
		return nil, err
	}

	stored, err := s.GetUserBudgets(userID)
	if err != nil {
		return nil, err
	}

	budgets := make([]report.Budget, 0, len(stored))
	for _, b := range stored {
		budgets = append(budgets, report.Budget{ID: b.ID, Category: b.Category, Amount: b.Amount})
	}

	return report.EvaluateBudgets(analysis.Transactions, budgets, month, analysis.Overrides), nil
}
