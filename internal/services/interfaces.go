package services

import (
	"time"

	"centime/internal/merge"
	"centime/internal/models"
	"centime/internal/pagination"
	"centime/internal/report"
	"centime/internal/statement"
	"centime/internal/vault"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
}

// AnalysisServicer defines the contract for statement analysis business logic.
type AnalysisServicer interface {
	CreateFromStatement(userID uint, name, sourceFile string, raw []byte) (*models.Analysis, error)
	GetUserAnalyses(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Analysis], error)
	GetAnalysisByID(userID, analysisID uint) (*models.Analysis, error)
	DeleteAnalysis(userID, analysisID uint) error
	MergeStatement(userID, analysisID uint, sourceFile string, raw []byte) (*merge.Result, error)
	SetOverride(userID, analysisID uint, transactionHash, category string) (*models.Analysis, error)
	Report(userID, analysisID uint) (*report.ExpenseReport, error)
	Duplicates(userID, analysisID uint) ([][]statement.Transaction, error)
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	SetBudget(userID uint, category string, amount float64) (*models.Budget, error)
	GetUserBudgets(userID uint) ([]models.Budget, error)
	DeleteBudget(userID, budgetID uint) error
	GetBudgetStatuses(userID, analysisID uint, month time.Time) ([]report.BudgetStatus, error)
}

// PreferenceServicer defines the contract for chart preference storage.
type PreferenceServicer interface {
	SetPreference(userID uint, key, value string) (*models.ChartPreference, error)
	GetPreferences(userID uint) ([]models.ChartPreference, error)
}

// ImportSummary reports what an imported backup restored.
type ImportSummary struct {
	Analyses         int `json:"analyses"`
	Budgets          int `json:"budgets"`
	ChartPreferences int `json:"chart_preferences"`
}

// BackupServicer defines the contract for encrypted export and import of all
// user data.
type BackupServicer interface {
	Export(userID uint, password string) (*vault.Envelope, error)
	Import(userID uint, raw []byte, password string) (*ImportSummary, error)
}
