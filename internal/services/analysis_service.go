package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"centime/internal/categorize"
	apperrors "centime/internal/errors"
	"centime/internal/merge"
	"centime/internal/models"
	"centime/internal/pagination"
	"centime/internal/report"
	"centime/internal/statement"
)

// analysisService handles statement upload, merging, overrides, and reporting.
type analysisService struct {
	db *gorm.DB
}

// NewAnalysisService creates a new AnalysisServicer.
func NewAnalysisService(db *gorm.DB) AnalysisServicer {
	return &analysisService{db: db}
}

// CreateFromStatement parses a raw statement export and stores the result as
// a new analysis. The upload is rejected when the file is unreadable,
// malformed, or contains no transaction rows.
func (s *analysisService) CreateFromStatement(userID uint, name, sourceFile string, raw []byte) (*models.Analysis, error) {
	transactions, err := parseStatement(raw)
	if err != nil {
		return nil, err
	}

	// A merge against the empty history sorts the batch and collapses
	// self-duplicated rows in one step.
	result := merge.Merge(nil, transactions)

	analysis := &models.Analysis{
		UserID:       userID,
		Name:         name,
		SourceFile:   sourceFile,
		Transactions: result.Merged,
		Overrides:    models.OverrideMap{},
		StatementAt:  statementTimestamp(result.Merged),
	}
	if err := s.db.Create(analysis).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return analysis, nil
}

// GetUserAnalyses lists a user's analyses, newest first.
func (s *analysisService) GetUserAnalyses(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Analysis], error) {
	page.Defaults()

	var total int64
	if err := s.db.Model(&models.Analysis{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var analyses []models.Analysis
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&analyses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(analyses, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetAnalysisByID retrieves one analysis, scoped to its owner.
func (s *analysisService) GetAnalysisByID(userID, analysisID uint) (*models.Analysis, error) {
	var analysis models.Analysis
	if err := s.db.Where("id = ? AND user_id = ?", analysisID, userID).First(&analysis).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAnalysisNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &analysis, nil
}

// DeleteAnalysis removes an analysis and its stored transactions.
func (s *analysisService) DeleteAnalysis(userID, analysisID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", analysisID, userID).Delete(&models.Analysis{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrAnalysisNotFound
	}
	return nil
}

// MergeStatement parses another statement export and merges it into an
// existing analysis, rejecting duplicates by content hash. Overrides keyed by
// hash survive the merge untouched.
func (s *analysisService) MergeStatement(userID, analysisID uint, sourceFile string, raw []byte) (*merge.Result, error) {
	analysis, err := s.GetAnalysisByID(userID, analysisID)
	if err != nil {
		return nil, err
	}

	incoming, err := parseStatement(raw)
	if err != nil {
		return nil, err
	}

	result := merge.Merge(analysis.Transactions, incoming)

	updates := map[string]any{
		"transactions": models.TransactionList(result.Merged),
		"source_file":  sourceFile,
	}
	if ts := statementTimestamp(result.Merged); ts != nil {
		updates["statement_at"] = *ts
	}
	if err := s.db.Model(analysis).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &result, nil
}

// SetOverride pins a transaction to a category, keyed by the transaction's
// content hash. An empty category clears the override. The hash must belong
// to a stored transaction.
func (s *analysisService) SetOverride(userID, analysisID uint, transactionHash, category string) (*models.Analysis, error) {
	if category != "" && !categorize.IsValid(category) {
		return nil, apperrors.ErrInvalidCategory
	}

	analysis, err := s.GetAnalysisByID(userID, analysisID)
	if err != nil {
		return nil, err
	}

	known := false
	for i := range analysis.Transactions {
		if merge.Hash(&analysis.Transactions[i]) == transactionHash {
			known = true
			break
		}
	}
	if !known {
		return nil, apperrors.WithMessage(apperrors.ErrNotFound, "No transaction with this hash in the analysis")
	}

	if analysis.Overrides == nil {
		analysis.Overrides = models.OverrideMap{}
	}
	if category == "" {
		delete(analysis.Overrides, transactionHash)
	} else {
		analysis.Overrides[transactionHash] = category
	}

	if err := s.db.Model(analysis).Update("overrides", analysis.Overrides).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return analysis, nil
}

// Report computes the full expense report for an analysis, honoring
// category overrides.
func (s *analysisService) Report(userID, analysisID uint) (*report.ExpenseReport, error) {
	analysis, err := s.GetAnalysisByID(userID, analysisID)
	if err != nil {
		return nil, err
	}
	r := report.Build(analysis.Transactions, analysis.Overrides)
	return &r, nil
}

// Duplicates returns groups of identical transactions within the stored
// history. A clean history yields an empty list.
func (s *analysisService) Duplicates(userID, analysisID uint) ([][]statement.Transaction, error) {
	analysis, err := s.GetAnalysisByID(userID, analysisID)
	if err != nil {
		return nil, err
	}
	return merge.InternalDuplicates(analysis.Transactions), nil
}

// parseStatement maps parser failures onto API errors.
func parseStatement(raw []byte) ([]statement.Transaction, error) {
	transactions, err := statement.Parse(raw)
	switch {
	case errors.Is(err, statement.ErrEmptyStatement):
		return nil, apperrors.Wrap(apperrors.ErrStatementUnreadable, err)
	case errors.Is(err, statement.ErrMalformedStatement):
		return nil, apperrors.Wrap(apperrors.ErrStatementMalformed, err)
	case err != nil:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(transactions) == 0 {
		return nil, apperrors.ErrNoTransactions
	}
	return transactions, nil
}

// statementTimestamp picks the latest valid purchase date as the analysis
// timestamp, nil when no row carries one.
func statementTimestamp(transactions []statement.Transaction) *time.Time {
	var latest time.Time
	for i := range transactions {
		if transactions[i].HasPurchaseDate() && transactions[i].PurchaseDate.After(latest) {
			latest = transactions[i].PurchaseDate
		}
	}
	if latest.IsZero() {
		return nil
	}
	return &latest
}
