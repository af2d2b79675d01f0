// Package errors provides custom error types for the Centime API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Statement errors.
var (
	ErrStatementUnreadable = &AppError{Code: "STATEMENT_UNREADABLE", Message: "Statement file is empty or unreadable", StatusCode: http.StatusBadRequest}
	ErrStatementMalformed  = &AppError{Code: "STATEMENT_MALFORMED", Message: "Statement file could not be parsed", StatusCode: http.StatusUnprocessableEntity}
	ErrNoTransactions      = &AppError{Code: "NO_TRANSACTIONS", Message: "Statement contains no transaction rows", StatusCode: http.StatusUnprocessableEntity}
)

// Analysis errors.
var (
	ErrAnalysisNotFound = &AppError{Code: "ANALYSIS_NOT_FOUND", Message: "Analysis not found", StatusCode: http.StatusNotFound}
	ErrInvalidCategory  = &AppError{Code: "INVALID_CATEGORY", Message: "Unknown category", StatusCode: http.StatusBadRequest}
)

// Budget errors.
var (
	ErrBudgetNotFound        = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found", StatusCode: http.StatusNotFound}
	ErrCategoryNotBudgetable = &AppError{Code: "CATEGORY_NOT_BUDGETABLE", Message: "This category cannot carry a budget", StatusCode: http.StatusBadRequest}
)

// Backup errors.
var (
	ErrInvalidBackup            = &AppError{Code: "INVALID_BACKUP", Message: "Backup file is not a valid encrypted archive", StatusCode: http.StatusBadRequest}
	ErrUnsupportedBackupVersion = &AppError{Code: "UNSUPPORTED_BACKUP_VERSION", Message: "Backup was created by an unsupported version", StatusCode: http.StatusBadRequest}
	ErrBackupDecryptFailed      = &AppError{Code: "BACKUP_DECRYPT_FAILED", Message: "Incorrect password or corrupted backup", StatusCode: http.StatusBadRequest}
	ErrBackupIntegrity          = &AppError{Code: "BACKUP_INTEGRITY", Message: "Backup failed its integrity check", StatusCode: http.StatusUnprocessableEntity}
)
