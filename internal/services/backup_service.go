package services

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "centime/internal/errors"
	"centime/internal/models"
	"centime/internal/vault"
)

// backupVersion is the payload format inside the encrypted envelope,
// versioned independently of the envelope itself.
const backupVersion = 1

// backupPayload is the plaintext document sealed into a vault envelope. It
// never touches disk unencrypted.
type backupPayload struct {
	Version          int                      `json:"version"`
	ExportDate       time.Time                `json:"exportDate"`
	Analyses         []models.Analysis        `json:"analyses"`
	Budgets          []models.Budget          `json:"budgets"`
	ChartPreferences []models.ChartPreference `json:"chartPreferences"`
}

// requiredPayloadMembers must all be present in a decrypted payload before it
// is considered restorable. A typed unmarshal alone would zero-value missing
// collections and let a truncated payload wipe the user's data.
var requiredPayloadMembers = []string{"version", "exportDate", "analyses", "budgets", "chartPreferences"}

// parseBackupPayload structurally validates a decrypted payload and parses it.
// Validation happens before any database mutation: every required member must
// be present, even if empty.
func parseBackupPayload(plaintext []byte) (*backupPayload, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(plaintext, &members); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidBackup, err)
	}
	for _, m := range requiredPayloadMembers {
		if _, ok := members[m]; !ok {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidBackup, "Backup payload is missing the "+m+" member")
		}
	}

	var payload backupPayload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidBackup, err)
	}
	if payload.Version != backupVersion {
		return nil, apperrors.ErrUnsupportedBackupVersion
	}
	return &payload, nil
}

// backupService handles encrypted export and restore of all user data.
type backupService struct {
	db *gorm.DB
}

// NewBackupService creates a new BackupServicer.
func NewBackupService(db *gorm.DB) BackupServicer {
	return &backupService{db: db}
}

// Export snapshots every analysis, budget, and chart preference the user
// owns and seals the snapshot under the given password.
func (s *backupService) Export(userID uint, password string) (*vault.Envelope, error) {
	if password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "password is required")
	}

	payload := backupPayload{
		Version:          backupVersion,
		ExportDate:       time.Now().UTC(),
		Analyses:         []models.Analysis{},
		Budgets:          []models.Budget{},
		ChartPreferences: []models.ChartPreference{},
	}

	if err := s.db.Where("user_id = ?", userID).Find(&payload.Analyses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Where("user_id = ?", userID).Find(&payload.Budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Where("user_id = ?", userID).Find(&payload.ChartPreferences).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	plaintext, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	env, err := vault.Encrypt(plaintext, password)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return env, nil
}

// Import decrypts a backup and replaces the user's data with its contents.
// The restore is all-or-nothing: any failure rolls the whole transaction
// back and leaves existing data in place.
func (s *backupService) Import(userID uint, raw []byte, password string) (*ImportSummary, error) {
	env, err := vault.ParseEnvelope(raw)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidBackup, err)
	}

	plaintext, err := vault.Decrypt(env, password)
	switch {
	case errors.Is(err, vault.ErrUnsupportedVersion):
		return nil, apperrors.Wrap(apperrors.ErrUnsupportedBackupVersion, err)
	case errors.Is(err, vault.ErrIntegrity):
		return nil, apperrors.Wrap(apperrors.ErrBackupIntegrity, err)
	case err != nil:
		return nil, apperrors.Wrap(apperrors.ErrBackupDecryptFailed, err)
	}

	payload, err := parseBackupPayload(plaintext)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&models.Analysis{}, &models.Budget{}, &models.ChartPreference{}} {
			if err := tx.Unscoped().Where("user_id = ?", userID).Delete(model).Error; err != nil {
				return err
			}
		}

		for i := range payload.Analyses {
			payload.Analyses[i].Base = models.Base{}
			payload.Analyses[i].UserID = userID
			if err := tx.Create(&payload.Analyses[i]).Error; err != nil {
				return err
			}
		}
		for i := range payload.Budgets {
			payload.Budgets[i].Base = models.Base{}
			payload.Budgets[i].UserID = userID
			if err := tx.Create(&payload.Budgets[i]).Error; err != nil {
				return err
			}
		}
		for i := range payload.ChartPreferences {
			payload.ChartPreferences[i].Base = models.Base{}
			payload.ChartPreferences[i].UserID = userID
			if err := tx.Create(&payload.ChartPreferences[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &ImportSummary{
		Analyses:         len(payload.Analyses),
		Budgets:          len(payload.Budgets),
		ChartPreferences: len(payload.ChartPreferences),
	}, nil
}
