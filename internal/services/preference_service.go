package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "centime/internal/errors"
	"centime/internal/models"
)

// preferenceService stores per-user chart display settings.
type preferenceService struct {
	db *gorm.DB
}

// NewPreferenceService creates a new PreferenceServicer.
func NewPreferenceService(db *gorm.DB) PreferenceServicer {
	return &preferenceService{db: db}
}

// SetPreference creates or replaces one preference key.
func (s *preferenceService) SetPreference(userID uint, key, value string) (*models.ChartPreference, error) {
	if key == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "preference key is required")
	}

	var pref models.ChartPreference
	err := s.db.Where("user_id = ? AND key = ?", userID, key).First(&pref).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		pref = models.ChartPreference{UserID: userID, Key: key, Value: value}
		if err := s.db.Create(&pref).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	case err != nil:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	default:
		if err := s.db.Model(&pref).Update("value", value).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		pref.Value = value
	}
	return &pref, nil
}

// GetPreferences lists all preferences for a user.
func (s *preferenceService) GetPreferences(userID uint) ([]models.ChartPreference, error) {
	prefs := []models.ChartPreference{}
	if err := s.db.Where("user_id = ?", userID).Order("key").Find(&prefs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return prefs, nil
}
