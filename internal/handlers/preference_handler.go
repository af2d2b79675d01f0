package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "centime/internal/errors"
	"centime/internal/services"
)

// PreferenceHandler handles chart preference requests
type PreferenceHandler struct {
	preferenceService services.PreferenceServicer
}

// NewPreferenceHandler creates a new PreferenceHandler
func NewPreferenceHandler(preferenceService services.PreferenceServicer) *PreferenceHandler {
	return &PreferenceHandler{preferenceService: preferenceService}
}

// SetPreferenceRequest creates or replaces one preference key
type SetPreferenceRequest struct {
	Key   string `json:"key" binding:"required,max=100"`
	Value string `json:"value" binding:"required,max=1000"`
}

// Set stores one chart preference
func (h *PreferenceHandler) Set(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	pref, err := h.preferenceService.SetPreference(userID, req.Key, req.Value)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, pref)
}

// List returns all of the user's chart preferences
func (h *PreferenceHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	prefs, err := h.preferenceService.GetPreferences(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}
