package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "centime/internal/errors"
	"centime/internal/services"
)

// BackupHandler handles encrypted export and import of all user data
type BackupHandler struct {
	backupService services.BackupServicer
}

// NewBackupHandler creates a new BackupHandler
func NewBackupHandler(backupService services.BackupServicer) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// ExportRequest carries the password the backup is sealed under
type ExportRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

// ImportRequest carries an encrypted envelope and the password to open it.
// The envelope is passed through verbatim so clients can upload the exact
// file a previous export produced.
type ImportRequest struct {
	Password string          `json:"password" binding:"required"`
	Backup   json.RawMessage `json:"backup" binding:"required"`
}

// Export seals the user's data into an encrypted envelope
func (h *BackupHandler) Export(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	env, err := h.backupService.Export(userID, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, env)
}

// Import decrypts a backup and replaces the user's data with its contents
func (h *BackupHandler) Import(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	summary, err := h.backupService.Import(userID, req.Backup, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
