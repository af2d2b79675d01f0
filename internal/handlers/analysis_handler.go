package handlers

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"centime/internal/config"
	apperrors "centime/internal/errors"
	"centime/internal/pagination"
	"centime/internal/services"
)

// AnalysisHandler handles statement upload and analysis requests
type AnalysisHandler struct {
	analysisService services.AnalysisServicer
}

// NewAnalysisHandler creates a new AnalysisHandler
func NewAnalysisHandler(analysisService services.AnalysisServicer) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// OverrideRequest pins one transaction to a category. An empty category
// clears a previous override.
type OverrideRequest struct {
	TransactionHash string `json:"transaction_hash" binding:"required,len=64,hexadecimal"`
	Category        string `json:"category" binding:"omitempty,category"`
}

// readStatementFile extracts and size-limits the uploaded statement file.
func readStatementFile(c *gin.Context) (string, []byte, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "A statement file is required")
	}
	if fileHeader.Size > config.Get().MaxStatementBytes {
		return "", nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Statement file is too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", nil, apperrors.Wrap(apperrors.ErrStatementUnreadable, err)
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	raw, err := io.ReadAll(io.LimitReader(file, config.Get().MaxStatementBytes))
	if err != nil {
		return "", nil, apperrors.Wrap(apperrors.ErrStatementUnreadable, err)
	}
	return fileHeader.Filename, raw, nil
}

// Upload creates a new analysis from an uploaded statement export
func (h *AnalysisHandler) Upload(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filename, raw, err := readStatementFile(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	name := c.PostForm("name")
	if name == "" {
		name = filename
	}

	analysis, err := h.analysisService.CreateFromStatement(userID, name, filename, raw)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, analysis)
}

// List returns the user's analyses, paginated
func (h *AnalysisHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	resp, err := h.analysisService.GetUserAnalyses(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Get returns one analysis with its full transaction history
func (h *AnalysisHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	analysisID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	analysis, err := h.analysisService.GetAnalysisByID(userID, analysisID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// Delete removes an analysis
func (h *AnalysisHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	analysisID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.analysisService.DeleteAnalysis(userID, analysisID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Merge merges another statement export into an existing analysis
func (h *AnalysisHandler) Merge(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	analysisID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	filename, raw, err := readStatementFile(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.analysisService.MergeStatement(userID, analysisID, filename, raw)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Report computes the expense report for an analysis
func (h *AnalysisHandler) Report(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	analysisID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	r, err := h.analysisService.Report(userID, analysisID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

// Duplicates lists groups of identical transactions within an analysis
func (h *AnalysisHandler) Duplicates(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	analysisID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	groups, err := h.analysisService.Duplicates(userID, analysisID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"duplicates": groups})
}

// SetOverride pins or clears a category override for one transaction
func (h *AnalysisHandler) SetOverride(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	analysisID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	analysis, err := h.analysisService.SetOverride(userID, analysisID, req.TransactionHash, req.Category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}
