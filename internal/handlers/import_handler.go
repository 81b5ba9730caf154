package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ClaireRuysschaert/BudgetMate/internal/errors"
	"github.com/ClaireRuysschaert/BudgetMate/internal/models"
	"github.com/ClaireRuysschaert/BudgetMate/internal/services"
)

// ImportHandler handles statement file uploads.
type ImportHandler struct {
	ingestionService services.IngestionServicer
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(ingestionService services.IngestionServicer) *ImportHandler {
	return &ImportHandler{ingestionService: ingestionService}
}

// ImportForm represents the multipart form fields of a statement import
type ImportForm struct {
	BankAccountID uint   `form:"bank_account_id" binding:"required"`
	StatementType string `form:"statement_type" binding:"required,statement_type"`
	StartDate     string `form:"start_date" binding:"required"`
	EndDate       string `form:"end_date" binding:"required"`
}

// ImportResponse represents the outcome of a statement import
type ImportResponse struct {
	Summaries []services.ImportSummary   `json:"summaries"`
	Reports   []services.StatementReport `json:"reports"`
}

// ImportStatements ingests one or more uploaded statement files
// @Summary     Import statement files
// @Description Upload semicolon-separated statement files and run the full ingestion pipeline
// @Tags        statements
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       bank_account_id formData int true "Bank account ID"
// @Param       statement_type formData string true "Statement type (RB, FACT, CR, DB, OT)"
// @Param       start_date formData string true "Period start (YYYY-MM-DD)"
// @Param       end_date formData string true "Period end (YYYY-MM-DD)"
// @Param       files formData file true "Statement files"
// @Success     200 {object} ImportResponse "Import summaries and reports"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bank account not found"
// @Failure     422 {object} ErrorResponse "Unsupported bank format"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /statements/import [post]
func (h *ImportHandler) ImportStatements(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var form ImportForm
	if err := c.ShouldBind(&form); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	startDate, err := time.Parse(time.DateOnly, form.StartDate)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid start_date, expected YYYY-MM-DD"))
		return
	}
	endDate, err := time.Parse(time.DateOnly, form.EndDate)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid end_date, expected YYYY-MM-DD"))
		return
	}

	multipartForm, err := c.MultipartForm()
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	fileHeaders := multipartForm.File["files"]
	if len(fileHeaders) == 0 {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "At least one statement file is required"))
		return
	}

	files := make([]services.FileSpec, 0, len(fileHeaders))
	closers := make([]func() error, 0, len(fileHeaders))
	defer func() {
		for _, closeFile := range closers {
			_ = closeFile()
		}
	}()
	for _, header := range fileHeaders {
		f, err := header.Open()
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unreadable upload "+header.Filename))
			return
		}
		closers = append(closers, f.Close)
		files = append(files, services.FileSpec{
			Name:          header.Filename,
			Reader:        f,
			StatementType: models.StatementType(form.StatementType),
		})
	}

	summaries, reports, err := h.ingestionService.ImportFiles(files, startDate, endDate, form.BankAccountID, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summaries": summaries,
		"reports":   reports,
	})
}
