package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ClaireRuysschaert/BudgetMate/internal/errors"
	"github.com/ClaireRuysschaert/BudgetMate/internal/pagination"
	"github.com/ClaireRuysschaert/BudgetMate/internal/services"
)

// StatementHandler handles statement, line and totals requests.
type StatementHandler struct {
	statementService services.StatementServicer
	shareService     services.ShareServicer
}

// NewStatementHandler creates a new StatementHandler.
func NewStatementHandler(statementService services.StatementServicer, shareService services.ShareServicer) *StatementHandler {
	return &StatementHandler{statementService: statementService, shareService: shareService}
}

// ShareDecisionRequest represents the request payload for a sharing decision
type ShareDecisionRequest struct {
	Decision string `json:"decision" binding:"required,share_decision"`
}

// RecategorizeRequest represents the request payload for recategorizing a line
type RecategorizeRequest struct {
	Category    string `json:"category" binding:"max=100"`
	SubCategory string `json:"sub_category" binding:"required,min=1,max=100"`
}

// StatementTotalsResponse represents the aggregation output for a statement
type StatementTotalsResponse struct {
	Total            string                        `json:"total"`
	TotalShared      string                        `json:"total_shared"`
	SharedByCategory []services.CategoryShareTotal `json:"shared_by_category"`
}

// GetUserStatements lists the user's statements
// @Summary     List statements
// @Description List the authenticated user's account statements, most recent first
// @Tags        statements
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} map[string]interface{} "Statements"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /statements [get]
func (h *StatementHandler) GetUserStatements(c *gin.Context) {
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

	statements, err := h.statementService.GetUserStatements(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, statements)
}

// GetStatementByID retrieves one statement
// @Summary     Get statement by ID
// @Description Get one of the authenticated user's statements
// @Tags        statements
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Statement ID"
// @Success     200 {object} map[string]interface{} "Statement"
// @Failure     400 {object} ErrorResponse "Invalid statement ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Statement not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /statements/{id} [get]
func (h *StatementHandler) GetStatementByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	statementID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	statement, err := h.statementService.GetStatementByID(userID, statementID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"statement": statement})
}

// GetStatementLines lists the lines of a statement
// @Summary     List statement lines
// @Description List the lines of one statement in chronological order
// @Tags        statements
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Statement ID"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} map[string]interface{} "Statement lines"
// @Failure     400 {object} ErrorResponse "Invalid statement ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Statement not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /statements/{id}/lines [get]
func (h *StatementHandler) GetStatementLines(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	statementID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	lines, err := h.statementService.GetStatementLines(userID, statementID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, lines)
}

// GetStatementTotals returns the aggregation report of a statement
// @Summary     Get statement totals
// @Description Get the total, shared total and per-category shared breakdown of one statement
// @Tags        statements
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Statement ID"
// @Success     200 {object} StatementTotalsResponse "Totals"
// @Failure     400 {object} ErrorResponse "Invalid statement ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Statement not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /statements/{id}/totals [get]
func (h *StatementHandler) GetStatementTotals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	statementID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if _, err := h.statementService.GetStatementByID(userID, statementID); err != nil {
		respondWithError(c, err)
		return
	}

	total, err := h.statementService.TotalAmount(statementID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	totalShared, err := h.statementService.TotalSharedAmount(statementID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	byCategory, err := h.statementService.TotalSharedAmountByCategory(statementID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":              total,
		"total_shared":       totalShared,
		"shared_by_category": byCategory,
	})
}

// GetPendingLines lists the statement lines still awaiting a sharing decision
// @Summary     List pending lines
// @Description List the lines of one statement whose sharing status is still undecided
// @Tags        statements
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Statement ID"
// @Success     200 {array} map[string]interface{} "Pending lines"
// @Failure     400 {object} ErrorResponse "Invalid statement ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Statement not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /statements/{id}/pending [get]
func (h *StatementHandler) GetPendingLines(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	statementID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if _, err := h.statementService.GetStatementByID(userID, statementID); err != nil {
		respondWithError(c, err)
		return
	}

	lines, err := h.shareService.PendingLines(userID, statementID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"lines": lines})
}

// DecideShare applies a sharing decision to one line
// @Summary     Decide sharing for a line
// @Description Apply one of the four sharing decisions to a statement line
// @Tags        lines
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Line ID"
// @Param       request body ShareDecisionRequest true "Sharing decision"
// @Success     200 {object} map[string]interface{} "Updated line"
// @Failure     400 {object} ErrorResponse "Invalid input or decision"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Line not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /lines/{id}/share [post]
func (h *StatementHandler) DecideShare(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	lineID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ShareDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	line, err := h.shareService.Decide(userID, lineID, services.ShareDecision(req.Decision))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"line": line})
}

// RecategorizeLine moves a line to another category pair
// @Summary     Recategorize a line
// @Description Move a statement line to another category and sub-category
// @Tags        lines
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Line ID"
// @Param       request body RecategorizeRequest true "New categorization"
// @Success     200 {object} map[string]interface{} "Updated line"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Line not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /lines/{id}/recategorize [post]
func (h *StatementHandler) RecategorizeLine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	lineID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecategorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	line, err := h.statementService.RecategorizeLine(userID, lineID, req.Category, req.SubCategory)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"line": line})
}
