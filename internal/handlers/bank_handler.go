package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ClaireRuysschaert/BudgetMate/internal/errors"
	"github.com/ClaireRuysschaert/BudgetMate/internal/services"
)

// BankHandler handles bank brand and bank account requests.
type BankHandler struct {
	bankService services.BankServicer
}

// NewBankHandler creates a new BankHandler.
func NewBankHandler(bankService services.BankServicer) *BankHandler {
	return &BankHandler{bankService: bankService}
}

// CreateBankBrandRequest represents the request payload for registering a bank brand
type CreateBankBrandRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CreateBankAccountRequest represents the request payload for creating a bank account
type CreateBankAccountRequest struct {
	BankBrandID   uint   `json:"bank_brand_id" binding:"required"`
	AccountNumber string `json:"account_number" binding:"max=50"`
	Description   string `json:"description" binding:"max=500"`
}

// BankAccountResponse represents a bank account in the response
type BankAccountResponse struct {
	ID            uint   `json:"id"`
	UserID        uint   `json:"user_id"`
	BankBrandID   uint   `json:"bank_brand_id"`
	AccountNumber string `json:"account_number"`
	Description   string `json:"description"`
}

// CreateBankBrand registers a bank brand, reusing it when the name is known
// @Summary     Register a bank brand
// @Description Register a bank brand (idempotent on the normalized name)
// @Tags        banks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBankBrandRequest true "Bank brand details"
// @Success     201 {object} map[string]interface{} "Bank brand"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /banks/brands [post]
func (h *BankHandler) CreateBankBrand(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBankBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	brand, err := h.bankService.CreateBankBrand(req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"bank_brand": brand})
}

// GetBankBrands lists the registered bank brands
// @Summary     List bank brands
// @Description List every registered bank brand
// @Tags        banks
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} map[string]interface{} "Bank brands"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /banks/brands [get]
func (h *BankHandler) GetBankBrands(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	brands, err := h.bankService.GetBankBrands()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bank_brands": brands})
}

// CreateBankAccount creates a bank account for the authenticated user
// @Summary     Create a bank account
// @Description Create a bank account attached to a registered bank brand
// @Tags        banks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBankAccountRequest true "Bank account details"
// @Success     201 {object} BankAccountResponse "Bank account created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bank brand not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /banks/accounts [post]
func (h *BankHandler) CreateBankAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.bankService.CreateBankAccount(userID, req.BankBrandID, req.AccountNumber, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"bank_account": account})
}

// GetUserBankAccounts lists the authenticated user's bank accounts
// @Summary     List bank accounts
// @Description List the authenticated user's bank accounts
// @Tags        banks
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} BankAccountResponse "Bank accounts"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /banks/accounts [get]
func (h *BankHandler) GetUserBankAccounts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accounts, err := h.bankService.GetUserBankAccounts(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bank_accounts": accounts})
}

// GetBankAccountByID retrieves one of the user's bank accounts
// @Summary     Get bank account by ID
// @Description Get one of the authenticated user's bank accounts
// @Tags        banks
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Bank account ID"
// @Success     200 {object} BankAccountResponse "Bank account"
// @Failure     400 {object} ErrorResponse "Invalid bank account ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bank account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /banks/accounts/{id} [get]
func (h *BankHandler) GetBankAccountByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.bankService.GetBankAccountByID(userID, accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bank_account": account})
}
