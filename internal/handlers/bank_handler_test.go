package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ClaireRuysschaert/BudgetMate/internal/errors"
	"github.com/ClaireRuysschaert/BudgetMate/internal/models"
	"github.com/ClaireRuysschaert/BudgetMate/internal/services"
)

// --- mock bank service ---

type mockBankService struct {
	createBankBrandFn     func(name string) (*models.BankBrand, error)
	getBankBrandsFn       func() ([]models.BankBrand, error)
	createBankAccountFn   func(userID, bankBrandID uint, accountNumber, description string) (*models.BankAccount, error)
	getUserBankAccountsFn func(userID uint) ([]models.BankAccount, error)
	getBankAccountByIDFn  func(userID, bankAccountID uint) (*models.BankAccount, error)
}

func (m *mockBankService) CreateBankBrand(name string) (*models.BankBrand, error) {
	if m.createBankBrandFn != nil {
		return m.createBankBrandFn(name)
	}
	return &models.BankBrand{}, nil
}

func (m *mockBankService) GetBankBrands() ([]models.BankBrand, error) {
	if m.getBankBrandsFn != nil {
		return m.getBankBrandsFn()
	}
	return []models.BankBrand{}, nil
}

func (m *mockBankService) CreateBankAccount(userID, bankBrandID uint, accountNumber, description string) (*models.BankAccount, error) {
	if m.createBankAccountFn != nil {
		return m.createBankAccountFn(userID, bankBrandID, accountNumber, description)
	}
	return &models.BankAccount{}, nil
}

func (m *mockBankService) GetUserBankAccounts(userID uint) ([]models.BankAccount, error) {
	if m.getUserBankAccountsFn != nil {
		return m.getUserBankAccountsFn(userID)
	}
	return []models.BankAccount{}, nil
}

func (m *mockBankService) GetBankAccountByID(userID, bankAccountID uint) (*models.BankAccount, error) {
	if m.getBankAccountByIDFn != nil {
		return m.getBankAccountByIDFn(userID, bankAccountID)
	}
	return &models.BankAccount{}, nil
}

var _ services.BankServicer = (*mockBankService)(nil)

func setupBankRouter(handler *BankHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.POST("/banks/brands", handler.CreateBankBrand)
	auth.GET("/banks/brands", handler.GetBankBrands)
	auth.POST("/banks/accounts", handler.CreateBankAccount)
	auth.GET("/banks/accounts", handler.GetUserBankAccounts)
	auth.GET("/banks/accounts/:id", handler.GetBankAccountByID)
	return r
}

func TestBankHandler_CreateBankBrand(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		bankSvc := &mockBankService{
			createBankBrandFn: func(name string) (*models.BankBrand, error) {
				return &models.BankBrand{Base: models.Base{ID: 1}, Name: name}, nil
			},
		}
		r := setupBankRouter(NewBankHandler(bankSvc))

		rec := doRequest(r, "POST", "/banks/brands", `{"name":"La Banque Postale"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		brand := result["bank_brand"].(map[string]interface{})
		if brand["name"] != "La Banque Postale" {
			t.Errorf("unexpected brand payload: %v", brand)
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		r := setupBankRouter(NewBankHandler(&mockBankService{}))

		rec := doRequest(r, "POST", "/banks/brands", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestBankHandler_CreateBankAccount(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		bankSvc := &mockBankService{
			createBankAccountFn: func(userID, bankBrandID uint, accountNumber, description string) (*models.BankAccount, error) {
				return &models.BankAccount{
					Base:        models.Base{ID: 2},
					UserID:      userID,
					BankBrandID: bankBrandID,
				}, nil
			},
		}
		r := setupBankRouter(NewBankHandler(bankSvc))

		rec := doRequest(r, "POST", "/banks/accounts",
			`{"bank_brand_id":1,"account_number":"FR7612345","description":"compte courant"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 404 on unknown brand", func(t *testing.T) {
		bankSvc := &mockBankService{
			createBankAccountFn: func(userID, bankBrandID uint, accountNumber, description string) (*models.BankAccount, error) {
				return nil, apperrors.ErrBankBrandNotFound
			},
		}
		r := setupBankRouter(NewBankHandler(bankSvc))

		rec := doRequest(r, "POST", "/banks/accounts", `{"bank_brand_id":99}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "BANK_BRAND_NOT_FOUND")
	})
}

func TestBankHandler_GetBankAccountByID(t *testing.T) {
	t.Run("returns 400 on a non-numeric ID", func(t *testing.T) {
		r := setupBankRouter(NewBankHandler(&mockBankService{}))

		rec := doRequest(r, "GET", "/banks/accounts/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 404 for a foreign account", func(t *testing.T) {
		bankSvc := &mockBankService{
			getBankAccountByIDFn: func(userID, bankAccountID uint) (*models.BankAccount, error) {
				return nil, apperrors.ErrBankAccountNotFound
			},
		}
		r := setupBankRouter(NewBankHandler(bankSvc))

		rec := doRequest(r, "GET", "/banks/accounts/7", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
