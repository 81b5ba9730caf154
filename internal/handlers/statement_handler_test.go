package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/ClaireRuysschaert/BudgetMate/internal/errors"
	"github.com/ClaireRuysschaert/BudgetMate/internal/models"
	"github.com/ClaireRuysschaert/BudgetMate/internal/pagination"
	"github.com/ClaireRuysschaert/BudgetMate/internal/services"
)

// --- mock statement service ---

type mockStatementService struct {
	getOrCreateStatementFn        func(bankAccountID uint, statementType models.StatementType, startDate, endDate time.Time) (*models.AccountStatement, bool, error)
	hasLinesFn                    func(statementID uint) (bool, error)
	getUserStatementsFn           func(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.AccountStatement], error)
	getStatementByIDFn            func(userID, statementID uint) (*models.AccountStatement, error)
	getStatementLinesFn           func(userID, statementID uint, page pagination.PageRequest) (*pagination.PageResponse[models.StatementLine], error)
	getLineByIDFn                 func(userID, lineID uint) (*models.StatementLine, error)
	recategorizeLineFn            func(userID, lineID uint, categoryName, subCategoryName string) (*models.StatementLine, error)
	totalAmountFn                 func(statementID uint) (decimal.Decimal, error)
	totalSharedAmountFn           func(statementID uint) (decimal.Decimal, error)
	totalSharedAmountByCategoryFn func(statementID uint) ([]services.CategoryShareTotal, error)
}

func (m *mockStatementService) GetOrCreateStatement(bankAccountID uint, statementType models.StatementType, startDate, endDate time.Time) (*models.AccountStatement, bool, error) {
	if m.getOrCreateStatementFn != nil {
		return m.getOrCreateStatementFn(bankAccountID, statementType, startDate, endDate)
	}
	return &models.AccountStatement{}, true, nil
}

func (m *mockStatementService) HasLines(statementID uint) (bool, error) {
	if m.hasLinesFn != nil {
		return m.hasLinesFn(statementID)
	}
	return false, nil
}

func (m *mockStatementService) GetUserStatements(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.AccountStatement], error) {
	if m.getUserStatementsFn != nil {
		return m.getUserStatementsFn(userID, page)
	}
	resp := pagination.NewPageResponse([]models.AccountStatement{}, 1, 50, 0)
	return &resp, nil
}

func (m *mockStatementService) GetStatementByID(userID, statementID uint) (*models.AccountStatement, error) {
	if m.getStatementByIDFn != nil {
		return m.getStatementByIDFn(userID, statementID)
	}
	return &models.AccountStatement{}, nil
}

func (m *mockStatementService) GetStatementLines(userID, statementID uint, page pagination.PageRequest) (*pagination.PageResponse[models.StatementLine], error) {
	if m.getStatementLinesFn != nil {
		return m.getStatementLinesFn(userID, statementID, page)
	}
	resp := pagination.NewPageResponse([]models.StatementLine{}, 1, 50, 0)
	return &resp, nil
}

func (m *mockStatementService) GetLineByID(userID, lineID uint) (*models.StatementLine, error) {
	if m.getLineByIDFn != nil {
		return m.getLineByIDFn(userID, lineID)
	}
	return &models.StatementLine{}, nil
}

func (m *mockStatementService) RecategorizeLine(userID, lineID uint, categoryName, subCategoryName string) (*models.StatementLine, error) {
	if m.recategorizeLineFn != nil {
		return m.recategorizeLineFn(userID, lineID, categoryName, subCategoryName)
	}
	return &models.StatementLine{}, nil
}

func (m *mockStatementService) TotalAmount(statementID uint) (decimal.Decimal, error) {
	if m.totalAmountFn != nil {
		return m.totalAmountFn(statementID)
	}
	return decimal.Zero, nil
}

func (m *mockStatementService) TotalSharedAmount(statementID uint) (decimal.Decimal, error) {
	if m.totalSharedAmountFn != nil {
		return m.totalSharedAmountFn(statementID)
	}
	return decimal.Zero, nil
}

func (m *mockStatementService) TotalSharedAmountByCategory(statementID uint) ([]services.CategoryShareTotal, error) {
	if m.totalSharedAmountByCategoryFn != nil {
		return m.totalSharedAmountByCategoryFn(statementID)
	}
	return []services.CategoryShareTotal{}, nil
}

// --- mock share service ---

type mockShareService struct {
	isSharedFn     func(userID uint, label string, subCategory *models.SubCategory) (*bool, error)
	decideFn       func(userID, lineID uint, decision services.ShareDecision) (*models.StatementLine, error)
	pendingLinesFn func(userID, statementID uint) ([]models.StatementLine, error)
}

func (m *mockShareService) IsShared(userID uint, label string, subCategory *models.SubCategory) (*bool, error) {
	if m.isSharedFn != nil {
		return m.isSharedFn(userID, label, subCategory)
	}
	return nil, nil
}

func (m *mockShareService) Decide(userID, lineID uint, decision services.ShareDecision) (*models.StatementLine, error) {
	if m.decideFn != nil {
		return m.decideFn(userID, lineID, decision)
	}
	return &models.StatementLine{}, nil
}

func (m *mockShareService) PendingLines(userID, statementID uint) ([]models.StatementLine, error) {
	if m.pendingLinesFn != nil {
		return m.pendingLinesFn(userID, statementID)
	}
	return []models.StatementLine{}, nil
}

// verify interface compliance
var (
	_ services.StatementServicer = (*mockStatementService)(nil)
	_ services.ShareServicer     = (*mockShareService)(nil)
)

func setupStatementRouter(handler *StatementHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.GET("/statements", handler.GetUserStatements)
	auth.GET("/statements/:id", handler.GetStatementByID)
	auth.GET("/statements/:id/lines", handler.GetStatementLines)
	auth.GET("/statements/:id/totals", handler.GetStatementTotals)
	auth.GET("/statements/:id/pending", handler.GetPendingLines)
	auth.POST("/lines/:id/share", handler.DecideShare)
	auth.POST("/lines/:id/recategorize", handler.RecategorizeLine)
	return r
}

func TestStatementHandler_GetStatementTotals(t *testing.T) {
	t.Run("returns totals and breakdown", func(t *testing.T) {
		stmtSvc := &mockStatementService{
			totalAmountFn: func(statementID uint) (decimal.Decimal, error) {
				return decimal.RequireFromString("-76.00"), nil
			},
			totalSharedAmountFn: func(statementID uint) (decimal.Decimal, error) {
				return decimal.RequireFromString("-45.90"), nil
			},
			totalSharedAmountByCategoryFn: func(statementID uint) ([]services.CategoryShareTotal, error) {
				return []services.CategoryShareTotal{
					{Category: "Shopping", SubCategory: "En ligne", Total: decimal.RequireFromString("-45.90")},
				}, nil
			},
		}
		handler := NewStatementHandler(stmtSvc, &mockShareService{})
		r := setupStatementRouter(handler)

		rec := doRequest(r, "GET", "/statements/3/totals", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		total, err := decimal.NewFromString(result["total"].(string))
		if err != nil || !total.Equal(decimal.RequireFromString("-76.00")) {
			t.Errorf("total = %v", result["total"])
		}
		breakdown := result["shared_by_category"].([]interface{})
		if len(breakdown) != 1 {
			t.Fatalf("expected 1 bucket, got %d", len(breakdown))
		}
	})

	t.Run("returns 404 for a foreign statement", func(t *testing.T) {
		stmtSvc := &mockStatementService{
			getStatementByIDFn: func(userID, statementID uint) (*models.AccountStatement, error) {
				return nil, apperrors.ErrStatementNotFound
			},
		}
		handler := NewStatementHandler(stmtSvc, &mockShareService{})
		r := setupStatementRouter(handler)

		rec := doRequest(r, "GET", "/statements/3/totals", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "STATEMENT_NOT_FOUND")
	})
}

func TestStatementHandler_DecideShare(t *testing.T) {
	t.Run("applies the decision", func(t *testing.T) {
		var gotDecision services.ShareDecision
		shareSvc := &mockShareService{
			decideFn: func(userID, lineID uint, decision services.ShareDecision) (*models.StatementLine, error) {
				gotDecision = decision
				shared := true
				return &models.StatementLine{Base: models.Base{ID: lineID}, IsShared: &shared}, nil
			},
		}
		handler := NewStatementHandler(&mockStatementService{}, shareSvc)
		r := setupStatementRouter(handler)

		rec := doRequest(r, "POST", "/lines/9/share", `{"decision":"share_forever"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotDecision != services.ShareForever {
			t.Errorf("decision = %q, want share_forever", gotDecision)
		}
	})

	t.Run("rejects an unknown decision", func(t *testing.T) {
		handler := NewStatementHandler(&mockStatementService{}, &mockShareService{})
		r := setupStatementRouter(handler)

		rec := doRequest(r, "POST", "/lines/9/share", `{"decision":"maybe"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 404 for a foreign line", func(t *testing.T) {
		shareSvc := &mockShareService{
			decideFn: func(userID, lineID uint, decision services.ShareDecision) (*models.StatementLine, error) {
				return nil, apperrors.ErrLineNotFound
			},
		}
		handler := NewStatementHandler(&mockStatementService{}, shareSvc)
		r := setupStatementRouter(handler)

		rec := doRequest(r, "POST", "/lines/9/share", `{"decision":"share_once"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestStatementHandler_RecategorizeLine(t *testing.T) {
	t.Run("forwards the new pair", func(t *testing.T) {
		var gotCategory, gotSubCategory string
		stmtSvc := &mockStatementService{
			recategorizeLineFn: func(userID, lineID uint, categoryName, subCategoryName string) (*models.StatementLine, error) {
				gotCategory, gotSubCategory = categoryName, subCategoryName
				return &models.StatementLine{Base: models.Base{ID: lineID}}, nil
			},
		}
		handler := NewStatementHandler(stmtSvc, &mockShareService{})
		r := setupStatementRouter(handler)

		rec := doRequest(r, "POST", "/lines/9/recategorize",
			`{"category":"Maison","sub_category":"Equipement"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotCategory != "Maison" || gotSubCategory != "Equipement" {
			t.Errorf("got (%q, %q)", gotCategory, gotSubCategory)
		}
	})

	t.Run("requires a sub-category", func(t *testing.T) {
		handler := NewStatementHandler(&mockStatementService{}, &mockShareService{})
		r := setupStatementRouter(handler)

		rec := doRequest(r, "POST", "/lines/9/recategorize", `{"category":"Maison"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestStatementHandler_GetPendingLines(t *testing.T) {
	t.Run("lists undecided lines", func(t *testing.T) {
		shareSvc := &mockShareService{
			pendingLinesFn: func(userID, statementID uint) ([]models.StatementLine, error) {
				return []models.StatementLine{
					{Base: models.Base{ID: 4}, Label: "AMAZON FR"},
				}, nil
			},
		}
		handler := NewStatementHandler(&mockStatementService{}, shareSvc)
		r := setupStatementRouter(handler)

		rec := doRequest(r, "GET", "/statements/3/pending", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		lines := result["lines"].([]interface{})
		if len(lines) != 1 {
			t.Fatalf("expected 1 pending line, got %d", len(lines))
		}
	})
}

func TestStatementHandler_GetUserStatements(t *testing.T) {
	t.Run("returns a page of statements", func(t *testing.T) {
		stmtSvc := &mockStatementService{
			getUserStatementsFn: func(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.AccountStatement], error) {
				resp := pagination.NewPageResponse([]models.AccountStatement{
					{Base: models.Base{ID: 3}, StatementType: models.StatementTypeBankStatement},
				}, 1, 50, 1)
				return &resp, nil
			},
		}
		handler := NewStatementHandler(stmtSvc, &mockShareService{})
		r := setupStatementRouter(handler)

		rec := doRequest(r, "GET", "/statements", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["total_items"].(float64) != 1 {
			t.Errorf("total_items = %v", result["total_items"])
		}
	})
}
