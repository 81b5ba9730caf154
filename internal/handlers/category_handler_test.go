package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ClaireRuysschaert/BudgetMate/internal/models"
	"github.com/ClaireRuysschaert/BudgetMate/internal/services"
)

// --- mock category service ---

type mockCategoryService struct {
	getOrCreateCategoryFn    func(userID uint, name string) (*models.Category, error)
	getOrCreateSubCategoryFn func(userID, categoryID uint, name string) (*models.SubCategory, error)
	getUserCategoriesFn      func(userID uint) ([]models.Category, error)
	resolveFn                func(userID uint, label, categoryHint, subCategoryHint string, decider services.CategoryDecider) (*models.Category, *models.SubCategory, error)
}

func (m *mockCategoryService) GetOrCreateCategory(userID uint, name string) (*models.Category, error) {
	if m.getOrCreateCategoryFn != nil {
		return m.getOrCreateCategoryFn(userID, name)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) GetOrCreateSubCategory(userID, categoryID uint, name string) (*models.SubCategory, error) {
	if m.getOrCreateSubCategoryFn != nil {
		return m.getOrCreateSubCategoryFn(userID, categoryID, name)
	}
	return &models.SubCategory{}, nil
}

func (m *mockCategoryService) GetUserCategories(userID uint) ([]models.Category, error) {
	if m.getUserCategoriesFn != nil {
		return m.getUserCategoriesFn(userID)
	}
	return []models.Category{}, nil
}

func (m *mockCategoryService) Resolve(userID uint, label, categoryHint, subCategoryHint string, decider services.CategoryDecider) (*models.Category, *models.SubCategory, error) {
	if m.resolveFn != nil {
		return m.resolveFn(userID, label, categoryHint, subCategoryHint, decider)
	}
	return &models.Category{}, &models.SubCategory{}, nil
}

var _ services.CategoryServicer = (*mockCategoryService)(nil)

func setupCategoryRouter(handler *CategoryHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.GET("/categories", handler.GetUserCategories)
	auth.POST("/categories", handler.CreateCategory)
	return r
}

func TestCategoryHandler_GetUserCategories(t *testing.T) {
	t.Run("lists categories with sub-categories", func(t *testing.T) {
		categorySvc := &mockCategoryService{
			getUserCategoriesFn: func(userID uint) ([]models.Category, error) {
				return []models.Category{
					{
						Base: models.Base{ID: 1},
						Name: "Alimentation",
						SubCategories: []models.SubCategory{
							{Base: models.Base{ID: 2}, Name: "Courses", CategoryID: 1},
						},
					},
				}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(categorySvc))

		rec := doRequest(r, "GET", "/categories", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		categories := result["categories"].([]interface{})
		if len(categories) != 1 {
			t.Fatalf("expected 1 category, got %d", len(categories))
		}
	})
}

func TestCategoryHandler_CreateCategory(t *testing.T) {
	t.Run("normalizes the name before creation", func(t *testing.T) {
		var gotName string
		categorySvc := &mockCategoryService{
			getOrCreateCategoryFn: func(userID uint, name string) (*models.Category, error) {
				gotName = name
				return &models.Category{Base: models.Base{ID: 1}, Name: name}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(categorySvc))

		rec := doRequest(r, "POST", "/categories", `{"name":"Santé"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotName != "Sante" {
			t.Errorf("name = %q, want normalized Sante", gotName)
		}
	})

	t.Run("creates the optional sub-category", func(t *testing.T) {
		var gotSubName string
		categorySvc := &mockCategoryService{
			getOrCreateCategoryFn: func(userID uint, name string) (*models.Category, error) {
				return &models.Category{Base: models.Base{ID: 1}, Name: name}, nil
			},
			getOrCreateSubCategoryFn: func(userID, categoryID uint, name string) (*models.SubCategory, error) {
				gotSubName = name
				return &models.SubCategory{Base: models.Base{ID: 2}, Name: name, CategoryID: categoryID}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(categorySvc))

		rec := doRequest(r, "POST", "/categories",
			`{"name":"Alimentation","sub_category":"Courses"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotSubName != "Courses" {
			t.Errorf("sub-category = %q", gotSubName)
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}))

		rec := doRequest(r, "POST", "/categories", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
