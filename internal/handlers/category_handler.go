package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ClaireRuysschaert/BudgetMate/internal/errors"
	"github.com/ClaireRuysschaert/BudgetMate/internal/services"
	"github.com/ClaireRuysschaert/BudgetMate/internal/strutil"
)

// CategoryHandler handles category taxonomy requests.
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents the request payload for creating a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	SubCategory string `json:"sub_category" binding:"max=100"`
}

// GetUserCategories lists the user's categories with their sub-categories
// @Summary     List categories
// @Description List the authenticated user's categories (and the global ones) with their sub-categories
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} map[string]interface{} "Categories"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [get]
func (h *CategoryHandler) GetUserCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.categoryService.GetUserCategories(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory creates a category, optionally with a first sub-category
// @Summary     Create a category
// @Description Create a category (idempotent on the normalized name), optionally with a first sub-category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCategoryRequest true "Category details"
// @Success     201 {object} map[string]interface{} "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.GetOrCreateCategory(userID, strutil.CleanString(req.Name))
	if err != nil {
		respondWithError(c, err)
		return
	}

	response := gin.H{"category": category}
	if name := strutil.CleanString(req.SubCategory); name != "" {
		subCategory, err := h.categoryService.GetOrCreateSubCategory(userID, category.ID, name)
		if err != nil {
			respondWithError(c, err)
			return
		}
		response["sub_category"] = subCategory
	}

	c.JSON(http.StatusCreated, response)
}
