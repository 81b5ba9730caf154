package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/ClaireRuysschaert/BudgetMate/internal/errors"
	"github.com/ClaireRuysschaert/BudgetMate/internal/logger"
	"github.com/ClaireRuysschaert/BudgetMate/internal/models"
	"github.com/ClaireRuysschaert/BudgetMate/internal/strutil"
)

// defaultProposal is proposed when a new label arrives with no hints.
const defaultProposal = "Uncategorized"

// categoryService handles the category taxonomy and label resolution.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// GetOrCreateCategory returns the user's category with the given name,
// creating it on first use. The name must already be normalized.
func (s *categoryService) GetOrCreateCategory(userID uint, name string) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	var category models.Category
	err := s.db.Where("name = ? AND user_id = ?", name, userID).First(&category).Error
	if err == nil {
		return &category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	category = models.Category{Name: name, UserID: &userID}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	logger.Get().Infow("created category", "user_id", userID, "name", name)
	return &category, nil
}

// GetOrCreateSubCategory returns the sub-category with the given name under
// a category, creating it on first use. The name must already be normalized.
func (s *categoryService) GetOrCreateSubCategory(userID, categoryID uint, name string) (*models.SubCategory, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "sub-category name is required")
	}

	var subCategory models.SubCategory
	err := s.db.Where("name = ? AND category_id = ? AND user_id = ?", name, categoryID, userID).
		First(&subCategory).Error
	if err == nil {
		return &subCategory, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	subCategory = models.SubCategory{Name: name, CategoryID: categoryID, UserID: &userID}
	if err := s.db.Create(&subCategory).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	logger.Get().Infow("created sub-category", "user_id", userID, "category_id", categoryID, "name", name)
	return &subCategory, nil
}

// GetUserCategories lists the user's categories with their sub-categories.
func (s *categoryService) GetUserCategories(userID uint) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Preload("SubCategories").
		Where("user_id = ? OR user_id IS NULL", userID).
		Order("name").
		Find(&categories).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// Resolve maps a (user, label) pair to a category and sub-category.
//
// A persisted LabelCategoryMapping short-circuits everything: known labels
// resolve deterministically without invoking the decider. Otherwise the
// decider is consulted with the hints (or the default proposal); on
// cancellation both results are nil and nothing is persisted. On
// acceptance the names are normalized, the taxonomy nodes are get-or-
// created, and a new mapping is memorized for future imports.
func (s *categoryService) Resolve(userID uint, label, categoryHint, subCategoryHint string, decider CategoryDecider) (*models.Category, *models.SubCategory, error) {
	var mapping models.LabelCategoryMapping
	err := s.db.Preload("Category").Preload("SubCategory").
		Where("user_id = ? AND label = ?", userID, label).
		First(&mapping).Error
	if err == nil {
		return &mapping.Category, mapping.SubCategory, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	proposal := CategoryProposal{
		Label:       label,
		Category:    categoryHint,
		SubCategory: subCategoryHint,
	}
	if proposal.Category == "" {
		proposal.Category = defaultProposal
		proposal.SubCategory = defaultProposal
	}

	categoryName, subCategoryName, ok := decider.DecideCategory(proposal)
	if !ok || strutil.CleanString(categoryName) == "" {
		// Cancelled: the line stays uncategorized.
		return nil, nil, nil
	}

	category, err := s.GetOrCreateCategory(userID, strutil.CleanString(categoryName))
	if err != nil {
		return nil, nil, err
	}

	var subCategory *models.SubCategory
	if name := strutil.CleanString(subCategoryName); name != "" {
		subCategory, err = s.GetOrCreateSubCategory(userID, category.ID, name)
		if err != nil {
			return nil, nil, err
		}
	}

	// Memorize the decision only when both nodes resolved, so the fast
	// path always returns a complete pair.
	if subCategory != nil {
		if err := s.createMapping(userID, label, category, subCategory); err != nil {
			return nil, nil, err
		}
	}

	return category, subCategory, nil
}

// createMapping persists the label memo. A concurrent import may have
// inserted the same (user, label) pair first; the unique constraint turns
// that race into a reload of the winner's mapping.
func (s *categoryService) createMapping(userID uint, label string, category *models.Category, subCategory *models.SubCategory) error {
	mapping := models.LabelCategoryMapping{
		UserID:        userID,
		Label:         label,
		CategoryID:    category.ID,
		SubCategoryID: &subCategory.ID,
	}
	err := s.db.Create(&mapping).Error
	if err == nil {
		return nil
	}

	var existing models.LabelCategoryMapping
	if reloadErr := s.db.Where("user_id = ? AND label = ?", userID, label).First(&existing).Error; reloadErr == nil {
		logger.Get().Debugw("label mapping already exists, using it", "user_id", userID, "label", label)
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
