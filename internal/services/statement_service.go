package services

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/ClaireRuysschaert/BudgetMate/internal/errors"
	"github.com/ClaireRuysschaert/BudgetMate/internal/models"
	"github.com/ClaireRuysschaert/BudgetMate/internal/pagination"
	"github.com/ClaireRuysschaert/BudgetMate/internal/strutil"
)

// statementService handles account statements, their lines, and the
// per-statement aggregation reporting.
type statementService struct {
	db              *gorm.DB
	categoryService CategoryServicer
}

// NewStatementService creates a new StatementServicer.
func NewStatementService(db *gorm.DB, categoryService CategoryServicer) StatementServicer {
	return &statementService{db: db, categoryService: categoryService}
}

// GetOrCreateStatement returns the statement matching the idempotency key
// (dates, type, bank account), creating it when absent. The second return
// value reports whether a new statement was created. Statements with a
// start date after their end date are rejected.
func (s *statementService) GetOrCreateStatement(bankAccountID uint, statementType models.StatementType, startDate, endDate time.Time) (*models.AccountStatement, bool, error) {
	if startDate.After(endDate) {
		return nil, false, apperrors.WithMessage(apperrors.ErrInvalidInput, "statement start date is after its end date")
	}

	var statement models.AccountStatement
	err := s.db.Where(
		"bank_account_id = ? AND statement_type = ? AND start_date = ? AND end_date = ?",
		bankAccountID, statementType, startDate, endDate,
	).First(&statement).Error
	if err == nil {
		return &statement, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	statement = models.AccountStatement{
		StatementType: statementType,
		StartDate:     startDate,
		EndDate:       endDate,
		BankAccountID: bankAccountID,
	}
	if err := s.db.Create(&statement).Error; err != nil {
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &statement, true, nil
}

// HasLines reports whether a statement already holds at least one line.
// This is the coarse idempotency guard for re-imports.
func (s *statementService) HasLines(statementID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.StatementLine{}).
		Where("account_statement_id = ?", statementID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}

// GetUserStatements retrieves a paginated list of the user's statements.
func (s *statementService) GetUserStatements(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.AccountStatement], error) {
	page.Defaults()

	base := s.db.Model(&models.AccountStatement{}).
		Joins("JOIN bank_accounts ON bank_accounts.id = account_statements.bank_account_id").
		Where("bank_accounts.user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var statements []models.AccountStatement
	err := base.Select("account_statements.*").
		Order("account_statements.start_date DESC").
		Scopes(pagination.Paginate(page)).
		Find(&statements).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(statements, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetStatementByID retrieves a statement owned by the user.
func (s *statementService) GetStatementByID(userID, statementID uint) (*models.AccountStatement, error) {
	var statement models.AccountStatement
	err := s.db.Select("account_statements.*").
		Joins("JOIN bank_accounts ON bank_accounts.id = account_statements.bank_account_id").
		Where("bank_accounts.user_id = ?", userID).
		Where("account_statements.id = ?", statementID).
		First(&statement).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStatementNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &statement, nil
}

// GetStatementLines retrieves a paginated list of a statement's lines.
func (s *statementService) GetStatementLines(userID, statementID uint, page pagination.PageRequest) (*pagination.PageResponse[models.StatementLine], error) {
	if _, err := s.GetStatementByID(userID, statementID); err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.StatementLine{}).Where("account_statement_id = ?", statementID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var lines []models.StatementLine
	err := base.Preload("Category").Preload("SubCategory").
		Order("operation_date, id").
		Scopes(pagination.Paginate(page)).
		Find(&lines).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(lines, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetLineByID retrieves a single line owned by the user.
func (s *statementService) GetLineByID(userID, lineID uint) (*models.StatementLine, error) {
	var line models.StatementLine
	err := s.db.Preload("Category").Preload("SubCategory").
		Select("statement_lines.*").
		Joins("JOIN account_statements ON account_statements.id = statement_lines.account_statement_id").
		Joins("JOIN bank_accounts ON bank_accounts.id = account_statements.bank_account_id").
		Where("bank_accounts.user_id = ?", userID).
		Where("statement_lines.id = ?", lineID).
		First(&line).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLineNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &line, nil
}

// RecategorizeLine revisits the category and sub-category of an existing
// line, get-or-creating the taxonomy nodes. An empty category name keeps
// the line's current category and only replaces the sub-category.
func (s *statementService) RecategorizeLine(userID, lineID uint, categoryName, subCategoryName string) (*models.StatementLine, error) {
	line, err := s.GetLineByID(userID, lineID)
	if err != nil {
		return nil, err
	}

	if subCategoryName = strutil.CleanString(subCategoryName); subCategoryName == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "sub-category name is required")
	}

	categoryID := line.CategoryID
	if categoryName = strutil.CleanString(categoryName); categoryName != "" {
		category, err := s.categoryService.GetOrCreateCategory(userID, categoryName)
		if err != nil {
			return nil, err
		}
		categoryID = &category.ID
	}
	if categoryID == nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "line has no category; a category name is required")
	}

	subCategory, err := s.categoryService.GetOrCreateSubCategory(userID, *categoryID, subCategoryName)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"category_id":     *categoryID,
		"sub_category_id": subCategory.ID,
	}
	if err := s.db.Model(line).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetLineByID(userID, lineID)
}

// TotalAmount sums every line amount of a statement; zero when empty.
func (s *statementService) TotalAmount(statementID uint) (decimal.Decimal, error) {
	lines, err := s.statementLines(statementID, false)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Amount)
	}
	return total, nil
}

// TotalSharedAmount sums the amounts of lines flagged as shared; zero when
// none are.
func (s *statementService) TotalSharedAmount(statementID uint) (decimal.Decimal, error) {
	lines, err := s.statementLines(statementID, true)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Amount)
	}
	return total, nil
}

// TotalSharedAmountByCategory groups the shared amounts of a statement by
// (category name, sub-category name), ordered by category then
// sub-category. Uncategorized lines are excluded from the grouping.
func (s *statementService) TotalSharedAmountByCategory(statementID uint) ([]CategoryShareTotal, error) {
	var lines []models.StatementLine
	err := s.db.Preload("Category").Preload("SubCategory").
		Where("account_statement_id = ? AND is_shared = ?", statementID, true).
		Find(&lines).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	type bucket struct{ category, subCategory string }
	totals := make(map[bucket]decimal.Decimal)
	for _, line := range lines {
		if line.Category == nil {
			continue
		}
		key := bucket{category: line.Category.Name}
		if line.SubCategory != nil {
			key.subCategory = line.SubCategory.Name
		}
		totals[key] = totals[key].Add(line.Amount)
	}

	result := make([]CategoryShareTotal, 0, len(totals))
	for key, total := range totals {
		result = append(result, CategoryShareTotal{
			Category:    key.category,
			SubCategory: key.subCategory,
			Total:       total,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Category != result[j].Category {
			return result[i].Category < result[j].Category
		}
		return result[i].SubCategory < result[j].SubCategory
	})
	return result, nil
}

func (s *statementService) statementLines(statementID uint, sharedOnly bool) ([]models.StatementLine, error) {
	query := s.db.Where("account_statement_id = ?", statementID)
	if sharedOnly {
		query = query.Where("is_shared = ?", true)
	}

	var lines []models.StatementLine
	if err := query.Find(&lines).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return lines, nil
}
