package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/ClaireRuysschaert/BudgetMate/internal/errors"
	"github.com/ClaireRuysschaert/BudgetMate/internal/logger"
	"github.com/ClaireRuysschaert/BudgetMate/internal/models"
)

// shareService implements the share-rule engine.
type shareService struct {
	db *gorm.DB
}

// NewShareService creates a new ShareServicer.
func NewShareService(db *gorm.DB) ShareServicer {
	return &shareService{db: db}
}

// IsShared looks up a persisted share rule for (user, label, sub-category).
// Labels and sub-category names match case-insensitively, scoped to the
// sub-category's parent category. nil means no rule matched: the line is
// left pending an explicit decision. A line without a sub-category is
// always pending.
func (s *shareService) IsShared(userID uint, label string, subCategory *models.SubCategory) (*bool, error) {
	if subCategory == nil {
		return nil, nil
	}

	var rule models.ShareRule
	err := s.db.
		Select("share_rules.*").
		Joins("JOIN sub_categories ON sub_categories.id = share_rules.sub_category_id").
		Where("share_rules.user_id = ?", userID).
		Where("LOWER(share_rules.label) = ?", strings.ToLower(strings.TrimSpace(label))).
		Where("LOWER(sub_categories.name) = ?", strings.ToLower(strings.TrimSpace(subCategory.Name))).
		Where("sub_categories.category_id = ?", subCategory.CategoryID).
		First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	shared := rule.AlwaysShared
	return &shared, nil
}

// PendingLines returns the statement's lines whose sharing status is still
// unknown, scoped to the owning user.
func (s *shareService) PendingLines(userID, statementID uint) ([]models.StatementLine, error) {
	var lines []models.StatementLine
	err := s.db.Preload("Category").Preload("SubCategory").
		Select("statement_lines.*").
		Joins("JOIN account_statements ON account_statements.id = statement_lines.account_statement_id").
		Joins("JOIN bank_accounts ON bank_accounts.id = account_statements.bank_account_id").
		Where("bank_accounts.user_id = ?", userID).
		Where("statement_lines.account_statement_id = ?", statementID).
		Where("statement_lines.is_shared IS NULL").
		Order("statement_lines.operation_date, statement_lines.id").
		Find(&lines).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return lines, nil
}

// Decide applies one explicit sharing decision to a line. The once
// variants only flag the line; the forever variants additionally memorize
// a ShareRule so future imports of the same (label, sub-category) resolve
// without prompting. An unrecognized decision leaves the line unchanged
// and returns ErrInvalidDecision.
func (s *shareService) Decide(userID, lineID uint, decision ShareDecision) (*models.StatementLine, error) {
	line, err := s.getOwnedLine(userID, lineID)
	if err != nil {
		return nil, err
	}

	var shared bool
	switch decision {
	case ShareOnce:
		shared = true
	case ShareForever:
		shared = true
		if err := s.createRule(userID, line, true); err != nil {
			return nil, err
		}
	case DeclineOnce:
		shared = false
	case DeclineForever:
		shared = false
		if err := s.createRule(userID, line, false); err != nil {
			return nil, err
		}
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidDecision, "Unrecognized sharing decision: "+string(decision))
	}

	line.IsShared = &shared
	if err := s.db.Model(line).Update("is_shared", shared).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return line, nil
}

// createRule persists a permanent share rule for the line's label and
// sub-category, a no-op when an identical rule already exists. Lines
// without a sub-category cannot carry a rule; the decision still applies
// to the line itself.
func (s *shareService) createRule(userID uint, line *models.StatementLine, alwaysShared bool) error {
	if line.SubCategoryID == nil {
		logger.Get().Warnw("share rule skipped: line has no sub-category",
			"line_id", line.ID, "label", line.Label)
		return nil
	}

	var existing models.ShareRule
	err := s.db.Where("user_id = ? AND label = ? AND sub_category_id = ?",
		userID, line.Label, *line.SubCategoryID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	rule := models.ShareRule{
		UserID:        userID,
		Label:         line.Label,
		SubCategoryID: *line.SubCategoryID,
		AlwaysShared:  alwaysShared,
	}
	if err := s.db.Create(&rule).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// getOwnedLine loads a statement line and verifies the caller owns it
// through the statement's bank account.
func (s *shareService) getOwnedLine(userID, lineID uint) (*models.StatementLine, error) {
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
