package services

import (
	"encoding/csv"
	"errors"
	"io"
	"time"

	"gorm.io/gorm"

	"github.com/ClaireRuysschaert/BudgetMate/internal/banks"
	apperrors "github.com/ClaireRuysschaert/BudgetMate/internal/errors"
	"github.com/ClaireRuysschaert/BudgetMate/internal/logger"
	"github.com/ClaireRuysschaert/BudgetMate/internal/models"
)

// ingestionService drives the full statement-ingestion pipeline: format
// dispatch, label extraction, category resolution, share-rule lookup, and
// line creation, followed by explicit share decisions and reporting.
//
// The pipeline is single-threaded and file-at-a-time. Decision strategies
// are injected so nothing here ever blocks on a prompt.
type ingestionService struct {
	db               *gorm.DB
	bankService      BankServicer
	categoryService  CategoryServicer
	statementService StatementServicer
	shareService     ShareServicer
	categoryDecider  CategoryDecider
	shareDecider     ShareDecider
}

// NewIngestionService creates a new IngestionServicer with the given
// decision strategies.
func NewIngestionService(
	db *gorm.DB,
	bankService BankServicer,
	categoryService CategoryServicer,
	statementService StatementServicer,
	shareService ShareServicer,
	categoryDecider CategoryDecider,
	shareDecider ShareDecider,
) IngestionServicer {
	return &ingestionService{
		db:               db,
		bankService:      bankService,
		categoryService:  categoryService,
		statementService: statementService,
		shareService:     shareService,
		categoryDecider:  categoryDecider,
		shareDecider:     shareDecider,
	}
}

// ImportStatement ingests one semicolon-separated statement file.
//
// The bank format is resolved once from the account's bank brand; an
// unregistered brand is fatal to this file only. The statement is
// get-or-created on its idempotency key and a statement that already holds
// lines makes the whole import a no-op. Row failures are counted and
// skipped, never fatal.
func (s *ingestionService) ImportStatement(r io.Reader, statementType models.StatementType, startDate, endDate time.Time, bankAccountID, userID uint) (*ImportSummary, error) {
	account, err := s.bankService.GetBankAccountByID(userID, bankAccountID)
	if err != nil {
		return nil, err
	}

	format, err := banks.Lookup(account.BankBrand.Name)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrUnsupportedBankFormat,
			"No statement format registered for bank "+account.BankBrand.Name)
	}

	statement, created, err := s.statementService.GetOrCreateStatement(bankAccountID, statementType, startDate, endDate)
	if err != nil {
		return nil, err
	}

	summary := &ImportSummary{StatementID: statement.ID}

	if !created {
		hasLines, err := s.statementService.HasLines(statement.ID)
		if err != nil {
			return nil, err
		}
		if hasLines {
			summary.AlreadyComplete = true
			logger.Get().Infow("statement already imported, skipping",
				"statement_id", statement.ID,
				"start_date", startDate.Format(time.DateOnly),
				"end_date", endDate.Format(time.DateOnly),
			)
			return summary, nil
		}
	}

	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	// Header row.
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return summary, nil
		}
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unreadable statement file")
	}

	for {
		cols, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			summary.RowsSkipped++
			logger.Get().Debugw("unreadable row skipped", "error", err)
			continue
		}

		row, err := format.ParseRow(cols)
		if err != nil {
			if errors.Is(err, banks.ErrSalaryIncome) {
				summary.RowsDropped++
			} else {
				summary.RowsSkipped++
				logger.Get().Debugw("malformed row skipped", "error", err)
			}
			continue
		}

		if err := s.createLine(statement, row, userID, summary); err != nil {
			return nil, err
		}
	}

	logger.Get().Infow("statement imported",
		"statement_id", statement.ID,
		"lines_created", summary.LinesCreated,
		"rows_skipped", summary.RowsSkipped,
		"rows_dropped", summary.RowsDropped,
		"cancelled", summary.Cancelled,
	)
	return summary, nil
}

// createLine runs the per-row tail of the pipeline: category resolution,
// share-rule lookup, persistence.
func (s *ingestionService) createLine(statement *models.AccountStatement, row banks.Row, userID uint, summary *ImportSummary) error {
	category, subCategory, err := s.categoryService.Resolve(userID, row.Label, row.CategoryHint, row.SubCategoryHint, s.categoryDecider)
	if err != nil {
		return err
	}
	if category == nil {
		summary.Cancelled++
	}

	shared, err := s.shareService.IsShared(userID, row.Label, subCategory)
	if err != nil {
		return err
	}

	line := models.StatementLine{
		AccountStatementID: statement.ID,
		OperationType:      row.OperationType,
		Amount:             row.Amount,
		OperationDate:      row.Date,
		Label:              row.Label,
		IsShared:           shared,
	}
	if category != nil {
		line.CategoryID = &category.ID
	}
	if subCategory != nil {
		line.SubCategoryID = &subCategory.ID
	}
	if row.Comment != "" {
		comment := row.Comment
		line.Comment = &comment
	}

	if err := s.db.Create(&line).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	summary.LinesCreated++
	return nil
}

// ImportFiles ingests each file in order, then runs the explicit share
// decision step on every line still pending across the newly imported
// statements, and finally produces the aggregation report per statement.
func (s *ingestionService) ImportFiles(files []FileSpec, startDate, endDate time.Time, bankAccountID, userID uint) ([]ImportSummary, []StatementReport, error) {
	summaries := make([]ImportSummary, 0, len(files))
	for _, file := range files {
		summary, err := s.ImportStatement(file.Reader, file.StatementType, startDate, endDate, bankAccountID, userID)
		if err != nil {
			return summaries, nil, err
		}
		summary.FileName = file.Name
		summaries = append(summaries, *summary)
	}

	reports := make([]StatementReport, 0, len(summaries))
	for _, summary := range summaries {
		if summary.AlreadyComplete {
			continue
		}

		if err := s.decidePending(userID, summary.StatementID); err != nil {
			return summaries, reports, err
		}

		report, err := s.report(summary.StatementID)
		if err != nil {
			return summaries, reports, err
		}
		reports = append(reports, *report)
	}
	return summaries, reports, nil
}

// decidePending runs the injected share decider on every line of the
// statement whose sharing status is still unknown. A zero outcome defers
// the decision. Invalid decisions are reported and leave the line pending;
// they never abort the batch.
func (s *ingestionService) decidePending(userID, statementID uint) error {
	lines, err := s.shareService.PendingLines(userID, statementID)
	if err != nil {
		return err
	}

	for i := range lines {
		line := &lines[i]
		outcome := s.shareDecider.DecideShare(line)
		if outcome.Decision == "" && outcome.NewSubCategory == "" {
			continue
		}

		if outcome.NewSubCategory != "" {
			updated, err := s.statementService.RecategorizeLine(userID, line.ID, outcome.NewCategory, outcome.NewSubCategory)
			if err != nil {
				var appErr *apperrors.AppError
				if !errors.As(err, &appErr) || appErr.StatusCode >= 500 {
					return err
				}
				logger.Get().Warnw("recategorization rejected, keeping current categorization",
					"line_id", line.ID, "error", err)
			} else {
				line = updated
			}
		}

		if _, err := s.shareService.Decide(userID, line.ID, outcome.Decision); err != nil {
			if isInvalidDecision(err) {
				logger.Get().Warnw("invalid sharing decision, line left pending",
					"line_id", line.ID, "decision", string(outcome.Decision))
				continue
			}
			return err
		}
	}
	return nil
}

func isInvalidDecision(err error) bool {
	var appErr *apperrors.AppError
	return errors.As(err, &appErr) && appErr.Code == apperrors.ErrInvalidDecision.Code
}

// report assembles the aggregation output for one statement and logs it.
func (s *ingestionService) report(statementID uint) (*StatementReport, error) {
	total, err := s.statementService.TotalAmount(statementID)
	if err != nil {
		return nil, err
	}
	totalShared, err := s.statementService.TotalSharedAmount(statementID)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.statementService.TotalSharedAmountByCategory(statementID)
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("statement totals",
		"statement_id", statementID,
		"total", total.String(),
		"total_shared", totalShared.String(),
	)
	return &StatementReport{
		StatementID:      statementID,
		Total:            total,
		TotalShared:      totalShared,
		SharedByCategory: byCategory,
	}, nil
}
