package services

import (
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ClaireRuysschaert/BudgetMate/internal/models"
	"github.com/ClaireRuysschaert/BudgetMate/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
}

// BankServicer defines the contract for bank brand and bank account logic.
type BankServicer interface {
	CreateBankBrand(name string) (*models.BankBrand, error)
	GetBankBrands() ([]models.BankBrand, error)
	CreateBankAccount(userID, bankBrandID uint, accountNumber, description string) (*models.BankAccount, error)
	GetUserBankAccounts(userID uint) ([]models.BankAccount, error)
	GetBankAccountByID(userID, bankAccountID uint) (*models.BankAccount, error)
}

// CategoryServicer defines the contract for the category taxonomy and the
// label-to-category resolver.
type CategoryServicer interface {
	GetOrCreateCategory(userID uint, name string) (*models.Category, error)
	GetOrCreateSubCategory(userID, categoryID uint, name string) (*models.SubCategory, error)
	GetUserCategories(userID uint) ([]models.Category, error)
	Resolve(userID uint, label, categoryHint, subCategoryHint string, decider CategoryDecider) (*models.Category, *models.SubCategory, error)
}

// ShareServicer defines the contract for the share-rule engine.
type ShareServicer interface {
	IsShared(userID uint, label string, subCategory *models.SubCategory) (*bool, error)
	Decide(userID, lineID uint, decision ShareDecision) (*models.StatementLine, error)
	PendingLines(userID, statementID uint) ([]models.StatementLine, error)
}

// CategoryShareTotal is one bucket of a per-statement shared-amount grouping.
type CategoryShareTotal struct {
	Category    string          `json:"category"`
	SubCategory string          `json:"sub_category"`
	Total       decimal.Decimal `json:"total"`
}

// StatementServicer defines the contract for account statements, their
// lines, and aggregate reporting.
type StatementServicer interface {
	GetOrCreateStatement(bankAccountID uint, statementType models.StatementType, startDate, endDate time.Time) (*models.AccountStatement, bool, error)
	HasLines(statementID uint) (bool, error)
	GetUserStatements(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.AccountStatement], error)
	GetStatementByID(userID, statementID uint) (*models.AccountStatement, error)
	GetStatementLines(userID, statementID uint, page pagination.PageRequest) (*pagination.PageResponse[models.StatementLine], error)
	GetLineByID(userID, lineID uint) (*models.StatementLine, error)
	RecategorizeLine(userID, lineID uint, categoryName, subCategoryName string) (*models.StatementLine, error)
	TotalAmount(statementID uint) (decimal.Decimal, error)
	TotalSharedAmount(statementID uint) (decimal.Decimal, error)
	TotalSharedAmountByCategory(statementID uint) ([]CategoryShareTotal, error)
}

// FileSpec identifies one statement file in a batch import.
type FileSpec struct {
	Name          string
	Reader        io.Reader
	StatementType models.StatementType
}

// ImportSummary reports the outcome of one file import.
type ImportSummary struct {
	FileName        string `json:"file_name,omitempty"`
	StatementID     uint   `json:"statement_id"`
	LinesCreated    int    `json:"lines_created"`
	RowsSkipped     int    `json:"rows_skipped"`
	RowsDropped     int    `json:"rows_dropped"`
	Cancelled       int    `json:"cancelled"`
	AlreadyComplete bool   `json:"already_complete"`
}

// StatementReport is the aggregation output for one imported statement.
type StatementReport struct {
	StatementID      uint                 `json:"statement_id"`
	Total            decimal.Decimal      `json:"total"`
	TotalShared      decimal.Decimal      `json:"total_shared"`
	SharedByCategory []CategoryShareTotal `json:"shared_by_category"`
}

// IngestionServicer drives the full import pipeline.
type IngestionServicer interface {
	ImportStatement(r io.Reader, statementType models.StatementType, startDate, endDate time.Time, bankAccountID, userID uint) (*ImportSummary, error)
	ImportFiles(files []FileSpec, startDate, endDate time.Time, bankAccountID, userID uint) ([]ImportSummary, []StatementReport, error)
}
