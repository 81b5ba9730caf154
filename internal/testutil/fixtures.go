package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ClaireRuysschaert/BudgetMate/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    fmt.Sprintf("user%d@test.com", nextID()),
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestBankBrand creates a bank brand with the given name.
func CreateTestBankBrand(t *testing.T, db *gorm.DB, name string) *models.BankBrand {
	t.Helper()

	brand := &models.BankBrand{Name: name}
	if err := db.Create(brand).Error; err != nil {
		t.Fatalf("failed to create test bank brand: %v", err)
	}
	return brand
}

// CreateTestBankAccount creates a bank account for the user at the brand.
func CreateTestBankAccount(t *testing.T, db *gorm.DB, userID, brandID uint) *models.BankAccount {
	t.Helper()

	account := &models.BankAccount{
		AccountNumber: fmt.Sprintf("FR76%012d", nextID()),
		BankBrandID:   brandID,
		UserID:        userID,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test bank account: %v", err)
	}
	return account
}

// CreateTestStatement creates an account statement covering May 2024.
func CreateTestStatement(t *testing.T, db *gorm.DB, bankAccountID uint) *models.AccountStatement {
	t.Helper()

	statement := &models.AccountStatement{
		StatementType: models.StatementTypeBankStatement,
		StartDate:     time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
		BankAccountID: bankAccountID,
	}
	if err := db.Create(statement).Error; err != nil {
		t.Fatalf("failed to create test statement: %v", err)
	}
	return statement
}

// CreateTestCategory creates a user-scoped category.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID uint, name string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name, UserID: &userID}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestSubCategory creates a user-scoped sub-category under a category.
func CreateTestSubCategory(t *testing.T, db *gorm.DB, userID, categoryID uint, name string) *models.SubCategory {
	t.Helper()

	subCategory := &models.SubCategory{Name: name, CategoryID: categoryID, UserID: &userID}
	if err := db.Create(subCategory).Error; err != nil {
		t.Fatalf("failed to create test sub-category: %v", err)
	}
	return subCategory
}

// CreateTestLine creates a statement line with the given label and amount.
func CreateTestLine(t *testing.T, db *gorm.DB, statementID uint, label, amount string) *models.StatementLine {
	t.Helper()

	line := &models.StatementLine{
		AccountStatementID: statementID,
		OperationType:      models.OperationTypeCard,
		Amount:             decimal.RequireFromString(amount),
		OperationDate:      time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
		Label:              label,
	}
	if err := db.Create(line).Error; err != nil {
		t.Fatalf("failed to create test statement line: %v", err)
	}
	return line
}

// CreateTestShareRule creates a permanent share rule.
func CreateTestShareRule(t *testing.T, db *gorm.DB, userID, subCategoryID uint, label string, alwaysShared bool) *models.ShareRule {
	t.Helper()

	rule := &models.ShareRule{
		UserID:        userID,
		Label:         label,
		SubCategoryID: subCategoryID,
		AlwaysShared:  alwaysShared,
	}
	if err := db.Create(rule).Error; err != nil {
		t.Fatalf("failed to create test share rule: %v", err)
	}
	return rule
}
