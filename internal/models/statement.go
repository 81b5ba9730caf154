package models

import "time"

// StatementType represents the kind of export file a statement was built from
type StatementType string

const (
	StatementTypeBankStatement StatementType = "RB"   // relevé de banque
	StatementTypeReceipts      StatementType = "FACT" // facturettes
	StatementTypeCredit        StatementType = "CR"
	StatementTypeDebit         StatementType = "DB"
	StatementTypeOther         StatementType = "OT"
)

// AccountStatement represents one imported file's scope: a bank account over
// a date range. The (start_date, end_date, statement_type, bank_account_id)
// tuple is the idempotency key for re-import detection.
type AccountStatement struct {
	Base
	StatementType StatementType `gorm:"not null" json:"statement_type"`
	StartDate     time.Time     `gorm:"not null" json:"start_date"`
	EndDate       time.Time     `gorm:"not null" json:"end_date"`
	BankAccountID uint          `gorm:"not null" json:"bank_account_id"`

	// Relationships
	BankAccount BankAccount     `gorm:"foreignKey:BankAccountID" json:"bank_account"`
	Lines       []StatementLine `gorm:"foreignKey:AccountStatementID" json:"lines,omitempty"`
}
