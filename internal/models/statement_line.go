package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationType represents the kind of banking operation behind a line
type OperationType string

const (
	OperationTypeDirectDebit OperationType = "DD"
	OperationTypeCard        OperationType = "CB"
	OperationTypeCheque      OperationType = "CH"
	OperationTypeCash        OperationType = "CA"
	OperationTypeRefund      OperationType = "RE"
	OperationTypeInterest    OperationType = "IN"
	OperationTypeTransfer    OperationType = "TR"
	OperationTypeBankFee     OperationType = "BF"
	OperationTypeOther       OperationType = "OT"
)

// StatementLine represents one transaction record extracted from one row of
// an imported statement file.
//
// IsShared is tri-state: nil means the sharing decision is still pending.
// It transitions from nil to true/false exactly once per line through an
// explicit decision; re-running the classification step only targets lines
// still pending.
type StatementLine struct {
	Base
	AccountStatementID uint            `gorm:"not null" json:"account_statement_id"`
	OperationType      OperationType   `gorm:"not null" json:"operation_type"`
	Amount             decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	OperationDate      time.Time       `gorm:"not null" json:"operation_date"`
	Label              string          `gorm:"size:200;not null" json:"label"`
	CategoryID         *uint           `json:"category_id,omitempty"`
	SubCategoryID      *uint           `json:"sub_category_id,omitempty"`
	Comment            *string         `gorm:"size:250" json:"comment,omitempty"`
	IsShared           *bool           `json:"is_shared"`

	// Relationships
	AccountStatement AccountStatement `gorm:"foreignKey:AccountStatementID" json:"-"`
	Category         *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	SubCategory      *SubCategory     `gorm:"foreignKey:SubCategoryID" json:"sub_category,omitempty"`
}
