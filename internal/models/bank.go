package models

// BankBrand represents a supported banking institution. The brand name is the
// key used to select a statement parsing format during ingestion.
type BankBrand struct {
	Base
	Name     string        `gorm:"uniqueIndex;not null" json:"name"`
	Accounts []BankAccount `gorm:"foreignKey:BankBrandID" json:"accounts,omitempty"`
}

// BankAccount represents one bank account owned by a user at a bank brand.
type BankAccount struct {
	Base
	AccountNumber string `gorm:"not null" json:"account_number"`
	BankBrandID   uint   `gorm:"not null" json:"bank_brand_id"`
	UserID        uint   `gorm:"not null" json:"user_id"`
	Description   string `json:"description"`

	// Relationships
	BankBrand  BankBrand          `gorm:"foreignKey:BankBrandID" json:"bank_brand"`
	Statements []AccountStatement `gorm:"foreignKey:BankAccountID" json:"statements,omitempty"`
}
