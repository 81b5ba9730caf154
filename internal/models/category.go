package models

// Category represents a user-scoped taxonomy node for statement lines.
// A nil UserID marks a global category shared by all users; those are
// used sparingly since each user grows an independent taxonomy.
type Category struct {
	Base
	Name   string `gorm:"size:200;not null" json:"name"`
	UserID *uint  `json:"user_id,omitempty"`

	// Relationships
	SubCategories []SubCategory `gorm:"foreignKey:CategoryID" json:"sub_categories,omitempty"`
}

// SubCategory belongs to exactly one Category.
type SubCategory struct {
	Base
	Name       string `gorm:"size:200;not null" json:"name"`
	CategoryID uint   `gorm:"not null" json:"category_id"`
	UserID     *uint  `json:"user_id,omitempty"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID" json:"-"`
}
