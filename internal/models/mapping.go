package models

// LabelCategoryMapping is a persisted memo of a prior categorization
// decision. A label maps to exactly one (category, sub-category) pair per
// user, which makes re-imports of known labels fully deterministic and
// prompt-free. Create-only; never updated in place.
type LabelCategoryMapping struct {
	Base
	UserID        uint   `gorm:"not null;uniqueIndex:idx_mapping_user_label" json:"user_id"`
	Label         string `gorm:"size:200;not null;uniqueIndex:idx_mapping_user_label" json:"label"`
	CategoryID    uint   `gorm:"not null" json:"category_id"`
	SubCategoryID *uint  `json:"sub_category_id,omitempty"`

	// Relationships
	Category    Category     `gorm:"foreignKey:CategoryID" json:"category"`
	SubCategory *SubCategory `gorm:"foreignKey:SubCategoryID" json:"sub_category,omitempty"`
}
