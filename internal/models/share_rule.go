package models

// ShareRule is a persisted memo of a prior cost-sharing decision for a
// (label, sub-category) pair. AlwaysShared marks permanent inclusion or
// exclusion from cost-sharing for future matching lines.
type ShareRule struct {
	Base
	UserID        uint   `gorm:"not null;uniqueIndex:idx_share_rule_key" json:"user_id"`
	Label         string `gorm:"size:200;not null;uniqueIndex:idx_share_rule_key" json:"label"`
	SubCategoryID uint   `gorm:"not null;uniqueIndex:idx_share_rule_key" json:"sub_category_id"`
	AlwaysShared  bool   `gorm:"not null" json:"always_shared"`

	// Relationships
	SubCategory SubCategory `gorm:"foreignKey:SubCategoryID" json:"sub_category"`
}
