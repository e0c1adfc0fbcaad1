package models

// Tag is a row of the tags table. Tags are append-only.
type Tag struct {
	Base
	UserID string `gorm:"type:uuid;not null;uniqueIndex:idx_tags_user_type_name" json:"user_id"`
	Type   string `gorm:"type:varchar(10);not null;uniqueIndex:idx_tags_user_type_name" json:"type"`
	Name   string `gorm:"not null;uniqueIndex:idx_tags_user_type_name" json:"name"`
}
