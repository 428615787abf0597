package models

import "gorm.io/gorm"

// Space is a user-created container for generated explainer videos
type Space struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	SpaceName string `json:"spaceName"`
	IsDeleted bool   `gorm:"default:false"`
}
