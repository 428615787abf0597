package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the local identity anchor. Email is the join key between the
// external identity provider and internal records.
type User struct {
	gorm.Model
	Name       string    `json:"name" gorm:"default:''"`
	Email      string    `json:"email" gorm:"unique;not null"`
	PictureURL string    `json:"picture_url" gorm:"default:''"`
	LastLogin  time.Time `json:"last_login" gorm:"default:NULL"`
	IsDeleted  bool      `gorm:"default:false"`
}
