package course

import (
	"time"

	"gorm.io/gorm"
)

// Credential records a completion credential minted by the external wallet
// service. The platform only stores the result; it never talks to the chain.
type Credential struct {
	gorm.Model
	UserID           uint      `json:"user_id" gorm:"index;not null"`
	CourseID         uint      `json:"course_id" gorm:"index;not null"`
	CredentialNumber string    `json:"credential_number" gorm:"unique"`
	TokenURI         string    `json:"token_uri"`
	TxHash           string    `json:"tx_hash"`
	IssuedAt         time.Time `json:"issued_at"`
	IsDeleted        bool      `gorm:"default:false"`
}
