package models

import "gorm.io/gorm"

// Video is a rendered explainer clip living in a space. Clips produced by the
// external generation service start PENDING and are flipped to READY by the
// scheduler once the remote job finishes.
type Video struct {
	gorm.Model
	SpaceID         uint   `json:"space_id" gorm:"index;not null"`
	Title           string `json:"title"`
	Prompt          string `json:"prompt" gorm:"type:text"`
	VideoFilePath   string `json:"videoFilePath"`                      // Playable URL once rendered
	MainContentURL  string `json:"mainContentUrl"`                     // Generated quiz/summary JSON
	GenerationJobID string `json:"generation_job_id"`                  // Remote job id at the generation service
	Status          string `json:"status" gorm:"default:'READY'"`      // PENDING, READY, FAILED
	IsDeleted       bool   `gorm:"default:false"`
}
