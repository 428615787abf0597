package course

import (
	"edvid/models"

	"gorm.io/gorm"
)

// Lesson belongs to exactly one course. OrderIndex gives lessons a stable
// relative order within the course (first-lesson redirection, sidebar).
type Lesson struct {
	gorm.Model
	CourseID   uint          `json:"course_id" gorm:"index;not null"`
	LessonName string        `json:"lessonName"`
	OrderIndex int           `json:"order_index" gorm:"default:0"`
	VideoID    *uint         `json:"video_id"`
	Video      *models.Video `json:"video,omitempty" gorm:"foreignKey:VideoID"`
}
