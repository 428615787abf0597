package course

import "gorm.io/gorm"

// Course is a named ordered collection of lessons owned by exactly one user.
// Courses are user-scoped, not globally shared.
type Course struct {
	gorm.Model
	UserID      uint     `json:"user_id" gorm:"index;not null"`
	CourseName  string   `json:"courseName"`
	Description string   `json:"description"`
	Lessons     []Lesson `json:"lessons,omitempty" gorm:"foreignKey:CourseID"`
	IsDeleted   bool     `gorm:"default:false"`
}
