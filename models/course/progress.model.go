package course

import (
	"time"

	"gorm.io/gorm"
)

// LessonProgress records one user's completion of one lesson. The composite
// unique index guarantees at most one row per (user, lesson) pair; a null
// completed_at means not completed. CourseID is denormalized so per-course
// progress can be answered without a join through lessons.
type LessonProgress struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"uniqueIndex:idx_user_lesson;not null"`
	LessonID    uint       `json:"lesson_id" gorm:"uniqueIndex:idx_user_lesson;not null"`
	CourseID    uint       `json:"course_id" gorm:"index;not null"`
	CompletedAt *time.Time `json:"completed_at"`
}

// CourseProgress summarizes that a user has completed every lesson of a
// course. A row with a non-null completed_at is only ever written after the
// recomputed lesson counts agree, inside the same transaction.
type CourseProgress struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"uniqueIndex:idx_user_course;not null"`
	CourseID    uint       `json:"course_id" gorm:"uniqueIndex:idx_user_course;not null"`
	CompletedAt *time.Time `json:"completed_at"`
}
