package controllers

import (
	"errors"
	"time"

	courseModels "edvid/models/course"

	"gorm.io/gorm"
)

// progressSnapshot is the authoritative read-side view of one user's progress
// through one course. It is always recomputed from LessonProgress rows and
// the live lesson count, never read back from a CourseProgress flag.
type progressSnapshot struct {
	CompletedLessonIDs []uint
	TotalLessons       int
	IsCourseComplete   bool
}

func countLessonsInCourse(db *gorm.DB, courseID uint) (int64, error) {
	var total int64
	err := db.Model(&courseModels.Lesson{}).
		Where("course_id = ?", courseID).
		Count(&total).Error
	return total, err
}

func completedLessonIDs(db *gorm.DB, userID, courseID uint) ([]uint, error) {
	var ids []uint
	err := db.Model(&courseModels.LessonProgress{}).
		Where("user_id = ? AND course_id = ? AND completed_at IS NOT NULL", userID, courseID).
		Pluck("lesson_id", &ids).Error
	return ids, err
}

// courseProgressSnapshot recomputes completion from authoritative counts.
// A course with no lessons is never considered complete.
func courseProgressSnapshot(db *gorm.DB, userID, courseID uint) (progressSnapshot, error) {
	total, err := countLessonsInCourse(db, courseID)
	if err != nil {
		return progressSnapshot{}, err
	}

	ids, err := completedLessonIDs(db, userID, courseID)
	if err != nil {
		return progressSnapshot{}, err
	}
	if ids == nil {
		ids = []uint{}
	}

	return progressSnapshot{
		CompletedLessonIDs: ids,
		TotalLessons:       int(total),
		IsCourseComplete:   total > 0 && int64(len(ids)) == total,
	}, nil
}

// upsertLessonProgress writes the completion timestamp for one (user, lesson)
// pair. Repeat completions only refresh completed_at; the composite unique
// index keeps the row count at one.
func upsertLessonProgress(db *gorm.DB, userID, lessonID, courseID uint, completedAt time.Time) error {
	return db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Assign(courseModels.LessonProgress{CourseID: courseID, CompletedAt: &completedAt}).
		FirstOrCreate(&courseModels.LessonProgress{
			UserID:   userID,
			LessonID: lessonID,
			CourseID: courseID,
		}).Error
}

// upsertCourseProgress records course-level completion. Returns true when the
// row was newly created, i.e. the course just transitioned to complete.
func upsertCourseProgress(db *gorm.DB, userID, courseID uint, completedAt time.Time) (bool, error) {
	var cp courseModels.CourseProgress
	err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&cp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cp = courseModels.CourseProgress{
			UserID:      userID,
			CourseID:    courseID,
			CompletedAt: &completedAt,
		}
		if err := db.Create(&cp).Error; err != nil {
			return false, err
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}

	cp.CompletedAt = &completedAt
	return false, db.Save(&cp).Error
}

// deleteAllProgress removes every LessonProgress and CourseProgress row for
// the (user, course) pair. Hard deletes, so the composite unique indexes stay
// clean when the user completes lessons again after a reset.
func deleteAllProgress(db *gorm.DB, userID, courseID uint) error {
	if err := db.Unscoped().
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&courseModels.LessonProgress{}).Error; err != nil {
		return err
	}
	return db.Unscoped().
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&courseModels.CourseProgress{}).Error
}

// lockUserCourse serializes completion and reset for one (user, course) pair
// so concurrent completions cannot read a stale count. The advisory lock is
// released when the transaction ends. sqlite serializes writers on its own.
func lockUserCourse(tx *gorm.DB, userID, courseID uint) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec("SELECT pg_advisory_xact_lock(?, ?)", int32(userID), int32(courseID)).Error
}
