package controllers

import (
	"edvid/database"
	"edvid/middleware"
	"edvid/models"
	"edvid/utils"
	"log"
	"time"

	courseModels "edvid/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MarkLessonComplete records a lesson completion and re-evaluates whether the
// owning course has transitioned to fully complete. The write and the
// recompute run in one transaction so two concurrent completions in the same
// course cannot both observe a stale count.
func MarkLessonComplete(c *fiber.Ctx) error {
	email, ok := c.Locals("email").(string)
	if !ok || email == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	// Resolve the local user record from the email claim
	var user models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	courseID := uint(c.Locals("courseID").(int))
	lessonID := uint(c.Locals("lessonID").(int))

	// Courses are user-scoped: only the owner can record progress
	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND user_id = ? AND is_deleted = ?", courseID, user.ID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// The lesson must actually belong to this course, otherwise the
	// denormalized course_id on the progress row would silently drift
	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND course_id = ?", lessonID, courseID).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found in this course!", nil)
	}

	var snap progressSnapshot
	var justCompleted bool

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := lockUserCourse(tx, user.ID, courseID); err != nil {
			return err
		}

		if err := upsertLessonProgress(tx, user.ID, lessonID, courseID, time.Now()); err != nil {
			return err
		}

		s, err := courseProgressSnapshot(tx, user.ID, courseID)
		if err != nil {
			return err
		}
		snap = s

		if snap.IsCourseComplete {
			created, err := upsertCourseProgress(tx, user.ID, courseID, time.Now())
			if err != nil {
				return err
			}
			justCompleted = created
		}

		return nil
	})
	if err != nil {
		log.Printf("Failed to mark lesson %d complete for user %d: %v", lessonID, user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark lesson as complete!", nil)
	}

	// Celebrate only the first time the course flips to complete
	if justCompleted {
		go utils.SendCourseCompletionEmail(user.Email, user.Name, course.CourseName)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":          true,
		"completedLessons": len(snap.CompletedLessonIDs),
		"totalLessons":     snap.TotalLessons,
		"isCourseComplete": snap.IsCourseComplete,
	})
}

// GetCourseProgress returns the completion snapshot for one course. Pure
// read, recomputed fresh, so it stays correct even when a CourseProgress row
// has not been backfilled yet.
func GetCourseProgress(c *fiber.Ctx) error {
	email, ok := c.Locals("email").(string)
	if !ok || email == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	courseID := uint(c.Locals("courseID").(int))

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND user_id = ? AND is_deleted = ?", courseID, user.ID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	snap, err := courseProgressSnapshot(database.Database.Db, user.ID, courseID)
	if err != nil {
		log.Printf("Failed to compute progress for user %d course %d: %v", user.ID, courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"completedLessons": snap.CompletedLessonIDs,
		"totalLessons":     snap.TotalLessons,
		"isCourseComplete": snap.IsCourseComplete,
	})
}

// ResetCourseProgress deletes all progress for the (user, course) pair,
// returning the course to its initial state. Both deletes run in one
// transaction; resetting an already-reset course succeeds with no effect.
func ResetCourseProgress(c *fiber.Ctx) error {
	email, ok := c.Locals("email").(string)
	if !ok || email == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	courseID := uint(c.Locals("courseID").(int))

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND user_id = ? AND is_deleted = ?", courseID, user.ID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := lockUserCourse(tx, user.ID, courseID); err != nil {
			return err
		}
		return deleteAllProgress(tx, user.ID, courseID)
	})
	if err != nil {
		log.Printf("Failed to reset course %d for user %d: %v", courseID, user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset course progress!", nil)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Course progress reset successfully",
	})
}
