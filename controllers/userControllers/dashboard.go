package userController

import (
	"edvid/database"
	"edvid/middleware"
	"edvid/models"
	"math"

	courseModels "edvid/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// GetDashboardStats aggregates per-user learning stats. All progress queries
// key on the internal user ID, never on the email.
func GetDashboardStats(c *fiber.Ctx) error {
	email, ok := c.Locals("email").(string)
	if !ok || email == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	db := database.Database.Db

	var totalSpaces int64
	db.Model(&models.Space{}).Where("user_id = ? AND is_deleted = ?", user.ID, false).Count(&totalSpaces)

	var completedCourses int64
	db.Model(&courseModels.CourseProgress{}).Where("user_id = ? AND completed_at IS NOT NULL", user.ID).Count(&completedCourses)

	var totalLessons int64
	db.Model(&courseModels.Lesson{}).
		Joins("JOIN courses ON lessons.course_id = courses.id").
		Where("courses.user_id = ? AND courses.is_deleted = ?", user.ID, false).
		Count(&totalLessons)

	var lessonsCompleted int64
	db.Model(&courseModels.LessonProgress{}).Where("user_id = ? AND completed_at IS NOT NULL", user.ID).Count(&lessonsCompleted)

	var completedToday int64
	db.Model(&courseModels.LessonProgress{}).
		Where("user_id = ? AND completed_at >= ?", user.ID, now.BeginningOfDay()).
		Count(&completedToday)

	completionPercentage := 0
	if totalLessons > 0 {
		completionPercentage = int(math.Round(float64(lessonsCompleted) / float64(totalLessons) * 100))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"stats": fiber.Map{
			"totalSpaces":           totalSpaces,
			"completedCourses":      completedCourses,
			"totalLessonsCompleted": lessonsCompleted,
			"lessonsCompletedToday": completedToday,
			"totalLessons":          totalLessons,
			"completionPercentage":  completionPercentage,
		},
	})
}
