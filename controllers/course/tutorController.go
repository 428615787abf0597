package controllers

import (
	"edvid/database"
	"edvid/middleware"
	"edvid/models"
	"edvid/utils"
	"log"

	courseModels "edvid/models/course"

	"github.com/gofiber/fiber/v2"
)

// AskTutor proxies a chat message to the external LLM completion endpoint.
// The platform keeps no chat state; each call is a single round trip.
func AskTutor(c *fiber.Ctx) error {
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

	reqData, ok := c.Locals("validatedChat").(*struct {
		Message  string `json:"message" validate:"required,min=1,max=4000"`
		LessonID *uint  `json:"lesson_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Give the tutor the lesson name as context when one is referenced
	lessonName := ""
	if reqData.LessonID != nil {
		var lesson courseModels.Lesson
		if err := database.Database.Db.Where("id = ? AND course_id = ?", *reqData.LessonID, courseID).First(&lesson).Error; err == nil {
			lessonName = lesson.LessonName
		}
	}

	reply, err := utils.TutorReply(course.CourseName, lessonName, reqData.Message)
	if err != nil {
		log.Printf("Tutor request failed for user %d course %d: %v", user.ID, courseID, err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Tutor is unavailable right now!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tutor replied!", fiber.Map{
		"reply": reply,
	})
}
