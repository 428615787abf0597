package controllers

import (
	"edvid/database"
	"edvid/middleware"
	"edvid/models"

	courseModels "edvid/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetMyCourses lists the caller's courses with lessons and attached videos
func GetMyCourses(c *fiber.Ctx) error {
	email, ok := c.Locals("email").(string)
	if !ok || email == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var courses []courseModels.Course
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", user.ID, false).
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index asc")
		}).
		Preload("Lessons.Video").
		Order("created_at desc").
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// GetCourseDetails returns one course with its lessons in stable order. A
// course owned by another user is reported as not found.
func GetCourseDetails(c *fiber.Ctx) error {
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
	if err := database.Database.Db.
		Where("id = ? AND user_id = ? AND is_deleted = ?", courseID, user.ID, false).
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index asc")
		}).
		Preload("Lessons.Video").
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"course": course,
	})
}

// CreateCourse creates an empty course owned by the caller
func CreateCourse(c *fiber.Ctx) error {
	email, ok := c.Locals("email").(string)
	if !ok || email == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		CourseName  string `json:"courseName" validate:"required,min=3,max=100"`
		Description string `json:"description" validate:"max=1000"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := courseModels.Course{
		UserID:      user.ID,
		CourseName:  reqData.CourseName,
		Description: reqData.Description,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// AddLesson appends a lesson to a course, optionally attaching a video from
// one of the caller's spaces. New lessons go to the end of the course unless
// an explicit order index is given.
func AddLesson(c *fiber.Ctx) error {
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

	reqData, ok := c.Locals("validatedLesson").(*struct {
		LessonName string `json:"lessonName" validate:"required,min=1,max=200"`
		VideoID    *uint  `json:"video_id"`
		OrderIndex *int   `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// An attached video must live in one of the caller's spaces
	if reqData.VideoID != nil {
		var video models.Video
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", *reqData.VideoID, false).First(&video).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
		}
		var space models.Space
		if err := database.Database.Db.Where("id = ? AND user_id = ? AND is_deleted = ?", video.SpaceID, user.ID, false).First(&space).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
		}
	}

	orderIndex := 0
	if reqData.OrderIndex != nil {
		orderIndex = *reqData.OrderIndex
	} else {
		var count int64
		database.Database.Db.Model(&courseModels.Lesson{}).Where("course_id = ?", courseID).Count(&count)
		orderIndex = int(count) + 1
	}

	lesson := courseModels.Lesson{
		CourseID:   courseID,
		LessonName: reqData.LessonName,
		OrderIndex: orderIndex,
		VideoID:    reqData.VideoID,
	}

	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}
