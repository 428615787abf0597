package courseRoutes

import (
	controllers "edvid/controllers/course"
	"edvid/middleware"
	validators "edvid/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all course, lesson and progress routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses")

	// Course CRUD
	courseGroup.Get("/", middleware.JWTMiddleware, controllers.GetMyCourses)
	courseGroup.Post("/", middleware.JWTMiddleware, validators.CreateCourse(), controllers.CreateCourse)
	courseGroup.Get("/:courseId", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseDetails)

	// Lessons
	courseGroup.Post("/:courseId/lessons", middleware.JWTMiddleware, validators.CreateLesson(), controllers.AddLesson)

	// Progress tracking
	courseGroup.Post("/:courseId/lessons/:lessonId/complete", middleware.JWTMiddleware, validators.CompleteLesson(), controllers.MarkLessonComplete)
	courseGroup.Get("/:courseId/progress", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseProgress)
	courseGroup.Post("/:courseId/reset", middleware.JWTMiddleware, validators.CourseID(), controllers.ResetCourseProgress)

	// Tutor chat
	courseGroup.Post("/:courseId/chat", middleware.JWTMiddleware, validators.Chat(), controllers.AskTutor)

	// Credentials
	courseGroup.Post("/:courseId/credential", middleware.JWTMiddleware, validators.CourseID(), controllers.RequestCredential)
}
