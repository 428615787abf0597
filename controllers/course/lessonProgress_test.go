package controllers

import (
	"edvid/config"
	"edvid/database"
	"edvid/middleware"
	"edvid/models"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	courseModels "edvid/models/course"
	courseValidator "edvid/validators/course"

	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret-key"}

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Space{},
		&models.Video{},
		&courseModels.Course{},
		&courseModels.Lesson{},
		&courseModels.LessonProgress{},
		&courseModels.CourseProgress{},
		&courseModels.Credential{},
	))

	// The shared-cache DB outlives a single test, wipe it for isolation
	for _, model := range []interface{}{
		&courseModels.LessonProgress{},
		&courseModels.CourseProgress{},
		&courseModels.Credential{},
		&courseModels.Lesson{},
		&courseModels.Course{},
		&models.Video{},
		&models.Space{},
		&models.User{},
	} {
		require.NoError(t, db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error)
	}

	database.Database = database.DbInstance{Db: db}
	return db
}

func setupTestApp() *fiber.App {
	app := fiber.New()

	courseGroup := app.Group("/courses")
	courseGroup.Post("/:courseId/lessons/:lessonId/complete", middleware.JWTMiddleware, courseValidator.CompleteLesson(), MarkLessonComplete)
	courseGroup.Get("/:courseId/progress", middleware.JWTMiddleware, courseValidator.CourseID(), GetCourseProgress)
	courseGroup.Post("/:courseId/reset", middleware.JWTMiddleware, courseValidator.CourseID(), ResetCourseProgress)

	return app
}

func createTestUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Name: "Test User", Email: email}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestCourse(t *testing.T, db *gorm.DB, userID uint, name string, lessonCount int) (courseModels.Course, []courseModels.Lesson) {
	t.Helper()
	course := courseModels.Course{UserID: userID, CourseName: name}
	require.NoError(t, db.Create(&course).Error)

	lessons := make([]courseModels.Lesson, 0, lessonCount)
	for i := 0; i < lessonCount; i++ {
		lesson := courseModels.Lesson{
			CourseID:   course.ID,
			LessonName: fmt.Sprintf("Lesson %d", i+1),
			OrderIndex: i + 1,
		}
		require.NoError(t, db.Create(&lesson).Error)
		lessons = append(lessons, lesson)
	}

	return course, lessons
}

func authToken(t *testing.T, user models.User) string {
	t.Helper()
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Email)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, method, url, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, url, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

type completeResponse struct {
	Success          bool `json:"success"`
	CompletedLessons int  `json:"completedLessons"`
	TotalLessons     int  `json:"totalLessons"`
	IsCourseComplete bool `json:"isCourseComplete"`
}

type progressResponse struct {
	CompletedLessons []uint `json:"completedLessons"`
	TotalLessons     int    `json:"totalLessons"`
	IsCourseComplete bool   `json:"isCourseComplete"`
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, out))
}

func completeURL(courseID, lessonID uint) string {
	return fmt.Sprintf("/courses/%d/lessons/%d/complete", courseID, lessonID)
}

func TestMarkLessonCompleteThreshold(t *testing.T) {
	db := setupTestDB(t)
	app := setupTestApp()

	user := createTestUser(t, db, "threshold@test.com")
	course, lessons := createTestCourse(t, db, user.ID, "Threshold Course", 3)
	token := authToken(t, user)

	// First two completions leave the course incomplete
	for i, lesson := range lessons[:2] {
		resp := doRequest(t, app, "POST", completeURL(course.ID, lesson.ID), token)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var result completeResponse
		decodeBody(t, resp, &result)
		assert.True(t, result.Success)
		assert.Equal(t, i+1, result.CompletedLessons)
		assert.Equal(t, 3, result.TotalLessons)
		assert.False(t, result.IsCourseComplete)
	}

	var cpCount int64
	db.Model(&courseModels.CourseProgress{}).Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&cpCount)
	assert.Equal(t, int64(0), cpCount, "no course-level record before the last lesson")

	// The last lesson flips the course to complete
	resp := doRequest(t, app, "POST", completeURL(course.ID, lessons[2].ID), token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result completeResponse
	decodeBody(t, resp, &result)
	assert.Equal(t, 3, result.CompletedLessons)
	assert.True(t, result.IsCourseComplete)

	var cp courseModels.CourseProgress
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&cp).Error)
	require.NotNil(t, cp.CompletedAt)
	assert.WithinDuration(t, time.Now(), *cp.CompletedAt, time.Minute)
}

func TestMarkLessonCompleteIdempotent(t *testing.T) {
	db := setupTestDB(t)
	app := setupTestApp()

	user := createTestUser(t, db, "idempotent@test.com")
	course, lessons := createTestCourse(t, db, user.ID, "Idempotent Course", 2)
	token := authToken(t, user)

	for i := 0; i < 3; i++ {
		resp := doRequest(t, app, "POST", completeURL(course.ID, lessons[0].ID), token)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var result completeResponse
		decodeBody(t, resp, &result)
		assert.Equal(t, 1, result.CompletedLessons, "repeat completions do not inflate the count")
		assert.False(t, result.IsCourseComplete)
	}

	var lpCount int64
	db.Model(&courseModels.LessonProgress{}).Where("user_id = ? AND lesson_id = ?", user.ID, lessons[0].ID).Count(&lpCount)
	assert.Equal(t, int64(1), lpCount, "one row per (user, lesson) pair")
}

func TestZeroLessonCourseNeverComplete(t *testing.T) {
	db := setupTestDB(t)
	app := setupTestApp()

	user := createTestUser(t, db, "zerolessons@test.com")
	course, _ := createTestCourse(t, db, user.ID, "Empty Course", 0)
	token := authToken(t, user)

	resp := doRequest(t, app, "GET", fmt.Sprintf("/courses/%d/progress", course.ID), token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result progressResponse
	decodeBody(t, resp, &result)
	assert.Empty(t, result.CompletedLessons)
	assert.Equal(t, 0, result.TotalLessons)
	assert.False(t, result.IsCourseComplete, "a course with no lessons is never complete")
}

func TestCompletionIsMonotonicUntilReset(t *testing.T) {
	db := setupTestDB(t)
	app := setupTestApp()

	user := createTestUser(t, db, "monotonic@test.com")
	course, lessons := createTestCourse(t, db, user.ID, "Monotonic Course", 2)
	token := authToken(t, user)

	for _, lesson := range lessons {
		doRequest(t, app, "POST", completeURL(course.ID, lesson.ID), token)
	}

	// Re-completing a lesson keeps the course complete and does not create
	// a second course-level record
	resp := doRequest(t, app, "POST", completeURL(course.ID, lessons[0].ID), token)
	var result completeResponse
	decodeBody(t, resp, &result)
	assert.True(t, result.IsCourseComplete)

	var cpCount int64
	db.Model(&courseModels.CourseProgress{}).Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&cpCount)
	assert.Equal(t, int64(1), cpCount)
}

func TestResetCourseProgress(t *testing.T) {
	db := setupTestDB(t)
	app := setupTestApp()

	user := createTestUser(t, db, "reset@test.com")
	course, lessons := createTestCourse(t, db, user.ID, "Reset Course", 2)
	token := authToken(t, user)

	for _, lesson := range lessons {
		doRequest(t, app, "POST", completeURL(course.ID, lesson.ID), token)
	}

	resp := doRequest(t, app, "POST", fmt.Sprintf("/courses/%d/reset", course.ID), token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var lpCount, cpCount int64
	db.Model(&courseModels.LessonProgress{}).Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&lpCount)
	db.Model(&courseModels.CourseProgress{}).Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&cpCount)
	assert.Equal(t, int64(0), lpCount)
	assert.Equal(t, int64(0), cpCount)

	progResp := doRequest(t, app, "GET", fmt.Sprintf("/courses/%d/progress", course.ID), token)
	var prog progressResponse
	decodeBody(t, progResp, &prog)
	assert.Empty(t, prog.CompletedLessons)
	assert.Equal(t, 2, prog.TotalLessons)
	assert.False(t, prog.IsCourseComplete)

	// Resetting an already-reset course succeeds with no effect
	resp = doRequest(t, app, "POST", fmt.Sprintf("/courses/%d/reset", course.ID), token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The user can complete lessons again after a reset
	compResp := doRequest(t, app, "POST", completeURL(course.ID, lessons[0].ID), token)
	assert.Equal(t, fiber.StatusOK, compResp.StatusCode)

	var result completeResponse
	decodeBody(t, compResp, &result)
	assert.Equal(t, 1, result.CompletedLessons)
}

func TestMarkLessonCompleteUnauthenticated(t *testing.T) {
	db := setupTestDB(t)
	app := setupTestApp()

	user := createTestUser(t, db, "noauth@test.com")
	course, lessons := createTestCourse(t, db, user.ID, "No Auth Course", 1)

	resp := doRequest(t, app, "POST", completeURL(course.ID, lessons[0].ID), "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var lpCount int64
	db.Model(&courseModels.LessonProgress{}).Count(&lpCount)
	assert.Equal(t, int64(0), lpCount, "rejected requests must not write progress")
}

func TestMarkLessonCompleteUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	app := setupTestApp()

	owner := createTestUser(t, db, "owner@test.com")
	course, lessons := createTestCourse(t, db, owner.ID, "Ghost Course", 1)

	// Valid token, but no matching user record
	ghost := models.User{Name: "Ghost"}
	ghost.ID = 999
	ghost.Email = "ghost@test.com"
	token := authToken(t, ghost)

	resp := doRequest(t, app, "POST", completeURL(course.ID, lessons[0].ID), token)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var lpCount int64
	db.Model(&courseModels.LessonProgress{}).Count(&lpCount)
	assert.Equal(t, int64(0), lpCount)
}

func TestMarkLessonCompleteWrongCourse(t *testing.T) {
	db := setupTestDB(t)
	app := setupTestApp()

	user := createTestUser(t, db, "wrongcourse@test.com")
	courseA, _ := createTestCourse(t, db, user.ID, "Course A", 1)
	_, lessonsB := createTestCourse(t, db, user.ID, "Course B", 1)
	token := authToken(t, user)

	// Lesson from course B addressed through course A
	resp := doRequest(t, app, "POST", completeURL(courseA.ID, lessonsB[0].ID), token)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var lpCount int64
	db.Model(&courseModels.LessonProgress{}).Count(&lpCount)
	assert.Equal(t, int64(0), lpCount)
}

func TestGetCourseProgressNotOwned(t *testing.T) {
	db := setupTestDB(t)
	app := setupTestApp()

	owner := createTestUser(t, db, "progress-owner@test.com")
	other := createTestUser(t, db, "progress-other@test.com")
	course, _ := createTestCourse(t, db, owner.ID, "Private Course", 1)

	resp := doRequest(t, app, "GET", fmt.Sprintf("/courses/%d/progress", course.ID), authToken(t, other))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCourseProgressSnapshot(t *testing.T) {
	db := setupTestDB(t)

	user := createTestUser(t, db, "snapshot@test.com")
	course, lessons := createTestCourse(t, db, user.ID, "Snapshot Course", 2)

	snap, err := courseProgressSnapshot(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.NotNil(t, snap.CompletedLessonIDs, "empty snapshot still carries a non-nil slice")
	assert.Equal(t, 2, snap.TotalLessons)
	assert.False(t, snap.IsCourseComplete)

	now := time.Now()
	require.NoError(t, upsertLessonProgress(db, user.ID, lessons[0].ID, course.ID, now))
	require.NoError(t, upsertLessonProgress(db, user.ID, lessons[1].ID, course.ID, now))

	snap, err = courseProgressSnapshot(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{lessons[0].ID, lessons[1].ID}, snap.CompletedLessonIDs)
	assert.True(t, snap.IsCourseComplete)
}
