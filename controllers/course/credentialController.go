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
	"github.com/google/uuid"
)

// RequestCredential asks the external wallet service to mint a completion
// credential. Completion is recomputed from authoritative counts at request
// time; a stale CourseProgress row is never trusted for gating.
func RequestCredential(c *fiber.Ctx) error {
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

	// Repeat requests return the credential that already exists
	var existing courseModels.Credential
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, courseID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Credential already issued!", fiber.Map{
			"credential": existing,
		})
	}

	snap, err := courseProgressSnapshot(database.Database.Db, user.ID, courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute progress!", nil)
	}
	if !snap.IsCourseComplete {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please complete the course before requesting a credential!", nil)
	}

	credentialNumber := uuid.NewString()
	tokenURI, txHash, err := utils.IssueCredential(user.Email, course.CourseName, credentialNumber)
	if err != nil {
		log.Printf("Credential issuance failed for user %d course %d: %v", user.ID, courseID, err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Credential service is unavailable right now!", nil)
	}

	credential := courseModels.Credential{
		UserID:           user.ID,
		CourseID:         courseID,
		CredentialNumber: credentialNumber,
		TokenURI:         tokenURI,
		TxHash:           txHash,
		IssuedAt:         time.Now(),
	}

	if err := database.Database.Db.Create(&credential).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store credential!", nil)
	}

	go utils.SendCredentialIssuedEmail(user.Email, user.Name, course.CourseName, credentialNumber)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Credential issued successfully!", credential)
}

// GetUserCredentials lists all credentials issued to the current user
func GetUserCredentials(c *fiber.Ctx) error {
	email, ok := c.Locals("email").(string)
	if !ok || email == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	type CredentialWithCourse struct {
		courseModels.Credential
		CourseName string `json:"course_name"`
	}

	var credentials []courseModels.Credential
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", user.ID, false).Order("issued_at desc").Find(&credentials).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch credentials!", nil)
	}

	result := make([]CredentialWithCourse, len(credentials))
	for i, cred := range credentials {
		var course courseModels.Course
		database.Database.Db.Where("id = ?", cred.CourseID).First(&course)
		result[i] = CredentialWithCourse{
			Credential: cred,
			CourseName: course.CourseName,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Credentials fetched successfully!", fiber.Map{
		"credentials": result,
	})
}
