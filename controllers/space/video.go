package spaceController

import (
	"edvid/database"
	"edvid/middleware"
	"edvid/models"
	"edvid/utils"
	"log"

	"github.com/gofiber/fiber/v2"
)

// GetSpaceVideos lists all videos in one of the caller's spaces
func GetSpaceVideos(c *fiber.Ctx) error {
	email, ok := c.Locals("email").(string)
	if !ok || email == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	spaceID := uint(c.Locals("spaceID").(int))

	var space models.Space
	if err := database.Database.Db.Where("id = ? AND user_id = ? AND is_deleted = ?", spaceID, user.ID, false).First(&space).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Space not found!", nil)
	}

	var videos []models.Video
	if err := database.Database.Db.Where("space_id = ? AND is_deleted = ?", spaceID, false).Order("created_at desc").Find(&videos).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch videos!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Videos fetched successfully!", fiber.Map{
		"videos": videos,
	})
}

// GetVideo fetches a single video from one of the caller's spaces
func GetVideo(c *fiber.Ctx) error {
	email, ok := c.Locals("email").(string)
	if !ok || email == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	spaceID := uint(c.Locals("spaceID").(int))
	videoID := uint(c.Locals("videoID").(int))

	var space models.Space
	if err := database.Database.Db.Where("id = ? AND user_id = ? AND is_deleted = ?", spaceID, user.ID, false).First(&space).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Space not found!", nil)
	}

	var video models.Video
	if err := database.Database.Db.Where("id = ? AND space_id = ? AND is_deleted = ?", videoID, spaceID, false).First(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video fetched successfully!", video)
}

// CreateVideo registers an already-rendered clip in a space
func CreateVideo(c *fiber.Ctx) error {
	email, ok := c.Locals("email").(string)
	if !ok || email == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	spaceID := uint(c.Locals("spaceID").(int))

	var space models.Space
	if err := database.Database.Db.Where("id = ? AND user_id = ? AND is_deleted = ?", spaceID, user.ID, false).First(&space).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Space not found!", nil)
	}

	reqData, ok := c.Locals("validatedVideo").(*struct {
		Title          string `json:"title" validate:"required,min=1,max=200"`
		Prompt         string `json:"prompt" validate:"required,min=1"`
		VideoFilePath  string `json:"videoFilePath" validate:"required,url"`
		MainContentURL string `json:"mainContentUrl" validate:"omitempty,url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	video := models.Video{
		SpaceID:        spaceID,
		Title:          reqData.Title,
		Prompt:         reqData.Prompt,
		VideoFilePath:  reqData.VideoFilePath,
		MainContentURL: reqData.MainContentURL,
		Status:         "READY",
	}

	if err := database.Database.Db.Create(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Video created successfully!", video)
}

// GenerateVideo submits a prompt to the external generation service and
// registers a PENDING video that the scheduler will pick up once rendered
func GenerateVideo(c *fiber.Ctx) error {
	email, ok := c.Locals("email").(string)
	if !ok || email == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	spaceID := uint(c.Locals("spaceID").(int))

	var space models.Space
	if err := database.Database.Db.Where("id = ? AND user_id = ? AND is_deleted = ?", spaceID, user.ID, false).First(&space).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Space not found!", nil)
	}

	reqData, ok := c.Locals("validatedGenerateVideo").(*struct {
		Title  string `json:"title" validate:"required,min=1,max=200"`
		Prompt string `json:"prompt" validate:"required,min=1,max=4000"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	jobID, err := utils.RequestVideoGeneration(reqData.Title, reqData.Prompt)
	if err != nil {
		log.Printf("Video generation request failed for space %d: %v", spaceID, err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Generation service is unavailable right now!", nil)
	}

	video := models.Video{
		SpaceID:         spaceID,
		Title:           reqData.Title,
		Prompt:          reqData.Prompt,
		GenerationJobID: jobID,
		Status:          "PENDING",
	}

	if err := database.Database.Db.Create(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusAccepted, true, "Video generation started!", video)
}
