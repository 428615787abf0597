package spaceController

import (
	"edvid/database"
	"edvid/middleware"
	"edvid/models"

	"github.com/gofiber/fiber/v2"
)

// GetSpaces lists the caller's spaces
func GetSpaces(c *fiber.Ctx) error {
	email, ok := c.Locals("email").(string)
	if !ok || email == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var spaces []models.Space
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", user.ID, false).Order("created_at desc").Find(&spaces).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch spaces!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Spaces fetched successfully!", fiber.Map{
		"spaces": spaces,
	})
}

// CreateSpace creates a new space for the caller
func CreateSpace(c *fiber.Ctx) error {
	email, ok := c.Locals("email").(string)
	if !ok || email == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedSpace").(*struct {
		Name string `json:"name" validate:"required,min=1,max=100"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	space := models.Space{
		UserID:    user.ID,
		SpaceName: reqData.Name,
	}

	if err := database.Database.Db.Create(&space).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create space!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Space created successfully!", space)
}
