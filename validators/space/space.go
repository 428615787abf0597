package spaceValidator

import (
	"edvid/middleware"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func validationErrors(err error) map[string]string {
	errors := make(map[string]string)
	for _, fieldErr := range err.(validator.ValidationErrors) {
		errors[strings.ToLower(fieldErr.Field())] = "Invalid value for " + fieldErr.Field() + " (" + fieldErr.Tag() + ")!"
	}
	return errors
}

func parseID(c *fiber.Ctx, param string) (int, bool) {
	idStr := strings.TrimSpace(c.Params(param))
	if idStr == "" {
		return 0, false
	}
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// CreateSpace validates the space creation payload
func CreateSpace() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name string `json:"name" validate:"required,min=1,max=100"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Name = strings.TrimSpace(reqData.Name)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedSpace", reqData)
		return c.Next()
	}
}

// SpaceID validates the spaceId path parameter
func SpaceID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		spaceID, ok := parseID(c, "spaceId")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Space ID!", nil)
		}

		c.Locals("spaceID", spaceID)
		return c.Next()
	}
}

// VideoID validates the spaceId and videoId path parameters
func VideoID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		spaceID, ok := parseID(c, "spaceId")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Space ID!", nil)
		}

		videoID, ok := parseID(c, "videoId")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Video ID!", nil)
		}

		c.Locals("spaceID", spaceID)
		c.Locals("videoID", videoID)
		return c.Next()
	}
}

// CreateVideo validates the payload registering an already-rendered clip
func CreateVideo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		spaceID, ok := parseID(c, "spaceId")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Space ID!", nil)
		}

		reqData := new(struct {
			Title          string `json:"title" validate:"required,min=1,max=200"`
			Prompt         string `json:"prompt" validate:"required,min=1"`
			VideoFilePath  string `json:"videoFilePath" validate:"required,url"`
			MainContentURL string `json:"mainContentUrl" validate:"omitempty,url"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Prompt = strings.TrimSpace(reqData.Prompt)
		reqData.VideoFilePath = strings.TrimSpace(reqData.VideoFilePath)
		reqData.MainContentURL = strings.TrimSpace(reqData.MainContentURL)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("spaceID", spaceID)
		c.Locals("validatedVideo", reqData)
		return c.Next()
	}
}

// GenerateVideo validates the payload submitted to the generation service
func GenerateVideo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		spaceID, ok := parseID(c, "spaceId")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Space ID!", nil)
		}

		reqData := new(struct {
			Title  string `json:"title" validate:"required,min=1,max=200"`
			Prompt string `json:"prompt" validate:"required,min=1,max=4000"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Prompt = strings.TrimSpace(reqData.Prompt)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("spaceID", spaceID)
		c.Locals("validatedGenerateVideo", reqData)
		return c.Next()
	}
}
