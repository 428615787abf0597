package authController

import (
	"context"
	"edvid/config"
	"edvid/database"
	"edvid/middleware"
	"edvid/models"
	"edvid/utils"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

func googleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.AppConfig.GoogleClientID,
		ClientSecret: config.AppConfig.GoogleClientSecret,
		RedirectURL:  config.AppConfig.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// GoogleLogin redirects the browser to the Google consent screen
func GoogleLogin(c *fiber.Ctx) error {
	state := uuid.NewString()

	c.Cookie(&fiber.Cookie{
		Name:     "oauth_state",
		Value:    state,
		HTTPOnly: true,
		Expires:  time.Now().Add(10 * time.Minute),
	})

	return c.Redirect(googleOAuthConfig().AuthCodeURL(state), fiber.StatusTemporaryRedirect)
}

// GoogleCallback exchanges the authorization code, reads the email claim from
// the userinfo endpoint and upserts the local user record before issuing a
// platform token. The upsert is keyed by email and never duplicates.
func GoogleCallback(c *fiber.Ctx) error {
	if c.Query("state") == "" || c.Query("state") != c.Cookies("oauth_state") {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid OAuth state!", nil)
	}

	code := c.Query("code")
	if code == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing authorization code!", nil)
	}

	oauthConfig := googleOAuthConfig()
	token, err := oauthConfig.Exchange(context.Background(), code)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Token exchange failed!", nil)
	}

	client := oauthConfig.Client(context.Background(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to fetch user info from Google!", nil)
	}
	defer resp.Body.Close()

	var userInfo struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to decode user info!", nil)
	}

	if userInfo.Email == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Google account has no email claim!", nil)
	}

	db := database.Database.Db

	var user models.User
	err = db.Where("email = ? AND is_deleted = ?", userInfo.Email, false).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Email:      userInfo.Email,
			Name:       userInfo.Name,
			PictureURL: userInfo.Picture,
			LastLogin:  time.Now(),
		}
		if err := db.Create(&user).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create user!", nil)
		}
		go utils.SendWelcomeEmail(user.Email, user.Name)
	} else if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Database error!", nil)
	} else {
		user.Name = userInfo.Name
		user.PictureURL = userInfo.Picture
		user.LastLogin = time.Now()
		db.Save(&user)
	}

	jwtToken, err := middleware.GenerateJWT(user.ID, user.Name, user.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue token!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful!", fiber.Map{
		"token": jwtToken,
		"user":  user,
	})
}

// UpsertSession re-runs the idempotent user upsert for an authenticated
// principal. Safe to call repeatedly; never duplicates a user.
func UpsertSession(c *fiber.Ctx) error {
	email, ok := c.Locals("email").(string)
	if !ok || email == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	err := db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{Email: email, LastLogin: time.Now()}
		if err := db.Create(&user).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upsert user!", nil)
		}
	} else if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Database error!", nil)
	} else {
		user.LastLogin = time.Now()
		db.Save(&user)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Session refreshed!", fiber.Map{
		"user": user,
	})
}
