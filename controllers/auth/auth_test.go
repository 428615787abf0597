package authController

import (
	"edvid/config"
	"edvid/database"
	"edvid/middleware"
	"edvid/models"
	"net/http"
	"net/http/httptest"
	"testing"

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

	require.NoError(t, db.AutoMigrate(&models.User{}))
	require.NoError(t, db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&models.User{}).Error)

	database.Database = database.DbInstance{Db: db}
	return db
}

func setupTestApp() *fiber.App {
	app := fiber.New()
	app.Post("/auth/session", middleware.JWTMiddleware, UpsertSession)
	return app
}

func postSession(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", "/auth/session", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestUpsertSessionIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	app := setupTestApp()

	token, err := middleware.GenerateJWT(1, "Session User", "session@test.com")
	require.NoError(t, err)

	// First call creates the user, repeat calls must not duplicate it
	for i := 0; i < 3; i++ {
		resp := postSession(t, app, token)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	var count int64
	db.Model(&models.User{}).Where("email = ?", "session@test.com").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpsertSessionRequiresToken(t *testing.T) {
	db := setupTestDB(t)
	app := setupTestApp()

	resp := postSession(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
