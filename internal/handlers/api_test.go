package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suhaniparashar/internhub-backend/internal/config"
	"github.com/suhaniparashar/internhub-backend/internal/dto"
	"github.com/suhaniparashar/internhub-backend/internal/handlers"
	"github.com/suhaniparashar/internhub-backend/internal/models"
	"github.com/suhaniparashar/internhub-backend/internal/routes"
	"github.com/suhaniparashar/internhub-backend/internal/services"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	apiDBOnce sync.Once
	apiDB     *gorm.DB
	apiDBErr  error
)

func apiTestConfig() *config.Config {
	return &config.Config{
		DBHost:           envOr("TEST_DB_HOST", "localhost"),
		DBPort:           envOr("TEST_DB_PORT", "5432"),
		DBUser:           envOr("TEST_DB_USER", "postgres"),
		DBPassword:       envOr("TEST_DB_PASSWORD", "postgres"),
		DBName:           envOr("TEST_DB_NAME", "internhub_test"),
		DBSSLMode:        "disable",
		JWTSecret:        "testsecret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
	}
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// newTestApp wires the full route table against the test database and skips
// the calling test when no database is reachable.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	cfg := apiTestConfig()
	apiDBOnce.Do(func() {
		apiDB, apiDBErr = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})
		if apiDBErr != nil {
			return
		}
		apiDBErr = apiDB.AutoMigrate(
			&models.User{},
			&models.RefreshToken{},
			&models.Internship{},
			&models.Application{},
			&models.Task{},
		)
	})
	if apiDBErr != nil {
		t.Skipf("test database unavailable: %v", apiDBErr)
	}

	session := apiDB.Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, model := range []interface{}{
		&models.Task{}, &models.Application{}, &models.RefreshToken{},
		&models.Internship{}, &models.User{},
	} {
		require.NoError(t, session.Delete(model).Error)
	}

	authService := services.NewAuthService(apiDB, cfg)
	catalogService := services.NewCatalogService(apiDB)
	enrollmentService := services.NewEnrollmentService(apiDB)
	taskService := services.NewTaskService(apiDB)
	adminService := services.NewAdminService(apiDB)

	app := fiber.New()
	routes.Setup(app, cfg, apiDB,
		handlers.NewAuthHandler(authService),
		handlers.NewUserHandler(authService),
		handlers.NewInternshipHandler(catalogService),
		handlers.NewApplicationHandler(enrollmentService, taskService),
		handlers.NewAdminHandler(adminService, enrollmentService),
		handlers.NewHealthHandler(),
	)
	return app, apiDB
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func registerStudent(t *testing.T, app *fiber.App, username string) dto.AuthResponse {
	t.Helper()
	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
		FullName: "Test Student",
		College:  "KL University",
		Branch:   "B.Tech CSE",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var auth dto.AuthResponse
	decodeBody(t, resp, &auth)
	return auth
}

func TestAuthFlow(t *testing.T) {
	app, _ := newTestApp(t)

	// Reserved usernames never register.
	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Username: "admin",
		Email:    "someone@example.com",
		Password: "password123",
		College:  "KL University",
		Branch:   "CSE",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	auth := registerStudent(t, app, "student1")
	assert.NotEmpty(t, auth.AccessToken)
	assert.Equal(t, models.RoleStudent, auth.User.Role)

	// Second registration with the same username conflicts.
	resp = doJSON(t, app, fiber.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Username: "student1",
		Email:    "other@example.com",
		Password: "password123",
		College:  "KL University",
		Branch:   "CSE",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Identifier: "student1@example.com", Password: "password123",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Identifier: "student1", Password: "wrongpass",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Profile requires a token.
	resp = doJSON(t, app, fiber.MethodGet, "/api/user/profile", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, fiber.MethodGet, "/api/user/profile", auth.AccessToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var profile dto.UserResponse
	decodeBody(t, resp, &profile)
	assert.Equal(t, "student1", profile.Username)
}

func TestApplicationFlow(t *testing.T) {
	app, db := newTestApp(t)
	auth := registerStudent(t, app, "student1")

	internship := &models.Internship{ID: uuid.New(), Title: "Frontend Developer Intern", Company: "TechCorp Solutions"}
	require.NoError(t, db.Create(internship).Error)

	// The catalog is public.
	resp := doJSON(t, app, fiber.MethodGet, "/api/internships", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var listings []models.Internship
	decodeBody(t, resp, &listings)
	require.Len(t, listings, 1)

	// Applying needs a token.
	resp = doJSON(t, app, fiber.MethodPost, "/api/applications/", "", dto.ApplyRequest{InternshipID: internship.ID})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, fiber.MethodPost, "/api/applications/", auth.AccessToken, dto.ApplyRequest{InternshipID: internship.ID})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var application models.Application
	decodeBody(t, resp, &application)
	assert.Equal(t, models.StatusPending, application.Status)
	assert.Equal(t, 0, application.Progress)

	// Duplicate application conflicts.
	resp = doJSON(t, app, fiber.MethodPost, "/api/applications/", auth.AccessToken, dto.ApplyRequest{InternshipID: internship.ID})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, fiber.MethodGet, "/api/applications/check/"+internship.ID.String(), auth.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var check dto.HasAppliedResponse
	decodeBody(t, resp, &check)
	assert.True(t, check.Applied)

	// Task checklist drives the progress field.
	resp = doJSON(t, app, fiber.MethodPost, "/api/applications/"+application.ID.String()+"/tasks", auth.AccessToken, dto.AddTaskRequest{Title: "Submit design doc"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	decodeBody(t, resp, &application)
	require.Len(t, application.Tasks, 1)
	assert.Equal(t, 0, application.Progress)

	taskID := application.Tasks[0].ID
	resp = doJSON(t, app, fiber.MethodPatch, "/api/applications/"+application.ID.String()+"/tasks/"+taskID.String(), auth.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &application)
	assert.Equal(t, 100, application.Progress)
	assert.Equal(t, models.TaskDone, application.Tasks[0].Status)

	// Students cannot reach the admin console.
	resp = doJSON(t, app, fiber.MethodGet, "/api/admin/stats", auth.AccessToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, fiber.MethodDelete, "/api/applications/internship/"+internship.ID.String(), auth.AccessToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var count int64
	db.Model(&models.Application{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAdminFlow(t *testing.T) {
	app, db := newTestApp(t)
	auth := registerStudent(t, app, "student1")

	require.NoError(t, db.Model(&models.User{}).
		Where("id = ?", auth.User.ID).
		Update("role", models.RoleAdmin).Error)

	// Role checks read the database, so the pre-promotion token still works.
	resp := doJSON(t, app, fiber.MethodGet, "/api/admin/stats", auth.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stats dto.StatsResponse
	decodeBody(t, resp, &stats)
	assert.Equal(t, int64(1), stats.TotalUsers)

	resp = doJSON(t, app, fiber.MethodPost, "/api/admin/internships", auth.AccessToken, dto.CreateInternshipRequest{
		Title: "Backend Developer Intern", Company: "CloudTech Systems",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	var count int64
	db.Model(&models.Internship{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
