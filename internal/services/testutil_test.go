package services

import (
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/suhaniparashar/internhub-backend/internal/config"
	"github.com/suhaniparashar/internhub-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	testDBOnce sync.Once
	testDB     *gorm.DB
	testDBErr  error
)

func testConfig() *config.Config {
	return &config.Config{
		DBHost:           getTestEnv("TEST_DB_HOST", "localhost"),
		DBPort:           getTestEnv("TEST_DB_PORT", "5432"),
		DBUser:           getTestEnv("TEST_DB_USER", "postgres"),
		DBPassword:       getTestEnv("TEST_DB_PASSWORD", "postgres"),
		DBName:           getTestEnv("TEST_DB_NAME", "internhub_test"),
		DBSSLMode:        "disable",
		JWTSecret:        "testsecret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
	}
}

func getTestEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// openTestDB connects to the test database once per test binary and skips
// the calling test when no database is reachable.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	testDBOnce.Do(func() {
		cfg := testConfig()
		testDB, testDBErr = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})
		if testDBErr != nil {
			return
		}
		testDBErr = testDB.AutoMigrate(
			&models.User{},
			&models.RefreshToken{},
			&models.Internship{},
			&models.Application{},
			&models.Task{},
		)
	})

	if testDBErr != nil {
		t.Skipf("test database unavailable: %v", testDBErr)
	}

	cleanTables(t, testDB)
	return testDB
}

func cleanTables(t *testing.T, db *gorm.DB) {
	t.Helper()
	session := db.Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, model := range []interface{}{
		&models.Task{}, &models.Application{}, &models.RefreshToken{},
		&models.Internship{}, &models.User{},
	} {
		if err := session.Delete(model).Error; err != nil {
			t.Fatalf("failed to clean table: %v", err)
		}
	}
}

func createTestUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
		Password: string(hash),
		Role:     role,
		College:  "Test University",
		Branch:   "CSE",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func createTestInternship(t *testing.T, db *gorm.DB, title string) *models.Internship {
	t.Helper()
	internship := &models.Internship{
		ID:      uuid.New(),
		Title:   title,
		Company: "TechCorp Solutions",
	}
	if err := db.Create(internship).Error; err != nil {
		t.Fatalf("failed to create internship: %v", err)
	}
	return internship
}
