package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/suhaniparashar/internhub-backend/internal/config"
	"github.com/suhaniparashar/internhub-backend/internal/handlers"
	"github.com/suhaniparashar/internhub-backend/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	internshipHandler *handlers.InternshipHandler,
	applicationHandler *handlers.ApplicationHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Catalog is public: listings are browsable without an account.
	api.Get("/internships", internshipHandler.List)
	api.Get("/internships/:id", internshipHandler.Get)

	// Auth — stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Profile
	api.Get("/user/profile", middleware.JWTProtected(cfg), userHandler.GetProfile)
	api.Put("/user/profile", middleware.JWTProtected(cfg), userHandler.UpdateProfile)
	api.Put("/user/password", middleware.JWTProtected(cfg), userHandler.ChangePassword)

	// Applications and tasks (student-owned)
	apps := api.Group("/applications", middleware.JWTProtected(cfg))
	apps.Post("/", applicationHandler.Apply)
	apps.Get("/", applicationHandler.ListMine)
	apps.Get("/check/:internshipId", applicationHandler.HasApplied)
	apps.Delete("/internship/:internshipId", applicationHandler.Withdraw)
	apps.Post("/:id/tasks", applicationHandler.AddTask)
	apps.Patch("/:id/tasks/:taskId", applicationHandler.ToggleTask)
	apps.Delete("/:id/tasks/:taskId", applicationHandler.DeleteTask)

	// Admin console
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db))
	admin.Get("/stats", adminHandler.Stats)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Get("/students/:id/progress", adminHandler.StudentProgress)
	admin.Delete("/users/:id", adminHandler.DeleteUser)
	admin.Delete("/users", adminHandler.ClearAllUsers)
	admin.Get("/applications", adminHandler.ListApplications)
	admin.Patch("/applications/:id/status", adminHandler.SetStatus)
	admin.Put("/applications/:id/feedback", adminHandler.SetFeedback)
	admin.Delete("/applications/:id", adminHandler.DeleteApplication)
	admin.Post("/internships", internshipHandler.Create)
}
