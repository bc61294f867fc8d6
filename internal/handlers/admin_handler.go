package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/suhaniparashar/internhub-backend/internal/dto"
	"github.com/suhaniparashar/internhub-backend/internal/services"
)

// AdminHandler serves the moderation console: user management, application
// review and the dashboard aggregates. Every route behind it sits behind
// JWTProtected + AdminRequired.
type AdminHandler struct {
	admin       *services.AdminService
	enrollments *services.EnrollmentService
}

func NewAdminHandler(admin *services.AdminService, enrollments *services.EnrollmentService) *AdminHandler {
	return &AdminHandler{admin: admin, enrollments: enrollments}
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.admin.Stats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute stats",
		})
	}
	return c.JSON(stats)
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.admin.ListUsers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load users",
		})
	}
	return c.JSON(users)
}

func (h *AdminHandler) StudentProgress(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user id",
		})
	}

	progress, err := h.admin.StudentProgress(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load student progress",
		})
	}
	return c.JSON(progress)
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user id",
		})
	}

	if err := h.admin.DeleteUser(userID); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete user",
		})
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}

// ClearAllUsers wipes every user and application. The confirmation prompt
// belongs to the caller; this endpoint just executes.
func (h *AdminHandler) ClearAllUsers(c *fiber.Ctx) error {
	if err := h.admin.ClearAllUsers(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to clear users",
		})
	}
	return c.JSON(fiber.Map{"message": "All users cleared"})
}

func (h *AdminHandler) ListApplications(c *fiber.Ctx) error {
	apps, err := h.enrollments.ListAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load applications",
		})
	}
	return c.JSON(apps)
}

func (h *AdminHandler) SetStatus(c *fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid application id",
		})
	}

	var req dto.SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	app, err := h.enrollments.SetStatus(applicationID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrApplicationNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to update status",
			})
		}
	}
	return c.JSON(app)
}

func (h *AdminHandler) SetFeedback(c *fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid application id",
		})
	}

	var req dto.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	app, err := h.enrollments.SetFeedback(applicationID, req.Feedback, req.Evaluation)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidEvaluation):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrApplicationNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to save feedback",
			})
		}
	}
	return c.JSON(app)
}

func (h *AdminHandler) DeleteApplication(c *fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid application id",
		})
	}

	if err := h.enrollments.Delete(applicationID); err != nil {
		if errors.Is(err, services.ErrApplicationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete application",
		})
	}
	return c.JSON(fiber.Map{"message": "Application deleted"})
}
