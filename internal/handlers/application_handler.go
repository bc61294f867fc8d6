package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/suhaniparashar/internhub-backend/internal/dto"
	"github.com/suhaniparashar/internhub-backend/internal/middleware"
	"github.com/suhaniparashar/internhub-backend/internal/services"
)

// ApplicationHandler serves the student-facing enrollment and task routes.
type ApplicationHandler struct {
	enrollments *services.EnrollmentService
	tasks       *services.TaskService
}

func NewApplicationHandler(enrollments *services.EnrollmentService, tasks *services.TaskService) *ApplicationHandler {
	return &ApplicationHandler{enrollments: enrollments, tasks: tasks}
}

func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.ApplyRequest
	if err := c.BodyParser(&req); err != nil || req.InternshipID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	app, err := h.enrollments.Apply(userID, req.InternshipID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInternshipNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrAlreadyApplied):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to apply",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(app)
}

func (h *ApplicationHandler) ListMine(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	apps, err := h.enrollments.ListForUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load applications",
		})
	}
	return c.JSON(apps)
}

func (h *ApplicationHandler) HasApplied(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	internshipID, err := uuid.Parse(c.Params("internshipId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid internship id",
		})
	}

	applied, err := h.enrollments.HasApplied(userID, internshipID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to check application",
		})
	}
	return c.JSON(dto.HasAppliedResponse{Applied: applied})
}

// Withdraw is idempotent: removing a non-existent application succeeds.
func (h *ApplicationHandler) Withdraw(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	internshipID, err := uuid.Parse(c.Params("internshipId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid internship id",
		})
	}

	if err := h.enrollments.Withdraw(userID, internshipID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to withdraw",
		})
	}
	return c.JSON(fiber.Map{"message": "Application withdrawn"})
}

func (h *ApplicationHandler) AddTask(c *fiber.Ctx) error {
	userID, applicationID, ok := h.taskScope(c)
	if !ok {
		return nil
	}

	var req dto.AddTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	app, err := h.tasks.AddTask(userID, applicationID, req.Title, req.Notes)
	if err != nil {
		return h.taskError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(app)
}

func (h *ApplicationHandler) ToggleTask(c *fiber.Ctx) error {
	userID, applicationID, ok := h.taskScope(c)
	if !ok {
		return nil
	}

	taskID, err := uuid.Parse(c.Params("taskId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid task id",
		})
	}

	app, err := h.tasks.ToggleTask(userID, applicationID, taskID)
	if err != nil {
		return h.taskError(c, err)
	}
	return c.JSON(app)
}

func (h *ApplicationHandler) DeleteTask(c *fiber.Ctx) error {
	userID, applicationID, ok := h.taskScope(c)
	if !ok {
		return nil
	}

	taskID, err := uuid.Parse(c.Params("taskId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid task id",
		})
	}

	app, err := h.tasks.DeleteTask(userID, applicationID, taskID)
	if err != nil {
		return h.taskError(c, err)
	}
	return c.JSON(app)
}

// taskScope pulls the caller and the :id path param; on failure the error
// response has already been written.
func (h *ApplicationHandler) taskScope(c *fiber.Ctx) (uuid.UUID, uuid.UUID, bool) {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		_ = c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
		return uuid.Nil, uuid.Nil, false
	}

	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid application id",
		})
		return uuid.Nil, uuid.Nil, false
	}

	return userID, applicationID, true
}

func (h *ApplicationHandler) taskError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrEmptyTaskTitle):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrApplicationNotFound), errors.Is(err, services.ErrTaskNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
}
