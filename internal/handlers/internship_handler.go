package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/suhaniparashar/internhub-backend/internal/dto"
	"github.com/suhaniparashar/internhub-backend/internal/services"
)

type InternshipHandler struct {
	catalog *services.CatalogService
}

func NewInternshipHandler(catalog *services.CatalogService) *InternshipHandler {
	return &InternshipHandler{catalog: catalog}
}

func (h *InternshipHandler) List(c *fiber.Ctx) error {
	internships, err := h.catalog.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load internships",
		})
	}
	return c.JSON(internships)
}

func (h *InternshipHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid internship id",
		})
	}

	internship, err := h.catalog.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Internship not found",
		})
	}
	return c.JSON(internship)
}

// Create is admin-only; route wiring enforces that.
func (h *InternshipHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateInternshipRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	internship, err := h.catalog.Create(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInternship) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create internship",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(internship)
}
