package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/suhaniparashar/internhub-backend/internal/dto"
	"github.com/suhaniparashar/internhub-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrInvalidInternship = errors.New("title and company are required")

// CatalogService serves the internship listings. Students only read;
// creation is an admin operation.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) List() ([]models.Internship, error) {
	var internships []models.Internship
	err := s.db.Order("created_at ASC").Find(&internships).Error
	return internships, err
}

func (s *CatalogService) Get(id uuid.UUID) (*models.Internship, error) {
	var internship models.Internship
	if err := s.db.First(&internship, "id = ?", id).Error; err != nil {
		return nil, ErrInternshipNotFound
	}
	return &internship, nil
}

func (s *CatalogService) Create(req *dto.CreateInternshipRequest) (*models.Internship, error) {
	title := strings.TrimSpace(req.Title)
	company := strings.TrimSpace(req.Company)
	if title == "" || company == "" {
		return nil, ErrInvalidInternship
	}

	requirements, err := json.Marshal(req.Requirements)
	if err != nil {
		return nil, fmt.Errorf("failed to encode requirements: %w", err)
	}
	skills, err := json.Marshal(req.Skills)
	if err != nil {
		return nil, fmt.Errorf("failed to encode skills: %w", err)
	}

	internship := models.Internship{
		ID:           uuid.New(),
		Title:        title,
		Company:      company,
		Location:     strings.TrimSpace(req.Location),
		Duration:     strings.TrimSpace(req.Duration),
		Stipend:      strings.TrimSpace(req.Stipend),
		Description:  req.Description,
		Requirements: datatypes.JSON(requirements),
		Skills:       datatypes.JSON(skills),
		Type:         strings.TrimSpace(req.Type),
	}

	if req.Deadline != "" {
		deadline, err := time.Parse("2006-01-02", req.Deadline)
		if err != nil {
			return nil, fmt.Errorf("invalid deadline: %w", err)
		}
		internship.Deadline = &deadline
	}

	if err := s.db.Create(&internship).Error; err != nil {
		return nil, fmt.Errorf("failed to create internship: %w", err)
	}
	return &internship, nil
}
