package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/suhaniparashar/internhub-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrAlreadyApplied      = errors.New("already applied to this internship")
	ErrInternshipNotFound  = errors.New("internship not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrInvalidStatus       = errors.New("invalid application status")
	ErrInvalidEvaluation   = errors.New("invalid evaluation")
)

// EnrollmentService owns the application lifecycle: apply, withdraw, status,
// feedback, deletion and listing. Task mutations live in TaskService.
type EnrollmentService struct {
	db *gorm.DB
}

func NewEnrollmentService(db *gorm.DB) *EnrollmentService {
	return &EnrollmentService{db: db}
}

// Apply creates a pending application for the (user, internship) pair.
// The duplicate check and the insert run in one transaction; the composite
// unique index on (user_id, internship_id) closes the remaining race between
// two concurrent applies.
func (s *EnrollmentService) Apply(userID, internshipID uuid.UUID) (*models.Application, error) {
	var app models.Application

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var internship models.Internship
		if err := tx.First(&internship, "id = ?", internshipID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInternshipNotFound
			}
			return err
		}

		var existing models.Application
		err := tx.Where("user_id = ? AND internship_id = ?", userID, internshipID).First(&existing).Error
		if err == nil {
			return ErrAlreadyApplied
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		app = models.Application{
			ID:           uuid.New(),
			UserID:       userID,
			InternshipID: internshipID,
			Status:       models.StatusPending,
			AppliedAt:    time.Now(),
			Evaluation:   models.EvaluationPending,
			Progress:     0,
		}
		if err := tx.Create(&app).Error; err != nil {
			// Unique index violation: a concurrent apply won the race.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyApplied
			}
			return fmt.Errorf("failed to create application: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	app.Tasks = []models.Task{}
	return &app, nil
}

// Withdraw removes the application for the pair. Withdrawing an application
// that does not exist is a no-op, not an error.
func (s *EnrollmentService) Withdraw(userID, internshipID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var app models.Application
		err := tx.Where("user_id = ? AND internship_id = ?", userID, internshipID).First(&app).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := tx.Where("application_id = ?", app.ID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(&app).Error
	})
}

// HasApplied reports whether the user already holds an application for the
// internship.
func (s *EnrollmentService) HasApplied(userID, internshipID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.Application{}).
		Where("user_id = ? AND internship_id = ?", userID, internshipID).
		Count(&count).Error
	return count > 0, err
}

// SetStatus overwrites the status and nothing else. Any known status may
// follow any other: there is no terminal state in this lifecycle.
func (s *EnrollmentService) SetStatus(applicationID uuid.UUID, status string) (*models.Application, error) {
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	var app models.Application
	if err := s.db.First(&app, "id = ?", applicationID).Error; err != nil {
		return nil, ErrApplicationNotFound
	}

	if err := s.db.Model(&app).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	app.Status = status
	return &app, nil
}

// SetFeedback stores mentor feedback with its evaluation label and stamps
// the feedback date.
func (s *EnrollmentService) SetFeedback(applicationID uuid.UUID, feedback, evaluation string) (*models.Application, error) {
	if !models.ValidEvaluation(evaluation) {
		return nil, ErrInvalidEvaluation
	}

	var app models.Application
	if err := s.db.First(&app, "id = ?", applicationID).Error; err != nil {
		return nil, ErrApplicationNotFound
	}

	now := time.Now()
	updates := map[string]interface{}{
		"admin_feedback": feedback,
		"evaluation":     evaluation,
		"feedback_date":  now,
	}
	if err := s.db.Model(&app).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}
	app.AdminFeedback = feedback
	app.Evaluation = evaluation
	app.FeedbackDate = &now
	return &app, nil
}

// Delete permanently removes an application and its tasks.
func (s *EnrollmentService) Delete(applicationID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var app models.Application
		if err := tx.First(&app, "id = ?", applicationID).Error; err != nil {
			return ErrApplicationNotFound
		}
		if err := tx.Where("application_id = ?", app.ID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(&app).Error
	})
}

// ListForUser returns the user's applications in insertion order, with tasks
// and the internship preloaded.
func (s *EnrollmentService) ListForUser(userID uuid.UUID) ([]models.Application, error) {
	var apps []models.Application
	err := s.db.Where("user_id = ?", userID).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("tasks.created_at ASC, tasks.id ASC")
		}).
		Preload("Internship").
		Order("applied_at ASC").
		Find(&apps).Error
	return apps, err
}

// ListAll returns every application across all users.
func (s *EnrollmentService) ListAll() ([]models.Application, error) {
	var apps []models.Application
	err := s.db.
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("tasks.created_at ASC, tasks.id ASC")
		}).
		Preload("Internship").
		Order("applied_at ASC").
		Find(&apps).Error
	return apps, err
}

// Get returns one application with tasks preloaded.
func (s *EnrollmentService) Get(applicationID uuid.UUID) (*models.Application, error) {
	var app models.Application
	err := s.db.
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("tasks.created_at ASC, tasks.id ASC")
		}).
		Preload("Internship").
		First(&app, "id = ?", applicationID).Error
	if err != nil {
		return nil, ErrApplicationNotFound
	}
	return &app, nil
}
