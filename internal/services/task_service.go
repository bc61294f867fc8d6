package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/suhaniparashar/internhub-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrEmptyTaskTitle = errors.New("task title is required")
	ErrTaskNotFound   = errors.New("task not found")
)

// TaskService mutates an application's checklist. Every mutation recomputes
// the application's progress from the surviving task rows and persists it in
// the same transaction, so progress can never drift from the actual
// completion state.
type TaskService struct {
	db *gorm.DB
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

// AddTask appends a pending task. The title must be non-blank. The userID
// scopes the lookup so students can only touch their own applications.
func (s *TaskService) AddTask(userID, applicationID uuid.UUID, title, notes string) (*models.Application, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTaskTitle
	}

	return s.mutate(userID, applicationID, func(tx *gorm.DB, app *models.Application) error {
		task := models.Task{
			ID:            uuid.New(),
			ApplicationID: app.ID,
			Title:         title,
			Notes:         strings.TrimSpace(notes),
			Status:        models.TaskPending,
		}
		if err := tx.Create(&task).Error; err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		return nil
	})
}

// ToggleTask flips a task between Pending and Done.
func (s *TaskService) ToggleTask(userID, applicationID, taskID uuid.UUID) (*models.Application, error) {
	return s.mutate(userID, applicationID, func(tx *gorm.DB, app *models.Application) error {
		var task models.Task
		if err := tx.Where("id = ? AND application_id = ?", taskID, app.ID).First(&task).Error; err != nil {
			return ErrTaskNotFound
		}

		next := models.TaskDone
		if task.Status == models.TaskDone {
			next = models.TaskPending
		}
		return tx.Model(&task).Update("status", next).Error
	})
}

// DeleteTask removes a task; the order of the remaining tasks is unchanged.
// A missing task returns ErrTaskNotFound and leaves progress untouched.
func (s *TaskService) DeleteTask(userID, applicationID, taskID uuid.UUID) (*models.Application, error) {
	return s.mutate(userID, applicationID, func(tx *gorm.DB, app *models.Application) error {
		result := tx.Where("id = ? AND application_id = ?", taskID, app.ID).Delete(&models.Task{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTaskNotFound
		}
		return nil
	})
}

// mutate loads the owner's application, applies fn, then recomputes and
// persists progress as the final step of the transaction.
func (s *TaskService) mutate(userID, applicationID uuid.UUID, fn func(tx *gorm.DB, app *models.Application) error) (*models.Application, error) {
	var out *models.Application

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var app models.Application
		if err := tx.Where("id = ? AND user_id = ?", applicationID, userID).First(&app).Error; err != nil {
			return ErrApplicationNotFound
		}

		if err := fn(tx, &app); err != nil {
			return err
		}

		var tasks []models.Task
		if err := tx.Where("application_id = ?", app.ID).
			Order("created_at ASC, id ASC").
			Find(&tasks).Error; err != nil {
			return err
		}

		progress := models.ComputeProgress(tasks)
		if err := tx.Model(&app).Update("progress", progress).Error; err != nil {
			return fmt.Errorf("failed to update progress: %w", err)
		}

		app.Tasks = tasks
		app.Progress = progress
		out = &app
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
