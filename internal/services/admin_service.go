package services

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/suhaniparashar/internhub-backend/internal/dto"
	"github.com/suhaniparashar/internhub-backend/internal/models"
	"gorm.io/gorm"
)

// StudentProgress is the mentor-review view: one student joined with all
// their applications, each carrying its task list.
type StudentProgress struct {
	User         models.User          `json:"user"`
	Applications []models.Application `json:"applications"`
}

// AdminService aggregates reads across users and applications and carries
// the destructive moderation operations.
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

func (s *AdminService) Stats() (*dto.StatsResponse, error) {
	var stats dto.StatsResponse

	if err := s.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Internship{}).Count(&stats.TotalInternships).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Application{}).Count(&stats.TotalApplications).Error; err != nil {
		return nil, err
	}
	// Distinct users with at least one application.
	if err := s.db.Model(&models.Application{}).
		Distinct("user_id").
		Count(&stats.ActiveUsers).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

func (s *AdminService) ListUsers() ([]models.User, error) {
	var users []models.User
	err := s.db.Order("created_at ASC").Find(&users).Error
	return users, err
}

// StudentProgress joins one user with their applications and task lists.
func (s *AdminService) StudentProgress(userID uuid.UUID) (*StudentProgress, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	var apps []models.Application
	err := s.db.Where("user_id = ?", userID).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("tasks.created_at ASC, tasks.id ASC")
		}).
		Preload("Internship").
		Order("applied_at ASC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}

	return &StudentProgress{User: user, Applications: apps}, nil
}

// DeleteUser removes one user and everything they own.
func (s *AdminService) DeleteUser(userID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return ErrUserNotFound
		}

		if err := tx.Where("application_id IN (?)",
			tx.Model(&models.Application{}).Select("id").Where("user_id = ?", userID),
		).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}

// ClearAllUsers erases every user and application record, admin accounts
// included. Irreversible; confirmation is the caller's responsibility.
func (s *AdminService) ClearAllUsers() error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.User{}).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}

	slog.Info("all users and applications cleared")
	return nil
}
