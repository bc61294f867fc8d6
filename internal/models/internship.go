package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Internship is a catalog listing. Read-mostly: rows come from seeding or
// admin creation and are never mutated by students.
type Internship struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title        string         `gorm:"not null;size:255" json:"title"`
	Company      string         `gorm:"not null;size:255" json:"company"`
	Location     string         `gorm:"size:255" json:"location"`
	Duration     string         `gorm:"size:100" json:"duration"`
	Stipend      string         `gorm:"size:100" json:"stipend"`
	Description  string         `gorm:"type:text" json:"description"`
	Requirements datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"requirements"`
	Skills       datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"skills"`
	Type         string         `gorm:"size:50" json:"type"`
	Deadline     *time.Time     `json:"deadline,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
