package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User holds credentials and profile data for students and admins.
// The role is fixed at creation; the student profile fields are only
// meaningful for role=student and stay empty for admins.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username string    `gorm:"not null;size:100;uniqueIndex" json:"username"`
	Email    string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	FullName string    `gorm:"size:255" json:"full_name"`
	Role     string    `gorm:"size:20;default:'student'" json:"role"`

	// Student profile
	Phone    string `gorm:"size:30" json:"phone,omitempty"`
	College  string `gorm:"size:255" json:"college,omitempty"`
	Branch   string `gorm:"size:255" json:"branch,omitempty"`
	RollID   string `gorm:"size:50" json:"roll_id,omitempty"`
	Year     string `gorm:"size:30" json:"year,omitempty"`
	Semester string `gorm:"size:30" json:"semester,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
