package models

import (
	"time"

	"github.com/google/uuid"
)

// Application statuses. Any status may transition to any other: admins can
// revert an accepted application back to pending, there is no terminal state.
const (
	StatusPending     = "Pending"
	StatusUnderReview = "Under Review"
	StatusAccepted    = "Accepted"
	StatusRejected    = "Rejected"
)

// Mentor evaluation labels, distinct from the application status.
const (
	EvaluationPending     = "Pending"
	EvaluationCompleted   = "Completed"
	EvaluationNeedsImprov = "Needs Improvement"
)

// Task statuses.
const (
	TaskPending = "Pending"
	TaskDone    = "Done"
)

// Application is one student's application to one internship, with its task
// checklist and review state. The (user_id, internship_id) unique index is
// what ultimately guards against duplicate applies.
type Application struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_applications_user_internship" json:"user_id"`
	InternshipID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_applications_user_internship" json:"internship_id"`
	Status        string     `gorm:"size:20;not null;default:'Pending'" json:"status"`
	AppliedAt     time.Time  `gorm:"not null" json:"applied_at"`
	AdminFeedback string     `gorm:"type:text" json:"admin_feedback"`
	Evaluation    string     `gorm:"size:30;not null;default:'Pending'" json:"evaluation"`
	FeedbackDate  *time.Time `json:"feedback_date,omitempty"`

	// Progress is derived from the task list and written only by the task
	// service; it is never accepted from a request body.
	Progress int `gorm:"not null;default:0" json:"progress"`

	Tasks      []Task     `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE" json:"tasks"`
	User       User       `gorm:"foreignKey:UserID" json:"-"`
	Internship Internship `gorm:"foreignKey:InternshipID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Task is a checklist item owned by exactly one application.
type Task struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null;index" json:"application_id"`
	Title         string    `gorm:"not null;size:255" json:"title"`
	Notes         string    `gorm:"type:text" json:"notes"`
	Status        string    `gorm:"size:10;not null;default:'Pending'" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// ValidStatus reports whether s is a known application status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}

// ValidEvaluation reports whether e is a known evaluation label.
func ValidEvaluation(e string) bool {
	switch e {
	case EvaluationPending, EvaluationCompleted, EvaluationNeedsImprov:
		return true
	default:
		return false
	}
}

// ComputeProgress returns the completion percentage for a task list:
// round(100 * done / total), or 0 when the list is empty.
func ComputeProgress(tasks []Task) int {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Status == TaskDone {
			done++
		}
	}
	return int(float64(done)/float64(len(tasks))*100 + 0.5)
}
