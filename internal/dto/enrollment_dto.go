package dto

import "github.com/google/uuid"

type ApplyRequest struct {
	InternshipID uuid.UUID `json:"internship_id"`
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

type FeedbackRequest struct {
	Feedback   string `json:"feedback"`
	Evaluation string `json:"evaluation"`
}

type AddTaskRequest struct {
	Title string `json:"title"`
	Notes string `json:"notes"`
}

type HasAppliedResponse struct {
	Applied bool `json:"applied"`
}

type CreateInternshipRequest struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Duration     string   `json:"duration"`
	Stipend      string   `json:"stipend"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Skills       []string `json:"skills"`
	Type         string   `json:"type"`
	Deadline     string   `json:"deadline"` // RFC 3339 date, optional
}
