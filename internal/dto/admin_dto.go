package dto

type StatsResponse struct {
	TotalUsers        int64 `json:"total_users"`
	TotalInternships  int64 `json:"total_internships"`
	TotalApplications int64 `json:"total_applications"`
	ActiveUsers       int64 `json:"active_users"`
}
