package dto

// DashboardResponse aggregates result statistics for the admin dashboard.
type DashboardResponse struct {
	TotalStudents     int            `json:"total_students"`
	Passed            int            `json:"passed"`
	Failed            int            `json:"failed"`
	AveragePercentage float64        `json:"average_percentage"`
	GradeDistribution map[string]int `json:"grade_distribution"`
}
