package result

import "github.com/eduresult/eduresult-go-api/internal/models"

// PassThreshold is the percentage at which a result counts as a pass. The
// lowest passing grade band starts at the same value; both checks must use
// this constant.
const PassThreshold = 33.0

// DefaultMaxMarks substitutes a missing or non-positive per-subject maximum.
const DefaultMaxMarks = 100.0

// Summary is the aggregate outcome derived from a list of subject marks.
type Summary struct {
	TotalObtained float64 `json:"totalObtained"`
	TotalMax      float64 `json:"totalMax"`
	Percentage    float64 `json:"percentage"`
	Grade         string  `json:"grade"`
	Status        string  `json:"status"`
}

// Calculate derives totals, percentage, letter grade and pass/fail status from
// raw subject marks. It is pure: no validation, no side effects, and an empty
// mark list simply yields a zeroed failing summary.
func Calculate(marks []models.SubjectMark) Summary {
	var totalObtained, totalMax float64
	for _, m := range marks {
		totalObtained += m.Theory + m.Practical
		max := m.MaxMarks
		if max <= 0 {
			max = DefaultMaxMarks
		}
		totalMax += max
	}

	// Guard the empty/zero-max case so percentage is exactly 0, never NaN.
	percentage := 0.0
	if totalMax > 0 {
		percentage = totalObtained / totalMax * 100
	}

	status := models.StatusFail
	if percentage >= PassThreshold {
		status = models.StatusPass
	}

	return Summary{
		TotalObtained: totalObtained,
		TotalMax:      totalMax,
		Percentage:    percentage,
		Grade:         gradeFor(percentage),
		Status:        status,
	}
}

func gradeFor(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A+"
	case percentage >= 80:
		return "A"
	case percentage >= 70:
		return "B"
	case percentage >= 60:
		return "C"
	case percentage >= 50:
		return "D"
	case percentage >= PassThreshold:
		return "E"
	default:
		return "F"
	}
}
