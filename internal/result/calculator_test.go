package result

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eduresult/eduresult-go-api/internal/models"
)

func TestCalculateTotalsAndStatus(t *testing.T) {
	marks := []models.SubjectMark{
		{SubjectName: "Math", Theory: 40, Practical: 20, MaxMarks: 100},
		{SubjectName: "Physics", Theory: 35, Practical: 15, MaxMarks: 100},
	}

	summary := Calculate(marks)
	require.Equal(t, 110.0, summary.TotalObtained)
	require.Equal(t, 200.0, summary.TotalMax)
	require.InDelta(t, 55.0, summary.Percentage, 1e-9)
	require.Equal(t, "D", summary.Grade)
	require.Equal(t, models.StatusPass, summary.Status)
}

func TestCalculateFailingResult(t *testing.T) {
	summary := Calculate([]models.SubjectMark{
		{SubjectName: "Eng", Theory: 10, Practical: 5, MaxMarks: 100},
	})

	require.InDelta(t, 15.0, summary.Percentage, 1e-9)
	require.Equal(t, "F", summary.Grade)
	require.Equal(t, models.StatusFail, summary.Status)
}

func TestCalculateEmptyMarks(t *testing.T) {
	summary := Calculate(nil)

	require.Equal(t, 0.0, summary.TotalObtained)
	require.Equal(t, 0.0, summary.TotalMax)
	require.Equal(t, 0.0, summary.Percentage)
	require.Equal(t, "F", summary.Grade)
	require.Equal(t, models.StatusFail, summary.Status)
}

func TestCalculateDefaultsMissingMaxMarks(t *testing.T) {
	summary := Calculate([]models.SubjectMark{
		{SubjectName: "History", Theory: 50},
		{SubjectName: "Art", Theory: 30, Practical: 10, MaxMarks: -5},
	})

	require.Equal(t, 200.0, summary.TotalMax)
	require.InDelta(t, 45.0, summary.Percentage, 1e-9)
}

func TestCalculateGradeBoundaries(t *testing.T) {
	cases := []struct {
		name       string
		theory     float64
		wantGrade  string
		wantStatus string
	}{
		{"exactly ninety", 90, "A+", models.StatusPass},
		{"just below ninety", 89.999, "A", models.StatusPass},
		{"exactly eighty", 80, "A", models.StatusPass},
		{"exactly seventy", 70, "B", models.StatusPass},
		{"exactly sixty", 60, "C", models.StatusPass},
		{"exactly fifty", 50, "D", models.StatusPass},
		{"exactly pass mark", 33, "E", models.StatusPass},
		{"just below pass mark", 32.999, "F", models.StatusFail},
		{"zero", 0, "F", models.StatusFail},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			summary := Calculate([]models.SubjectMark{{Theory: tc.theory, MaxMarks: 100}})
			require.Equal(t, tc.wantGrade, summary.Grade)
			require.Equal(t, tc.wantStatus, summary.Status)
		})
	}
}

func TestCalculatePercentageWithinBounds(t *testing.T) {
	summary := Calculate([]models.SubjectMark{
		{Theory: 60, Practical: 40, MaxMarks: 100},
	})
	require.GreaterOrEqual(t, summary.Percentage, 0.0)
	require.LessOrEqual(t, summary.Percentage, 100.0)
	require.Equal(t, "A+", summary.Grade)
}
