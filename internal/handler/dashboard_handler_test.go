package handler_test

import (
	"encoding/json"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/eduresult/eduresult-go-api/internal/dto"
)

func TestDashboardEndpoint(t *testing.T) {
	app, _ := setupApp(t, nil)

	status, _ := postJSON(t, app, "/api/v2/students", studentPayload("r1"))
	require.Equal(t, fiber.StatusOK, status)

	status, envelope := getJSON(t, app, "/api/v2/dashboard")
	require.Equal(t, fiber.StatusOK, status)
	require.True(t, envelope.Success)

	var dashboard dto.DashboardResponse
	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &dashboard))
	require.Equal(t, 1, dashboard.TotalStudents)
	require.Equal(t, 1, dashboard.Passed)
	require.Equal(t, 1, dashboard.GradeDistribution["D"])
}
