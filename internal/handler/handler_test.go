package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/eduresult/eduresult-go-api/internal/config"
	"github.com/eduresult/eduresult-go-api/internal/handler"
	"github.com/eduresult/eduresult-go-api/internal/repository"
	"github.com/eduresult/eduresult-go-api/internal/router"
	"github.com/eduresult/eduresult-go-api/internal/service"
	"github.com/eduresult/eduresult-go-api/internal/utils"
	"github.com/eduresult/eduresult-go-api/pkg/ai"
)

type stubAdvisor struct {
	remarks    string
	remarksErr error
	extraction ai.Extraction
	extractErr error
}

func (s *stubAdvisor) GenerateRemarks(context.Context, ai.StudentReport) (string, error) {
	return s.remarks, s.remarksErr
}

func (s *stubAdvisor) ExtractReportCard(context.Context, []byte, string) (ai.Extraction, error) {
	return s.extraction, s.extractErr
}

func setupApp(t *testing.T, advisor ai.Advisor) (*fiber.App, repository.RecordStore) {
	t.Helper()

	mini, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mini.Close)

	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	logger := zerolog.New(io.Discard)
	validate := validator.New(validator.WithRequiredStructEnabled())

	recordStore := repository.NewRecordStore(client, logger)
	userStore := repository.NewUserStore(client, logger)

	studentService := service.NewStudentService(recordStore, advisor, validate, time.Second, logger)
	extractionService := service.NewExtractionService(advisor, 5, time.Second, logger)
	exportService := service.NewExportService(logger)
	institutionService := service.NewInstitutionService(recordStore, nil, validate, logger)
	dashboardService := service.NewDashboardService(recordStore, client, time.Minute, logger)
	authService := service.NewAuthService(userStore, validate, "test-secret", time.Hour, logger)

	app := fiber.New()
	router.Register(app, config.Config{AppName: "Test", JWTSecret: "test-secret", PublicLookupRateLimit: 1000}, router.Dependencies{
		AuthHandler:        handler.NewAuthHandler(authService, logger),
		PublicHandler:      handler.NewPublicHandler(studentService, institutionService, logger),
		StudentHandler:     handler.NewStudentHandler(studentService, exportService, extractionService, logger),
		InstitutionHandler: handler.NewInstitutionHandler(institutionService, logger),
		DashboardHandler:   handler.NewDashboardHandler(dashboardService, logger),
		JWTMiddleware: func(c *fiber.Ctx) error {
			c.Locals("username", "test-admin")
			return c.Next()
		},
	})

	return app, recordStore
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) (int, utils.APIResponse) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope utils.APIResponse
	require.NoError(t, json.Unmarshal(raw, &envelope))

	return resp.StatusCode, envelope
}
