package contract_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/eduresult/eduresult-go-api/internal/dto"
	"github.com/eduresult/eduresult-go-api/internal/handler"
	"github.com/eduresult/eduresult-go-api/internal/models"
)

type stubStudentService struct {
	student models.Student
}

func (s stubStudentService) Create(context.Context, dto.StudentCreateRequest) (models.Student, error) {
	return s.student, nil
}

func (s stubStudentService) List(context.Context) []models.Student {
	return []models.Student{s.student}
}

func (s stubStudentService) Delete(context.Context, string) error {
	return nil
}

func (s stubStudentService) FindByRoll(context.Context, string) (models.Student, error) {
	return s.student, nil
}

type stubInstitutionService struct {
	info models.Institution
}

func (s stubInstitutionService) Get(context.Context) models.Institution {
	return s.info
}

func (s stubInstitutionService) Update(context.Context, dto.InstitutionUpdateRequest) (models.Institution, error) {
	return s.info, nil
}

func (s stubInstitutionService) UploadLogo(context.Context, string, io.Reader) (string, error) {
	return s.info.LogoURL, nil
}

func TestPublicResultContract(t *testing.T) {
	schemaPath, err := filepath.Abs(filepath.Join("..", "contracts", "public_result.schema.json"))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile("file://" + schemaPath)
	require.NoError(t, err)

	student := models.Student{
		ID:        "5f3c9e2a",
		Name:      "Asha Verma",
		RollNo:    "2024010",
		ClassName: "12th",
		Section:   "B",
		Marks: []models.SubjectMark{
			{SubjectName: "Mathematics", Theory: 72, Practical: 18, MaxMarks: 100},
			{SubjectName: "Physics", Theory: 64, Practical: 22, MaxMarks: 100},
		},
		TotalObtained: 176,
		TotalMax:      200,
		Percentage:    88,
		Grade:         "A",
		Status:        models.StatusPass,
		AIRemarks:     "Consistent performance across both subjects.",
		CreatedAt:     time.Now().UTC(),
	}

	publicHandler := handler.NewPublicHandler(
		stubStudentService{student: student},
		stubInstitutionService{info: models.DefaultInstitution()},
		zerolog.Nop(),
	)

	app := fiber.New()
	publicHandler.Register(app.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/results/2024010", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var payload interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.NoError(t, schema.Validate(payload))
}
