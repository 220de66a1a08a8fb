package service

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/eduresult/eduresult-go-api/internal/dto"
	"github.com/eduresult/eduresult-go-api/internal/models"
	"github.com/eduresult/eduresult-go-api/internal/repository"
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

func newStudentService(t *testing.T, advisor ai.Advisor) (StudentService, repository.RecordStore) {
	t.Helper()

	mini, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mini.Close)

	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	store := repository.NewRecordStore(client, zerolog.Nop())
	validate := validator.New(validator.WithRequiredStructEnabled())

	return NewStudentService(store, advisor, validate, time.Second, zerolog.Nop()), store
}

func createRequest(roll string) dto.StudentCreateRequest {
	return dto.StudentCreateRequest{
		Name:      "Rahul Sharma",
		RollNo:    roll,
		ClassName: "10th",
		Section:   "A",
		Marks: []dto.SubjectMarkRequest{
			{SubjectName: "Math", Theory: 40, Practical: 20, MaxMarks: 100},
			{SubjectName: "Physics", Theory: 35, Practical: 15, MaxMarks: 100},
		},
	}
}

func TestStudentCreateComputesAggregates(t *testing.T) {
	svc, _ := newStudentService(t, &stubAdvisor{remarks: "Strong in Math, keep practising Physics."})

	student, err := svc.Create(context.Background(), createRequest("2024001"))
	require.NoError(t, err)

	require.NotEmpty(t, student.ID)
	require.False(t, student.CreatedAt.IsZero())
	require.Equal(t, 110.0, student.TotalObtained)
	require.Equal(t, 200.0, student.TotalMax)
	require.InDelta(t, 55.0, student.Percentage, 1e-9)
	require.Equal(t, "D", student.Grade)
	require.Equal(t, models.StatusPass, student.Status)
	require.Equal(t, "Strong in Math, keep practising Physics.", student.AIRemarks)
}

func TestStudentCreatePrependsNewestFirst(t *testing.T) {
	svc, store := newStudentService(t, &stubAdvisor{remarks: "ok"})
	ctx := context.Background()

	first, err := svc.Create(ctx, createRequest("r1"))
	require.NoError(t, err)
	second, err := svc.Create(ctx, createRequest("r2"))
	require.NoError(t, err)

	students := store.Load(ctx)
	require.Len(t, students, 2)
	require.Equal(t, second.ID, students[0].ID)
	require.Equal(t, first.ID, students[1].ID)
}

func TestStudentCreateFallsBackWhenRemarksFail(t *testing.T) {
	svc, _ := newStudentService(t, &stubAdvisor{remarksErr: errors.New("quota exceeded")})

	student, err := svc.Create(context.Background(), createRequest("2024002"))
	require.NoError(t, err)
	require.Equal(t, RemarksFallback, student.AIRemarks)
}

func TestStudentCreateWithoutAdvisorUsesFallback(t *testing.T) {
	svc, _ := newStudentService(t, nil)

	student, err := svc.Create(context.Background(), createRequest("2024003"))
	require.NoError(t, err)
	require.Equal(t, RemarksFallback, student.AIRemarks)
}

func TestStudentCreateSanitizesRemarks(t *testing.T) {
	svc, _ := newStudentService(t, &stubAdvisor{remarks: `<script>alert(1)</script>Well done!`})

	student, err := svc.Create(context.Background(), createRequest("2024004"))
	require.NoError(t, err)
	require.Equal(t, "Well done!", student.AIRemarks)
}

func TestStudentCreateRejectsMissingFields(t *testing.T) {
	svc, _ := newStudentService(t, nil)

	req := createRequest("2024005")
	req.Section = ""
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)

	var validationErrors validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)
}

func TestStudentDeletePreservesOrder(t *testing.T) {
	svc, store := newStudentService(t, nil)
	ctx := context.Background()

	var ids []string
	for _, roll := range []string{"r1", "r2", "r3"} {
		student, err := svc.Create(ctx, createRequest(roll))
		require.NoError(t, err)
		ids = append(ids, student.ID)
	}

	// Collection is newest-first: ids[2], ids[1], ids[0]. Remove the middle.
	require.NoError(t, svc.Delete(ctx, ids[1]))

	students := store.Load(ctx)
	require.Len(t, students, 2)
	require.Equal(t, ids[2], students[0].ID)
	require.Equal(t, ids[0], students[1].ID)

	require.ErrorIs(t, svc.Delete(ctx, "missing-id"), ErrStudentNotFound)
}

func TestFindByRollFirstMatchWins(t *testing.T) {
	svc, _ := newStudentService(t, nil)
	ctx := context.Background()

	older, err := svc.Create(ctx, createRequest("dup"))
	require.NoError(t, err)
	newer, err := svc.Create(ctx, createRequest("dup"))
	require.NoError(t, err)

	found, err := svc.FindByRoll(ctx, " dup ")
	require.NoError(t, err)
	// Newest-first order means the most recent duplicate is the first match.
	require.Equal(t, newer.ID, found.ID)
	require.NotEqual(t, older.ID, found.ID)

	_, err = svc.FindByRoll(ctx, "unknown")
	require.ErrorIs(t, err, ErrRollNotFound)
}
