package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/eduresult/eduresult-go-api/internal/dto"
	"github.com/eduresult/eduresult-go-api/internal/models"
	"github.com/eduresult/eduresult-go-api/internal/repository"
	"github.com/eduresult/eduresult-go-api/internal/result"
	"github.com/eduresult/eduresult-go-api/pkg/ai"
)

var (
	// ErrStudentNotFound indicates no record matches the given id.
	ErrStudentNotFound = errors.New("student not found")
	// ErrRollNotFound indicates the public lookup matched no record.
	ErrRollNotFound = errors.New("invalid roll number")
)

// RemarksFallback replaces AI commentary whenever the advisor call fails.
// A failed remark must never fail the submission itself.
const RemarksFallback = "Great effort this semester. Focus on consistent practice for even better results next time."

// StudentService owns the result-submission flow and the stored collection.
type StudentService interface {
	Create(ctx context.Context, req dto.StudentCreateRequest) (models.Student, error)
	List(ctx context.Context) []models.Student
	Delete(ctx context.Context, id string) error
	FindByRoll(ctx context.Context, rollNo string) (models.Student, error)
}

type studentService struct {
	store     repository.RecordStore
	advisor   ai.Advisor
	validate  *validator.Validate
	sanitizer *bluemonday.Policy
	aiTimeout time.Duration
	logger    zerolog.Logger
	now       func() time.Time
	newID     func() string
}

// NewStudentService constructs the student service. The advisor may be nil,
// in which case every record carries the fallback remark.
func NewStudentService(store repository.RecordStore, advisor ai.Advisor, validate *validator.Validate, aiTimeout time.Duration, logger zerolog.Logger) StudentService {
	if aiTimeout <= 0 {
		aiTimeout = 30 * time.Second
	}
	return &studentService{
		store:     store,
		advisor:   advisor,
		validate:  validate,
		sanitizer: bluemonday.StrictPolicy(),
		aiTimeout: aiTimeout,
		logger:    logger.With().Str("component", "student_service").Logger(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Create is the only path that produces a Student: aggregates always come out
// of the calculator, the id is assigned exactly once, and the new record is
// prepended so the collection stays newest-first.
func (s *studentService) Create(ctx context.Context, req dto.StudentCreateRequest) (models.Student, error) {
	if err := s.validate.Struct(req); err != nil {
		return models.Student{}, err
	}

	marks := req.ToMarks()
	summary := result.Calculate(marks)

	student := models.Student{
		ID:            s.newID(),
		Name:          req.Name,
		RollNo:        req.RollNo,
		ClassName:     req.ClassName,
		Section:       req.Section,
		Marks:         marks,
		TotalObtained: summary.TotalObtained,
		TotalMax:      summary.TotalMax,
		Percentage:    summary.Percentage,
		Grade:         summary.Grade,
		Status:        summary.Status,
		CreatedAt:     s.now().UTC(),
	}

	student.AIRemarks = s.remarksFor(ctx, student)

	students := append([]models.Student{student}, s.store.Load(ctx)...)
	if err := s.store.Save(ctx, students); err != nil {
		// The record stays usable in the response even when persistence
		// fails; the loss is logged, not surfaced.
		s.logger.Error().Err(err).Str("student_id", student.ID).Msg("student record not persisted")
	}

	return student, nil
}

func (s *studentService) remarksFor(ctx context.Context, student models.Student) string {
	if s.advisor == nil {
		return RemarksFallback
	}

	subjects := make([]ai.SubjectScore, 0, len(student.Marks))
	for _, m := range student.Marks {
		subjects = append(subjects, ai.SubjectScore{
			SubjectName: m.SubjectName,
			Theory:      m.Theory,
			Practical:   m.Practical,
			MaxMarks:    m.MaxMarks,
		})
	}

	aiCtx, cancel := context.WithTimeout(ctx, s.aiTimeout)
	defer cancel()

	remarks, err := s.advisor.GenerateRemarks(aiCtx, ai.StudentReport{
		Name:       student.Name,
		Grade:      student.Grade,
		Percentage: student.Percentage,
		Status:     student.Status,
		Subjects:   subjects,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("student", student.Name).Msg("remarks generation failed, using fallback")
		return RemarksFallback
	}

	return strings.TrimSpace(s.sanitizer.Sanitize(remarks))
}

func (s *studentService) List(ctx context.Context) []models.Student {
	return s.store.Load(ctx)
}

func (s *studentService) Delete(ctx context.Context, id string) error {
	students := s.store.Load(ctx)
	remaining := make([]models.Student, 0, len(students))
	for _, student := range students {
		if student.ID != id {
			remaining = append(remaining, student)
		}
	}

	if len(remaining) == len(students) {
		return ErrStudentNotFound
	}

	if err := s.store.Save(ctx, remaining); err != nil {
		s.logger.Error().Err(err).Str("student_id", id).Msg("student deletion not persisted")
	}

	return nil
}

// FindByRoll returns the first record whose roll number matches the trimmed
// query. Duplicate roll numbers are not prevented, so first match wins.
func (s *studentService) FindByRoll(ctx context.Context, rollNo string) (models.Student, error) {
	query := strings.TrimSpace(rollNo)
	for _, student := range s.store.Load(ctx) {
		if strings.TrimSpace(student.RollNo) == query {
			return student, nil
		}
	}

	return models.Student{}, ErrRollNotFound
}
