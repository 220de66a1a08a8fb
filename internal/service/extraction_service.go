package service

import (
	"context"
	"errors"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/eduresult/eduresult-go-api/internal/dto"
	"github.com/eduresult/eduresult-go-api/internal/models"
	"github.com/eduresult/eduresult-go-api/internal/result"
	"github.com/eduresult/eduresult-go-api/pkg/ai"
)

var (
	// ErrUnreadableImage is surfaced when OCR cannot make sense of the scan.
	ErrUnreadableImage = errors.New("could not read the image clearly, please retry with a clearer photo")
	// ErrUnsupportedImage indicates the upload is not an accepted image type.
	ErrUnsupportedImage = errors.New("uploaded file is not a supported image")
	// ErrImageTooLarge indicates the upload exceeds the configured limit.
	ErrImageTooLarge = errors.New("image exceeds maximum allowed size")
	// ErrAdvisorUnavailable indicates no AI advisor is configured.
	ErrAdvisorUnavailable = errors.New("ocr advisor is not configured")
)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

// ExtractionService turns scanned paper result cards into prefilled form data.
type ExtractionService interface {
	Extract(ctx context.Context, image []byte) (dto.ExtractionResponse, error)
}

type extractionService struct {
	advisor   ai.Advisor
	maxBytes  int64
	aiTimeout time.Duration
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewExtractionService constructs the OCR orchestration service.
func NewExtractionService(advisor ai.Advisor, maxSizeMB int, aiTimeout time.Duration, logger zerolog.Logger) ExtractionService {
	if maxSizeMB <= 0 {
		maxSizeMB = 5
	}
	if aiTimeout <= 0 {
		aiTimeout = 30 * time.Second
	}
	return &extractionService{
		advisor:   advisor,
		maxBytes:  int64(maxSizeMB) * 1024 * 1024,
		aiTimeout: aiTimeout,
		logger:    logger.With().Str("component", "extraction_service").Logger(),
		tracer:    otel.Tracer("github.com/eduresult/eduresult-go-api/internal/service/extraction"),
	}
}

func (s *extractionService) Extract(ctx context.Context, image []byte) (dto.ExtractionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "extraction.extract", trace.WithAttributes(
		attribute.Int("image.bytes", len(image)),
	))
	defer span.End()

	if s.advisor == nil {
		return dto.ExtractionResponse{}, ErrAdvisorUnavailable
	}

	if int64(len(image)) > s.maxBytes {
		return dto.ExtractionResponse{}, ErrImageTooLarge
	}

	mime := mimetype.Detect(image)
	span.SetAttributes(attribute.String("image.mime", mime.String()))
	if !isAllowedImage(mime.String()) {
		return dto.ExtractionResponse{}, ErrUnsupportedImage
	}

	aiCtx, cancel := context.WithTimeout(ctx, s.aiTimeout)
	defer cancel()

	extraction, err := s.advisor.ExtractReportCard(aiCtx, image, mime.String())
	if err != nil {
		s.logger.Warn().Err(err).Msg("report card extraction failed")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return dto.ExtractionResponse{}, ErrUnreadableImage
	}

	return toExtractionResponse(extraction), nil
}

func isAllowedImage(mime string) bool {
	for _, allowed := range allowedImageTypes {
		if mime == allowed {
			return true
		}
	}
	return false
}

// toExtractionResponse applies the per-field defaulting contract: absent
// strings stay empty, absent subject lists fall back to the blank template.
func toExtractionResponse(extraction ai.Extraction) dto.ExtractionResponse {
	subjects := make([]models.SubjectMark, 0, len(extraction.Subjects))
	for _, subject := range extraction.Subjects {
		max := subject.MaxMarks
		if max <= 0 {
			max = result.DefaultMaxMarks
		}
		subjects = append(subjects, models.SubjectMark{
			SubjectName: subject.SubjectName,
			Theory:      subject.Theory,
			Practical:   subject.Practical,
			MaxMarks:    max,
		})
	}

	if len(subjects) == 0 {
		subjects = models.DefaultSubjects()
	}

	return dto.ExtractionResponse{
		Name:      extraction.Name,
		RollNo:    extraction.RollNo,
		ClassName: extraction.ClassName,
		Section:   extraction.Section,
		Subjects:  subjects,
	}
}
