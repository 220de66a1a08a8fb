package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/eduresult/eduresult-go-api/internal/models"
	"github.com/eduresult/eduresult-go-api/pkg/ai"
)

// Minimal PNG magic so mimetype detection sees image/png.
func pngBytes(size int) []byte {
	header := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	if size <= len(header) {
		return header
	}
	payload := make([]byte, size)
	copy(payload, header)
	return payload
}

func TestExtractMapsAdvisorPayload(t *testing.T) {
	advisor := &stubAdvisor{extraction: ai.Extraction{
		Name:      "Asha Verma",
		RollNo:    "2024010",
		ClassName: "12th",
		Section:   "B",
		Subjects: []ai.SubjectScore{
			{SubjectName: "Biology", Theory: 41, Practical: 9, MaxMarks: 100},
			{SubjectName: "English", Theory: 55},
		},
	}}

	svc := NewExtractionService(advisor, 5, time.Second, zerolog.Nop())

	extraction, err := svc.Extract(context.Background(), pngBytes(64))
	require.NoError(t, err)
	require.Equal(t, "Asha Verma", extraction.Name)
	require.Equal(t, "2024010", extraction.RollNo)
	require.Len(t, extraction.Subjects, 2)
	require.Equal(t, 100.0, extraction.Subjects[1].MaxMarks)
}

func TestExtractDefaultsEmptySubjectsToTemplate(t *testing.T) {
	advisor := &stubAdvisor{extraction: ai.Extraction{Name: "Asha Verma"}}
	svc := NewExtractionService(advisor, 5, time.Second, zerolog.Nop())

	extraction, err := svc.Extract(context.Background(), pngBytes(64))
	require.NoError(t, err)
	require.Equal(t, models.DefaultSubjects(), extraction.Subjects)
}

func TestExtractSurfacesUnreadableImage(t *testing.T) {
	advisor := &stubAdvisor{extractErr: errors.New("model refused")}
	svc := NewExtractionService(advisor, 5, time.Second, zerolog.Nop())

	_, err := svc.Extract(context.Background(), pngBytes(64))
	require.ErrorIs(t, err, ErrUnreadableImage)
}

func TestExtractRejectsNonImagePayload(t *testing.T) {
	svc := NewExtractionService(&stubAdvisor{}, 5, time.Second, zerolog.Nop())

	_, err := svc.Extract(context.Background(), []byte("just some text"))
	require.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestExtractRejectsOversizedPayload(t *testing.T) {
	svc := NewExtractionService(&stubAdvisor{}, 1, time.Second, zerolog.Nop())

	_, err := svc.Extract(context.Background(), pngBytes(2*1024*1024))
	require.ErrorIs(t, err, ErrImageTooLarge)
}

func TestExtractWithoutAdvisor(t *testing.T) {
	svc := NewExtractionService(nil, 5, time.Second, zerolog.Nop())

	_, err := svc.Extract(context.Background(), pngBytes(64))
	require.ErrorIs(t, err, ErrAdvisorUnavailable)
}
