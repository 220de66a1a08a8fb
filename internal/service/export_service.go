package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/eduresult/eduresult-go-api/internal/models"
)

// csvHeader is the fixed export column order.
var csvHeader = []string{"Roll No", "Name", "Class", "Section", "Total Marks", "Max Marks", "Percentage", "Grade", "Status"}

// ExportService serialises the student collection into a downloadable CSV.
type ExportService interface {
	ExportCSV(students []models.Student) (filename string, data []byte, err error)
}

type exportService struct {
	logger zerolog.Logger
	now    func() time.Time
}

// NewExportService constructs the CSV exporter.
func NewExportService(logger zerolog.Logger) ExportService {
	return &exportService{
		logger: logger.With().Str("component", "export_service").Logger(),
		now:    time.Now,
	}
}

// ExportCSV renders one row per record in collection order, with the
// percentage fixed to two decimals. An empty collection produces no file.
// Fields are quoted per RFC 4180, so embedded commas survive round trips.
func (s *exportService) ExportCSV(students []models.Student) (string, []byte, error) {
	if len(students) == 0 {
		return "", nil, nil
	}

	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	if err := writer.Write(csvHeader); err != nil {
		return "", nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, student := range students {
		row := []string{
			student.RollNo,
			student.Name,
			student.ClassName,
			student.Section,
			fmt.Sprintf("%g", student.TotalObtained),
			fmt.Sprintf("%g", student.TotalMax),
			fmt.Sprintf("%.2f", student.Percentage),
			student.Grade,
			student.Status,
		}
		if err := writer.Write(row); err != nil {
			return "", nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", nil, fmt.Errorf("flush csv: %w", err)
	}

	filename := fmt.Sprintf("Student_Records_%s.csv", s.now().Format("2006-01-02"))
	s.logger.Info().Int("records", len(students)).Str("filename", filename).Msg("csv export generated")

	return filename, buf.Bytes(), nil
}
