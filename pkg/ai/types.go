package ai

import "context"

// SubjectScore mirrors a single subject row on a result card.
type SubjectScore struct {
	SubjectName string  `json:"subjectName"`
	Theory      float64 `json:"theory"`
	Practical   float64 `json:"practical"`
	MaxMarks    float64 `json:"maxMarks"`
}

// StudentReport carries the computed result fields the remarks prompt needs.
type StudentReport struct {
	Name       string
	Grade      string
	Percentage float64
	Status     string
	Subjects   []SubjectScore
}

// Extraction is the structured best-effort read of a scanned result card.
// Absent fields default to their zero values; subject maximums default to 100.
type Extraction struct {
	Name      string         `json:"name"`
	RollNo    string         `json:"rollNo"`
	ClassName string         `json:"className"`
	Section   string         `json:"section"`
	Subjects  []SubjectScore `json:"subjects"`
}

// Advisor describes a generative model that can write result-card remarks and
// OCR legacy paper cards. Both operations only enrich a record; the record is
// valid and computable without them.
type Advisor interface {
	GenerateRemarks(ctx context.Context, report StudentReport) (string, error)
	ExtractReportCard(ctx context.Context, image []byte, mime string) (Extraction, error)
}
