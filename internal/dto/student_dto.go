package dto

import "github.com/eduresult/eduresult-go-api/internal/models"

// SubjectMarkRequest is one row of the marks table on the entry form.
type SubjectMarkRequest struct {
	SubjectName string  `json:"subjectName" validate:"required"`
	Theory      float64 `json:"theory" validate:"gte=0"`
	Practical   float64 `json:"practical" validate:"gte=0"`
	MaxMarks    float64 `json:"maxMarks" validate:"gte=0"`
}

// StudentCreateRequest is the result-submission payload. The identity fields
// are required at this boundary; the calculator itself never validates.
type StudentCreateRequest struct {
	Name      string               `json:"name" validate:"required"`
	RollNo    string               `json:"rollNo" validate:"required"`
	ClassName string               `json:"className" validate:"required"`
	Section   string               `json:"section" validate:"required"`
	Marks     []SubjectMarkRequest `json:"marks" validate:"dive"`
}

// ToMarks converts the request rows into domain subject marks.
func (r StudentCreateRequest) ToMarks() []models.SubjectMark {
	marks := make([]models.SubjectMark, 0, len(r.Marks))
	for _, m := range r.Marks {
		marks = append(marks, models.SubjectMark{
			SubjectName: m.SubjectName,
			Theory:      m.Theory,
			Practical:   m.Practical,
			MaxMarks:    m.MaxMarks,
		})
	}
	return marks
}

// StudentListResponse wraps the stored collection, newest first.
type StudentListResponse struct {
	Students []models.Student `json:"students"`
	Count    int              `json:"count"`
}

// PublicResultResponse is the payload behind the public roll-number lookup:
// the full record plus the institution profile so a client can render the
// report card.
type PublicResultResponse struct {
	Student     models.Student     `json:"student"`
	Institution models.Institution `json:"institution"`
}

// ExtractionResponse carries the best-effort fields read from a scanned card.
type ExtractionResponse struct {
	Name      string               `json:"name"`
	RollNo    string               `json:"rollNo"`
	ClassName string               `json:"className"`
	Section   string               `json:"section"`
	Subjects  []models.SubjectMark `json:"subjects"`
}
