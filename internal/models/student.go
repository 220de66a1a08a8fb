package models

import "time"

// Pass/fail outcomes for a computed result.
const (
	StatusPass = "Pass"
	StatusFail = "Fail"
)

// SubjectMark holds the raw theory/practical scores for a single subject.
// Scores left absent in a request decode to zero; a zero or negative MaxMarks
// is treated as 100 by the calculator.
type SubjectMark struct {
	SubjectName string  `json:"subjectName"`
	Theory      float64 `json:"theory"`
	Practical   float64 `json:"practical"`
	MaxMarks    float64 `json:"maxMarks"`
}

// Student is a persisted result record. The aggregate fields (TotalObtained
// through Status) are always derived from Marks by the result calculator and
// must never be set independently of it.
type Student struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	RollNo        string        `json:"rollNo"`
	ClassName     string        `json:"className"`
	Section       string        `json:"section"`
	Marks         []SubjectMark `json:"marks"`
	TotalObtained float64       `json:"totalObtained"`
	TotalMax      float64       `json:"totalMax"`
	Percentage    float64       `json:"percentage"`
	Grade         string        `json:"grade"`
	Status        string        `json:"status"`
	AIRemarks     string        `json:"aiRemarks,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// DefaultSubjects is the blank marks template offered to the entry form and
// used as a fallback when OCR extraction yields no subjects.
func DefaultSubjects() []SubjectMark {
	names := []string{"Mathematics", "Physics", "Chemistry", "English", "Computer Science"}
	marks := make([]SubjectMark, 0, len(names))
	for _, name := range names {
		marks = append(marks, SubjectMark{SubjectName: name, MaxMarks: 100})
	}
	return marks
}
