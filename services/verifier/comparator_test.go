package verifier

import (
	"testing"

	"certify/services/extractor"

	"github.com/stretchr/testify/assert"
)

func validFields() *extractor.ExtractedFields {
	return &extractor.ExtractedFields{
		CourseName:      "Algorithms",
		StudentName:     "Jane Doe",
		AssignmentMarks: "40",
		ExamMarks:       "48",
		TotalMarks:      "88",
		RollNumber:      "R101",
	}
}

func TestCompareFields(t *testing.T) {
	tests := []struct {
		name        string
		uploaded    func() *extractor.ExtractedFields
		official    func() *extractor.ExtractedFields
		subjectName string
		studentName string
		wantOK      bool
		wantRemark  string
	}{
		{
			name:        "all fields match",
			uploaded:    validFields,
			official:    validFields,
			subjectName: "Algorithms",
			studentName: "Jane Doe",
			wantOK:      true,
			wantRemark:  "Verification successful",
		},
		{
			name:        "uploaded side invalid",
			uploaded:    func() *extractor.ExtractedFields { return nil },
			official:    validFields,
			subjectName: "Algorithms",
			studentName: "Jane Doe",
			wantRemark:  "Invalid PDF uploaded. Data missing.",
		},
		{
			name:        "official side invalid",
			uploaded:    validFields,
			official:    func() *extractor.ExtractedFields { return nil },
			subjectName: "Algorithms",
			studentName: "Jane Doe",
			wantRemark:  "Invalid details in the verification file",
		},
		{
			name:     "course differs from official copy",
			uploaded: validFields,
			official: func() *extractor.ExtractedFields {
				f := validFields()
				f.CourseName = "Databases"
				return f
			},
			subjectName: "Algorithms",
			studentName: "Jane Doe",
			wantRemark:  "Course name mismatch",
		},
		{
			name:        "course differs from on-record subject",
			uploaded:    validFields,
			official:    validFields,
			subjectName: "Databases",
			studentName: "Jane Doe",
			wantRemark:  "Course name mismatch",
		},
		{
			name:     "student differs from official copy",
			uploaded: validFields,
			official: func() *extractor.ExtractedFields {
				f := validFields()
				f.StudentName = "John Doe"
				return f
			},
			subjectName: "Algorithms",
			studentName: "Jane Doe",
			wantRemark:  "Student name mismatch",
		},
		{
			name:        "student differs from on-record student",
			uploaded:    validFields,
			official:    validFields,
			subjectName: "Algorithms",
			studentName: "Janet Doe",
			wantRemark:  "Student name mismatch",
		},
		{
			name:     "total marks mismatch",
			uploaded: validFields,
			official: func() *extractor.ExtractedFields {
				f := validFields()
				f.TotalMarks = "90"
				return f
			},
			subjectName: "Algorithms",
			studentName: "Jane Doe",
			wantRemark:  "Total marks mismatch",
		},
		{
			name:     "roll number mismatch",
			uploaded: validFields,
			official: func() *extractor.ExtractedFields {
				f := validFields()
				f.RollNumber = "R102"
				return f
			},
			subjectName: "Algorithms",
			studentName: "Jane Doe",
			wantRemark:  "Roll number mismatch",
		},
		{
			name:     "first failing check wins over later ones",
			uploaded: validFields,
			official: func() *extractor.ExtractedFields {
				f := validFields()
				f.CourseName = "Databases"
				f.RollNumber = "R999"
				return f
			},
			subjectName: "Algorithms",
			studentName: "Jane Doe",
			wantRemark:  "Course name mismatch",
		},
		{
			name: "names compared case-insensitively and trimmed",
			uploaded: func() *extractor.ExtractedFields {
				f := validFields()
				f.CourseName = "  ALGORITHMS "
				f.StudentName = "jane doe"
				return f
			},
			official:    validFields,
			subjectName: "algorithms",
			studentName: " Jane Doe ",
			wantOK:      true,
			wantRemark:  "Verification successful",
		},
		{
			name: "marks comparison ignores surrounding whitespace only",
			uploaded: func() *extractor.ExtractedFields {
				f := validFields()
				f.TotalMarks = " 88 "
				return f
			},
			official:    validFields,
			subjectName: "Algorithms",
			studentName: "Jane Doe",
			wantOK:      true,
			wantRemark:  "Verification successful",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, remark := CompareFields(tt.uploaded(), tt.official(), tt.subjectName, tt.studentName)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantRemark, remark)
		})
	}
}

func TestCompareFieldsIgnoresAssignmentAndExamMarks(t *testing.T) {
	uploaded := validFields()
	uploaded.AssignmentMarks = "0"
	uploaded.ExamMarks = "0"

	ok, remark := CompareFields(uploaded, validFields(), "Algorithms", "Jane Doe")

	assert.True(t, ok)
	assert.Equal(t, "Verification successful", remark)
}
