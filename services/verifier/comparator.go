package verifier

import (
	"strings"

	"certify/services/extractor"
)

// CompareFields checks the uploaded certificate against the official copy and
// the on-record subject/student names. Checks run in a fixed order and the
// first failure determines the remark. Assignment and exam marks are
// intentionally left out of the comparison.
func CompareFields(uploaded, official *extractor.ExtractedFields, subjectName, studentName string) (bool, string) {
	if uploaded == nil {
		return false, "Invalid PDF uploaded. Data missing."
	}
	if official == nil {
		return false, "Invalid details in the verification file"
	}

	if !namesEqual(uploaded.CourseName, official.CourseName) ||
		!namesEqual(uploaded.CourseName, subjectName) {
		return false, "Course name mismatch"
	}

	if !namesEqual(uploaded.StudentName, official.StudentName) ||
		!namesEqual(uploaded.StudentName, studentName) {
		return false, "Student name mismatch"
	}

	if strings.TrimSpace(uploaded.TotalMarks) != strings.TrimSpace(official.TotalMarks) {
		return false, "Total marks mismatch"
	}

	if strings.TrimSpace(uploaded.RollNumber) != strings.TrimSpace(official.RollNumber) {
		return false, "Roll number mismatch"
	}

	return true, "Verification successful"
}

// namesEqual compares two names ignoring case and surrounding whitespace
func namesEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
