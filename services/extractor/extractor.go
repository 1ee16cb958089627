package extractor

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractedFields holds the values read from the fixed certificate layout.
// Assignment and exam marks are extracted but not part of the comparison.
type ExtractedFields struct {
	CourseName      string `json:"course_name"`
	StudentName     string `json:"student_name"`
	AssignmentMarks string `json:"assignment_marks"`
	ExamMarks       string `json:"exam_marks"`
	TotalMarks      string `json:"total_marks"`
	RollNumber      string `json:"roll_number"`
}

// The certificate template renders exactly 12 text lines on the first page.
// Any other count means the PDF was not produced by the template or has been
// tampered with.
const expectedLineCount = 12

// Text runs whose baselines are within this many points belong to the same line
const lineTolerance = 2.0

// ExtractFirstPageText returns the text of the first page of the PDF, one line
// per rendered row, top to bottom
func ExtractFirstPageText(path string) (text string, err error) {
	// The pdf parser panics on malformed objects and content streams. Forged
	// uploads are ordinary input here, so a panic becomes a read error.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if r.NumPage() < 1 {
		return "", fmt.Errorf("pdf has no pages")
	}

	page := r.Page(1)
	if page.V.IsNull() {
		return "", fmt.Errorf("pdf first page has no content")
	}

	lines := linesFromTexts(page.Content().Text)
	return strings.Join(lines, "\n"), nil
}

// linesFromTexts rebuilds text lines from positioned runs. PDF coordinates grow
// upward, so rows are ordered by descending Y and runs within a row by X.
func linesFromTexts(texts []pdf.Text) []string {
	if len(texts) == 0 {
		return nil
	}

	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var lines []string
	var current strings.Builder
	lastY := sorted[0].Y

	for _, t := range sorted {
		if lastY-t.Y > lineTolerance {
			lines = append(lines, current.String())
			current.Reset()
			lastY = t.Y
		}
		current.WriteString(t.S)
	}
	lines = append(lines, current.String())

	return lines
}

// ExtractCertificateFields reads the certificate fields from the fixed first
// page layout. It returns nil when the document cannot be read or its line
// count does not match the template, which callers treat as an invalid or
// tampered certificate.
func ExtractCertificateFields(path string) *ExtractedFields {
	text, err := ExtractFirstPageText(path)
	if err != nil {
		log.Printf("Failed to read certificate PDF %s: %v", path, err)
		return nil
	}

	return fieldsFromText(text)
}

func fieldsFromText(text string) *ExtractedFields {
	lines := strings.Split(text, "\n")

	if len(lines) != expectedLineCount {
		log.Printf("Certificate PDF is invalid / has been tampered with (%d lines)", len(lines))
		return nil
	}

	return &ExtractedFields{
		CourseName:      lines[5],
		StudentName:     lines[6],
		AssignmentMarks: lines[7],
		ExamMarks:       lines[8],
		TotalMarks:      lines[9],
		RollNumber:      lines[11],
	}
}
