package extractor

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func certificateText(lines ...string) string {
	return strings.Join(lines, "\n")
}

func validCertificateLines() []string {
	return []string{
		"Institute of Technology",
		"Certificate of Completion",
		"This certifies that the student",
		"has successfully completed",
		"the course",
		"Algorithms",
		"Jane Doe",
		"40",
		"48",
		"88",
		"Roll Number",
		"R101",
	}
}

func TestFieldsFromTextValidLayout(t *testing.T) {
	fields := fieldsFromText(certificateText(validCertificateLines()...))

	require.NotNil(t, fields)
	assert.Equal(t, "Algorithms", fields.CourseName)
	assert.Equal(t, "Jane Doe", fields.StudentName)
	assert.Equal(t, "40", fields.AssignmentMarks)
	assert.Equal(t, "48", fields.ExamMarks)
	assert.Equal(t, "88", fields.TotalMarks)
	assert.Equal(t, "R101", fields.RollNumber)
}

func TestFieldsFromTextWrongLineCount(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{"too few lines", validCertificateLines()[:11]},
		{"too many lines", append(validCertificateLines(), "extra footer")},
		{"empty text", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, fieldsFromText(certificateText(tt.lines...)))
		})
	}
}

func TestLinesFromTexts(t *testing.T) {
	// PDF coordinates grow upward: higher Y means closer to the top
	texts := []pdf.Text{
		{S: "Doe", X: 120, Y: 680},
		{S: "Algorithms", X: 100, Y: 700},
		{S: "Jane ", X: 100, Y: 680},
		{S: "88", X: 100, Y: 660},
	}

	lines := linesFromTexts(texts)

	require.Len(t, lines, 3)
	assert.Equal(t, "Algorithms", lines[0])
	assert.Equal(t, "Jane Doe", lines[1])
	assert.Equal(t, "88", lines[2])
}

func TestLinesFromTextsToleratesSmallBaselineDrift(t *testing.T) {
	texts := []pdf.Text{
		{S: "Jane", X: 100, Y: 680},
		{S: " Doe", X: 130, Y: 679.2}, // same visual row, slightly lower baseline
	}

	lines := linesFromTexts(texts)

	require.Len(t, lines, 1)
	assert.Equal(t, "Jane Doe", lines[0])
}

func TestLinesFromTextsEmpty(t *testing.T) {
	assert.Empty(t, linesFromTexts(nil))
}

func TestExtractCertificateFieldsUnreadableFile(t *testing.T) {
	assert.Nil(t, ExtractCertificateFields("testdata/does-not-exist.pdf"))
}

// writePDF assembles numbered objects into a PDF with a correct xref table, so
// the document opens fine and the damage only surfaces while parsing pages
func writePDF(t *testing.T, objects ...string) string {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, object := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, object)
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, offset := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xrefOffset)

	path := filepath.Join(t.TempDir(), "certificate.pdf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

// A forged upload can be structurally valid enough to open while still carrying
// corrupt objects. Those must surface as an invalid document, never a crash.
func TestExtractCertificateFieldsMalformedDocument(t *testing.T) {
	tests := []struct {
		name    string
		objects []string
	}{
		{
			"garbage page object",
			[]string{
				"<< /Type /Catalog /Pages 2 0 R >>",
				"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
				"\xbb\xbb\xbb",
			},
		},
		{
			"bad delimiter in content stream",
			[]string{
				"<< /Type /Catalog /Pages 2 0 R >>",
				"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
				"<< /Type /Page /Parent 2 0 R /Contents 4 0 R /MediaBox [0 0 612 792] >>",
				"<< /Length 8 >>\nstream\nBT ) ET\nendstream",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePDF(t, tt.objects...)

			assert.NotPanics(t, func() {
				assert.Nil(t, ExtractCertificateFields(path))
			})

			_, err := ExtractFirstPageText(path)
			assert.Error(t, err)
		})
	}
}
