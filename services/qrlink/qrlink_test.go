package qrlink

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const encodedLink = "https://institution.example/verify/7b2a4c1e"

func writeQRImage(t *testing.T, content string) string {
	t.Helper()

	matrix, err := qrcode.NewQRCodeWriter().Encode(content, gozxing.BarcodeFormat_QR_CODE, 256, 256, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "qr.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, matrix))

	return path
}

func writeBlankImage(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for x := 0; x < 64; x++ {
		for y := 0; y < 64; y++ {
			img.Set(x, y, color.White)
		}
	}

	path := filepath.Join(t.TempDir(), "blank.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))

	return path
}

// pdfWithImage builds a one-page PDF carrying the image, the same shape a
// certificate template produces for its QR code
func pdfWithImage(t *testing.T, imagePath string) string {
	t.Helper()

	pdfPath := filepath.Join(t.TempDir(), "certificate.pdf")
	require.NoError(t, api.ImportImagesFile([]string{imagePath}, pdfPath, nil, nil))

	return pdfPath
}

func TestExtractLinkFromEmbeddedQR(t *testing.T) {
	pdfPath := pdfWithImage(t, writeQRImage(t, encodedLink))

	assert.Equal(t, encodedLink, ExtractLink(pdfPath, 0))
}

func TestExtractLinkNoQRCode(t *testing.T) {
	pdfPath := pdfWithImage(t, writeBlankImage(t))

	assert.Empty(t, ExtractLink(pdfPath, 0), "a page without a QR code resolves to no link")
}

func TestExtractLinkUnreadableFile(t *testing.T) {
	assert.Empty(t, ExtractLink("testdata/does-not-exist.pdf", 0))
}

func TestDecodeQR(t *testing.T) {
	assert.Equal(t, encodedLink, decodeQR(writeQRImage(t, encodedLink)))
	assert.Empty(t, decodeQR(writeBlankImage(t)))
}
