package qrlink

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// ExtractLink scans the embedded images of the given PDF page (0-based) for a
// QR code and returns the URL it encodes. An empty string means no readable
// code was found, which is a normal outcome for forged or plain certificates.
func ExtractLink(path string, page int) string {
	tmpDir, err := os.MkdirTemp("", "qr_images_")
	if err != nil {
		log.Printf("Failed to create temp dir for QR extraction: %v", err)
		return ""
	}
	defer os.RemoveAll(tmpDir)

	// pdfcpu page numbers are 1-based
	pages := []string{strconv.Itoa(page + 1)}
	if err := api.ExtractImagesFile(path, tmpDir, pages, nil); err != nil {
		log.Printf("Failed to extract images from %s: %v", path, err)
		return ""
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		log.Printf("Failed to read extracted images: %v", err)
		return ""
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if link := decodeQR(filepath.Join(tmpDir, entry.Name())); link != "" {
			return link
		}
	}

	return ""
}

// decodeQR tries to decode a single image file as a QR code
func decodeQR(imagePath string) string {
	f, err := os.Open(imagePath)
	if err != nil {
		return ""
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return ""
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return ""
	}

	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return ""
	}

	return result.GetText()
}
