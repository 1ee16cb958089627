package utils

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// SaveCertificateFile stores an uploaded certificate under the request's id so
// a re-upload for the same request overwrites the previous file
func SaveCertificateFile(file *multipart.FileHeader, destDir, requestID string) (string, error) {
	// Open the uploaded file
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// Create destination directory if it doesn't exist
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	filePath := filepath.Join(destDir, requestID+".pdf")

	// Create destination file
	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	// Copy the file content
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return filePath, nil
}

func GetFileURL(filePath string) string {
	if filePath == "" {
		return ""
	}
	return "/certificates/" + filepath.Base(filePath)
}
