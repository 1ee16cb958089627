package downloader

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"certify/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	config.AppConfig = &config.Config{DownloadTimeout: 2}
	os.Exit(m.Run())
}

func pdfBody() []byte {
	return []byte("%PDF-1.4\n1 0 obj\nendobj\ntrailer\n%%EOF")
}

func TestDownloadVerificationPDFSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(pdfBody())
	}))
	defer server.Close()

	destPath := filepath.Join(t.TempDir(), "verification.pdf")

	result, err := DownloadVerificationPDF(server.URL, destPath)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, server.URL, result.URL)

	written, err := os.ReadFile(destPath)
	require.NoError(t, err)
	assert.Equal(t, pdfBody(), written)
}

func TestDownloadVerificationPDFAcceptsPDFMagicWithoutContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write(pdfBody())
	}))
	defer server.Close()

	result, err := DownloadVerificationPDF(server.URL, filepath.Join(t.TempDir(), "v.pdf"))

	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestDownloadVerificationPDFHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	destPath := filepath.Join(t.TempDir(), "verification.pdf")

	result, err := DownloadVerificationPDF(server.URL, destPath)

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "404")
	assert.NoFileExists(t, destPath)
}

func TestDownloadVerificationPDFNotAPDF(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>not a certificate</html>"))
	}))
	defer server.Close()

	destPath := filepath.Join(t.TempDir(), "verification.pdf")

	result, err := DownloadVerificationPDF(server.URL, destPath)

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "verification link did not return a PDF", result.Message)
	assert.NoFileExists(t, destPath)
}

func TestDownloadVerificationPDFUnreachableHost(t *testing.T) {
	result, err := DownloadVerificationPDF("http://127.0.0.1:1/verify.pdf", filepath.Join(t.TempDir(), "v.pdf"))

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "could not reach the verification link", result.Message)
}

func TestDownloadVerificationPDFTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(4 * time.Second)
	}))
	defer server.Close()

	result, err := DownloadVerificationPDF(server.URL, filepath.Join(t.TempDir(), "v.pdf"))

	require.NoError(t, err)
	assert.False(t, result.Success, "a timeout is an ordinary retrieval failure")
}

func TestDownloadVerificationPDFBadDestination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(pdfBody())
	}))
	defer server.Close()

	_, err := DownloadVerificationPDF(server.URL, filepath.Join(t.TempDir(), "missing", "nested", "v.pdf"))

	assert.Error(t, err, "an unwritable destination is a programmer error")
}
