package downloader

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"certify/config"

	"github.com/go-resty/resty/v2"
)

// Result reports the outcome of fetching the verification PDF. Ordinary
// network and HTTP failures are reported here, not as errors.
type Result struct {
	Success bool
	URL     string
	Message string
}

// DownloadVerificationPDF fetches the PDF behind the verification link into
// destPath. The returned error is reserved for programmer-class conditions
// such as an unwritable destination; everything the remote side can cause
// comes back as a failed Result.
func DownloadVerificationPDF(url, destPath string) (Result, error) {
	timeout := 30 * time.Second
	if config.AppConfig != nil {
		timeout = time.Duration(config.AppConfig.DownloadTimeout) * time.Second
	}

	client := resty.New().SetTimeout(timeout)

	resp, err := client.R().Get(url)
	if err != nil {
		log.Printf("Failed to download verification pdf from %s: %v", url, err)
		return Result{Message: "could not reach the verification link"}, nil
	}

	if resp.StatusCode() != 200 {
		return Result{Message: fmt.Sprintf("verification link returned status %d", resp.StatusCode())}, nil
	}

	body := resp.Body()
	contentType := resp.Header().Get("Content-Type")
	if !strings.Contains(contentType, "application/pdf") && !bytes.HasPrefix(body, []byte("%PDF")) {
		return Result{Message: "verification link did not return a PDF"}, nil
	}

	if err := os.WriteFile(destPath, body, 0644); err != nil {
		return Result{}, err
	}

	return Result{Success: true, URL: url, Message: "downloaded"}, nil
}
