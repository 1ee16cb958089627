package verifier

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"certify/models"
	"certify/services/downloader"
	"certify/services/extractor"
	"certify/services/qrlink"

	"gorm.io/datatypes"
)

// Outcome is the terminal result of a verification run
type Outcome int

const (
	OutcomeCompleted Outcome = iota
	OutcomeRejected
	OutcomeError
	OutcomeNotFound
	OutcomeForbidden
	OutcomeConflict
)

// Result carries the outcome plus the user-facing remark
type Result struct {
	Outcome Outcome
	Remark  string
}

// Verifier runs the whole verification flow for one uploaded certificate:
// persist the upload, resolve the QR link, download the official copy, compare
// the fields and move the request into its terminal status.
type Verifier struct {
	UploadedFilePath string
	RequestID        string
	StudentID        uint
	Repo             Repository

	// Collaborators, swappable in tests
	ExtractLink   func(path string, page int) string
	Download      func(url, destPath string) (downloader.Result, error)
	ExtractFields func(path string) *extractor.ExtractedFields
}

// New builds a Verifier wired to the real extractor, QR resolver and downloader
func New(uploadedFilePath, requestID string, studentID uint, repo Repository) *Verifier {
	return &Verifier{
		UploadedFilePath: uploadedFilePath,
		RequestID:        requestID,
		StudentID:        studentID,
		Repo:             repo,
		ExtractLink:      qrlink.ExtractLink,
		Download:         downloader.DownloadVerificationPDF,
		ExtractFields:    extractor.ExtractCertificateFields,
	}
}

// StartVerification drives the request through
// pending -> processing -> {completed | rejected | error}.
// NotFound and Forbidden leave the request untouched so the student can retry
// once the problem upstream is fixed.
func (v *Verifier) StartVerification() Result {
	unlock := lockRequest(v.RequestID)
	defer unlock()

	request, err := v.Repo.LoadRequest(v.RequestID, v.StudentID)
	if err != nil {
		log.Printf("Failed to load request %s: %v", v.RequestID, err)
		return Result{OutcomeError, "An internal server error occurred"}
	}
	if request == nil {
		return Result{OutcomeNotFound, "Request not found or does not belong to the current student"}
	}

	// Re-checked under the lock: a concurrent upload for the same request may
	// have passed the controller gate and finished while we waited
	if request.Status == models.StatusCompleted {
		return Result{OutcomeConflict, "Request already completed"}
	}
	if request.Status == models.StatusProcessing {
		return Result{OutcomeConflict, "Request already in processing"}
	}

	if request.DueDate != nil && time.Now().UTC().After(request.DueDate.UTC()) {
		return Result{OutcomeForbidden, "Request is past the due date"}
	}

	request.Status = models.StatusProcessing

	certificate, err := v.Repo.LoadCertificate(v.RequestID)
	if err != nil {
		log.Printf("Failed to load certificate for request %s: %v", v.RequestID, err)
		return v.markError(request, nil, "An internal server error occurred")
	}
	if certificate == nil {
		certificate = &models.Certificate{
			RequestID: v.RequestID,
			StudentID: v.StudentID,
		}
	}
	certificate.FileURL = v.UploadedFilePath
	certificate.Verified = false

	if err := v.Repo.Save(request, certificate); err != nil {
		log.Printf("Failed to persist processing state for request %s: %v", v.RequestID, err)
		return v.markError(request, certificate, "An internal server error occurred")
	}

	link := v.ExtractLink(v.UploadedFilePath, 0)
	if link == "" {
		return v.markRejected(request, certificate, "Verification link / QR not found")
	}

	tempFile, err := os.CreateTemp("", "certificate_*.pdf")
	if err != nil {
		log.Printf("Failed to create temp file for request %s: %v", v.RequestID, err)
		return v.markError(request, certificate, "Could not download the verification pdf")
	}
	tempPath := tempFile.Name()
	tempFile.Close()
	// The downloaded copy must never outlive the verification run
	defer os.Remove(tempPath)

	download, err := v.Download(link, tempPath)
	if err != nil {
		log.Printf("Verification pdf download failed for request %s: %v", v.RequestID, err)
		return v.markError(request, certificate, "Could not download the verification pdf")
	}
	if !download.Success {
		log.Printf("Verification pdf download failed for request %s: %s", v.RequestID, download.Message)
		return v.markError(request, certificate, "Could not download the verification pdf")
	}

	certificate.VerificationFileURL = download.URL
	if err := v.Repo.Save(certificate); err != nil {
		log.Printf("Failed to persist verification file url for request %s: %v", v.RequestID, err)
		return v.markError(request, certificate, "An internal server error occurred")
	}

	uploadedFields := v.ExtractFields(v.UploadedFilePath)
	officialFields := v.ExtractFields(tempPath)

	if uploadedFields != nil {
		if snapshot, err := json.Marshal(uploadedFields); err == nil {
			certificate.ExtractedFields = datatypes.JSON(snapshot)
		}
	}

	ok, remark := CompareFields(uploadedFields, officialFields, request.Subject.Name, request.Student.Name)
	if !ok {
		return v.markRejected(request, certificate, remark)
	}

	request.Status = models.StatusCompleted
	certificate.Verified = true
	certificate.Remark = "Verification successful"
	if err := v.Repo.Save(request, certificate); err != nil {
		log.Printf("Failed to persist final state for request %s: %v", v.RequestID, err)
		// The caller cannot tell whether this write landed and must re-query
		// the request status instead of assuming failure
		return Result{OutcomeError, "Verification finished but the final status could not be confirmed"}
	}

	return Result{OutcomeCompleted, "Verification successful"}
}

// markRejected moves the request into the rejected terminal state. Rejections
// are submitter-actionable, a fresh upload goes through the whole flow again.
func (v *Verifier) markRejected(request *models.CertificateRequest, certificate *models.Certificate, remark string) Result {
	request.Status = models.StatusRejected
	certificate.Verified = false
	certificate.Remark = remark

	if err := v.Repo.Save(request, certificate); err != nil {
		log.Printf("Failed to persist rejected state for request %s: %v", v.RequestID, err)
		return Result{OutcomeError, "An internal server error occurred"}
	}

	return Result{OutcomeRejected, remark}
}

// markError moves the request into the error terminal state. These need an
// operator or a full retry, not just a different document.
func (v *Verifier) markError(request *models.CertificateRequest, certificate *models.Certificate, remark string) Result {
	request.Status = models.StatusError

	entities := []interface{}{request}
	if certificate != nil {
		certificate.Verified = false
		certificate.Remark = remark
		entities = append(entities, certificate)
	}

	if err := v.Repo.Save(entities...); err != nil {
		log.Printf("Failed to persist error state for request %s: %v", v.RequestID, err)
	}

	return Result{OutcomeError, remark}
}
