package studentController

import (
	"certify/config"
	"certify/database"
	"certify/middleware"
	"certify/models"
	"certify/services/verifier"
	"certify/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// GetCertificateRequests lists the student's requests filtered by status
func GetCertificateRequests(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	requestTypes, ok := c.Locals("requestTypes").([]models.RequestStatus)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var requests []models.CertificateRequest
	if err := db.Preload("Subject").Preload("Subject.Teacher").
		Where("student_id = ? AND status IN ? AND is_deleted = false", userID, requestTypes).
		Order("created_at desc").
		Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch requests!", nil)
	}

	type RequestItem struct {
		RequestID             string               `json:"request_id"`
		Subject               fiber.Map            `json:"subject"`
		Status                models.RequestStatus `json:"status"`
		DueDate               *time.Time           `json:"due_date"`
		CertificateUploadedAt *time.Time           `json:"certificate_uploaded_at"`
	}

	result := make([]RequestItem, len(requests))
	for i, request := range requests {
		var uploadedAt *time.Time
		var certificate models.Certificate
		if err := db.Where("request_id = ?", request.ID).First(&certificate).Error; err == nil {
			uploadedAt = &certificate.UploadedAt
		}

		result[i] = RequestItem{
			RequestID: request.ID,
			Subject: fiber.Map{
				"id":   request.Subject.ID,
				"name": request.Subject.Name,
				"code": request.Subject.SubjectCode,
				"teacher": fiber.Map{
					"id":   request.Subject.Teacher.ID,
					"name": request.Subject.Teacher.Name,
				},
			},
			Status:                request.Status,
			DueDate:               request.DueDate,
			CertificateUploadedAt: uploadedAt,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Requests fetched successfully!", fiber.Map{
		"requests": result,
	})
}

// GetStudentSubjects lists the subjects the student is enrolled in
func GetStudentSubjects(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var subjects []models.Subject
	if err := db.Preload("Teacher").
		Joins("JOIN student_subjects ON student_subjects.subject_id = subjects.id").
		Where("student_subjects.student_id = ? AND student_subjects.is_deleted = false", userID).
		Find(&subjects).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch subjects!", nil)
	}

	type SubjectItem struct {
		ID      uint      `json:"id"`
		Code    string    `json:"code"`
		Name    string    `json:"name"`
		Teacher fiber.Map `json:"teacher"`
	}

	result := make([]SubjectItem, len(subjects))
	for i, subject := range subjects {
		result[i] = SubjectItem{
			ID:   subject.ID,
			Code: subject.SubjectCode,
			Name: subject.Name,
			Teacher: fiber.Map{
				"id":   subject.Teacher.ID,
				"name": subject.Teacher.Name,
			},
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subjects fetched successfully!", fiber.Map{
		"subjects": result,
	})
}

// GetCertificate returns the certificate record for one of the student's requests
func GetCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	requestID := c.Params("requestId")

	var certificate models.Certificate
	if err := database.Database.Db.
		Where("request_id = ? AND student_id = ?", requestID, userID).
		First(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "No certificate uploaded yet.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate fetched successfully!", fiber.Map{
		"id":          certificate.ID,
		"request_id":  certificate.RequestID,
		"student_id":  certificate.StudentID,
		"file_url":    utils.GetFileURL(certificate.FileURL),
		"verified":    certificate.Verified,
		"remark":      certificate.Remark,
		"uploaded_at": certificate.UploadedAt,
		"updated_at":  certificate.UpdatedAt,
	})
}

// UploadCertificate accepts a certificate PDF for a request and runs the
// verification flow on it
func UploadCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	requestID := c.Query("request_id")

	db := database.Database.Db

	// Check if the request belongs to the current student
	var request models.CertificateRequest
	if err := db.Where("id = ? AND student_id = ? AND is_deleted = false", requestID, userID).
		First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Request not found or does not belong to the current student", nil)
	}

	// completed and processing block a new upload; rejected and error requests
	// stay open for another attempt
	if request.Status == models.StatusCompleted {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Request already completed", nil)
	}
	if request.Status == models.StatusProcessing {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Request already in processing", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate file is required!", nil)
	}

	filePath, err := utils.SaveCertificateFile(file, config.AppConfig.CertificateDir, requestID)
	if err != nil {
		log.Printf("Error saving uploaded certificate: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store the uploaded file!", nil)
	}

	v := verifier.New(filePath, requestID, userID, &verifier.GormRepository{Db: db})
	result := v.StartVerification()

	notifyVerificationOutcome(request.ID, result)

	switch result.Outcome {
	case verifier.OutcomeNotFound:
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, result.Remark, nil)
	case verifier.OutcomeForbidden:
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, result.Remark, nil)
	case verifier.OutcomeConflict:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, result.Remark, nil)
	case verifier.OutcomeRejected:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, result.Remark, nil)
	case verifier.OutcomeError:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, result.Remark, nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate uploaded and verified successfully!", fiber.Map{
		"request_id": requestID,
		"remark":     result.Remark,
	})
}

// notifyVerificationOutcome emails the student once a run reaches a terminal
// state. Sending happens in the background so a slow SMTP server does not hold
// up the upload response.
func notifyVerificationOutcome(requestID string, result verifier.Result) {
	if result.Outcome != verifier.OutcomeCompleted && result.Outcome != verifier.OutcomeRejected {
		return
	}

	go func() {
		var request models.CertificateRequest
		if err := database.Database.Db.Preload("Student").Preload("Subject").
			Where("id = ?", requestID).First(&request).Error; err != nil {
			log.Printf("Failed to load request %s for outcome email: %v", requestID, err)
			return
		}
		if request.Student.Email == "" {
			return
		}
		if err := utils.SendVerificationOutcomeEmail(
			request.Student.Email,
			request.Student.Name,
			request.Subject.Name,
			string(request.Status),
			result.Remark,
		); err != nil {
			log.Printf("Failed to send outcome email for request %s: %v", requestID, err)
		}
	}()
}
