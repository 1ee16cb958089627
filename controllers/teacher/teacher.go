package teacherController

import (
	"certify/database"
	"certify/middleware"
	"certify/models"
	"time"

	"github.com/gofiber/fiber/v2"
)

// CreateSubject registers a new subject owned by the logged-in teacher
func CreateSubject(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		Name        string `json:"name"`
		SubjectCode string `json:"subject_code"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	// Subject codes are unique across the platform
	if err := db.Where("subject_code = ? AND is_deleted = false", reqData.SubjectCode).
		First(&models.Subject{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Subject code already exists!", nil)
	}

	subject := models.Subject{
		Name:        reqData.Name,
		SubjectCode: reqData.SubjectCode,
		TeacherID:   userID,
	}

	if err := db.Create(&subject).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create subject!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Subject created successfully!", subject)
}

// AssignStudent enrolls a student into one of the teacher's subjects
func AssignStudent(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		SubjectID uint   `json:"subject_id"`
		Email     string `json:"student_email"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var subject models.Subject
	if err := db.Where("id = ? AND teacher_id = ? AND is_deleted = false", reqData.SubjectID, userID).
		First(&subject).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subject not found or not owned by you!", nil)
	}

	var student models.User
	if err := db.Where("email = ? AND role = ? AND is_deleted = false", reqData.Email, "STUDENT").
		First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	if err := db.Where("student_id = ? AND subject_id = ? AND is_deleted = false", student.ID, subject.ID).
		First(&models.StudentSubject{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Student already enrolled in this subject!", nil)
	}

	enrollment := models.StudentSubject{
		StudentID: student.ID,
		SubjectID: subject.ID,
	}
	if err := db.Create(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll student!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Student enrolled successfully!", enrollment)
}

// CreateCertificateRequest asks a student to submit a certificate for a subject
func CreateCertificateRequest(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		StudentID uint   `json:"student_id"`
		SubjectID uint   `json:"subject_id"`
		DueDate   string `json:"due_date"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var subject models.Subject
	if err := db.Where("id = ? AND teacher_id = ? AND is_deleted = false", reqData.SubjectID, userID).
		First(&subject).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subject not found or not owned by you!", nil)
	}

	if err := db.Where("student_id = ? AND subject_id = ? AND is_deleted = false", reqData.StudentID, reqData.SubjectID).
		First(&models.StudentSubject{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Student is not enrolled in this subject!", nil)
	}

	// One open request per student and subject
	var existing models.CertificateRequest
	if err := db.Where("student_id = ? AND subject_id = ? AND status IN ? AND is_deleted = false",
		reqData.StudentID, reqData.SubjectID,
		[]models.RequestStatus{models.StatusPending, models.StatusProcessing}).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "An open request already exists for this student and subject!", nil)
	}

	var dueDate *time.Time
	if reqData.DueDate != "" {
		parsed, err := time.Parse(time.RFC3339, reqData.DueDate)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid due date, expected RFC3339!", nil)
		}
		utc := parsed.UTC()
		dueDate = &utc
	}

	request := models.CertificateRequest{
		StudentID: reqData.StudentID,
		TeacherID: userID,
		SubjectID: reqData.SubjectID,
		Status:    models.StatusPending,
		DueDate:   dueDate,
	}

	if err := db.Create(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate request created successfully!", request)
}

// GetRequests lists all requests raised by the logged-in teacher
func GetRequests(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var requests []models.CertificateRequest
	if err := db.Preload("Student").Preload("Subject").
		Where("teacher_id = ? AND is_deleted = false", userID).
		Order("created_at desc").
		Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch requests!", nil)
	}

	type RequestItem struct {
		RequestID string               `json:"request_id"`
		Student   fiber.Map            `json:"student"`
		Subject   fiber.Map            `json:"subject"`
		Status    models.RequestStatus `json:"status"`
		DueDate   *time.Time           `json:"due_date"`
		CreatedAt time.Time            `json:"created_at"`
	}

	result := make([]RequestItem, len(requests))
	for i, request := range requests {
		result[i] = RequestItem{
			RequestID: request.ID,
			Student: fiber.Map{
				"id":    request.Student.ID,
				"name":  request.Student.Name,
				"email": request.Student.Email,
			},
			Subject: fiber.Map{
				"id":   request.Subject.ID,
				"name": request.Subject.Name,
				"code": request.Subject.SubjectCode,
			},
			Status:    request.Status,
			DueDate:   request.DueDate,
			CreatedAt: request.CreatedAt,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Requests fetched successfully!", fiber.Map{
		"requests": result,
		"total":    len(result),
	})
}
