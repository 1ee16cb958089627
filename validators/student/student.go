package studentValidator

import (
	"certify/config"
	"certify/middleware"
	"certify/models"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var allowedStatuses = map[models.RequestStatus]bool{
	models.StatusPending:    true,
	models.StatusProcessing: true,
	models.StatusCompleted:  true,
	models.StatusRejected:   true,
	models.StatusError:      true,
}

// GetCertificateRequests validates the status filter list and passes the
// deduplicated set to the controller
func GetCertificateRequests() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			RequestTypes []models.RequestStatus `json:"request_types"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.RequestTypes) == 0 {
			errors["request_types"] = "At least one request status is required!"
		}

		seen := make(map[models.RequestStatus]bool)
		var unique []models.RequestStatus
		for _, status := range reqData.RequestTypes {
			if !allowedStatuses[status] {
				errors["request_types"] = "Unknown request status: " + string(status)
				break
			}
			if !seen[status] {
				seen[status] = true
				unique = append(unique, status)
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("requestTypes", unique)
		return c.Next()
	}
}

// UploadCertificate is the upload limiter: the request id must be a valid uuid
// and the file must be a PDF within the configured size cap
func UploadCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		errors := make(map[string]string)

		requestID := c.Query("request_id")
		if requestID == "" {
			errors["request_id"] = "request_id query parameter is required!"
		} else if _, err := uuid.Parse(requestID); err != nil {
			errors["request_id"] = "request_id must be a valid uuid!"
		}

		file, err := c.FormFile("file")
		if err != nil {
			errors["file"] = "Certificate file is required!"
		} else {
			contentType := file.Header.Get("Content-Type")
			if contentType != "application/pdf" && !strings.HasSuffix(strings.ToLower(file.Filename), ".pdf") {
				errors["file"] = "Only PDF files are accepted!"
			}

			maxBytes := int64(config.AppConfig.MaxUploadSizeMB) * 1024 * 1024
			if file.Size > maxBytes {
				errors["file"] = "File exceeds the maximum upload size!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
