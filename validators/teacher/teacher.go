package teacherValidator

import (
	"certify/middleware"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CreateSubject validator middleware
func CreateSubject() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name        string `json:"name" validate:"required,min=3"`
			SubjectCode string `json:"subject_code" validate:"required,min=2,max=20"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		return c.Next()
	}
}

// AssignStudent validator middleware
func AssignStudent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			SubjectID uint   `json:"subject_id" validate:"required"`
			Email     string `json:"student_email" validate:"required,email"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		return c.Next()
	}
}

// CreateRequest validator middleware
func CreateRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			StudentID uint   `json:"student_id" validate:"required"`
			SubjectID uint   `json:"subject_id" validate:"required"`
			DueDate   string `json:"due_date" validate:"omitempty"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		if reqData.DueDate != "" {
			dueDate, err := time.Parse(time.RFC3339, reqData.DueDate)
			if err != nil {
				return middleware.ValidationErrorResponse(c, map[string]string{
					"due_date": "Due date must be RFC3339 formatted!",
				})
			}
			if dueDate.Before(time.Now()) {
				return middleware.ValidationErrorResponse(c, map[string]string{
					"due_date": "Due date must be in the future!",
				})
			}
		}

		return c.Next()
	}
}

// fieldErrors maps validator errors into the response shape used everywhere
func fieldErrors(err error) map[string]string {
	errors := make(map[string]string)

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["body"] = "Invalid request body!"
		return errors
	}

	for _, fieldError := range validationErrors {
		switch fieldError.Tag() {
		case "required":
			errors[fieldError.Field()] = fieldError.Field() + " is required!"
		case "email":
			errors[fieldError.Field()] = "Invalid email!"
		case "min":
			errors[fieldError.Field()] = fieldError.Field() + " is too short!"
		case "max":
			errors[fieldError.Field()] = fieldError.Field() + " is too long!"
		default:
			errors[fieldError.Field()] = fieldError.Field() + " is invalid!"
		}
	}

	return errors
}
