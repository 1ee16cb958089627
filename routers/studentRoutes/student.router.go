package studentRoutes

import (
	studentControllers "certify/controllers/student"
	"certify/middleware"
	studentValidators "certify/validators/student"

	"github.com/gofiber/fiber/v2"
)

func SetupStudentRoutes(app *fiber.App) {
	studentGroup := app.Group("/student", middleware.JWTMiddleware, middleware.RequireRole("STUDENT"))

	studentGroup.Post("/requests", studentValidators.GetCertificateRequests(), studentControllers.GetCertificateRequests)
	studentGroup.Get("/subjects", studentControllers.GetStudentSubjects)
	studentGroup.Get("/certificate/:requestId", studentControllers.GetCertificate)
	studentGroup.Post("/certificate/upload", studentValidators.UploadCertificate(), studentControllers.UploadCertificate)
}
