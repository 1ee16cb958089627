package teacherRoutes

import (
	teacherControllers "certify/controllers/teacher"
	"certify/middleware"
	teacherValidators "certify/validators/teacher"

	"github.com/gofiber/fiber/v2"
)

func SetupTeacherRoutes(app *fiber.App) {
	teacherGroup := app.Group("/teacher", middleware.JWTMiddleware, middleware.RequireRole("TEACHER"))

	teacherGroup.Post("/subject", teacherValidators.CreateSubject(), teacherControllers.CreateSubject)
	teacherGroup.Post("/subject/assign", teacherValidators.AssignStudent(), teacherControllers.AssignStudent)
	teacherGroup.Post("/request", teacherValidators.CreateRequest(), teacherControllers.CreateCertificateRequest)
	teacherGroup.Get("/requests", teacherControllers.GetRequests)
}
