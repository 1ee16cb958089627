package authRoutes

import (
	authControllers "certify/controllers/auth"
	"certify/middleware"
	authValidators "certify/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Post("/signup", authValidators.Signup(), authControllers.Signup)
	userGroup.Post("/login", authValidators.Login(), authControllers.Login)
	userGroup.Get("/me", middleware.JWTMiddleware, authControllers.Me)
}
