package routes

import (
	auth_handlers "gather.link/handlers/auth"
	"gather.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

func registerAuthRoutes(app *fiber.App, deps Dependencies) {
	authHandler := auth_handlers.NewAuthHandler(deps.UserService, deps.SessionStore)
	authGroup := app.Group("/auth")

	authGroup.Post("/login", authHandler.Login)

	userRoutes := authGroup.Group("")
	userRoutes.Use(middlewares.AuthMiddleware)
	userRoutes.Post("/logout", authHandler.Logout)
	userRoutes.Get("/profile", authHandler.Profile)
}
