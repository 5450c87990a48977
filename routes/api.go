package routes

import (
	api_handlers "gather.link/handlers/api"
	"gather.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerAPIRoutes wires the authenticated host/admin API under /api.
func registerAPIRoutes(app *fiber.App, deps Dependencies) {
	eventHandler := api_handlers.NewEventHandler(deps.EventService)
	guestHandler := api_handlers.NewGuestHandler(deps.GuestService)
	dispatchHandler := api_handlers.NewDispatchHandler(deps.DispatchService)
	mediaHandler := api_handlers.NewMediaHandler(deps.MediaService)

	apiGroup := app.Group("/api")
	apiGroup.Use(middlewares.AuthMiddleware)

	apiGroup.Post("/events", eventHandler.CreateEvent)
	apiGroup.Get("/events", eventHandler.ListEvents)
	apiGroup.Get("/events/:id", eventHandler.GetEvent)
	apiGroup.Put("/events/:id", eventHandler.UpdateEvent)
	apiGroup.Delete("/events/:id", eventHandler.DeleteEvent)

	apiGroup.Post("/events/:id/guests", guestHandler.AddGuests)
	apiGroup.Get("/events/:id/guests", guestHandler.ListGuests)
	apiGroup.Get("/guests/:id", guestHandler.GetGuest)
	apiGroup.Put("/guests/:id", guestHandler.UpdateGuest)
	apiGroup.Delete("/guests/:id", guestHandler.DeleteGuest)

	apiGroup.Post("/events/:id/send-invitations", dispatchHandler.SendInvitations)

	apiGroup.Post("/media/upload-url", mediaHandler.CreateUploadURL)
	apiGroup.Get("/media/read-url", mediaHandler.CreateReadURL)
}
