package routes

import (
	public_handlers "gather.link/handlers/public"

	"github.com/gofiber/fiber/v2"
)

// registerPublicRoutes wires the unauthenticated guest-facing routes:
// the invitation deep-link page and the RSVP endpoints.
func registerPublicRoutes(app *fiber.App, deps Dependencies) {
	rsvpHandler := public_handlers.NewRSVPHandler(deps.EventService, deps.RSVPService)

	app.Get("/invite/:eventID/:guestID", rsvpHandler.ShowInvitation)

	publicGroup := app.Group("/public")
	publicGroup.Get("/rsvp", rsvpHandler.LookupGuest)
	publicGroup.Post("/rsvp", rsvpHandler.SubmitRSVP)
	publicGroup.Post("/rsvp/email", rsvpHandler.CollectEmail)
}
