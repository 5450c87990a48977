package routes

import (
	"gather.link/middlewares"
	"gather.link/pkg/apiresponse"
	"gather.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Dependencies carries the constructed services into route registration.
// Everything is built in main and injected; handlers never reach for
// ambient state.
type Dependencies struct {
	SessionStore    *session.Store
	UserService     services.IUserService
	EventService    services.IEventService
	GuestService    services.IGuestService
	DispatchService services.IDispatchService
	RSVPService     services.IRSVPService
	MediaService    services.IMediaService
}

// SetupRoutes wires global middleware and every route group.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	app.Use(recoverMiddleware.New())
	app.Use(logger.New())
	app.Use(cors.New())
	app.Use(middlewares.SessionLocals(deps.SessionStore))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	registerAuthRoutes(app, deps)
	registerAPIRoutes(app, deps)
	registerPublicRoutes(app, deps)

	app.Use(notFoundHandler)
}

func notFoundHandler(c *fiber.Ctx) error {
	if c.Accepts("application/json", "text/html") == "text/html" {
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{"Title": "Page not found"})
	}
	return apiresponse.Err(c, fiber.StatusNotFound, "resource not found")
}
