package api

import (
	"errors"

	"gather.link/middlewares"
	"gather.link/pkg/apiresponse"
	"gather.link/services"

	"github.com/gofiber/fiber/v2"
)

// DispatchHandler triggers invitation/reminder sends.
type DispatchHandler struct {
	service services.IDispatchService
}

func NewDispatchHandler(service services.IDispatchService) *DispatchHandler {
	return &DispatchHandler{service: service}
}

// SendInvitations (POST /api/events/:id/send-invitations)
//
// Always answers 200 for an accepted batch, including partial failures;
// callers must inspect summary.failed, not the HTTP status.
func (h *DispatchHandler) SendInvitations(c *fiber.Ctx) error {
	eventID, err := c.ParamsInt("id")
	if err != nil || eventID <= 0 {
		return apiresponse.Err(c, fiber.StatusBadRequest, "invalid event id")
	}
	var req services.DispatchRequest
	if err := c.BodyParser(&req); err != nil {
		return apiresponse.Err(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.EventID = uint(eventID)

	outcome, err := h.service.SendInvitations(c.UserContext(), middlewares.CurrentUserID(c), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDispatchInvalidParams):
			return apiresponse.Err(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrEventNotFound):
			return apiresponse.Err(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrEventForbidden):
			return apiresponse.Err(c, fiber.StatusForbidden, err.Error())
		default:
			return apiresponse.Err(c, fiber.StatusInternalServerError, err.Error())
		}
	}
	return c.Status(fiber.StatusOK).JSON(outcome)
}
