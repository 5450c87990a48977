package public

import (
	"errors"

	"gather.link/pkg/apiresponse"
	"gather.link/services"

	"github.com/gofiber/fiber/v2"
)

// RSVPHandler is the guest-facing surface: the invitation page reached
// through deep links, and the RSVP lookup/submit endpoints.
type RSVPHandler struct {
	eventService services.IEventService
	rsvpService  services.IRSVPService
}

func NewRSVPHandler(eventService services.IEventService, rsvpService services.IRSVPService) *RSVPHandler {
	return &RSVPHandler{eventService: eventService, rsvpService: rsvpService}
}

func rsvpErrStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrRSVPGuestNotFound), errors.Is(err, services.ErrEventNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrRSVPInvalidStatus),
		errors.Is(err, services.ErrRSVPInvalidInput),
		errors.Is(err, services.ErrRSVPEmailAlreadySet),
		errors.Is(err, services.ErrRSVPTransitionDenied):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// ShowInvitation (GET /invite/:eventID/:guestID) renders the invitation
// page a dispatched deep link points at.
func (h *RSVPHandler) ShowInvitation(c *fiber.Ctx) error {
	eventID, err := c.ParamsInt("eventID")
	if err != nil || eventID <= 0 {
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{"Title": "Invitation not found"})
	}
	guestID, err := c.ParamsInt("guestID")
	if err != nil || guestID <= 0 {
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{"Title": "Invitation not found"})
	}

	result, err := h.rsvpService.LookupGuest(c.UserContext(), uint(eventID), uint(guestID), "")
	if err != nil {
		return c.Status(rsvpErrStatus(err)).Render("errors/404", fiber.Map{"Title": "Invitation not found"})
	}
	if _, err := h.eventService.GetPublicEventByID(c.UserContext(), uint(eventID)); err != nil {
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{"Title": "Invitation not found"})
	}

	// Phone-only guests are asked for an email before the RSVP form
	// submits; the template switches on NeedsEmail.
	return c.Render("public/invitation", fiber.Map{
		"Title":      result.Event.Title,
		"Event":      result.Event,
		"Guest":      result.Guest,
		"NeedsEmail": result.Guest.Email == "",
	})
}

// LookupGuest (GET /public/rsvp?eventId=..&guestId=..&email=..)
func (h *RSVPHandler) LookupGuest(c *fiber.Ctx) error {
	eventID := c.QueryInt("eventId")
	guestID := c.QueryInt("guestId")
	if eventID < 0 || guestID < 0 {
		return apiresponse.Err(c, fiber.StatusBadRequest, "invalid lookup parameters")
	}
	result, err := h.rsvpService.LookupGuest(c.UserContext(), uint(eventID), uint(guestID), c.Query("email"))
	if err != nil {
		return apiresponse.Err(c, rsvpErrStatus(err), err.Error())
	}
	return apiresponse.OK(c, result)
}

// SubmitRSVP (POST /public/rsvp)
func (h *RSVPHandler) SubmitRSVP(c *fiber.Ctx) error {
	var req services.RSVPRequest
	if err := c.BodyParser(&req); err != nil {
		return apiresponse.Err(c, fiber.StatusBadRequest, "invalid request body")
	}
	result, err := h.rsvpService.SubmitRSVP(c.UserContext(), req)
	if err != nil {
		return apiresponse.Err(c, rsvpErrStatus(err), err.Error())
	}
	return apiresponse.OK(c, result)
}

type collectEmailRequest struct {
	GuestID uint   `json:"guestId"`
	Email   string `json:"email"`
}

// CollectEmail (POST /public/rsvp/email) records a phone-only guest's
// email ahead of their RSVP.
func (h *RSVPHandler) CollectEmail(c *fiber.Ctx) error {
	var req collectEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return apiresponse.Err(c, fiber.StatusBadRequest, "invalid request body")
	}
	guest, err := h.rsvpService.CollectEmail(c.UserContext(), req.GuestID, req.Email)
	if err != nil {
		return apiresponse.Err(c, rsvpErrStatus(err), err.Error())
	}
	return apiresponse.OK(c, guest)
}
