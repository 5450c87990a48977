package api

import (
	"errors"

	"gather.link/middlewares"
	"gather.link/models"
	"gather.link/pkg/apiresponse"
	"gather.link/pkg/queryparams"
	"gather.link/services"

	"github.com/gofiber/fiber/v2"
)

// GuestHandler serves the host guest-list CRUD.
type GuestHandler struct {
	service services.IGuestService
}

func NewGuestHandler(service services.IGuestService) *GuestHandler {
	return &GuestHandler{service: service}
}

type guestRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Status string `json:"status"`
}

// addGuestsRequest accepts either a single guest or a batch.
type addGuestsRequest struct {
	Name   string         `json:"name"`
	Email  string         `json:"email"`
	Phone  string         `json:"phone"`
	Status string         `json:"status"`
	Guests []guestRequest `json:"guests"`
}

func guestErrStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrGuestNotFound), errors.Is(err, services.ErrEventNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrEventForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrGuestInvalidInput),
		errors.Is(err, services.ErrGuestNameRequired),
		errors.Is(err, services.ErrGuestContactRequired),
		errors.Is(err, services.ErrGuestInvalidStatus):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// AddGuests (POST /api/events/:id/guests)
func (h *GuestHandler) AddGuests(c *fiber.Ctx) error {
	eventID, err := c.ParamsInt("id")
	if err != nil || eventID <= 0 {
		return apiresponse.Err(c, fiber.StatusBadRequest, "invalid event id")
	}
	var req addGuestsRequest
	if err := c.BodyParser(&req); err != nil {
		return apiresponse.Err(c, fiber.StatusBadRequest, "invalid request body")
	}

	batch := req.Guests
	if len(batch) == 0 {
		batch = []guestRequest{{Name: req.Name, Email: req.Email, Phone: req.Phone, Status: req.Status}}
	}
	guests := make([]models.Guest, len(batch))
	for i, g := range batch {
		guests[i] = models.Guest{Name: g.Name, Email: g.Email, Phone: g.Phone, Status: models.GuestStatus(g.Status)}
	}

	created, err := h.service.AddGuests(c.UserContext(), uint(eventID), middlewares.CurrentUserID(c), guests)
	if err != nil {
		return apiresponse.Err(c, guestErrStatus(err), err.Error())
	}
	return apiresponse.Created(c, created)
}

// ListGuests (GET /api/events/:id/guests)
func (h *GuestHandler) ListGuests(c *fiber.Ctx) error {
	eventID, err := c.ParamsInt("id")
	if err != nil || eventID <= 0 {
		return apiresponse.Err(c, fiber.StatusBadRequest, "invalid event id")
	}
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	result, err := h.service.GetGuestsForEvent(c.UserContext(), uint(eventID), middlewares.CurrentUserID(c), params)
	if err != nil {
		return apiresponse.Err(c, guestErrStatus(err), err.Error())
	}
	return apiresponse.OK(c, result)
}

// GetGuest (GET /api/guests/:id)
func (h *GuestHandler) GetGuest(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apiresponse.Err(c, fiber.StatusBadRequest, "invalid guest id")
	}
	guest, err := h.service.GetGuestByID(c.UserContext(), uint(id), middlewares.CurrentUserID(c))
	if err != nil {
		return apiresponse.Err(c, guestErrStatus(err), err.Error())
	}
	return apiresponse.OK(c, guest)
}

type updateGuestRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Status   *string `json:"status"`
	Response *string `json:"response"`
}

// UpdateGuest (PUT /api/guests/:id)
func (h *GuestHandler) UpdateGuest(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apiresponse.Err(c, fiber.StatusBadRequest, "invalid guest id")
	}
	var req updateGuestRequest
	if err := c.BodyParser(&req); err != nil {
		return apiresponse.Err(c, fiber.StatusBadRequest, "invalid request body")
	}
	guest, err := h.service.UpdateGuest(c.UserContext(), uint(id), middlewares.CurrentUserID(c), services.GuestUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Status:   req.Status,
		Response: req.Response,
	})
	if err != nil {
		return apiresponse.Err(c, guestErrStatus(err), err.Error())
	}
	return apiresponse.OK(c, guest)
}

// DeleteGuest (DELETE /api/guests/:id)
func (h *GuestHandler) DeleteGuest(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apiresponse.Err(c, fiber.StatusBadRequest, "invalid guest id")
	}
	if err := h.service.DeleteGuest(c.UserContext(), uint(id), middlewares.CurrentUserID(c)); err != nil {
		return apiresponse.Err(c, guestErrStatus(err), err.Error())
	}
	return apiresponse.Message(c, "guest deleted")
}
