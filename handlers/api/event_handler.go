package api

import (
	"errors"
	"time"

	"gather.link/middlewares"
	"gather.link/models"
	"gather.link/pkg/apiresponse"
	"gather.link/pkg/queryparams"
	"gather.link/services"

	"github.com/gofiber/fiber/v2"
)

// EventHandler serves the host/admin event CRUD.
type EventHandler struct {
	service services.IEventService
}

func NewEventHandler(service services.IEventService) *EventHandler {
	return &EventHandler{service: service}
}

type eventRequest struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	StartDateTime   time.Time `json:"startDateTime"`
	Timezone        string    `json:"timezone"`
	LocationAddress string    `json:"locationAddress"`
	LocationUnit    string    `json:"locationUnit"`
	ImageKey        string    `json:"imageKey"`
	IsEnabled       *bool     `json:"isEnabled"`
}

func (r eventRequest) toModel() models.Event {
	event := models.Event{
		Title:           r.Title,
		Description:     r.Description,
		StartDateTime:   r.StartDateTime,
		Timezone:        r.Timezone,
		LocationAddress: r.LocationAddress,
		LocationUnit:    r.LocationUnit,
		ImageKey:        r.ImageKey,
		IsEnabled:       true,
	}
	if r.IsEnabled != nil {
		event.IsEnabled = *r.IsEnabled
	}
	return event
}

func eventErrStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrEventNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrEventForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrEventInvalidInput),
		errors.Is(err, services.ErrEventTitleRequired),
		errors.Is(err, services.ErrEventTimeRequired):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// CreateEvent (POST /api/events)
func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var req eventRequest
	if err := c.BodyParser(&req); err != nil {
		return apiresponse.Err(c, fiber.StatusBadRequest, "invalid request body")
	}
	event, err := h.service.CreateEvent(c.UserContext(), middlewares.CurrentUserID(c), req.toModel())
	if err != nil {
		return apiresponse.Err(c, eventErrStatus(err), err.Error())
	}
	return apiresponse.Created(c, event)
}

// ListEvents (GET /api/events)
func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	result, err := h.service.GetEventsForUser(c.UserContext(), middlewares.CurrentUserID(c), params)
	if err != nil {
		return apiresponse.Err(c, eventErrStatus(err), err.Error())
	}
	return apiresponse.OK(c, result)
}

// GetEvent (GET /api/events/:id)
func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apiresponse.Err(c, fiber.StatusBadRequest, "invalid event id")
	}
	event, err := h.service.GetEventByID(c.UserContext(), uint(id), middlewares.CurrentUserID(c))
	if err != nil {
		return apiresponse.Err(c, eventErrStatus(err), err.Error())
	}
	return apiresponse.OK(c, event)
}

// UpdateEvent (PUT /api/events/:id)
func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apiresponse.Err(c, fiber.StatusBadRequest, "invalid event id")
	}
	var req eventRequest
	if err := c.BodyParser(&req); err != nil {
		return apiresponse.Err(c, fiber.StatusBadRequest, "invalid request body")
	}
	event, err := h.service.UpdateEvent(c.UserContext(), uint(id), middlewares.CurrentUserID(c), req.toModel())
	if err != nil {
		return apiresponse.Err(c, eventErrStatus(err), err.Error())
	}
	return apiresponse.OK(c, event)
}

// DeleteEvent (DELETE /api/events/:id)
func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apiresponse.Err(c, fiber.StatusBadRequest, "invalid event id")
	}
	if err := h.service.DeleteEvent(c.UserContext(), uint(id), middlewares.CurrentUserID(c)); err != nil {
		return apiresponse.Err(c, eventErrStatus(err), err.Error())
	}
	return apiresponse.Message(c, "event deleted")
}
