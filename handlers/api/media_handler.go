package api

import (
	"errors"

	"gather.link/pkg/apiresponse"
	"gather.link/services"

	"github.com/gofiber/fiber/v2"
)

// MediaHandler issues presigned S3 URLs for event images.
type MediaHandler struct {
	service services.IMediaService
}

func NewMediaHandler(service services.IMediaService) *MediaHandler {
	return &MediaHandler{service: service}
}

type uploadURLRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

// CreateUploadURL (POST /api/media/upload-url)
func (h *MediaHandler) CreateUploadURL(c *fiber.Ctx) error {
	var req uploadURLRequest
	if err := c.BodyParser(&req); err != nil {
		return apiresponse.Err(c, fiber.StatusBadRequest, "invalid request body")
	}
	ticket, err := h.service.CreateUploadURL(c.UserContext(), req.FileName, req.ContentType)
	if err != nil {
		if errors.Is(err, services.ErrMediaInvalidInput) {
			return apiresponse.Err(c, fiber.StatusBadRequest, err.Error())
		}
		return apiresponse.Err(c, fiber.StatusInternalServerError, err.Error())
	}
	return apiresponse.OK(c, ticket)
}

// CreateReadURL (GET /api/media/read-url?key=...)
func (h *MediaHandler) CreateReadURL(c *fiber.Ctx) error {
	url, err := h.service.CreateReadURL(c.UserContext(), c.Query("key"))
	if err != nil {
		if errors.Is(err, services.ErrMediaInvalidInput) {
			return apiresponse.Err(c, fiber.StatusBadRequest, err.Error())
		}
		return apiresponse.Err(c, fiber.StatusInternalServerError, err.Error())
	}
	return apiresponse.OK(c, fiber.Map{"url": url})
}
