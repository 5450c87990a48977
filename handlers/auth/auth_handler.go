package auth

import (
	"errors"

	"gather.link/middlewares"
	"gather.link/pkg/apiresponse"
	"gather.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// AuthHandler signs users in and out of the host/admin API.
type AuthHandler struct {
	userService services.IUserService
	store       *session.Store
}

func NewAuthHandler(userService services.IUserService, store *session.Store) *AuthHandler {
	return &AuthHandler{userService: userService, store: store}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login (POST /auth/login) checks credentials and starts a session.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return apiresponse.Err(c, fiber.StatusBadRequest, "invalid request body")
	}
	user, err := h.userService.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) || errors.Is(err, services.ErrUserInactive) {
			return apiresponse.Err(c, fiber.StatusUnauthorized, err.Error())
		}
		return apiresponse.Err(c, fiber.StatusInternalServerError, "login failed")
	}
	if err := middlewares.SignIn(c, h.store, user.ID, user.IsSystem, user.Name); err != nil {
		return apiresponse.Err(c, fiber.StatusInternalServerError, "session could not be started")
	}
	return apiresponse.OK(c, user)
}

// Logout (POST /auth/logout) ends the session.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := middlewares.SignOut(c, h.store); err != nil {
		return apiresponse.Err(c, fiber.StatusInternalServerError, "logout failed")
	}
	return apiresponse.Message(c, "signed out")
}

// Profile (GET /auth/profile) returns the signed-in account.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	user, err := h.userService.GetUserByID(c.UserContext(), middlewares.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return apiresponse.Err(c, fiber.StatusNotFound, err.Error())
		}
		return apiresponse.Err(c, fiber.StatusInternalServerError, "profile lookup failed")
	}
	return apiresponse.OK(c, user)
}
