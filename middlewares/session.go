package middlewares

import (
	"time"

	"gather.link/pkg/apiresponse"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	sessionUserIDKey   = "user_id"
	sessionIsSystemKey = "is_system"
	sessionUserNameKey = "user_name"
)

// NewSessionStore builds the cookie-backed session store.
func NewSessionStore() *session.Store {
	return session.New(session.Config{
		Expiration:     24 * time.Hour,
		KeyLookup:      "cookie:gatherlink_session",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
}

// SessionLocals loads the session once per request and mirrors the
// signed-in user into locals for downstream handlers.
func SessionLocals(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("session_store", store)
		sess, err := store.Get(c)
		if err != nil {
			return c.Next()
		}
		if userID, ok := sess.Get(sessionUserIDKey).(uint); ok {
			c.Locals("userID", userID)
		}
		if isSystem, ok := sess.Get(sessionIsSystemKey).(bool); ok {
			c.Locals("isSystem", isSystem)
		}
		if name, ok := sess.Get(sessionUserNameKey).(string); ok {
			c.Locals("userName", name)
		}
		return c.Next()
	}
}

// SignIn records the user in the request's session.
func SignIn(c *fiber.Ctx, store *session.Store, userID uint, isSystem bool, name string) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(sessionUserIDKey, userID)
	sess.Set(sessionIsSystemKey, isSystem)
	sess.Set(sessionUserNameKey, name)
	return sess.Save()
}

// SignOut destroys the request's session.
func SignOut(c *fiber.Ctx, store *session.Store) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// AuthMiddleware rejects requests without a signed-in user.
func AuthMiddleware(c *fiber.Ctx) error {
	if _, ok := c.Locals("userID").(uint); !ok {
		return apiresponse.Err(c, fiber.StatusUnauthorized, "authentication required")
	}
	return c.Next()
}

// CurrentUserID returns the signed-in user's ID, or 0.
func CurrentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}
