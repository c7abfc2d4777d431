package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"wanderlust/internal/services"
	"wanderlust/internal/session"
)

// Auth gates routes behind an authenticated identity. Browsers carry a
// session cookie; API clients may send a Bearer token instead.
type Auth struct {
	sessions *session.Manager
	auth     *services.AuthService
}

func NewAuth(sessions *session.Manager, auth *services.AuthService) *Auth {
	return &Auth{sessions: sessions, auth: auth}
}

// RequireLogin puts the current user ID in c.Locals("user_id") or, for
// anonymous requests, remembers the requested path, flashes an error
// and redirects to the login page.
func (a *Auth) RequireLogin(c *fiber.Ctx) error {
	if uid := a.sessions.UserID(c); uid != "" {
		c.Locals("user_id", uid)
		return c.Next()
	}

	if header := c.Get("Authorization"); header != "" {
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if uid, err := a.auth.ParseToken(tokenString); err == nil {
			c.Locals("user_id", uid)
			return c.Next()
		}
	}

	if err := a.sessions.SaveRedirect(c, c.OriginalURL()); err != nil {
		return err
	}
	if err := a.sessions.FlashError(c, "You must be logged in first!"); err != nil {
		return err
	}
	return c.Redirect("/login", fiber.StatusFound)
}
