package handlers

import (
	"github.com/gofiber/fiber/v2"

	"wanderlust/internal/httperr"
	"wanderlust/internal/services"
	"wanderlust/internal/session"
)

type AuthHandler struct {
	auth     *services.AuthService
	sessions *session.Manager
}

func NewAuthHandler(auth *services.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

// SignupForm returns what the registration form needs plus any pending
// flashes.
func (h *AuthHandler) SignupForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"flash": h.sessions.PopFlashes(c),
	})
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var request struct {
		Username string `json:"username" form:"username"`
		Email    string `json:"email" form:"email"`
		Password string `json:"password" form:"password"`
	}
	if err := c.BodyParser(&request); err != nil {
		return httperr.BadRequest("Invalid request body")
	}

	user, err := h.auth.Register(c.Context(), request.Username, request.Email, request.Password)
	if err != nil {
		return err
	}

	// Registration logs the user in right away.
	if err := h.sessions.SetUserID(c, user.ID.Hex()); err != nil {
		return err
	}
	if err := h.sessions.FlashSuccess(c, "Welcome to Wanderlust!"); err != nil {
		return err
	}
	return c.Redirect("/listings", fiber.StatusFound)
}

// LoginForm is the target of the login redirect; it drains the flashes
// the guard left behind so the client can show them.
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"flash": h.sessions.PopFlashes(c),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var request struct {
		Username string `json:"username" form:"username"`
		Password string `json:"password" form:"password"`
	}
	if err := c.BodyParser(&request); err != nil {
		return httperr.BadRequest("Invalid request body")
	}

	user, token, err := h.auth.Login(c.Context(), request.Username, request.Password)
	if err != nil {
		return err
	}

	if err := h.sessions.SetUserID(c, user.ID.Hex()); err != nil {
		return err
	}

	redirect := h.sessions.PopRedirect(c)
	if redirect == "" {
		redirect = "/listings"
	}
	if err := h.sessions.FlashSuccess(c, "Welcome back!"); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":  "Welcome back!",
		"token":    token,
		"redirect": redirect,
		"user":     user,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Destroy(c); err != nil {
		return err
	}
	if err := h.sessions.FlashSuccess(c, "You are logged out!"); err != nil {
		return err
	}
	return c.Redirect("/listings", fiber.StatusFound)
}
