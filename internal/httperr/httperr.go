package httperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Error is a request-scoped error carrying the HTTP status it should be
// rendered with. Middleware and services return it to short-circuit the
// pipeline; the central Handler turns it into a response.
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func BadRequest(message string) *Error {
	return New(fiber.StatusBadRequest, message)
}

func NotFound(message string) *Error {
	return New(fiber.StatusNotFound, message)
}

// Handler is the app-wide Fiber error handler. Known errors keep their
// status and message; anything else is logged and rendered as a generic
// 500 so internals never leak to the client.
func Handler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Something went wrong"

	var appErr *Error
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &appErr):
		status = appErr.Status
		message = appErr.Message
	case errors.As(err, &fiberErr):
		status = fiberErr.Code
		message = fiberErr.Message
	}

	if status >= fiber.StatusInternalServerError {
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		}).Error("unhandled error")
	}

	return c.Status(status).JSON(fiber.Map{"status": status, "message": message})
}
