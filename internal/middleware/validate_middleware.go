package middleware

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"wanderlust/internal/httperr"
	"wanderlust/internal/models"
)

var validate = validator.New()

// ValidateListing checks a listing create body before any mutation.
// Unknown fields are tolerated; failures short-circuit with a 400 and a
// joined human-readable message.
func ValidateListing(c *fiber.Ctx) error {
	var form models.ListingForm
	if err := c.BodyParser(&form); err != nil {
		return httperr.BadRequest("Invalid request body")
	}
	if err := validate.Struct(form); err != nil {
		return httperr.BadRequest(validationMessage(err))
	}
	c.Locals("listingForm", form)
	return c.Next()
}

// ValidateListingUpdate checks a partial update body; absent fields are
// fine, present ones must be valid.
func ValidateListingUpdate(c *fiber.Ctx) error {
	var form models.ListingUpdateForm
	if err := c.BodyParser(&form); err != nil {
		return httperr.BadRequest("Invalid request body")
	}
	if err := validate.Struct(form); err != nil {
		return httperr.BadRequest(validationMessage(err))
	}
	c.Locals("listingUpdateForm", form)
	return c.Next()
}

// ValidateReview rejects reviews whose comment is empty after trimming
// or whose rating is out of range.
func ValidateReview(c *fiber.Ctx) error {
	var form models.ReviewForm
	if err := c.BodyParser(&form); err != nil {
		return httperr.BadRequest("Invalid request body")
	}
	form.Comment = strings.TrimSpace(form.Comment)
	if err := validate.Struct(form); err != nil {
		return httperr.BadRequest(validationMessage(err))
	}
	c.Locals("reviewForm", form)
	return c.Next()
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request data"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "oneof":
			msgs = append(msgs, field+" must be one of the allowed values")
		case "gte", "min":
			msgs = append(msgs, field+" is below the allowed minimum")
		case "max":
			msgs = append(msgs, field+" is above the allowed maximum")
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return strings.Join(msgs, ",")
}
