package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"wanderlust/internal/models"
	"wanderlust/internal/services"
	"wanderlust/internal/session"
	"wanderlust/internal/store"
)

type ReviewHandler struct {
	svc      *services.ReviewService
	sessions *session.Manager
}

func NewReviewHandler(svc *services.ReviewService, sessions *session.Manager) *ReviewHandler {
	return &ReviewHandler{svc: svc, sessions: sessions}
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	listingID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return h.listingNotFound(c)
	}
	author, err := currentUserID(c)
	if err != nil {
		return err
	}
	form := c.Locals("reviewForm").(models.ReviewForm)

	if _, err := h.svc.Create(c.Context(), listingID, author, form); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return h.listingNotFound(c)
		}
		return err
	}

	if err := h.sessions.FlashSuccess(c, "New review created!"); err != nil {
		return err
	}
	return c.Redirect("/listings/"+listingID.Hex(), fiber.StatusFound)
}

func (h *ReviewHandler) Destroy(c *fiber.Ctx) error {
	listingID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return h.listingNotFound(c)
	}
	reviewID, err := primitive.ObjectIDFromHex(c.Params("reviewId"))
	if err != nil {
		return c.Redirect("/listings/"+listingID.Hex(), fiber.StatusFound)
	}

	if err := h.svc.Destroy(c.Context(), listingID, reviewID); err != nil {
		return err
	}

	if err := h.sessions.FlashSuccess(c, "Review deleted"); err != nil {
		return err
	}
	return c.Redirect("/listings/"+listingID.Hex(), fiber.StatusFound)
}

func (h *ReviewHandler) listingNotFound(c *fiber.Ctx) error {
	if err := h.sessions.FlashError(c, "Listing not found"); err != nil {
		return err
	}
	return c.Redirect("/listings", fiber.StatusFound)
}
