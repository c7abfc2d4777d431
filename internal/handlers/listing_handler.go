package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"wanderlust/internal/geocode"
	"wanderlust/internal/models"
	"wanderlust/internal/services"
	"wanderlust/internal/session"
	"wanderlust/internal/storage"
	"wanderlust/internal/store"
)

type ListingHandler struct {
	svc      *services.ListingService
	sessions *session.Manager
	images   storage.ImageStore
}

func NewListingHandler(svc *services.ListingService, sessions *session.Manager, images storage.ImageStore) *ListingHandler {
	return &ListingHandler{svc: svc, sessions: sessions, images: images}
}

// Index lists all listings, optionally narrowed by category and a
// free-text query over title and location.
func (h *ListingHandler) Index(c *fiber.Ctx) error {
	filter := store.ListingFilter{
		Category: c.Query("category"),
		Query:    c.Query("q"),
	}

	listings, err := h.svc.Index(c.Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"listings": listings,
		"category": filter.Category,
		"flash":    h.sessions.PopFlashes(c),
	})
}

// New returns the metadata the creation form needs.
func (h *ListingHandler) New(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"categories": models.Categories,
		"flash":      h.sessions.PopFlashes(c),
	})
}

func (h *ListingHandler) Create(c *fiber.Ctx) error {
	owner, err := currentUserID(c)
	if err != nil {
		return err
	}
	form := c.Locals("listingForm").(models.ListingForm)

	image, err := h.uploadedImage(c)
	if err != nil {
		return err
	}

	_, err = h.svc.Create(c.Context(), owner, form, image)
	if errors.Is(err, geocode.ErrNoResults) {
		if ferr := h.sessions.FlashError(c, "Please enter a specific city or place name"); ferr != nil {
			return ferr
		}
		return c.Redirect("/listings/new", fiber.StatusFound)
	}
	if err != nil {
		return err
	}

	if err := h.sessions.FlashSuccess(c, "Listing created successfully!"); err != nil {
		return err
	}
	return c.Redirect("/listings", fiber.StatusFound)
}

func (h *ListingHandler) Show(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return h.notFoundRedirect(c)
	}

	detail, err := h.svc.Show(c.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return h.notFoundRedirect(c)
	}
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"listing": detail.Listing,
		"owner":   detail.Owner,
		"reviews": detail.Reviews,
		"flash":   h.sessions.PopFlashes(c),
	})
}

// Edit returns the listing already loaded by the ownership guard plus
// the category enum for the form.
func (h *ListingHandler) Edit(c *fiber.Ctx) error {
	listing := c.Locals("listing").(models.Listing)
	return c.JSON(fiber.Map{
		"listing":    listing,
		"categories": models.Categories,
		"flash":      h.sessions.PopFlashes(c),
	})
}

func (h *ListingHandler) Update(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return h.notFoundRedirect(c)
	}
	form := c.Locals("listingUpdateForm").(models.ListingUpdateForm)

	image, err := h.uploadedImage(c)
	if err != nil {
		return err
	}

	listing, err := h.svc.Update(c.Context(), id, form, image)
	if errors.Is(err, store.ErrNotFound) {
		return h.notFoundRedirect(c)
	}
	if err != nil {
		return err
	}

	if err := h.sessions.FlashSuccess(c, "Listing updated successfully!"); err != nil {
		return err
	}
	return c.Redirect("/listings/"+listing.ID.Hex(), fiber.StatusFound)
}

func (h *ListingHandler) Destroy(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return h.notFoundRedirect(c)
	}

	if err := h.svc.Destroy(c.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return h.notFoundRedirect(c)
		}
		return err
	}

	if err := h.sessions.FlashSuccess(c, "Listing deleted"); err != nil {
		return err
	}
	return c.Redirect("/listings", fiber.StatusFound)
}

func (h *ListingHandler) notFoundRedirect(c *fiber.Ctx) error {
	if err := h.sessions.FlashError(c, "Listing not found"); err != nil {
		return err
	}
	return c.Redirect("/listings", fiber.StatusFound)
}

// uploadedImage sends a multipart "image" file to the media host and
// returns its metadata, or nil when the request carries no upload.
func (h *ListingHandler) uploadedImage(c *fiber.Ctx) (*models.Image, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil || fileHeader == nil {
		return nil, nil
	}

	image, err := h.images.Upload(c.Context(), fileHeader)
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func currentUserID(c *fiber.Ctx) (primitive.ObjectID, error) {
	uid, _ := c.Locals("user_id").(string)
	return primitive.ObjectIDFromHex(uid)
}
