package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"wanderlust/internal/session"
	"wanderlust/internal/store"
)

// Ownership guards mutations behind resource ownership. Failures never
// raise an HTTP error page; they flash and redirect like the rest of
// the server-rendered flow.
type Ownership struct {
	listings store.ListingStore
	reviews  store.ReviewStore
	sessions *session.Manager
}

func NewOwnership(listings store.ListingStore, reviews store.ReviewStore, sessions *session.Manager) *Ownership {
	return &Ownership{listings: listings, reviews: reviews, sessions: sessions}
}

// RequireListingOwner loads the target listing and only proceeds when
// the session user owns it. The loaded listing is left in
// c.Locals("listing") for the handler.
func (o *Ownership) RequireListingOwner(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		if ferr := o.sessions.FlashError(c, "Listing not found"); ferr != nil {
			return ferr
		}
		return c.Redirect("/listings", fiber.StatusFound)
	}

	listing, err := o.listings.Get(c.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		if ferr := o.sessions.FlashError(c, "Listing not found"); ferr != nil {
			return ferr
		}
		return c.Redirect("/listings", fiber.StatusFound)
	}
	if err != nil {
		return err
	}

	userID, _ := c.Locals("user_id").(string)
	if listing.Owner.Hex() != userID {
		if ferr := o.sessions.FlashError(c, "You are not the owner of this listing"); ferr != nil {
			return ferr
		}
		return c.Redirect("/listings/"+id.Hex(), fiber.StatusFound)
	}

	c.Locals("listing", listing)
	return c.Next()
}

// RequireReviewAuthor only proceeds when the session user authored the
// target review.
func (o *Ownership) RequireReviewAuthor(c *fiber.Ctx) error {
	listingID := c.Params("id")

	reviewID, err := primitive.ObjectIDFromHex(c.Params("reviewId"))
	if err != nil {
		if ferr := o.sessions.FlashError(c, "Review not found"); ferr != nil {
			return ferr
		}
		return c.Redirect("/listings/"+listingID, fiber.StatusFound)
	}

	review, err := o.reviews.Get(c.Context(), reviewID)
	if errors.Is(err, store.ErrNotFound) {
		if ferr := o.sessions.FlashError(c, "Review not found"); ferr != nil {
			return ferr
		}
		return c.Redirect("/listings/"+listingID, fiber.StatusFound)
	}
	if err != nil {
		return err
	}

	userID, _ := c.Locals("user_id").(string)
	if review.Author.Hex() != userID {
		if ferr := o.sessions.FlashError(c, "You are not allowed to delete this review"); ferr != nil {
			return ferr
		}
		return c.Redirect("/listings/"+listingID, fiber.StatusFound)
	}

	return c.Next()
}
