package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"wanderlust/internal/models"
)

// ErrNotFound is returned when a referenced document does not exist.
var ErrNotFound = errors.New("not found")

// ListingFilter narrows an index query. Category is an exact match,
// Query a case-insensitive substring match on title or location; both
// conditions are conjunctive when present.
type ListingFilter struct {
	Category string
	Query    string
}

// ListingUpdate carries the fields of a partial update. Nil fields are
// left untouched.
type ListingUpdate struct {
	Title       *string
	Description *string
	Price       *float64
	Location    *string
	Country     *string
	Category    *string
	Geometry    *models.GeoPoint
	Image       *models.Image
}

type ListingStore interface {
	Find(ctx context.Context, filter ListingFilter) ([]models.Listing, error)
	Get(ctx context.Context, id primitive.ObjectID) (models.Listing, error)
	Insert(ctx context.Context, listing models.Listing) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, upd ListingUpdate) (models.Listing, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	PushReview(ctx context.Context, listingID, reviewID primitive.ObjectID) error
	PullReview(ctx context.Context, listingID, reviewID primitive.ObjectID) error
}

type ReviewStore interface {
	Get(ctx context.Context, id primitive.ObjectID) (models.Review, error)
	Insert(ctx context.Context, review models.Review) (primitive.ObjectID, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteMany(ctx context.Context, ids []primitive.ObjectID) error
}

type UserStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	Insert(ctx context.Context, user models.User) (primitive.ObjectID, error)
}
