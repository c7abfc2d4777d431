package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"wanderlust/internal/geocode"
	"wanderlust/internal/models"
	"wanderlust/internal/storage"
	"wanderlust/internal/store"
)

// ListingDetail is a listing with its references resolved, the shape
// the show page needs.
type ListingDetail struct {
	Listing models.Listing `json:"listing"`
	Owner   models.User    `json:"owner"`
	Reviews []ReviewDetail `json:"reviews"`
}

type ReviewDetail struct {
	Review models.Review `json:"review"`
	Author models.User   `json:"author"`
}

type ListingService struct {
	listings store.ListingStore
	reviews  store.ReviewStore
	users    store.UserStore
	geocoder geocode.Geocoder
	images   storage.ImageStore
	country  string
}

func NewListingService(
	listings store.ListingStore,
	reviews store.ReviewStore,
	users store.UserStore,
	geocoder geocode.Geocoder,
	images storage.ImageStore,
	country string,
) *ListingService {
	return &ListingService{
		listings: listings,
		reviews:  reviews,
		users:    users,
		geocoder: geocoder,
		images:   images,
		country:  country,
	}
}

func (s *ListingService) Index(ctx context.Context, filter store.ListingFilter) ([]models.Listing, error) {
	listings, err := s.listings.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	if listings == nil {
		listings = []models.Listing{}
	}
	return listings, nil
}

// Show resolves a listing with its owner and each review's author.
// Dangling review references are skipped rather than failing the page.
func (s *ListingService) Show(ctx context.Context, id primitive.ObjectID) (ListingDetail, error) {
	listing, err := s.listings.Get(ctx, id)
	if err != nil {
		return ListingDetail{}, err
	}

	owner, err := s.users.GetByID(ctx, listing.Owner)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return ListingDetail{}, err
	}

	details := make([]ReviewDetail, 0, len(listing.Reviews))
	for _, reviewID := range listing.Reviews {
		review, err := s.reviews.Get(ctx, reviewID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return ListingDetail{}, err
		}
		author, err := s.users.GetByID(ctx, review.Author)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return ListingDetail{}, err
		}
		details = append(details, ReviewDetail{Review: review, Author: author})
	}

	return ListingDetail{Listing: listing, Owner: owner, Reviews: details}, nil
}

// Create geocodes the composed location and persists the listing. A
// query the geocoder cannot place returns geocode.ErrNoResults and
// nothing is written.
func (s *ListingService) Create(ctx context.Context, owner primitive.ObjectID, form models.ListingForm, image *models.Image) (models.Listing, error) {
	searchText := form.Location
	if form.Country != "" {
		searchText = fmt.Sprintf("%s, %s", form.Location, form.Country)
	}

	place, err := s.geocoder.Forward(ctx, searchText, s.country)
	if err != nil {
		return models.Listing{}, err
	}

	now := time.Now()
	listing := models.Listing{
		Title:       form.Title,
		Description: form.Description,
		Price:       form.Price,
		Location:    form.Location,
		Country:     form.Country,
		Category:    form.Category,
		Geometry:    place.Geometry,
		Owner:       owner,
		Reviews:     []primitive.ObjectID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if image != nil {
		listing.Image = *image
	}

	id, err := s.listings.Insert(ctx, listing)
	if err != nil {
		return models.Listing{}, err
	}
	listing.ID = id
	return listing, nil
}

// Update applies a partial update, replacing the image metadata when a
// new upload is present.
func (s *ListingService) Update(ctx context.Context, id primitive.ObjectID, form models.ListingUpdateForm, image *models.Image) (models.Listing, error) {
	upd := store.ListingUpdate{
		Title:       form.Title,
		Description: form.Description,
		Price:       form.Price,
		Location:    form.Location,
		Country:     form.Country,
		Category:    form.Category,
		Image:       image,
	}
	return s.listings.Update(ctx, id, upd)
}

// Destroy deletes a listing and cascades to its reviews: reviews are
// removed first, then the listing, as explicit steps rather than a
// persistence hook. The stored image is removed best-effort.
func (s *ListingService) Destroy(ctx context.Context, id primitive.ObjectID) error {
	listing, err := s.listings.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.reviews.DeleteMany(ctx, listing.Reviews); err != nil {
		return err
	}
	if err := s.listings.Delete(ctx, id); err != nil {
		return err
	}

	if s.images != nil && listing.Image.Filename != "" {
		if err := s.images.Remove(ctx, listing.Image); err != nil {
			logrus.WithError(err).WithField("listing", id.Hex()).Warn("failed to remove listing image")
		}
	}
	return nil
}
