package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"wanderlust/internal/models"
	"wanderlust/internal/store"
)

type ReviewService struct {
	listings store.ListingStore
	reviews  store.ReviewStore
}

func NewReviewService(listings store.ListingStore, reviews store.ReviewStore) *ReviewService {
	return &ReviewService{listings: listings, reviews: reviews}
}

// Create appends a new review to the listing's review list.
func (s *ReviewService) Create(ctx context.Context, listingID, author primitive.ObjectID, form models.ReviewForm) (models.Review, error) {
	if _, err := s.listings.Get(ctx, listingID); err != nil {
		return models.Review{}, err
	}

	review := models.Review{
		Comment:   form.Comment,
		Rating:    form.Rating,
		Author:    author,
		CreatedAt: time.Now(),
	}
	id, err := s.reviews.Insert(ctx, review)
	if err != nil {
		return models.Review{}, err
	}
	review.ID = id

	if err := s.listings.PushReview(ctx, listingID, id); err != nil {
		return models.Review{}, err
	}
	return review, nil
}

// Destroy pulls the review out of the listing's list and deletes the
// review document.
func (s *ReviewService) Destroy(ctx context.Context, listingID, reviewID primitive.ObjectID) error {
	if err := s.listings.PullReview(ctx, listingID, reviewID); err != nil {
		return err
	}
	return s.reviews.Delete(ctx, reviewID)
}
