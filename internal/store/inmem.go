package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"wanderlust/internal/models"
)

// In-memory store implementations. They back the handler and service
// tests and preserve insertion order the way an unindexed Mongo scan
// does.

type MemListings struct {
	mu    sync.Mutex
	order []primitive.ObjectID
	items map[primitive.ObjectID]models.Listing
}

func NewMemListings() *MemListings {
	return &MemListings{items: make(map[primitive.ObjectID]models.Listing)}
}

func (s *MemListings) Find(_ context.Context, filter ListingFilter) ([]models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Listing
	q := strings.ToLower(filter.Query)
	for _, id := range s.order {
		l := s.items[id]
		if filter.Category != "" && l.Category != filter.Category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(l.Title), q) &&
			!strings.Contains(strings.ToLower(l.Location), q) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (s *MemListings) Get(_ context.Context, id primitive.ObjectID) (models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.items[id]
	if !ok {
		return models.Listing{}, ErrNotFound
	}
	return l, nil
}

func (s *MemListings) Insert(_ context.Context, listing models.Listing) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if listing.ID.IsZero() {
		listing.ID = primitive.NewObjectID()
	}
	if listing.Reviews == nil {
		listing.Reviews = []primitive.ObjectID{}
	}
	s.items[listing.ID] = listing
	s.order = append(s.order, listing.ID)
	return listing.ID, nil
}

func (s *MemListings) Update(_ context.Context, id primitive.ObjectID, upd ListingUpdate) (models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.items[id]
	if !ok {
		return models.Listing{}, ErrNotFound
	}
	if upd.Title != nil {
		l.Title = *upd.Title
	}
	if upd.Description != nil {
		l.Description = *upd.Description
	}
	if upd.Price != nil {
		l.Price = *upd.Price
	}
	if upd.Location != nil {
		l.Location = *upd.Location
	}
	if upd.Country != nil {
		l.Country = *upd.Country
	}
	if upd.Category != nil {
		l.Category = *upd.Category
	}
	if upd.Geometry != nil {
		l.Geometry = *upd.Geometry
	}
	if upd.Image != nil {
		l.Image = *upd.Image
	}
	l.UpdatedAt = time.Now()
	s.items[id] = l
	return l, nil
}

func (s *MemListings) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemListings) PushReview(_ context.Context, listingID, reviewID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.items[listingID]
	if !ok {
		return ErrNotFound
	}
	l.Reviews = append(l.Reviews, reviewID)
	s.items[listingID] = l
	return nil
}

func (s *MemListings) PullReview(_ context.Context, listingID, reviewID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.items[listingID]
	if !ok {
		return nil
	}
	for i, rid := range l.Reviews {
		if rid == reviewID {
			l.Reviews = append(l.Reviews[:i], l.Reviews[i+1:]...)
			break
		}
	}
	s.items[listingID] = l
	return nil
}

type MemReviews struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]models.Review
}

func NewMemReviews() *MemReviews {
	return &MemReviews{items: make(map[primitive.ObjectID]models.Review)}
}

func (s *MemReviews) Get(_ context.Context, id primitive.ObjectID) (models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.items[id]
	if !ok {
		return models.Review{}, ErrNotFound
	}
	return r, nil
}

func (s *MemReviews) Insert(_ context.Context, review models.Review) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}
	s.items[review.ID] = review
	return review.ID, nil
}

func (s *MemReviews) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, id)
	return nil
}

func (s *MemReviews) DeleteMany(_ context.Context, ids []primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		delete(s.items, id)
	}
	return nil
}

type MemUsers struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]models.User
}

func NewMemUsers() *MemUsers {
	return &MemUsers{items: make(map[primitive.ObjectID]models.User)}
}

func (s *MemUsers) GetByID(_ context.Context, id primitive.ObjectID) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.items[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

func (s *MemUsers) GetByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.items {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *MemUsers) Insert(_ context.Context, user models.User) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.items[user.ID] = user
	return user.ID, nil
}
