package services_test

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"wanderlust/internal/geocode"
	"wanderlust/internal/models"
	"wanderlust/internal/services"
	"wanderlust/internal/store"
)

type stubGeocoder struct {
	noResults bool
	lastQuery string
}

func (g *stubGeocoder) Forward(_ context.Context, query, _ string) (geocode.Result, error) {
	g.lastQuery = query
	if g.noResults {
		return geocode.Result{}, geocode.ErrNoResults
	}
	return geocode.Result{
		PlaceName: query,
		Geometry:  models.GeoPoint{Type: "Point", Coordinates: []float64{77.1892, 32.2432}},
	}, nil
}

type fixture struct {
	listings  *store.MemListings
	reviews   *store.MemReviews
	users     *store.MemUsers
	geocoder  *stubGeocoder
	svc       *services.ListingService
	reviewsvc *services.ReviewService
}

func newFixture() *fixture {
	f := &fixture{
		listings: store.NewMemListings(),
		reviews:  store.NewMemReviews(),
		users:    store.NewMemUsers(),
		geocoder: &stubGeocoder{},
	}
	f.svc = services.NewListingService(f.listings, f.reviews, f.users, f.geocoder, nil, "IN")
	f.reviewsvc = services.NewReviewService(f.listings, f.reviews)
	return f
}

func (f *fixture) mustCreate(t *testing.T, owner primitive.ObjectID, title, category string) models.Listing {
	t.Helper()
	listing, err := f.svc.Create(context.Background(), owner, models.ListingForm{
		Title:    title,
		Price:    500,
		Location: "Manali",
		Country:  "India",
		Category: category,
	}, nil)
	if err != nil {
		t.Fatalf("failed to create listing: %v", err)
	}
	return listing
}

func TestCreateGeocodesLocation(t *testing.T) {
	f := newFixture()
	owner := primitive.NewObjectID()

	listing := f.mustCreate(t, owner, "Alpine Cabin", "Mountains")

	if f.geocoder.lastQuery != "Manali, India" {
		t.Errorf("expected composed query, got %q", f.geocoder.lastQuery)
	}
	if listing.Geometry.Type != "Point" || len(listing.Geometry.Coordinates) != 2 {
		t.Errorf("listing geometry not resolved: %+v", listing.Geometry)
	}
	if listing.Owner != owner {
		t.Errorf("owner not recorded")
	}
}

func TestCreateNoGeocodeResultsPersistsNothing(t *testing.T) {
	f := newFixture()
	f.geocoder.noResults = true

	_, err := f.svc.Create(context.Background(), primitive.NewObjectID(), models.ListingForm{
		Title:    "Nowhere House",
		Location: "asdfgh",
		Category: "Rooms",
	}, nil)
	if !errors.Is(err, geocode.ErrNoResults) {
		t.Fatalf("expected ErrNoResults, got %v", err)
	}

	all, err := f.listings.Find(context.Background(), store.ListingFilter{})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected no listings persisted, found %d", len(all))
	}
}

func TestIndexFilters(t *testing.T) {
	f := newFixture()
	owner := primitive.NewObjectID()
	f.mustCreate(t, owner, "Alpine Cabin", "Mountains")
	f.mustCreate(t, owner, "Seaside Villa", "Rooms")
	f.mustCreate(t, owner, "Alpine Dome", "Domes")

	byCategory, err := f.svc.Index(context.Background(), store.ListingFilter{Category: "Mountains"})
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}
	if len(byCategory) != 1 || byCategory[0].Title != "Alpine Cabin" {
		t.Errorf("category filter returned %+v", byCategory)
	}

	byQuery, err := f.svc.Index(context.Background(), store.ListingFilter{Query: "alpine"})
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}
	if len(byQuery) != 2 {
		t.Errorf("expected 2 matches for 'alpine', got %d", len(byQuery))
	}

	both, err := f.svc.Index(context.Background(), store.ListingFilter{Category: "Domes", Query: "alpine"})
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}
	if len(both) != 1 || both[0].Title != "Alpine Dome" {
		t.Errorf("conjunctive filter returned %+v", both)
	}

	none, err := f.svc.Index(context.Background(), store.ListingFilter{Category: "Castles"})
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no Castles, got %d", len(none))
	}
}

func TestUpdateIsPartial(t *testing.T) {
	f := newFixture()
	listing := f.mustCreate(t, primitive.NewObjectID(), "Alpine Cabin", "Mountains")

	price := 1200.0
	updated, err := f.svc.Update(context.Background(), listing.ID, models.ListingUpdateForm{Price: &price}, nil)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Price != 1200 {
		t.Errorf("price not updated: %v", updated.Price)
	}
	if updated.Title != "Alpine Cabin" || updated.Category != "Mountains" {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}

func TestUpdateReplacesImage(t *testing.T) {
	f := newFixture()
	listing := f.mustCreate(t, primitive.NewObjectID(), "Alpine Cabin", "Mountains")

	image := models.Image{URL: "http://images.local/new.jpg", Filename: "new.jpg"}
	updated, err := f.svc.Update(context.Background(), listing.ID, models.ListingUpdateForm{}, &image)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Image != image {
		t.Errorf("image not replaced: %+v", updated.Image)
	}
}

func TestUpdateMissingListing(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Update(context.Background(), primitive.NewObjectID(), models.ListingUpdateForm{}, nil)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDestroyCascadesReviews(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	listing := f.mustCreate(t, primitive.NewObjectID(), "Alpine Cabin", "Mountains")

	author := primitive.NewObjectID()
	first, err := f.reviewsvc.Create(ctx, listing.ID, author, models.ReviewForm{Comment: "Loved it", Rating: 5})
	if err != nil {
		t.Fatalf("failed to create review: %v", err)
	}
	second, err := f.reviewsvc.Create(ctx, listing.ID, author, models.ReviewForm{Comment: "Would return", Rating: 4})
	if err != nil {
		t.Fatalf("failed to create review: %v", err)
	}

	stored, err := f.listings.Get(ctx, listing.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(stored.Reviews) != 2 {
		t.Fatalf("expected 2 review references, got %d", len(stored.Reviews))
	}

	if err := f.svc.Destroy(ctx, listing.ID); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}

	if _, err := f.listings.Get(ctx, listing.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("listing should be gone, got %v", err)
	}
	for _, id := range []primitive.ObjectID{first.ID, second.ID} {
		if _, err := f.reviews.Get(ctx, id); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("review %s should be cascade-deleted, got %v", id.Hex(), err)
		}
	}
}

func TestShowPopulatesReferences(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ownerID, err := f.users.Insert(ctx, models.User{Username: "host", Email: "host@example.com"})
	if err != nil {
		t.Fatalf("failed to insert user: %v", err)
	}
	authorID, err := f.users.Insert(ctx, models.User{Username: "guest", Email: "guest@example.com"})
	if err != nil {
		t.Fatalf("failed to insert user: %v", err)
	}

	listing := f.mustCreate(t, ownerID, "Alpine Cabin", "Mountains")
	if _, err := f.reviewsvc.Create(ctx, listing.ID, authorID, models.ReviewForm{Comment: "Great stay", Rating: 5}); err != nil {
		t.Fatalf("failed to create review: %v", err)
	}

	// A dangling reference must not break the page.
	if err := f.listings.PushReview(ctx, listing.ID, primitive.NewObjectID()); err != nil {
		t.Fatalf("PushReview failed: %v", err)
	}

	detail, err := f.svc.Show(ctx, listing.ID)
	if err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	if detail.Owner.Username != "host" {
		t.Errorf("owner not populated: %+v", detail.Owner)
	}
	if len(detail.Reviews) != 1 {
		t.Fatalf("expected 1 resolved review, got %d", len(detail.Reviews))
	}
	if detail.Reviews[0].Author.Username != "guest" {
		t.Errorf("review author not populated: %+v", detail.Reviews[0].Author)
	}
}

func TestReviewDestroyPullsReference(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	listing := f.mustCreate(t, primitive.NewObjectID(), "Alpine Cabin", "Mountains")

	review, err := f.reviewsvc.Create(ctx, listing.ID, primitive.NewObjectID(), models.ReviewForm{Comment: "Nice", Rating: 3})
	if err != nil {
		t.Fatalf("failed to create review: %v", err)
	}

	if err := f.reviewsvc.Destroy(ctx, listing.ID, review.ID); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}

	stored, err := f.listings.Get(ctx, listing.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(stored.Reviews) != 0 {
		t.Errorf("review reference not pulled: %v", stored.Reviews)
	}
	if _, err := f.reviews.Get(ctx, review.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("review document should be deleted, got %v", err)
	}
}
