package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wanderlust/internal/models"
)

// Mongo-backed stores. One type per collection, constructed from the
// shared database handle.

type MongoListings struct {
	coll *mongo.Collection
}

func NewMongoListings(db *mongo.Database) *MongoListings {
	return &MongoListings{coll: db.Collection("listings")}
}

func (s *MongoListings) Find(ctx context.Context, filter ListingFilter) ([]models.Listing, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Query != "" {
		query["$or"] = bson.A{
			bson.M{"title": bson.M{"$regex": filter.Query, "$options": "i"}},
			bson.M{"location": bson.M{"$regex": filter.Query, "$options": "i"}},
		}
	}

	cursor, err := s.coll.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var listings []models.Listing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func (s *MongoListings) Get(ctx context.Context, id primitive.ObjectID) (models.Listing, error) {
	var listing models.Listing
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&listing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Listing{}, ErrNotFound
	}
	return listing, err
}

func (s *MongoListings) Insert(ctx context.Context, listing models.Listing) (primitive.ObjectID, error) {
	if listing.ID.IsZero() {
		listing.ID = primitive.NewObjectID()
	}
	if listing.Reviews == nil {
		listing.Reviews = []primitive.ObjectID{}
	}
	_, err := s.coll.InsertOne(ctx, listing)
	return listing.ID, err
}

func (s *MongoListings) Update(ctx context.Context, id primitive.ObjectID, upd ListingUpdate) (models.Listing, error) {
	set := bson.M{"updated_at": time.Now()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.Location != nil {
		set["location"] = *upd.Location
	}
	if upd.Country != nil {
		set["country"] = *upd.Country
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Geometry != nil {
		set["geometry"] = *upd.Geometry
	}
	if upd.Image != nil {
		set["image"] = *upd.Image
	}

	after := options.After
	var listing models.Listing
	err := s.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&listing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Listing{}, ErrNotFound
	}
	return listing, err
}

func (s *MongoListings) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoListings) PushReview(ctx context.Context, listingID, reviewID primitive.ObjectID) error {
	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": listingID}, bson.M{"$push": bson.M{"reviews": reviewID}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoListings) PullReview(ctx context.Context, listingID, reviewID primitive.ObjectID) error {
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": listingID}, bson.M{"$pull": bson.M{"reviews": reviewID}})
	return err
}

type MongoReviews struct {
	coll *mongo.Collection
}

func NewMongoReviews(db *mongo.Database) *MongoReviews {
	return &MongoReviews{coll: db.Collection("reviews")}
}

func (s *MongoReviews) Get(ctx context.Context, id primitive.ObjectID) (models.Review, error) {
	var review models.Review
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Review{}, ErrNotFound
	}
	return review, err
}

func (s *MongoReviews) Insert(ctx context.Context, review models.Review) (primitive.ObjectID, error) {
	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, review)
	return review.ID, err
}

func (s *MongoReviews) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *MongoReviews) DeleteMany(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return err
}

type MongoUsers struct {
	coll *mongo.Collection
}

func NewMongoUsers(db *mongo.Database) *MongoUsers {
	return &MongoUsers{coll: db.Collection("users")}
}

func (s *MongoUsers) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	return user, err
}

func (s *MongoUsers) GetByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	return user, err
}

func (s *MongoUsers) Insert(ctx context.Context, user models.User) (primitive.ObjectID, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, user)
	return user.ID, err
}
