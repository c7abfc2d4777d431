// Command seed wipes the listings collection and repopulates it with
// sample data owned by a seed user, for local development.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"wanderlust/internal/config"
	"wanderlust/internal/db"
	"wanderlust/internal/models"
	"wanderlust/internal/services"
	"wanderlust/internal/store"
)

var sampleListings = []models.Listing{
	{
		Title:       "Cozy Beachfront Cottage",
		Description: "Escape to this charming beachfront cottage for a relaxing getaway.",
		Image: models.Image{
			URL:      "https://images.unsplash.com/photo-1552733407-5d5c46c3bb3b",
			Filename: "seed_beachfront_cottage",
		},
		Price:    1500,
		Location: "Malibu",
		Country:  "United States",
		Category: "Rooms",
		Geometry: models.GeoPoint{Type: "Point", Coordinates: []float64{-118.7798, 34.0259}},
	},
	{
		Title:       "Mountain Retreat",
		Description: "Unplug and unwind at this peaceful mountain retreat.",
		Image: models.Image{
			URL:      "https://images.unsplash.com/photo-1571896349842-33c89424de2d",
			Filename: "seed_mountain_retreat",
		},
		Price:    1000,
		Location: "Aspen",
		Country:  "United States",
		Category: "Mountains",
		Geometry: models.GeoPoint{Type: "Point", Coordinates: []float64{-106.8175, 39.1911}},
	},
	{
		Title:       "Historic Canal House",
		Description: "Stay in a beautifully restored canal house in the old city center.",
		Image: models.Image{
			URL:      "https://images.unsplash.com/photo-1512917774080-9991f1c4c750",
			Filename: "seed_canal_house",
		},
		Price:    1800,
		Location: "Amsterdam",
		Country:  "Netherlands",
		Category: "Iconic Cities",
		Geometry: models.GeoPoint{Type: "Point", Coordinates: []float64{4.9041, 52.3676}},
	},
	{
		Title:       "Lakeside Camping Pitch",
		Description: "Pitch your tent steps from the water and fall asleep to the waves.",
		Image: models.Image{
			URL:      "https://images.unsplash.com/photo-1504280390367-361c6d9f38f4",
			Filename: "seed_lakeside_camping",
		},
		Price:    120,
		Location: "Lake Tahoe",
		Country:  "United States",
		Category: "Camping",
		Geometry: models.GeoPoint{Type: "Point", Coordinates: []float64{-120.0324, 39.0968}},
	},
}

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database, err := db.Connect(cfg.MongoURI, cfg.MongoName)
	if err != nil {
		logrus.Fatalf("MongoDB connection failed: %v", err)
	}
	defer db.Disconnect(context.Background())

	users := store.NewMongoUsers(database)
	owner, err := users.GetByUsername(ctx, "wanderlust")
	if errors.Is(err, store.ErrNotFound) {
		hashed, err := services.HashPassword("wanderlust")
		if err != nil {
			logrus.Fatalf("failed to hash seed password: %v", err)
		}
		owner = models.User{
			Username:  "wanderlust",
			Email:     "seed@wanderlust.local",
			Password:  hashed,
			CreatedAt: time.Now(),
		}
		owner.ID, err = users.Insert(ctx, owner)
		if err != nil {
			logrus.Fatalf("failed to create seed user: %v", err)
		}
	} else if err != nil {
		logrus.Fatalf("failed to look up seed user: %v", err)
	}

	if _, err := database.Collection("listings").DeleteMany(ctx, bson.M{}); err != nil {
		logrus.Fatalf("failed to clear listings: %v", err)
	}

	listings := store.NewMongoListings(database)
	now := time.Now()
	for _, listing := range sampleListings {
		listing.Owner = owner.ID
		listing.CreatedAt = now
		listing.UpdatedAt = now
		if _, err := listings.Insert(ctx, listing); err != nil {
			logrus.Fatalf("failed to insert %q: %v", listing.Title, err)
		}
	}

	logrus.Infof("seeded %d listings owned by %s", len(sampleListings), owner.Username)
}
