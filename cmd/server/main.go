package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"wanderlust/internal/app"
	"wanderlust/internal/config"
	"wanderlust/internal/db"
	"wanderlust/internal/geocode"
	"wanderlust/internal/logger"
	"wanderlust/internal/services"
	"wanderlust/internal/session"
	"wanderlust/internal/storage"
	"wanderlust/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found, using environment variables")
	}
	logger.Setup()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	database, err := db.Connect(cfg.MongoURI, cfg.MongoName)
	if err != nil {
		logrus.Fatalf("MongoDB connection failed: %v", err)
	}
	defer db.Disconnect(context.Background())

	images, err := storage.NewMinioStore(cfg)
	if err != nil {
		logrus.Fatalf("MinIO connection failed: %v", err)
	}

	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := cache.Ping(context.Background()).Err(); err != nil {
			logrus.WithError(err).Warn("Redis unavailable, geocode caching disabled")
			cache = nil
		}
	}

	listings := store.NewMongoListings(database)
	reviews := store.NewMongoReviews(database)
	users := store.NewMongoUsers(database)

	geocoder := geocode.NewMapbox(cfg.MapToken, cache)
	sessions := session.NewManager(session.NewMongoStore(cfg.MongoURI, cfg.MongoName))

	server := app.New(app.Deps{
		Sessions:     sessions,
		Auth:         services.NewAuthService(users, cfg.JWTSecret),
		Listings:     services.NewListingService(listings, reviews, users, geocoder, images, cfg.GeocodeCountry),
		Reviews:      services.NewReviewService(listings, reviews),
		ListingStore: listings,
		ReviewStore:  reviews,
		Images:       images,
	})

	logrus.Infof("server listening on :%s", cfg.Port)
	if err := server.Listen(":" + cfg.Port); err != nil {
		logrus.Fatalf("server error: %v", err)
	}
}
