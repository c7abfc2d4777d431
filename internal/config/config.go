package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds everything the server needs from the environment.
// Load fails fast when a required secret is missing instead of limping
// along with a half-configured server.
type Config struct {
	Port string

	MongoURI  string
	MongoName string

	JWTSecret string

	MapToken       string
	GeocodeCountry string

	RedisAddr string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

func Load() (Config, error) {
	cfg := Config{
		Port:           getenv("PORT", "8080"),
		MongoURI:       os.Getenv("MONGO_URI"),
		MongoName:      getenv("MONGO_DB", "wanderlust"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		MapToken:       os.Getenv("MAP_TOKEN"),
		GeocodeCountry: getenv("GEOCODE_COUNTRY", "IN"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		MinioEndpoint:  getenv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", "minioadmin"),
		MinioBucket:    getenv("MINIO_BUCKET", "listing-images"),
		MinioUseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
	}

	var missing []string
	if cfg.MongoURI == "" {
		missing = append(missing, "MONGO_URI")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if cfg.MapToken == "" {
		missing = append(missing, "MAP_TOKEN")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
