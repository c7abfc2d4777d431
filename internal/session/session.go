package session

import (
	"time"

	fsession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/storage/mongodb"
)

// NewMongoStore builds a session store persisted in the application
// database. Cookies live 7 days and are HttpOnly.
func NewMongoStore(mongoURI, dbName string) *fsession.Store {
	storage := mongodb.New(mongodb.Config{
		ConnectionURI: mongoURI,
		Database:      dbName,
		Collection:    "sessions",
		Reset:         false,
	})

	return fsession.New(fsession.Config{
		Storage:        storage,
		Expiration:     7 * 24 * time.Hour,
		KeyLookup:      "cookie:session_id",
		CookieHTTPOnly: true,
	})
}

// NewMemoryStore is a volatile store for tests and local development.
func NewMemoryStore() *fsession.Store {
	return fsession.New(fsession.Config{
		Expiration:     7 * 24 * time.Hour,
		KeyLookup:      "cookie:session_id",
		CookieHTTPOnly: true,
	})
}
