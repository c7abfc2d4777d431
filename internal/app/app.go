package app

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"wanderlust/internal/handlers"
	"wanderlust/internal/httperr"
	"wanderlust/internal/middleware"
	"wanderlust/internal/services"
	"wanderlust/internal/session"
	"wanderlust/internal/storage"
	"wanderlust/internal/store"
)

// Deps are the wired collaborators the HTTP layer is built from. main
// assembles them against Mongo and MinIO; tests swap in fakes.
type Deps struct {
	Sessions *session.Manager
	Auth     *services.AuthService
	Listings *services.ListingService
	Reviews  *services.ReviewService

	ListingStore store.ListingStore
	ReviewStore  store.ReviewStore
	Images       storage.ImageStore
}

// New builds the Fiber app with the full middleware pipeline and route
// table. Validation and authorization middleware always run before the
// controller that mutates state.
func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "wanderlust",
		ErrorHandler: httperr.Handler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	auth := middleware.NewAuth(d.Sessions, d.Auth)
	ownership := middleware.NewOwnership(d.ListingStore, d.ReviewStore, d.Sessions)

	authHandler := handlers.NewAuthHandler(d.Auth, d.Sessions)
	listingHandler := handlers.NewListingHandler(d.Listings, d.Sessions, d.Images)
	reviewHandler := handlers.NewReviewHandler(d.Reviews, d.Sessions)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Hi, I'm root")
	})

	app.Get("/signup", authHandler.SignupForm)
	app.Post("/signup", authHandler.Signup)
	app.Get("/login", authHandler.LoginForm)
	app.Post("/login", authHandler.Login)
	app.Post("/logout", authHandler.Logout)

	listings := app.Group("/listings")
	listings.Get("/", listingHandler.Index)
	listings.Get("/new", auth.RequireLogin, listingHandler.New)
	listings.Post("/", auth.RequireLogin, middleware.ValidateListing, listingHandler.Create)
	listings.Get("/:id", listingHandler.Show)
	listings.Get("/:id/edit", auth.RequireLogin, ownership.RequireListingOwner, listingHandler.Edit)
	listings.Put("/:id", auth.RequireLogin, middleware.ValidateListingUpdate, ownership.RequireListingOwner, listingHandler.Update)
	listings.Delete("/:id", auth.RequireLogin, ownership.RequireListingOwner, listingHandler.Destroy)

	listings.Post("/:id/reviews", auth.RequireLogin, middleware.ValidateReview, reviewHandler.Create)
	listings.Delete("/:id/reviews/:reviewId", auth.RequireLogin, ownership.RequireReviewAuthor, reviewHandler.Destroy)

	app.Use(func(c *fiber.Ctx) error {
		return httperr.NotFound("Page Not Found")
	})

	return app
}
