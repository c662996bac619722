// Package routes assembles the HTTP application.
package routes

import (
	"time"

	"cleaning-supplies-api/auth"
	orderController "cleaning-supplies-api/controllers/orders"
	productsController "cleaning-supplies-api/controllers/products"
	reviewController "cleaning-supplies-api/controllers/reviews"
	userController "cleaning-supplies-api/controllers/user"
	"cleaning-supplies-api/events"
	"cleaning-supplies-api/middlewares"
	"cleaning-supplies-api/responses"
	"cleaning-supplies-api/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// isoMillis matches the ISO-8601 form with milliseconds, e.g. 2026-01-02T03:04:05.000Z.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Deps is everything the routes need. Cache and Events may be nil.
type Deps struct {
	Store       store.Store
	Hasher      *auth.Hasher
	Tokens      *auth.Issuer
	Cache       productsController.BrandCache
	Events      events.Publisher
	RequireAuth bool
	// Quiet turns off the request log.
	Quiet bool
}

func New(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "cleaning-supplies-api",
		UnescapePath: true,
	})

	app.Use(recover.New())
	if !deps.Quiet {
		app.Use(logger.New())
	}
	app.Use(cors.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(responses.StatusResponse{
			Message:   "Server is running smoothly",
			Timestamp: time.Now().UTC().Format(isoMillis),
		})
	})

	guard := middlewares.Optional(deps.RequireAuth, deps.Tokens)
	api := app.Group("/api/v1")

	UserRoute(api, userController.NewController(deps.Store, deps.Hasher, deps.Tokens, deps.Events))
	ProductsRoute(api, productsController.NewController(deps.Store, deps.Cache, deps.Events), guard)
	OrderRoutes(api, orderController.NewController(deps.Store, deps.Store, deps.Events), guard)
	ReviewRoutes(api, reviewController.NewController(deps.Store, deps.Events), guard)

	return app
}
