package routes

import (
	reviewController "cleaning-supplies-api/controllers/reviews"

	"github.com/gofiber/fiber/v2"
)

func ReviewRoutes(router fiber.Router, rc *reviewController.Controller, guard fiber.Handler) {
	router.Post("/review/add-review", guard, rc.AddReview)
	router.Get("/review/:productId", rc.GetProductReviews)
	router.Get("/review", rc.GetReviews)
}
