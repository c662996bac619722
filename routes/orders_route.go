package routes

import (
	orderController "cleaning-supplies-api/controllers/orders"

	"github.com/gofiber/fiber/v2"
)

func OrderRoutes(router fiber.Router, oc *orderController.Controller, guard fiber.Handler) {
	router.Post("/order/proceed", guard, oc.ProceedOrder)
	router.Get("/orders", oc.GetOrders)
}
