package routes

import (
	productsController "cleaning-supplies-api/controllers/products"

	"github.com/gofiber/fiber/v2"
)

// ProductsRoute mounts the catalog routes. guard runs in front of the writes.
func ProductsRoute(router fiber.Router, pc *productsController.Controller, guard fiber.Handler) {
	router.Post("/product/add-product", guard, pc.AddProduct)
	router.Patch("/product/:id", guard, pc.UpdateProduct)

	router.Get("/products", pc.GetProducts)
	router.Get("/product/:id", pc.GetProduct)

	//Brands ranked by average rating
	router.Get("/brands", pc.GetBrands)
}
