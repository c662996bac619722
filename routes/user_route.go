package routes

import (
	userController "cleaning-supplies-api/controllers/user"

	"github.com/gofiber/fiber/v2"
)

func UserRoute(router fiber.Router, uc *userController.Controller) {
	router.Post("/register", uc.Register)
	router.Post("/login", uc.Login)
}
