package middlewares

import (
	"strings"

	"cleaning-supplies-api/auth"
	"cleaning-supplies-api/responses"

	"github.com/gofiber/fiber/v2"
)

// TokenVerifier checks a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// AuthMiddleware requires a valid bearer token and stores its email and
// name in Locals under "email" and "name".
func AuthMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Extract the token from the Authorization header
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(responses.Response{
				Success: false,
				Message: "No auth token, access denied",
			})
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(responses.Response{
				Success: false,
				Message: "Invalid authorization header format",
			})
		}

		claims, err := verifier.Verify(bearerToken[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(responses.Response{
				Success: false,
				Message: "Token verification failed, access denied",
			})
		}

		c.Locals("email", claims.Email)
		c.Locals("name", claims.Name)

		return c.Next()
	}
}

// Optional returns AuthMiddleware when enabled, otherwise a handler that
// lets every request through.
func Optional(enabled bool, verifier TokenVerifier) fiber.Handler {
	if enabled {
		return AuthMiddleware(verifier)
	}
	return func(c *fiber.Ctx) error {
		return c.Next()
	}
}
