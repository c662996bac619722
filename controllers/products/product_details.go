package productsController

import (
	"errors"

	"cleaning-supplies-api/controllers/request"
	"cleaning-supplies-api/responses"
	"cleaning-supplies-api/store"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetProduct fetches one product by id. An unknown id is still a success,
// answered without data.
func (pc *Controller) GetProduct(c *fiber.Ctx) error {
	ctx, cancel := request.StoreContext(c)
	defer cancel()

	// Convert the id string to an ObjectID
	objectId, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.Fail(err, "supply product failed"))
	}

	product, err := pc.Products.FindProductByID(ctx, objectId)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusBadRequest).JSON(responses.Fail(err, "supply product failed"))
	}

	resp := responses.Response{
		Success: true,
		Message: "successfully product supply data",
	}
	if product != nil {
		resp.Data = product
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}
