package reviewController

import (
	"cleaning-supplies-api/controllers/request"
	"cleaning-supplies-api/events"
	"cleaning-supplies-api/responses"
	"cleaning-supplies-api/store"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	Reviews store.ReviewStore
	Events  events.Publisher
}

func NewController(reviews store.ReviewStore, publisher events.Publisher) *Controller {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Controller{Reviews: reviews, Events: publisher}
}

func (rc *Controller) AddReview(c *fiber.Ctx) error {
	ctx, cancel := request.StoreContext(c)
	defer cancel()

	reviewInfo, err := request.ParseDocument(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.Fail(err, "review add failed"))
	}

	result, err := rc.Reviews.InsertReview(ctx, reviewInfo)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.Fail(err, "review add failed"))
	}

	rc.Events.Publish(events.TopicReviewAdded, fiber.Map{
		"insertedId": result.InsertedID,
		"review":     reviewInfo,
	})

	return c.Status(fiber.StatusOK).JSON(responses.Response{
		Success: true,
		Message: "review add succesfully",
		Data:    result,
	})
}

// GetProductReviews returns the reviews whose productId equals the path
// parameter exactly.
func (rc *Controller) GetProductReviews(c *fiber.Ctx) error {
	ctx, cancel := request.StoreContext(c)
	defer cancel()

	result, err := rc.Reviews.ListReviewsByProduct(ctx, c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.Fail(err, "product reviews retrieved failed"))
	}

	return c.Status(fiber.StatusOK).JSON(responses.Response{
		Success: true,
		Message: "successfully retrieved product reviews",
		Data:    result,
	})
}

func (rc *Controller) GetReviews(c *fiber.Ctx) error {
	ctx, cancel := request.StoreContext(c)
	defer cancel()

	result, err := rc.Reviews.ListReviews(ctx)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.Fail(err, "product reviews retrieved failed"))
	}

	return c.Status(fiber.StatusOK).JSON(responses.Response{
		Success: true,
		Message: "successfully retrieved product reviews",
		Data:    result,
	})
}
