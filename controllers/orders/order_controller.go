package orderController

import (
	"cleaning-supplies-api/controllers/request"
	"cleaning-supplies-api/events"
	"cleaning-supplies-api/responses"
	"cleaning-supplies-api/store"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	Orders store.OrderStore
	// Proceeded orders are written here; see ProceedOrder.
	Reviews store.ReviewStore
	Events  events.Publisher
}

func NewController(orders store.OrderStore, reviews store.ReviewStore, publisher events.Publisher) *Controller {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Controller{Orders: orders, Reviews: reviews, Events: publisher}
}

// ProceedOrder stores the order body in the reviews collection, not in
// orders. Existing clients read proceeded orders back from there, so the
// target collection stays as it is until they move.
func (oc *Controller) ProceedOrder(c *fiber.Ctx) error {
	ctx, cancel := request.StoreContext(c)
	defer cancel()

	orderInfo, err := request.ParseDocument(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.Fail(err, "Order proceed failed"))
	}

	result, err := oc.Reviews.InsertReview(ctx, orderInfo)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.Fail(err, "Order proceed failed"))
	}

	oc.Events.Publish(events.TopicOrderProceeded, fiber.Map{
		"insertedId": result.InsertedID,
		"order":      orderInfo,
	})

	return c.Status(fiber.StatusOK).JSON(responses.Response{
		Success: true,
		Message: "Order proceed succesfully",
		Data:    result,
	})
}

func (oc *Controller) GetOrders(c *fiber.Ctx) error {
	ctx, cancel := request.StoreContext(c)
	defer cancel()

	result, err := oc.Orders.ListOrders(ctx)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.Fail(err, "product retrieved failed"))
	}

	return c.Status(fiber.StatusOK).JSON(responses.Response{
		Success: true,
		Message: "successfully retrieved orders data",
		Data:    result,
	})
}
