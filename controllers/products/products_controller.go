package productsController

import (
	"context"
	"sync/atomic"

	"cleaning-supplies-api/controllers/request"
	"cleaning-supplies-api/events"
	"cleaning-supplies-api/filters"
	"cleaning-supplies-api/models"
	"cleaning-supplies-api/responses"
	"cleaning-supplies-api/store"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BrandCache holds the brand ranking between product writes.
type BrandCache interface {
	Get(ctx context.Context) ([]models.BrandRating, bool)
	Set(ctx context.Context, rows []models.BrandRating)
	Invalidate(ctx context.Context)
}

type Controller struct {
	Products store.ProductStore
	Cache    BrandCache
	Events   events.Publisher

	// writes counts product writes; a ranking read across a write is not cached.
	writes atomic.Uint64
}

// NewController builds a products controller. cache may be nil.
func NewController(products store.ProductStore, cache BrandCache, publisher events.Publisher) *Controller {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Controller{Products: products, Cache: cache, Events: publisher}
}

func (pc *Controller) AddProduct(c *fiber.Ctx) error {
	ctx, cancel := request.StoreContext(c)
	defer cancel()

	productData, err := request.ParseDocument(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.Fail(err, "product create failed"))
	}

	result, err := pc.Products.InsertProduct(ctx, productData)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.Fail(err, "product create failed"))
	}

	pc.invalidateBrands(ctx)
	pc.Events.Publish(events.TopicProductCreated, fiber.Map{
		"insertedId": result.InsertedID,
		"product":    productData,
	})

	return c.Status(fiber.StatusOK).JSON(responses.Response{
		Success: true,
		Message: "Product has been created",
		Data:    result,
	})
}

func (pc *Controller) UpdateProduct(c *fiber.Ctx) error {
	ctx, cancel := request.StoreContext(c)
	defer cancel()

	updatedData, err := request.ParseDocument(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.Fail(err, "product update failed"))
	}

	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.Fail(err, "product update failed"))
	}

	result, err := pc.Products.UpdateProduct(ctx, id, updatedData)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.Fail(err, "product update failed"))
	}

	if result.MatchedCount > 0 {
		pc.invalidateBrands(ctx)
		pc.Events.Publish(events.TopicProductUpdated, fiber.Map{
			"id":      id.Hex(),
			"changes": updatedData,
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.Response{
		Success: true,
		Message: "Product has been updated",
		Data:    result,
	})
}

// GetProducts lists products narrowed by the brand, price and rating query
// parameters.
func (pc *Controller) GetProducts(c *fiber.Ctx) error {
	ctx, cancel := request.StoreContext(c)
	defer cancel()

	params := filters.ParamsFromQuery(string(c.Request().URI().QueryString()))
	query := filters.BuildProductFilter(params)

	result, err := pc.Products.FindProducts(ctx, query)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.Fail(err, "product retrieved failed"))
	}

	return c.Status(fiber.StatusOK).JSON(responses.Response{
		Success: true,
		Message: "successfully retrieved products data",
		Data:    result,
	})
}

// GetBrands ranks brands by average product rating, best first.
func (pc *Controller) GetBrands(c *fiber.Ctx) error {
	ctx, cancel := request.StoreContext(c)
	defer cancel()

	if pc.Cache != nil {
		if rows, ok := pc.Cache.Get(ctx); ok {
			return brandsResponse(c, rows)
		}
	}

	seen := pc.writes.Load()
	rows, err := pc.Products.BrandRatings(ctx)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.Fail(err, "brands data retrieved failed"))
	}

	if pc.Cache != nil && pc.writes.Load() == seen {
		pc.Cache.Set(ctx, rows)
	}
	return brandsResponse(c, rows)
}

func brandsResponse(c *fiber.Ctx, rows []models.BrandRating) error {
	return c.Status(fiber.StatusOK).JSON(responses.Response{
		Success: true,
		Message: "successfully retrieved brands data",
		Data:    rows,
	})
}

func (pc *Controller) invalidateBrands(ctx context.Context) {
	pc.writes.Add(1)
	if pc.Cache != nil {
		pc.Cache.Invalidate(ctx)
	}
}
