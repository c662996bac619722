package store

import (
	"context"
	"math"
	"testing"

	"cleaning-supplies-api/filters"
	"cleaning-supplies-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedCatalog(t *testing.T) *Memory {
	t.Helper()
	m := NewMemory()
	require.NoError(t, m.Seed(ProductsCollection,
		bson.M{"name": "mop", "brand": "acme", "price": 10.0, "rating": 4.0},
		bson.M{"name": "broom", "brand": "acme", "price": 50.0, "rating": 3.0},
		bson.M{"name": "sponge", "brand": "shine", "price": 5.0, "rating": 5.0},
		bson.M{"name": "bucket", "brand": "tidy", "price": 30.0},
		bson.M{"name": "duster", "brand": []interface{}{"acme"}, "price": 50.0, "rating": 4.5},
	))
	return m
}

func names(docs []bson.M) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d["name"].(string))
	}
	return out
}

func findWith(t *testing.T, m *Memory, params filters.Params) []string {
	t.Helper()
	docs, err := m.FindProducts(context.Background(), filters.BuildProductFilter(params))
	require.NoError(t, err)
	return names(docs)
}

func TestMemoryFindProductsWithBuiltFilters(t *testing.T) {
	m := seedCatalog(t)

	assert.Equal(t, []string{"mop", "broom", "sponge", "bucket", "duster"}, findWith(t, m, filters.Params{}))
	assert.Equal(t, []string{"mop", "broom", "duster"}, findWith(t, m, filters.Params{"brand": "acme"}))
	assert.Equal(t, []string{"mop", "broom", "sponge", "duster"}, findWith(t, m, filters.Params{"brand": []string{"acme", "shine"}}))
	assert.Equal(t, []string{"mop", "bucket"}, findWith(t, m, filters.Params{"minPrice": "10", "maxPrice": "30"}))
	assert.Equal(t, []string{"broom", "bucket", "duster"}, findWith(t, m, filters.Params{"minPrice": "30"}))
	assert.Equal(t, []string{"broom", "duster"}, findWith(t, m, filters.Params{"maxPrice": "50"}))
	assert.Equal(t, []string{"mop", "sponge", "duster"}, findWith(t, m, filters.Params{"minRating": "4"}))
}

func TestMemoryOneElementBrandListMatchesArrayValueOnly(t *testing.T) {
	m := seedCatalog(t)
	assert.Equal(t, []string{"duster"}, findWith(t, m, filters.Params{"brand": []string{"acme"}}))
}

func TestMemoryNaNMatchesNothing(t *testing.T) {
	m := seedCatalog(t)
	assert.Empty(t, findWith(t, m, filters.Params{"minPrice": "cheap"}))
	assert.Empty(t, findWith(t, m, filters.Params{"maxPrice": "cheap"}))
}

func TestMemoryEmptyResultIsNotNil(t *testing.T) {
	m := NewMemory()
	docs, err := m.FindProducts(context.Background(), bson.M{})
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestMemoryProductByIDAndUpdate(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	res, err := m.InsertProduct(ctx, bson.M{"name": "mop", "price": 10.0})
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	id, ok := res.InsertedID.(primitive.ObjectID)
	require.True(t, ok)

	upd, err := m.UpdateProduct(ctx, id, bson.M{"price": 12.0})
	require.NoError(t, err)
	assert.Equal(t, &models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, upd)

	// same value again: matched but not modified
	upd, err = m.UpdateProduct(ctx, id, bson.M{"price": 12.0})
	require.NoError(t, err)
	assert.Equal(t, int64(1), upd.MatchedCount)
	assert.Equal(t, int64(0), upd.ModifiedCount)

	doc, err := m.FindProductByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "mop", doc["name"])
	assert.Equal(t, 12.0, doc["price"])

	upd, err = m.UpdateProduct(ctx, primitive.NewObjectID(), bson.M{"price": 1.0})
	require.NoError(t, err)
	assert.Equal(t, int64(0), upd.MatchedCount)

	_, err = m.FindProductByID(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUpdateRejectsEmptyAndIDChange(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	res, err := m.InsertProduct(ctx, bson.M{"name": "mop"})
	require.NoError(t, err)
	id := res.InsertedID.(primitive.ObjectID)

	_, err = m.UpdateProduct(ctx, id, bson.M{})
	assert.Error(t, err)

	_, err = m.UpdateProduct(ctx, id, bson.M{"_id": "other"})
	assert.Error(t, err)
}

func TestMemoryInsertDoesNotAliasCallerDocument(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	doc := bson.M{"name": "mop"}
	_, err := m.InsertProduct(ctx, doc)
	require.NoError(t, err)

	doc["name"] = "changed"
	docs, err := m.FindProducts(ctx, bson.M{})
	require.NoError(t, err)
	assert.Equal(t, []string{"mop"}, names(docs))
	assert.NotContains(t, doc, "_id")
}

func TestMemoryBrandRatings(t *testing.T) {
	m := seedCatalog(t)
	rows, err := m.BrandRatings(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "shine", rows[0].ID)
	assert.InDelta(t, 5.0, *rows[0].AvgRating, 1e-9)
	assert.Equal(t, []interface{}{"acme"}, rows[1].ID)
	assert.InDelta(t, 4.5, *rows[1].AvgRating, 1e-9)
	assert.Equal(t, "acme", rows[2].ID)
	assert.InDelta(t, 3.5, *rows[2].AvgRating, 1e-9)
	assert.Equal(t, "tidy", rows[3].ID)
	assert.Nil(t, rows[3].AvgRating)
}

func TestMemoryUsersUniqueEmail(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.CreateUser(ctx, models.User{Name: "Ann", Email: "ann@example.com", Password: "h"}))
	err := m.CreateUser(ctx, models.User{Name: "Other", Email: "ann@example.com", Password: "h"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	user, err := m.FindUserByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ann", user.Name)
	assert.False(t, user.Id.IsZero())

	_, err = m.FindUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryReviewsByProduct(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	for _, doc := range []bson.M{
		{"productId": "p1", "comment": "great"},
		{"productId": "p2", "comment": "meh"},
		{"productId": "P1", "comment": "case differs"},
		{"productId": "p1", "comment": "again"},
	} {
		_, err := m.InsertReview(ctx, doc)
		require.NoError(t, err)
	}

	docs, err := m.ListReviewsByProduct(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "great", docs[0]["comment"])
	assert.Equal(t, "again", docs[1]["comment"])

	all, err := m.ListReviews(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestMemorySeed(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Seed(OrdersCollection, bson.M{"item": "mop"}))
	assert.Error(t, m.Seed("carts", bson.M{}))

	orders, err := m.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "mop", orders[0]["item"])
}

func TestMatcherNumericKinds(t *testing.T) {
	doc := bson.M{"price": int32(10)}
	assert.True(t, matches(doc, bson.M{"price": 10.0}))
	assert.True(t, matches(doc, bson.M{"price": bson.M{"$gte": 10.0, "$lte": 10.0}}))
	assert.False(t, matches(doc, bson.M{"price": bson.M{"$gte": math.NaN()}}))
	assert.False(t, matches(bson.M{}, bson.M{"price": bson.M{"$gte": 0.0}}))
	assert.True(t, matches(bson.M{}, bson.M{"price": nil}))
}
