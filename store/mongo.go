package store

import (
	"context"
	"errors"
	"fmt"

	"cleaning-supplies-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo implements Store on top of a MongoDB database.
type Mongo struct {
	users    *mongo.Collection
	products *mongo.Collection
	orders   *mongo.Collection
	reviews  *mongo.Collection
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{
		users:    db.Collection(UsersCollection),
		products: db.Collection(ProductsCollection),
		orders:   db.Collection(OrdersCollection),
		reviews:  db.Collection(ReviewsCollection),
	}
}

// EnsureIndexes creates the unique email index that backs registration.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	_, err := m.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}
	return nil
}

func (m *Mongo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := m.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (m *Mongo) CreateUser(ctx context.Context, user models.User) error {
	_, err := m.users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (m *Mongo) InsertProduct(ctx context.Context, doc bson.M) (*models.InsertResult, error) {
	return insertOne(ctx, m.products, doc)
}

func (m *Mongo) UpdateProduct(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.UpdateResult, error) {
	res, err := m.products.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return nil, err
	}
	return &models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}, nil
}

func (m *Mongo) FindProducts(ctx context.Context, filter bson.M) ([]bson.M, error) {
	cursor, err := m.products.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return allDocuments(ctx, cursor)
}

func (m *Mongo) FindProductByID(ctx context.Context, id primitive.ObjectID) (bson.M, error) {
	var doc bson.M
	err := m.products.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (m *Mongo) BrandRatings(ctx context.Context) ([]models.BrandRating, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$brand"},
			{Key: "avgRating", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "avgRating", Value: -1}}}},
	}

	cursor, err := m.products.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	rows := make([]models.BrandRating, 0)
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (m *Mongo) ListOrders(ctx context.Context) ([]bson.M, error) {
	cursor, err := m.orders.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	return allDocuments(ctx, cursor)
}

func (m *Mongo) InsertReview(ctx context.Context, doc bson.M) (*models.InsertResult, error) {
	return insertOne(ctx, m.reviews, doc)
}

func (m *Mongo) ListReviews(ctx context.Context) ([]bson.M, error) {
	cursor, err := m.reviews.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	return allDocuments(ctx, cursor)
}

func (m *Mongo) ListReviewsByProduct(ctx context.Context, productID string) ([]bson.M, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "productId", Value: productID}}}},
	}

	cursor, err := m.reviews.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	return allDocuments(ctx, cursor)
}

func insertOne(ctx context.Context, collection *mongo.Collection, doc bson.M) (*models.InsertResult, error) {
	res, err := collection.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	return &models.InsertResult{Acknowledged: true, InsertedID: res.InsertedID}, nil
}

// allDocuments drains cursor into a non-nil slice so empty results encode as [].
func allDocuments(ctx context.Context, cursor *mongo.Cursor) ([]bson.M, error) {
	docs := make([]bson.M, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

var _ Store = (*Mongo)(nil)
