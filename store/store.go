// Package store persists users and catalog documents.
package store

import (
	"context"
	"errors"

	"cleaning-supplies-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	UsersCollection    = "users"
	ProductsCollection = "products"
	OrdersCollection   = "orders"
	ReviewsCollection  = "reviews"
)

var (
	ErrNotFound       = errors.New("document not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

type UserStore interface {
	// FindUserByEmail returns ErrNotFound when no user has that email.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	// CreateUser returns ErrDuplicateEmail when the email is taken.
	CreateUser(ctx context.Context, user models.User) error
}

type ProductStore interface {
	InsertProduct(ctx context.Context, doc bson.M) (*models.InsertResult, error)
	UpdateProduct(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.UpdateResult, error)
	FindProducts(ctx context.Context, filter bson.M) ([]bson.M, error)
	// FindProductByID returns ErrNotFound when no product has that id.
	FindProductByID(ctx context.Context, id primitive.ObjectID) (bson.M, error)
	// BrandRatings groups products by brand with their average rating,
	// highest average first.
	BrandRatings(ctx context.Context) ([]models.BrandRating, error)
}

type OrderStore interface {
	ListOrders(ctx context.Context) ([]bson.M, error)
}

type ReviewStore interface {
	InsertReview(ctx context.Context, doc bson.M) (*models.InsertResult, error)
	ListReviews(ctx context.Context) ([]bson.M, error)
	ListReviewsByProduct(ctx context.Context, productID string) ([]bson.M, error)
}

// Store is the full set of collections the API reads and writes.
type Store interface {
	UserStore
	ProductStore
	OrderStore
	ReviewStore
}
