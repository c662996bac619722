package store

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"cleaning-supplies-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-process Store. It understands the query subset the
// listing filter produces: field equality, $in, $gte and $lte.
type Memory struct {
	mu       sync.RWMutex
	users    []models.User
	products []bson.M
	orders   []bson.M
	reviews  []bson.M
}

func NewMemory() *Memory {
	return &Memory{}
}

// Seed appends documents straight into a collection, bypassing the API.
// Orders have no write route, so this is the only way to fill them.
func (m *Memory) Seed(collection string, docs ...bson.M) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, doc := range docs {
		doc = withID(doc)
		switch collection {
		case ProductsCollection:
			m.products = append(m.products, doc)
		case OrdersCollection:
			m.orders = append(m.orders, doc)
		case ReviewsCollection:
			m.reviews = append(m.reviews, doc)
		default:
			return fmt.Errorf("unknown collection %q", collection)
		}
	}
	return nil
}

func (m *Memory) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) CreateUser(_ context.Context, user models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	if user.Id.IsZero() {
		user.Id = primitive.NewObjectID()
	}
	m.users = append(m.users, user)
	return nil
}

func (m *Memory) InsertProduct(_ context.Context, doc bson.M) (*models.InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc = withID(doc)
	m.products = append(m.products, doc)
	return &models.InsertResult{Acknowledged: true, InsertedID: doc["_id"]}, nil
}

func (m *Memory) UpdateProduct(_ context.Context, id primitive.ObjectID, fields bson.M) (*models.UpdateResult, error) {
	if len(fields) == 0 {
		return nil, errors.New("'$set' is empty. You must specify a field like so: {$set: {<field>: ...}}")
	}
	if newID, ok := fields["_id"]; ok && newID != id {
		return nil, errors.New("Performing an update on the path '_id' would modify the immutable field '_id'")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	res := &models.UpdateResult{Acknowledged: true}
	for i, doc := range m.products {
		if doc["_id"] != id {
			continue
		}
		res.MatchedCount = 1

		updated := copyDoc(doc)
		for k, v := range fields {
			updated[k] = v
		}
		if !reflect.DeepEqual(updated, doc) {
			res.ModifiedCount = 1
			m.products[i] = updated
		}
		break
	}
	return res, nil
}

func (m *Memory) FindProducts(_ context.Context, filter bson.M) ([]bson.M, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := make([]bson.M, 0)
	for _, doc := range m.products {
		if matches(doc, filter) {
			docs = append(docs, copyDoc(doc))
		}
	}
	return docs, nil
}

func (m *Memory) FindProductByID(_ context.Context, id primitive.ObjectID) (bson.M, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, doc := range m.products {
		if doc["_id"] == id {
			return copyDoc(doc), nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) BrandRatings(_ context.Context) ([]models.BrandRating, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	type group struct {
		brand interface{}
		sum   float64
		count int
	}
	var groups []*group
	index := map[string]*group{}

	for _, doc := range m.products {
		brand := doc["brand"]
		key := fmt.Sprintf("%T:%v", brand, brand)
		g, ok := index[key]
		if !ok {
			g = &group{brand: brand}
			index[key] = g
			groups = append(groups, g)
		}
		if rating, ok := asNumber(doc["rating"]); ok {
			g.sum += rating
			g.count++
		}
	}

	rows := make([]models.BrandRating, 0, len(groups))
	for _, g := range groups {
		row := models.BrandRating{ID: g.brand}
		if g.count > 0 {
			avg := g.sum / float64(g.count)
			row.AvgRating = &avg
		}
		rows = append(rows, row)
	}

	// null sorts below every number in a descending sort
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].AvgRating, rows[j].AvgRating
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a > *b
		}
	})
	return rows, nil
}

func (m *Memory) ListOrders(_ context.Context) ([]bson.M, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyAll(m.orders), nil
}

func (m *Memory) InsertReview(_ context.Context, doc bson.M) (*models.InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc = withID(doc)
	m.reviews = append(m.reviews, doc)
	return &models.InsertResult{Acknowledged: true, InsertedID: doc["_id"]}, nil
}

func (m *Memory) ListReviews(_ context.Context) ([]bson.M, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyAll(m.reviews), nil
}

func (m *Memory) ListReviewsByProduct(_ context.Context, productID string) ([]bson.M, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := make([]bson.M, 0)
	for _, doc := range m.reviews {
		if matches(doc, bson.M{"productId": productID}) {
			docs = append(docs, copyDoc(doc))
		}
	}
	return docs, nil
}

func withID(doc bson.M) bson.M {
	out := copyDoc(doc)
	if _, ok := out["_id"]; !ok {
		out["_id"] = primitive.NewObjectID()
	}
	return out
}

func copyDoc(doc bson.M) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

func copyAll(docs []bson.M) []bson.M {
	out := make([]bson.M, 0, len(docs))
	for _, doc := range docs {
		out = append(out, copyDoc(doc))
	}
	return out
}

var _ Store = (*Memory)(nil)
