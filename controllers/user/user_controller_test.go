package userController

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"cleaning-supplies-api/auth"
	"cleaning-supplies-api/models"
	"cleaning-supplies-api/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type recorder struct {
	mu     sync.Mutex
	topics []string
}

func (r *recorder) Publish(topic string, _ interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.topics = append(r.topics, topic)
}

// racingUsers never finds an existing user but rejects the insert, the way
// two concurrent registrations for one email play out.
type racingUsers struct{}

func (racingUsers) FindUserByEmail(context.Context, string) (*models.User, error) {
	return nil, store.ErrNotFound
}

func (racingUsers) CreateUser(context.Context, models.User) error {
	return store.ErrDuplicateEmail
}

type brokenUsers struct{}

func (brokenUsers) FindUserByEmail(context.Context, string) (*models.User, error) {
	return nil, errors.New("connection reset")
}

func (brokenUsers) CreateUser(context.Context, models.User) error {
	return errors.New("connection reset")
}

func newApp(users store.UserStore, publisher *recorder) (*fiber.App, *auth.Issuer) {
	issuer := auth.NewIssuer("secret", time.Hour)
	uc := NewController(users, auth.NewHasher(bcrypt.MinCost), issuer, publisher)

	app := fiber.New()
	app.Post("/register", uc.Register)
	app.Post("/login", uc.Login)
	return app, issuer
}

func post(t *testing.T, app *fiber.App, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestRegister(t *testing.T) {
	users := store.NewMemory()
	rec := &recorder{}
	app, _ := newApp(users, rec)

	status, body := post(t, app, "/register", `{"name":"Ann","email":"ann@example.com","password":"pw123456"}`)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, map[string]interface{}{"success": true, "message": "User registered successfully"}, body)

	stored, err := users.FindUserByEmail(context.Background(), "ann@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "pw123456", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("pw123456")))

	status, body = post(t, app, "/register", `{"name":"Ann 2","email":"ann@example.com","password":"other"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, map[string]interface{}{"success": false, "message": "User already exists"}, body)

	assert.Equal(t, []string{"user.registered"}, rec.topics)
}

func TestRegisterRaceReportsDuplicate(t *testing.T) {
	rec := &recorder{}
	app, _ := newApp(racingUsers{}, rec)

	status, body := post(t, app, "/register", `{"name":"Ann","email":"ann@example.com","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "User already exists", body["message"])
	assert.Empty(t, rec.topics)
}

func TestRegisterStoreFailure(t *testing.T) {
	app, _ := newApp(brokenUsers{}, &recorder{})

	status, body := post(t, app, "/register", `{"name":"Ann","email":"ann@example.com","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "connection reset", body["message"])
}

func TestRegisterMalformedBody(t *testing.T) {
	app, _ := newApp(store.NewMemory(), &recorder{})

	status, body := post(t, app, "/register", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["message"])
}

func TestLogin(t *testing.T) {
	app, issuer := newApp(store.NewMemory(), &recorder{})

	status, _ := post(t, app, "/register", `{"name":"Ann","email":"ann@example.com","password":"pw123456"}`)
	require.Equal(t, http.StatusCreated, status)

	status, body := post(t, app, "/login", `{"email":"ann@example.com","password":"pw123456"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Login successful", body["message"])

	token, ok := body["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", claims.Email)
	assert.Equal(t, "Ann", claims.Name)
}

func TestLoginFailuresShareOneMessage(t *testing.T) {
	app, _ := newApp(store.NewMemory(), &recorder{})
	status, _ := post(t, app, "/register", `{"name":"Ann","email":"ann@example.com","password":"pw123456"}`)
	require.Equal(t, http.StatusCreated, status)

	wrongStatus, wrongBody := post(t, app, "/login", `{"email":"ann@example.com","password":"nope"}`)
	unknownStatus, unknownBody := post(t, app, "/login", `{"email":"bob@example.com","password":"pw123456"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongStatus)
	assert.Equal(t, http.StatusUnauthorized, unknownStatus)
	assert.Equal(t, "Invalid email or password", wrongBody["message"])
	assert.Equal(t, wrongBody, unknownBody)
	assert.NotContains(t, wrongBody, "token")
}

func TestLoginStoreFailure(t *testing.T) {
	app, _ := newApp(brokenUsers{}, &recorder{})

	status, body := post(t, app, "/login", `{"email":"ann@example.com","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "connection reset", body["message"])
}
