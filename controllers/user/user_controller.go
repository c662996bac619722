package userController

import (
	"errors"

	"cleaning-supplies-api/controllers/request"
	"cleaning-supplies-api/events"
	"cleaning-supplies-api/models"
	"cleaning-supplies-api/responses"
	"cleaning-supplies-api/store"

	"github.com/gofiber/fiber/v2"
)

const (
	msgUserExists         = "User already exists"
	msgRegistered         = "User registered successfully"
	msgInvalidCredentials = "Invalid email or password"
	msgLoggedIn           = "Login successful"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
}

type TokenIssuer interface {
	Issue(email, name string) (string, error)
}

type Controller struct {
	Users  store.UserStore
	Hasher PasswordHasher
	Tokens TokenIssuer
	Events events.Publisher
}

func NewController(users store.UserStore, hasher PasswordHasher, tokens TokenIssuer, publisher events.Publisher) *Controller {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Controller{Users: users, Hasher: hasher, Tokens: tokens, Events: publisher}
}

// Register creates a user with a hashed password. The early lookup gives the
// usual answer; the unique email index catches registrations that race past it.
func (uc *Controller) Register(c *fiber.Ctx) error {
	ctx, cancel := request.StoreContext(c)
	defer cancel()

	var reqBody struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&reqBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.Fail(err, "Invalid request format"))
	}

	_, err := uc.Users.FindUserByEmail(ctx, reqBody.Email)
	if err == nil {
		return userExists(c)
	}
	if !errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusBadRequest).JSON(responses.Fail(err, "Error checking user existence"))
	}

	hashedPassword, err := uc.Hasher.Hash(reqBody.Password)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.Fail(err, "Error hashing password"))
	}

	err = uc.Users.CreateUser(ctx, models.User{
		Name:     reqBody.Name,
		Email:    reqBody.Email,
		Password: hashedPassword,
	})
	if errors.Is(err, store.ErrDuplicateEmail) {
		return userExists(c)
	}
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.Fail(err, "Error in saving user"))
	}

	uc.Events.Publish(events.TopicUserRegistered, fiber.Map{
		"name":  reqBody.Name,
		"email": reqBody.Email,
	})

	return c.Status(fiber.StatusCreated).JSON(responses.Response{
		Success: true,
		Message: msgRegistered,
	})
}

// Login answers unknown emails and wrong passwords with the same message so
// the response does not reveal which accounts exist.
func (uc *Controller) Login(c *fiber.Ctx) error {
	ctx, cancel := request.StoreContext(c)
	defer cancel()

	var reqBody struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&reqBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.Fail(err, "Invalid request format"))
	}

	existingUser, err := uc.Users.FindUserByEmail(ctx, reqBody.Email)
	if errors.Is(err, store.ErrNotFound) {
		return invalidCredentials(c)
	}
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.Fail(err, "Error fetching from database"))
	}

	ok, err := uc.Hasher.Compare(existingUser.Password, reqBody.Password)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.Fail(err, "Error checking password"))
	}
	if !ok {
		return invalidCredentials(c)
	}

	token, err := uc.Tokens.Issue(existingUser.Email, existingUser.Name)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.Fail(err, "Error while generating token"))
	}

	return c.Status(fiber.StatusOK).JSON(responses.LoginResponse{
		Success: true,
		Message: msgLoggedIn,
		Token:   token,
	})
}

func userExists(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(responses.Response{
		Success: false,
		Message: msgUserExists,
	})
}

func invalidCredentials(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(responses.Response{
		Success: false,
		Message: msgInvalidCredentials,
	})
}
