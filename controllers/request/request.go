// Package request holds the pieces every controller uses to read a request.
package request

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
)

// StoreTimeout bounds every store call made while serving a request.
const StoreTimeout = 10 * time.Second

func StoreContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), StoreTimeout)
}

// ParseDocument decodes a free-form JSON object body. A body that is empty
// or not sent as JSON yields an empty document.
func ParseDocument(c *fiber.Ctx) (bson.M, error) {
	doc := bson.M{}

	contentType := strings.ToLower(c.Get(fiber.HeaderContentType))
	body := c.Body()
	if !strings.HasPrefix(contentType, fiber.MIMEApplicationJSON) || len(bytes.TrimSpace(body)) == 0 {
		return doc, nil
	}

	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		// the literal null
		doc = bson.M{}
	}
	return doc, nil
}
