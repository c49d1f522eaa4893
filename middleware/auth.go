package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const userIDHeader = "user_id"

// userIDKey is the Locals key under which RequireUserID stores the parsed id.
const userIDKey = "userID"

// RequireUserID ensures the request carries a numeric user_id header and
// stashes the parsed id in Locals. It only validates the header shape;
// whether the user actually exists is checked by handlers that need it.
func RequireUserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(userIDHeader)
		if raw == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Missing user id",
			})
		}

		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid user id",
			})
		}

		c.Locals(userIDKey, uint(id))
		return c.Next()
	}
}

// UserID returns the id stored by RequireUserID.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(userIDKey).(uint)
	return id
}
