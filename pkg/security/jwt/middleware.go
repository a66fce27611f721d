package jwt

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artemkav/moviebox/pkg/auth"
)

// Locals keys set by the auth middleware on success.
const (
	LocalCurrentUser = "currentUser"
	LocalUsername    = "username"
	LocalUserID      = "userId"
)

// NewAuthMiddleware returns a Fiber middleware that validates Bearer JWT
// (HS256) and resolves the token subject to a live user record.
// On success it sets the resolved auth.User into c.Locals("currentUser")
// along with the display name ("username") and user ID ("userId").
func NewAuthMiddleware(secret string, users auth.UserRepository) fiber.Handler {
	secretBytes := []byte(secret)
	return func(c *fiber.Ctx) error {
		// A missing Authorization header and an empty bearer value are
		// the same rejection: no token was provided.
		authHeader := c.Get("Authorization")
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenStr == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "No token provided"})
		}

		claims, err := ParseClaims(tokenStr, secretBytes)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
		}

		// The token may outlive the account it was issued for.
		user, err := users.GetByID(c.Context(), userID)
		if err != nil {
			if errors.Is(err, auth.ErrNotFound) {
				return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "User not found"})
			}
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
		}

		c.Locals(LocalCurrentUser, user)
		c.Locals(LocalUsername, claims.Name)
		c.Locals(LocalUserID, user.ID.String())
		return c.Next()
	}
}
