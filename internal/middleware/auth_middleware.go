package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/session"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/pkg/jwt"
)

// RequireAuth validates the JWT and the session claim inside it before any
// resource logic runs. Session validation is independent of the resource a
// request targets and short-circuits the whole pipeline on failure.
func RequireAuth(sessions *session.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": jwt.ErrMissingToken.Error()})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// Check the session claim against the account's single session slot.
		if err := sessions.Validate(c.UserContext(), claims.AccountID, claims.SessionToken); err != nil {
			switch {
			case errors.Is(err, session.ErrMissingClaim):
				return c.Status(401).JSON(fiber.Map{"error": "Token carries no session claim"})
			case errors.Is(err, session.ErrNoSuchAccount):
				return c.Status(401).JSON(fiber.Map{"error": "Account not found"})
			case errors.Is(err, session.ErrStaleToken):
				return c.Status(401).JSON(fiber.Map{"error": "Session expired (logged in on another device)"})
			default:
				return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
			}
		}

		// Set account info in context for downstream handlers
		c.Locals("account_id", claims.AccountID.String())
		c.Locals("account_email", claims.Email)

		return c.Next()
	}
}
