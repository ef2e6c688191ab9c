package middleware

import (
	"strings"

	"herbalgarden/internal/apperr"
	"herbalgarden/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserIDKey is the Fiber locals key holding the authenticated user id.
const UserIDKey = "user_id"

// TokenValidator checks a bearer token and returns its claims.
type TokenValidator interface {
	ValidateToken(tokenString string) (map[string]interface{}, error)
}

// validatorFunc adapts AuthService, whose claims type is jwt.MapClaims.
type validatorFunc func(string) (map[string]interface{}, error)

func (f validatorFunc) ValidateToken(s string) (map[string]interface{}, error) { return f(s) }

// FromAuthService exposes an AuthService as a TokenValidator.
func FromAuthService(authService *services.AuthService) TokenValidator {
	return validatorFunc(func(s string) (map[string]interface{}, error) {
		claims, err := authService.ValidateToken(s)
		if err != nil {
			return nil, err
		}
		return claims, nil
	})
}

func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", nil
	}
	// Expected format: "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", apperr.Unauthorized("Authorization header format must be 'Bearer <token>'")
	}
	return strings.TrimSpace(parts[1]), nil
}

func storeClaims(c *fiber.Ctx, claims map[string]interface{}) {
	if id, ok := claims["user_id"].(string); ok {
		c.Locals(UserIDKey, id)
	}
	if email, ok := claims["email"].(string); ok {
		c.Locals("email", email)
	}
}

// AuthRequired is a Fiber middleware to check for a valid JWT token.
func AuthRequired(tokens TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := bearerToken(c)
		if err != nil {
			return err
		}
		if tokenString == "" {
			return apperr.Unauthorized("Not authorized")
		}

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			return err
		}
		if id, _ := claims["user_id"].(string); id == "" {
			return apperr.Unauthorized("Not authorized, token invalid")
		}

		// Store claims in Fiber context for subsequent handlers
		storeClaims(c, claims)
		return c.Next()
	}
}

// OptionalAuth records the caller's user id when a valid bearer token is
// present. Missing or invalid tokens leave the request anonymous.
func OptionalAuth(tokens TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := bearerToken(c)
		if err != nil || tokenString == "" {
			return c.Next()
		}
		if claims, err := tokens.ValidateToken(tokenString); err == nil {
			storeClaims(c, claims)
		}
		return c.Next()
	}
}

// UserID returns the authenticated user id, or "" for anonymous requests.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}
