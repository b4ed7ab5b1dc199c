package middleware

import (
	"strings"

	"kyc-identity/internal/adapters/persistence/models"
	"kyc-identity/internal/core/services"
	"kyc-identity/internal/pkg/policy"
	"kyc-identity/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// currentUserKey is the fiber.Locals key holding the resolved actor.
const currentUserKey = "currentUser"

// Authenticate resolves the bearer access token to a live user record and
// stores it in the request context. The token carries only the subject id,
// so role and status come from the store on every request.
func Authenticate(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := extractBearer(c)
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		user, err := authService.ValidateAccessToken(c.Context(), accessToken)
		if err != nil {
			return response.Unauthorized(c, "Invalid or expired access token")
		}

		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

// RequireRoles allows only actors holding one of the given roles. Admins
// pass every role gate.
func RequireRoles(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := CurrentUser(c)
		if actor == nil {
			return response.Unauthorized(c, "Unauthorized")
		}

		if !policy.RequireOneOf(actor, roles...) {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}

		return c.Next()
	}
}

// AdminOnly allows only administrators.
func AdminOnly() fiber.Handler {
	return RequireRoles(models.RoleAdmin)
}

// CurrentUser returns the actor resolved by Authenticate, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(currentUserKey).(*models.User)
	return user
}

// extractBearer pulls the access token from the Authorization header,
// falling back to the access_token cookie set by the auth handlers.
func extractBearer(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Cookies("access_token")
}
