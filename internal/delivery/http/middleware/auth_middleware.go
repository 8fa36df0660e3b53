package middleware

import (
	"strings"

	"jobboard/internal/delivery/http/response"
	"jobboard/internal/domain/entity"
	"jobboard/internal/domain/repository"
	"jobboard/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Context keys set by Authenticate for downstream handlers.
const (
	ContextKeyUserID = "userID"
	ContextKeyRole   = "role"
)

// AuthMiddleware gates protected routes. It walks a fixed decision ladder:
// header present -> Bearer scheme -> token signature and expiry -> account
// exists -> account active -> role agrees with attached profiles. Identity
// always comes from the database, not from token claims, so accounts that
// changed after token issuance are judged by their current state.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userRepo repository.UserRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userRepo: userRepo}
}

// Authenticate is the core middleware function that validates the access token
// and loads the live account state.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c, "UNAUTHORIZED", "Authorization header is missing")
		}

		// A present but non-Bearer header is a malformed request, not an
		// authentication failure.
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.BadRequest(c, "INVALID_AUTH_SCHEME", "Authorization scheme must be Bearer")
		}

		claims, err := m.tokenSvc.ParseAccessToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "UNAUTHORIZED", "Invalid or expired token")
		}

		user, err := m.userRepo.FindByID(c.Request().Context(), claims.UserID)
		if err != nil {
			// A valid token for a deleted account reads the same as an
			// invalid token from the outside.
			if errors.Is(err, repository.ErrUserNotFound) {
				return response.Unauthorized(c, "UNAUTHORIZED", "Invalid or expired token")
			}

			return errors.Wrap(err, "failed to load user for authentication")
		}

		if !user.Active {
			return response.Forbidden(c, "ACCOUNT_DISABLED", "Account is disabled")
		}

		// Re-derive the role/profile invariant on every request instead of
		// trusting what was true at token issuance.
		if err := user.CheckProfileConsistency(); err != nil {
			return response.Forbidden(c, "ACCOUNT_MISCONFIGURED", "Account state is inconsistent")
		}

		// Set user info on the context for handlers to use
		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyRole, user.Role)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks if the user has a specific role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(ContextKeyRole).(entity.Role)
			if !ok {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: role information missing")
			}

			if role != requiredRole {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: require '"+requiredRole.String()+"' role")
			}

			return next(c)
		}
	}
}
