package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"agrilink/domain"
	"agrilink/pkg/logger"
	jsonres "agrilink/pkg/response"
	"agrilink/pkg/utils"
)

// UserResolver confirms the token subject still exists.
type UserResolver interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

const identityKey = "identity"

// AuthMiddleware parses the bearer token, checks expiry, and confirms the
// account still exists before stowing the caller's identity in the context.
func AuthMiddleware(users UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Missing authorization header", nil,
				))
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Invalid authorization format", nil,
				))
			}

			identity, errMsg := resolveIdentity(c.Request().Context(), users, tokenParts[1])
			if errMsg != "" {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", errMsg, nil,
				))
			}

			c.Set(identityKey, identity)

			return next(c)
		}
	}
}

// resolveIdentity validates a raw token and looks the subject up. Returns a
// non-empty message on failure.
func resolveIdentity(ctx context.Context, users UserResolver, tokenString string) (domain.Identity, string) {
	claims, err := utils.ParseJWT(tokenString)
	if err != nil {
		return domain.Identity{}, "Invalid token"
	}

	expAt, err := claims.GetExpirationTime()
	if err != nil || time.Now().After(expAt.Time) {
		return domain.Identity{}, "Token expired"
	}

	userIDUint, err := strconv.ParseUint(claims.UserID, 10, 64)
	if err != nil {
		logger.Error("Invalid user ID in token", err)
		return domain.Identity{}, "Invalid token"
	}

	lookupCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// token may outlive the account
	user, err := users.FindByID(lookupCtx, uint(userIDUint))
	if err != nil {
		return domain.Identity{}, "Account no longer exists"
	}

	return domain.Identity{UserID: user.ID, Name: user.Name, Role: user.Role}, ""
}

// ResolveTokenIdentity authenticates a raw token outside the HTTP
// middleware chain, for the websocket handshake.
func ResolveTokenIdentity(ctx context.Context, users UserResolver, tokenString string) (domain.Identity, error) {
	identity, errMsg := resolveIdentity(ctx, users, tokenString)
	if errMsg != "" {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return identity, nil
}

func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := c.Get(identityKey).(domain.Identity)
			if !ok || !identity.IsAdmin() {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Admin access required", nil,
				))
			}

			return next(c)
		}
	}
}

// IdentityFromContext returns the caller stored by AuthMiddleware.
func IdentityFromContext(c echo.Context) (domain.Identity, bool) {
	identity, ok := c.Get(identityKey).(domain.Identity)
	return identity, ok
}
