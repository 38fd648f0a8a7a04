// Package middleware provides authentication and authorization middleware for the application.
package middleware

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"newshub/internal/config"
	"newshub/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

var (
	cfg *config.Config
	rdb *redis.Client
)

// InitMiddleware initializes authentication middleware with the given config
// and an optional Redis client used for the revoked-token list.
func InitMiddleware(c *config.Config, redisClient *redis.Client) {
	cfg = c
	rdb = redisClient
}

// BlacklistKey is the Redis key holding a revoked token's JTI.
func BlacklistKey(jti string) string {
	return "jwt:blacklist:" + jti
}

func unauthorized(c *fiber.Ctx, message string) error {
	return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewUnauthorizedError(message))
}

// parseUserID validates tokenString and returns the user ID carried in the
// subject claim. Only access tokens are accepted.
func parseUserID(ctx context.Context, tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}

	if typ, _ := claims["type"].(string); typ != "access" {
		return 0, fmt.Errorf("token is not an access token")
	}

	// User ID travels in the "sub" claim (subject claim per RFC 7519)
	subStr, ok := claims["sub"].(string)
	if !ok {
		return 0, fmt.Errorf("invalid token subject")
	}

	userIDVal, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID in token")
	}

	// Reject tokens revoked by logout
	if rdb != nil {
		if jti, _ := claims["jti"].(string); jti != "" {
			if n, err := rdb.Exists(ctx, BlacklistKey(jti)).Result(); err == nil && n > 0 {
				return 0, fmt.Errorf("token has been revoked")
			}
		}
	}

	return uint(userIDVal), nil
}

func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", fmt.Errorf("authorization header required")
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fmt.Errorf("invalid authorization header format")
	}
	return parts[1], nil
}

// AuthRequired is a middleware that enforces authentication for protected routes.
func AuthRequired(c *fiber.Ctx) error {
	tokenString, err := bearerToken(c)
	if err != nil {
		return unauthorized(c, err.Error())
	}

	userID, err := parseUserID(c.UserContext(), tokenString)
	if err != nil {
		return unauthorized(c, err.Error())
	}

	setUser(c, userID)
	return c.Next()
}

// setUser stores the user ID in locals and syncs it to the request context
// so the context-aware logger picks it up in deeper layers.
func setUser(c *fiber.Ctx, userID uint) {
	c.Locals("userID", userID)
	c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, userID))
}

// OptionalAuth resolves the user ID when a valid bearer token is present and
// continues anonymously otherwise. Feed and detail endpoints use it to
// personalize responses without requiring login.
func OptionalAuth(c *fiber.Ctx) error {
	tokenString, err := bearerToken(c)
	if err != nil {
		return c.Next()
	}

	if userID, err := parseUserID(c.UserContext(), tokenString); err == nil {
		setUser(c, userID)
	}
	return c.Next()
}
