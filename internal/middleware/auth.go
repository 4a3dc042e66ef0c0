package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/foxxcyber/menu-board/internal/config"
	"github.com/foxxcyber/menu-board/internal/models"
)

// JWTClaims represents the claims in our JWT token
type JWTClaims struct {
	UserID int         `json:"user_id"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 token for user valid for ttl
func GenerateToken(secret string, ttl time.Duration, user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   user.Email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseToken validates a token string and returns its claims
func ParseToken(secret, tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func deny(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"ok":    false,
		"error": message,
		"code":  code,
	})
}

// AuthRequired middleware checks for a valid JWT token
func AuthRequired(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return deny(c, fiber.StatusUnauthorized, "unauthorized", "missing authorization header")
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return deny(c, fiber.StatusUnauthorized, "unauthorized", "invalid authorization format")
		}

		claims, err := ParseToken(cfg.JWTSecret, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			return deny(c, fiber.StatusUnauthorized, "unauthorized", "invalid or expired token")
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("user_email", claims.Email)
		c.Locals("user_role", claims.Role)

		return c.Next()
	}
}

// AuthOptional parses a bearer token if present but never rejects the request
func AuthOptional(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Next()
		}

		claims, err := ParseToken(cfg.JWTSecret, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			return c.Next()
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("user_email", claims.Email)
		c.Locals("user_role", claims.Role)

		return c.Next()
	}
}

// AdminRequired middleware checks if the user has admin role
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("user_role").(models.Role)
		if !ok {
			return deny(c, fiber.StatusUnauthorized, "unauthorized", "unauthorized")
		}

		if role != models.RoleAdmin {
			return deny(c, fiber.StatusForbidden, "forbidden", "admin access required")
		}

		return c.Next()
	}
}

// FeatureRequired rejects requests while the named feature flag is off
func FeatureRequired(cfg *config.Config, feature string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !cfg.FeatureEnabled(feature) {
			return deny(c, fiber.StatusNotFound, "feature_disabled", "feature "+feature+" is disabled")
		}
		return c.Next()
	}
}

// GetUserID extracts the user ID from the context
func GetUserID(c *fiber.Ctx) int {
	if id, ok := c.Locals("user_id").(int); ok {
		return id
	}
	return 0
}

// GetUserRole extracts the user role from the context
func GetUserRole(c *fiber.Ctx) models.Role {
	if role, ok := c.Locals("user_role").(models.Role); ok {
		return role
	}
	return ""
}

// IsAdmin reports whether the request carries an admin token
func IsAdmin(c *fiber.Ctx) bool {
	return GetUserRole(c) == models.RoleAdmin
}
