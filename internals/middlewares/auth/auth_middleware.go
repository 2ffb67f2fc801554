// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"artcc_backend/internals/configs"
)

// AuthRequired rejects requests without a valid bearer token. On success
// the CID and display name from the token land in Locals("cid") and
// Locals("user_name").
func AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := parseRequestToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		storeClaimsToLocals(c, claims)
		return c.Next()
	}
}

// AuthOptional parses a bearer token when one is present and continues
// anonymously otherwise. Open endpoints use it so staff members still get
// staff visibility (closed events and so on).
func AuthOptional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get("Authorization") == "" && c.Cookies("access_token") == "" {
			return c.Next()
		}
		claims, err := parseRequestToken(c)
		if err != nil {
			log.Printf("[WARN] optional auth: %v", err)
			return c.Next()
		}
		storeClaimsToLocals(c, claims)
		return c.Next()
	}
}

func parseRequestToken(c *fiber.Ctx) (jwt.MapClaims, error) {
	tokenString, err := extractBearerToken(c)
	if err != nil {
		return nil, err
	}

	secretKey := configs.JWTSecret
	if secretKey == "" {
		log.Println("[ERROR] JWT_SECRET is empty")
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Missing JWT secret")
	}

	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	}); err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
	}

	if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
	}

	return claims, nil
}
