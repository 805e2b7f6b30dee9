package exts

import (
	"fmt"
	"strings"

	"git.solsynth.dev/hypernet/showcase/pkg/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

type AccountClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// ReadToken verifies a session token issued by the identity provider and
// returns the account it belongs to.
func ReadToken(token string) (models.Account, error) {
	secret := viper.GetString("security.jwt_secret")
	if len(secret) == 0 {
		return models.Account{}, fmt.Errorf("session token reader is not configured")
	}

	var claims AccountClaims
	if _, err := jwt.ParseWithClaims(token, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})); err != nil {
		return models.Account{}, err
	}

	if len(claims.Subject) == 0 {
		return models.Account{}, fmt.Errorf("token has no subject")
	}
	return models.Account{ID: claims.Subject, Name: claims.Name}, nil
}

// ContextMiddleware puts the account of a valid bearer token into the locals.
// Requests without a token stay anonymous.
func ContextMiddleware(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if len(header) == 0 {
		return c.Next()
	}

	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
	}
	account, err := ReadToken(strings.TrimSpace(token))
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, fmt.Sprintf("invalid session token: %v", err))
	}

	c.Locals("user", account)
	return c.Next()
}

func EnsureAuthenticated(c *fiber.Ctx) error {
	if _, ok := c.Locals("user").(models.Account); !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	return nil
}

// GetAccount returns the caller, or nil for anonymous requests.
func GetAccount(c *fiber.Ctx) *models.Account {
	if user, ok := c.Locals("user").(models.Account); ok {
		return &user
	}
	return nil
}
