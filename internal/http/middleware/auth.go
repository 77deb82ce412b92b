package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"entityapi/internal/auth"
)

// SubjectLocalKey is the key under which Auth stores the verified token subject.
const SubjectLocalKey = "auth_subject"

const bearerPrefix = "bearer "

// Auth rejects requests without a valid bearer token with 401 before they
// reach any handler. Paths equal to, or nested under, one of publicPrefixes
// pass through unauthenticated. No session or cookie state is kept.
func Auth(verifier auth.TokenVerifier, publicPrefixes ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isPublic(c.Path(), publicPrefixes) {
			return c.Next()
		}

		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		id, err := verifier.Verify(token)
		if err != nil {
			c.Set(fiber.HeaderWWWAuthenticate, `Bearer error="invalid_token"`)
			return fiber.NewError(fiber.StatusUnauthorized, "invalid bearer token")
		}

		c.Locals(SubjectLocalKey, id.Subject)
		return c.Next()
	}
}

// GetSubject returns the subject stored by Auth, or "" for public routes.
func GetSubject(c *fiber.Ctx) string {
	sub, _ := c.Locals(SubjectLocalKey).(string)
	return sub
}

func bearerToken(header string) (string, bool) {
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}

func isPublic(path string, prefixes []string) bool {
	for _, p := range prefixes {
		p = strings.TrimSuffix(p, "/")
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
