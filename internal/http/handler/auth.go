package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"entityapi/internal/model"
)

// Authenticator checks client credentials presented to the token endpoint.
type Authenticator interface {
	Authenticate(username, password string) error
}

// TokenIssuer mints a bearer token for an authenticated subject.
type TokenIssuer interface {
	Generate(subject string) (string, time.Time, error)
}

// IssueToken godoc
// @Summary Exchange client credentials for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body model.TokenRequest true "client credentials"
// @Success 200 {object} model.TokenResponse
// @Failure 400 {object} errorPayload
// @Failure 401 {object} errorPayload
// @Router /api/auth/token [post]
func IssueToken(authn Authenticator, issuer TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.TokenRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if err := req.Validate(); err != nil {
			return writeValidationError(c, err)
		}

		if err := authn.Authenticate(req.Username, req.Password); err != nil {
			return writeError(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials")
		}

		token, exp, err := issuer.Generate(req.Username)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(model.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   int64(time.Until(exp).Seconds()),
		})
	}
}
