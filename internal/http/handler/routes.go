package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"entityapi/internal/auth"
	"entityapi/internal/http/middleware"
	"entityapi/internal/service"
)

// AuthRoutePrefix is the only API prefix reachable without a bearer token.
const AuthRoutePrefix = "/api/auth"

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	DB       *sql.DB
	Entities service.EntityService
	Verifier auth.TokenVerifier
	Authn    Authenticator
	Issuer   TokenIssuer
	// PublicPaths lists extra path prefixes served without authentication,
	// e.g. health checks, /metrics and the docs UI. They must expose no entity data.
	PublicPaths []string
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Probes are
// mounted ahead of the auth gate; everything registered after it requires a
// bearer token unless it sits under AuthRoutePrefix or d.PublicPaths.
func RegisterRoutes(app fiber.Router, d Deps) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())

	public := append([]string{AuthRoutePrefix}, d.PublicPaths...)
	app.Use(middleware.Auth(d.Verifier, public...))

	authGroup := app.Group(AuthRoutePrefix)
	authGroup.Post("/token", IssueToken(d.Authn, d.Issuer))

	entities := app.Group("/entities")
	entities.Get("/", ListEntities(d.Entities))
	entities.Post("/", CreateEntity(d.Entities))
	entities.Get("/name/:name", GetEntityByName(d.Entities))
	entities.Get("/:id", GetEntity(d.Entities))
	entities.Put("/:id", UpdateEntity(d.Entities))
	entities.Delete("/:id", DeleteEntity(d.Entities))
}
