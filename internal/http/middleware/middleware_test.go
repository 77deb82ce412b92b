package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"entityapi/internal/auth"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString(GetRequestID(c))
	})

	t.Run("should generate new request id if not present", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		ridHeader := resp.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, ridHeader)

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, ridHeader, string(body))
	})

	t.Run("should preserve existing request id", func(t *testing.T) {
		existingID := "test-id-123"
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, existingID)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, existingID, resp.Header.Get(RequestIDHeader))
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, existingID, string(body))
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()

	app.Use(RequestID())
	app.Use(LoggerWithWriter(&buf, time.UTC))
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})

	req := httptest.NewRequest("GET", "/test?page=1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	var logData map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logData))
	assert.NotEmpty(t, logData["request_id"])
	assert.Equal(t, "GET", logData["method"])
	assert.Equal(t, "/test", logData["path"])
	assert.Equal(t, float64(fiber.StatusAccepted), logData["status"])
	assert.NotNil(t, logData["latency"])
	assert.NotEmpty(t, logData["ts"])
	assert.NotContains(t, logData, "subject")
}

func TestLogger_ErrorStatus(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(LoggerWithWriter(&buf, time.UTC))
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("boom")
	})

	_, err := app.Test(httptest.NewRequest("GET", "/teapot", nil))
	require.NoError(t, err)
	var logData map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logData))
	assert.Equal(t, float64(fiber.StatusTeapot), logData["status"])

	buf.Reset()
	_, err = app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logData))
	assert.Equal(t, float64(fiber.StatusInternalServerError), logData["status"])
}

func TestLogger_TraceID(t *testing.T) {
	var buf bytes.Buffer
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x01, 0x02, 0x03},
		SpanID:     trace.SpanID{0x0a},
		TraceFlags: trace.FlagsSampled,
	})

	app := fiber.New()
	app.Use(LoggerWithWriter(&buf, time.UTC))
	app.Get("/traced", func(c *fiber.Ctx) error {
		c.SetUserContext(trace.ContextWithSpanContext(c.UserContext(), sc))
		return c.SendStatus(fiber.StatusOK)
	})

	_, err := app.Test(httptest.NewRequest("GET", "/traced", nil))
	require.NoError(t, err)

	var logData map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logData))
	assert.Equal(t, sc.TraceID().String(), logData["trace_id"])
}

type stubVerifier struct {
	valid map[string]string
}

func (s stubVerifier) Verify(token string) (auth.Identity, error) {
	if sub, ok := s.valid[token]; ok {
		return auth.Identity{Subject: sub}, nil
	}
	return auth.Identity{}, auth.ErrInvalidToken
}

func TestAuth(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(Auth(stubVerifier{valid: map[string]string{"good": "alice"}}, "/api/auth", "/healthz"))
	app.Use(LoggerWithWriter(&buf, time.UTC))
	app.Get("/entities", func(c *fiber.Ctx) error {
		return c.SendString("secret:" + GetSubject(c))
	})
	app.Post("/api/auth/token", func(c *fiber.Ctx) error {
		return c.SendString("token")
	})
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/api/authx", func(c *fiber.Ctx) error {
		return c.SendString("not public")
	})

	tests := []struct {
		name       string
		method     string
		path       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid token", method: "GET", path: "/entities", header: "Bearer good", wantStatus: fiber.StatusOK, wantBody: "secret:alice"},
		{name: "scheme is case-insensitive", method: "GET", path: "/entities", header: "bearer good", wantStatus: fiber.StatusOK, wantBody: "secret:alice"},
		{name: "missing header", method: "GET", path: "/entities", wantStatus: fiber.StatusUnauthorized},
		{name: "wrong scheme", method: "GET", path: "/entities", header: "Basic Z29vZA==", wantStatus: fiber.StatusUnauthorized},
		{name: "empty token", method: "GET", path: "/entities", header: "Bearer   ", wantStatus: fiber.StatusUnauthorized},
		{name: "invalid token", method: "GET", path: "/entities", header: "Bearer bad", wantStatus: fiber.StatusUnauthorized},
		{name: "auth route is public", method: "POST", path: "/api/auth/token", wantStatus: fiber.StatusOK, wantBody: "token"},
		{name: "exact public path", method: "GET", path: "/healthz", wantStatus: fiber.StatusOK},
		{name: "prefix match respects segments", method: "GET", path: "/api/authx", wantStatus: fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, string(body))
			}
			if tt.wantStatus == fiber.StatusUnauthorized {
				assert.NotContains(t, string(body), "secret")
				assert.Contains(t, resp.Header.Get(fiber.HeaderWWWAuthenticate), "Bearer")
			}
		})
	}

	// rejected requests never reach the handlers or the access logger behind the gate
	buf.Reset()
	_, err := app.Test(httptest.NewRequest("GET", "/entities", nil))
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}
