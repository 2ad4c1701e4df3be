package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cboost/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

func setupAuthApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret"}

	app := fiber.New()
	app.Get("/protected", JWTMiddleware, func(c *fiber.Ctx) error {
		userID := c.Locals("userId").(uint)
		return JsonResponse(c, fiber.StatusOK, true, "ok", fiber.Map{"userId": userID})
	})
	return app
}

func requestWithToken(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()

	req := httptest.NewRequest("GET", "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestJWTMiddlewareValidToken(t *testing.T) {
	app := setupAuthApp(t)

	token, err := GenerateJWT(7, "Marie", "marie@test.fr")
	require.NoError(t, err)

	resp := requestWithToken(t, app, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestJWTMiddlewareMissingHeader(t *testing.T) {
	app := setupAuthApp(t)

	resp := requestWithToken(t, app, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJWTMiddlewareNonNumericUserID(t *testing.T) {
	app := setupAuthApp(t)

	// Correctly signed but with a string userId claim
	claims := jwt.MapClaims{
		"userId": "seven",
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.AppConfig.JWTKey))
	require.NoError(t, err)

	resp := requestWithToken(t, app, token)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJWTMiddlewareWrongSecret(t *testing.T) {
	app := setupAuthApp(t)

	claims := jwt.MapClaims{
		"userId": float64(7),
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	resp := requestWithToken(t, app, token)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
