package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artcc_backend/internals/configs"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func newAuthApp(t *testing.T, handler fiber.Handler) *fiber.App {
	t.Helper()
	configs.JWTSecret = testSecret

	app := fiber.New()
	app.Get("/whoami", handler, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"cid": Cid(c), "name": UserName(c)})
	})
	return app
}

func TestAuthRequiredAcceptsValidToken(t *testing.T) {
	app := newAuthApp(t, AuthRequired())

	token := signToken(t, jwt.MapClaims{
		"cid":  1000000,
		"name": "Jo Controller",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
}

func TestAuthRequiredRejectsMissingToken(t *testing.T) {
	app := newAuthApp(t, AuthRequired())

	resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 401, resp.StatusCode)
}

func TestAuthRequiredRejectsExpiredToken(t *testing.T) {
	app := newAuthApp(t, AuthRequired())

	token := signToken(t, jwt.MapClaims{
		"cid": 1000000,
		"exp": time.Now().Add(-2 * time.Minute).Unix(),
	})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 401, resp.StatusCode)
}

func TestAuthRequiredRejectsWrongSignature(t *testing.T) {
	app := newAuthApp(t, AuthRequired())

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"cid": 1000000,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 401, resp.StatusCode)
}

func TestAuthRequiredAcceptsCookieToken(t *testing.T) {
	app := newAuthApp(t, AuthRequired())

	token := signToken(t, jwt.MapClaims{
		"cid": 1000000,
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
}

func TestAuthOptionalContinuesAnonymously(t *testing.T) {
	app := newAuthApp(t, AuthOptional())

	resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
}

func TestAuthOptionalIgnoresBadToken(t *testing.T) {
	app := newAuthApp(t, AuthOptional())

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
}
