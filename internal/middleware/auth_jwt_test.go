package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/config"
	"app/internal/middleware"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test_secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	assert.NoError(t, err)
	return s
}

func runAuth(t *testing.T, authz string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	cfg := config.Config{JWTSecret: testSecret}
	h := middleware.AuthJWT(cfg)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, h(c))
	return rec, c
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	rec, _ := runAuth(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_NotBearer(t *testing.T) {
	rec, _ := runAuth(t, "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	token := signToken(t, "other_secret", jwt.MapClaims{
		"sub": "admin@example.com", "role": "ADMIN",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	rec, _ := runAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_Expired(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "admin@example.com", "role": "ADMIN",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	rec, _ := runAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_MissingRoleClaim(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "admin@example.com",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	rec, _ := runAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_Valid_SetsActorAndRole(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "admin@example.com", "role": "ADMIN",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	rec, c := runAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin@example.com", c.Get(middleware.CtxActorKey))
	assert.Equal(t, "ADMIN", c.Get(middleware.CtxRoleKey))
}

func TestAdminRoleGuard_NonAdmin(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxRoleKey, "USER")

	h := middleware.AdminRoleGuard()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, h(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminRoleGuard_Admin(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxRoleKey, "ADMIN")

	h := middleware.AdminRoleGuard()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
