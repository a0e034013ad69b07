package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfab/reservation-server/internal/utils"
)

const secret = "test-secret"

func newProtectedEcho() *echo.Echo {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"admin": c.Get("admin")})
	}, AdminAuth(secret))
	return e
}

func get(e *echo.Echo, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAdminAuthAcceptsValidToken(t *testing.T) {
	e := newProtectedEcho()
	tok, err := utils.NewAdminToken(secret, "admin", 60)
	require.NoError(t, err)

	rec := get(e, "Bearer "+tok.Token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"admin":"admin"`)
}

func TestAdminAuthRejectsMissingHeader(t *testing.T) {
	e := newProtectedEcho()
	assert.Equal(t, http.StatusUnauthorized, get(e, "").Code)
}

func TestAdminAuthRejectsMalformedHeader(t *testing.T) {
	e := newProtectedEcho()
	assert.Equal(t, http.StatusUnauthorized, get(e, "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, get(e, "Bearer not-a-jwt").Code)
}

func TestAdminAuthRejectsWrongSecret(t *testing.T) {
	e := newProtectedEcho()
	tok, err := utils.NewAdminToken("other-secret", "admin", 60)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, get(e, "Bearer "+tok.Token).Code)
}

func TestAdminAuthRejectsExpiredToken(t *testing.T) {
	e := newProtectedEcho()
	claims := jwt.MapClaims{
		"sub":  "admin",
		"role": "ADMIN",
		"exp":  time.Now().Add(-time.Hour).Unix(),
		"iat":  time.Now().Add(-2 * time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, get(e, "Bearer "+signed).Code)
}

func TestAdminAuthRejectsNonAdminRole(t *testing.T) {
	e := newProtectedEcho()
	claims := jwt.MapClaims{
		"sub":  "someone",
		"role": "USER",
		"exp":  time.Now().Add(time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, get(e, "Bearer "+signed).Code)
}
