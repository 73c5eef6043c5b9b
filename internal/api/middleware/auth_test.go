package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/pos-terminal/internal/auth"
	"github.com/example/pos-terminal/internal/guard"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService("test-secret-key-for-middleware", 15*time.Minute, 7*24*time.Hour)
}

func okHandler(captured **auth.Claims) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := GetUserFromContext(r.Context()); ok {
			*captured = claims
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestGuard_ValidToken_Header(t *testing.T) {
	jwtService := newTestJWTService()
	mw := Guard(jwtService, guard.RouteCashier)

	token, _, err := jwtService.GenerateAccessToken("emp-1", "Li Ming", "cashier")
	require.NoError(t, err)

	var captured *auth.Claims
	req := httptest.NewRequest(http.MethodGet, "/cashier", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	mw(okHandler(&captured)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "emp-1", captured.EmployeeID)
	assert.Equal(t, "cashier", captured.Role)
}

func TestGuard_ValidToken_Cookie(t *testing.T) {
	jwtService := newTestJWTService()
	mw := Guard(jwtService, guard.RouteDashboard)

	token, _, err := jwtService.GenerateAccessToken("emp-2", "Zhang Wei", "stocker")
	require.NoError(t, err)

	var captured *auth.Claims
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	rec := httptest.NewRecorder()

	mw(okHandler(&captured)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "emp-2", captured.EmployeeID)
}

func TestGuard_NoToken(t *testing.T) {
	mw := Guard(newTestJWTService(), guard.RouteDashboard)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()

	var captured *auth.Claims
	mw(okHandler(&captured)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Nil(t, captured)
}

func TestGuard_InvalidTokenTreatedAsAnonymous(t *testing.T) {
	mw := Guard(newTestJWTService(), guard.RouteDashboard)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()

	var captured *auth.Claims
	mw(okHandler(&captured)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGuard_WrongRole(t *testing.T) {
	jwtService := newTestJWTService()
	mw := Guard(jwtService, guard.RouteProducts)

	token, _, err := jwtService.GenerateAccessToken("emp-1", "Li Ming", "cashier")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	var captured *auth.Claims
	mw(okHandler(&captured)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGuard_AdminBypassesRoleCheck(t *testing.T) {
	jwtService := newTestJWTService()
	mw := Guard(jwtService, guard.RouteProducts)

	token, _, err := jwtService.GenerateAccessToken("emp-0", "Boss", "admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	var captured *auth.Claims
	mw(okHandler(&captured)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetEmployeeID_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, GetEmployeeID(req.Context()))
}
