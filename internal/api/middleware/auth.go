package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/example/pos-terminal/internal/auth"
	"github.com/example/pos-terminal/internal/guard"
)

func respondError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// ExtractToken pulls the session token from the access cookie or the
// Authorization header.
func ExtractToken(r *http.Request) string {
	if cookie, err := r.Cookie("access_token"); err == nil {
		return cookie.Value
	}
	if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

type contextKey string

const UserContextKey contextKey = "user"

// Guard ties the navigation guard to HTTP: the token is validated, the
// resulting session is checked against dest, and the guard's verdict maps to
// 401 (redirect to login) or 403 (forbidden).
func Guard(jwtService *auth.JWTService, dest guard.Destination) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := guard.Session{Token: ExtractToken(r)}

			var claims *auth.Claims
			if session.Token != "" {
				var err error
				claims, err = jwtService.ValidateAccessToken(session.Token)
				if err != nil {
					// An expired or forged token is the same as no token.
					session = guard.Session{}
				} else {
					session.Role = claims.Role
				}
			}

			switch guard.Authorize(dest, session) {
			case guard.RedirectLogin:
				w.Header().Set("Location", "/login")
				respondError(w, "unauthorized", http.StatusUnauthorized)
				return
			case guard.RedirectForbidden:
				respondError(w, "forbidden", http.StatusForbidden)
				return
			}

			if claims != nil {
				r = r.WithContext(context.WithValue(r.Context(), UserContextKey, claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserFromContext retrieves employee claims from the request context.
func GetUserFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*auth.Claims)
	return claims, ok
}

// GetEmployeeID is a helper to get just the employee id from context.
func GetEmployeeID(ctx context.Context) string {
	claims, ok := GetUserFromContext(ctx)
	if !ok {
		return ""
	}
	return claims.EmployeeID
}
