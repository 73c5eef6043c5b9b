package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/pos-terminal/internal/api/middleware"
	"github.com/example/pos-terminal/internal/auth"
	"github.com/example/pos-terminal/internal/infrastructure/store"
)

// EmployeeReader resolves staff accounts for sign-in.
type EmployeeReader interface {
	GetByUsername(ctx context.Context, username string) (store.Employee, error)
	GetByID(ctx context.Context, id string) (store.Employee, error)
}

// AuthHandlers handles employee sign-in and token refresh.
type AuthHandlers struct {
	employees  EmployeeReader
	jwtService *auth.JWTService
}

func NewAuthHandlers(employees EmployeeReader, jwtService *auth.JWTService) *AuthHandlers {
	return &AuthHandlers{employees: employees, jwtService: jwtService}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	EmployeeID  string `json:"employee_id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	AccessToken string `json:"access_token"`
}

func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	emp, err := h.employees.GetByUsername(r.Context(), req.Username)
	if errors.Is(err, store.ErrEmployeeNotFound) {
		respondJSONError(w, "invalid username or password", http.StatusUnauthorized)
		return
	}
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if !auth.CheckPassword(req.Password, emp.PasswordHash) {
		respondJSONError(w, "invalid username or password", http.StatusUnauthorized)
		return
	}

	accessToken := h.setAuthCookies(w, r, emp)

	respondJSON(w, http.StatusOK, LoginResponse{
		EmployeeID:  emp.ID,
		Name:        emp.Name,
		Role:        emp.Role,
		AccessToken: accessToken,
	})
}

func (h *AuthHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshCookie, err := r.Cookie("refresh_token")
	if err != nil {
		respondJSONError(w, "no refresh token", http.StatusUnauthorized)
		return
	}

	employeeID, err := h.jwtService.ValidateRefreshToken(refreshCookie.Value)
	if err != nil {
		h.clearAuthCookies(w)
		respondJSONError(w, "invalid refresh token", http.StatusUnauthorized)
		return
	}

	emp, err := h.employees.GetByID(r.Context(), employeeID)
	if err != nil {
		h.clearAuthCookies(w)
		respondJSONError(w, "employee not found", http.StatusUnauthorized)
		return
	}

	accessToken := h.setAuthCookies(w, r, emp)
	respondJSON(w, http.StatusOK, LoginResponse{
		EmployeeID:  emp.ID,
		Name:        emp.Name,
		Role:        emp.Role,
		AccessToken: accessToken,
	})
}

func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearAuthCookies(w)
	respondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me returns the signed-in employee's claims.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"employee_id": claims.EmployeeID,
		"name":        claims.Name,
		"role":        claims.Role,
	})
}

func (h *AuthHandlers) setAuthCookies(w http.ResponseWriter, r *http.Request, emp store.Employee) string {
	accessToken, accessExpiry, _ := h.jwtService.GenerateAccessToken(emp.ID, emp.Name, emp.Role)
	refreshToken, refreshExpiry, _ := h.jwtService.GenerateRefreshToken(emp.ID)

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Path:     "/",
		Expires:  accessExpiry,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Path:     "/auth/refresh",
		Expires:  refreshExpiry,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})
	return accessToken
}

func (h *AuthHandlers) clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Path:     "/auth/refresh",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
