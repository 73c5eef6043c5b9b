package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/example/pos-terminal/internal/api/middleware"
	"github.com/example/pos-terminal/internal/auth"
	"github.com/example/pos-terminal/internal/guard"
)

type RouterConfig struct {
	Handlers     *Handlers
	AuthHandlers *AuthHandlers
	JWTService   *auth.JWTService
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	h := cfg.Handlers
	ah := cfg.AuthHandlers

	// protect runs a handler behind the navigation guard for a destination.
	protect := func(dest guard.Destination, fn http.HandlerFunc) http.HandlerFunc {
		wrapped := middleware.Guard(cfg.JWTService, dest)(fn)
		return wrapped.ServeHTTP
	}

	mux.HandleFunc("/health", h.Health)

	// Auth
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		ah.Login(w, r)
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		ah.Refresh(w, r)
	})
	mux.HandleFunc("/auth/logout", ah.Logout)
	mux.HandleFunc("/auth/me", protect(guard.RouteDashboard, ah.Me))

	// Products
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			protect(guard.RouteDashboard, h.ListProducts)(w, r)
		case http.MethodPost:
			protect(guard.RouteProducts, h.CreateProduct)(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/products/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			protect(guard.RouteDashboard, h.GetProduct)(w, r)
		case http.MethodPut:
			protect(guard.RouteProducts, h.UpdateProduct)(w, r)
		case http.MethodDelete:
			protect(guard.RouteProducts, h.DeleteProduct)(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/categories", protect(guard.RouteDashboard, h.ListCategories))

	// Members
	mux.HandleFunc("/members", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			protect(guard.RouteCustomers, h.SearchMembers)(w, r)
		case http.MethodPost:
			protect(guard.RouteCustomers, h.CreateMember)(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// POS terminal sessions
	mux.HandleFunc("/pos/sessions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		protect(guard.RouteCashier, h.OpenSession)(w, r)
	})
	mux.HandleFunc("/pos/sessions/", protect(guard.RouteCashier, h.RoutePOSSession))

	// Bills and reports
	mux.HandleFunc("/bills", protect(guard.RouteOrders, h.ListBills))
	mux.HandleFunc("/bills/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if strings.HasSuffix(r.URL.Path, "/receipt") {
			protect(guard.RouteOrders, h.GetReceipt)(w, r)
			return
		}
		protect(guard.RouteOrders, h.GetBill)(w, r)
	})

	mux.HandleFunc("/stats", protect(guard.RouteDashboard, h.Stats))

	return withLogging(mux)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("[API] %s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
