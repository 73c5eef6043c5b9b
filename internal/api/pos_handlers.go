package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/example/pos-terminal/internal/api/middleware"
	"github.com/example/pos-terminal/internal/catalog"
	"github.com/example/pos-terminal/internal/checkout"
	"github.com/example/pos-terminal/internal/domain/cart"
	"github.com/example/pos-terminal/internal/guard"
	"github.com/example/pos-terminal/internal/member"
	"github.com/example/pos-terminal/internal/pos"
)

// OpenSession starts a terminal session for the signed-in cashier.
func (h *Handlers) OpenSession(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.GetEmployeeID(r.Context())
	s := h.registry.Open(employeeID)
	respondJSON(w, http.StatusCreated, s)
}

// session resolves the session path segment and enforces that only the
// owning cashier (or an admin) drives it.
func (h *Handlers) session(w http.ResponseWriter, r *http.Request, id string) (*pos.Session, bool) {
	s, err := h.registry.Get(id)
	if err != nil {
		respondJSONError(w, "session not found", http.StatusNotFound)
		return nil, false
	}

	claims, _ := middleware.GetUserFromContext(r.Context())
	if claims != nil && claims.EmployeeID != s.EmployeeID && claims.Role != guard.RoleAdmin {
		respondJSONError(w, "forbidden", http.StatusForbidden)
		return nil, false
	}
	return s, true
}

func (h *Handlers) CloseSession(w http.ResponseWriter, r *http.Request, id string) {
	if _, ok := h.session(w, r, id); !ok {
		return
	}
	if err := h.registry.Close(id); err != nil {
		respondJSONError(w, "session not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "session closed"})
}

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request, id string) {
	s, ok := h.session(w, r, id)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, s.Engine.Snapshot())
}

func (h *Handlers) GetTotals(w http.ResponseWriter, r *http.Request, id string) {
	s, ok := h.session(w, r, id)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, s.Engine.Totals())
}

// AddItem handles a barcode scan.
func (h *Handlers) AddItem(w http.ResponseWriter, r *http.Request, id string) {
	s, ok := h.session(w, r, id)
	if !ok {
		return
	}

	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	snap, err := s.Engine.AddItem(r.Context(), req.ProductID)
	switch {
	case errors.Is(err, cart.ErrInvalidProduct):
		respondJSONError(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, catalog.ErrNotFound):
		respondJSONError(w, "product not found", http.StatusNotFound)
		return
	case err != nil:
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

func (h *Handlers) RemoveItem(w http.ResponseWriter, r *http.Request, id, productID string) {
	s, ok := h.session(w, r, id)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, s.Engine.RemoveItem(r.Context(), productID))
}

// AttachMember resolves a member by phone or id fragment and attaches the
// match to the cart.
func (h *Handlers) AttachMember(w http.ResponseWriter, r *http.Request, id string) {
	s, ok := h.session(w, r, id)
	if !ok {
		return
	}

	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	m, err := h.members.Find(r.Context(), req.Query)
	if errors.Is(err, member.ErrNotFound) {
		respondJSONError(w, "member not found", http.StatusNotFound)
		return
	}
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, s.Engine.AttachMember(r.Context(), &m))
}

func (h *Handlers) DetachMember(w http.ResponseWriter, r *http.Request, id string) {
	s, ok := h.session(w, r, id)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, s.Engine.AttachMember(r.Context(), nil))
}

func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request, id string) {
	s, ok := h.session(w, r, id)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, s.Engine.Clear(r.Context()))
}

// Checkout confirms payment for the session's cart.
func (h *Handlers) Checkout(w http.ResponseWriter, r *http.Request, id string) {
	s, ok := h.session(w, r, id)
	if !ok {
		return
	}

	var req struct {
		PaymentMethod string `json:"payment_method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	settled, err := s.Engine.Checkout(r.Context(), checkout.PaymentMethod(req.PaymentMethod))
	switch {
	case errors.Is(err, cart.ErrEmptyCart), errors.Is(err, cart.ErrInvalidPayment):
		respondJSONError(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, cart.ErrCheckoutInProgress):
		respondJSONError(w, err.Error(), http.StatusConflict)
		return
	case errors.Is(err, cart.ErrSubmissionFailed):
		respondJSONError(w, err.Error(), http.StatusBadGateway)
		return
	case err != nil:
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, settled)
}

// RoutePOSSession dispatches /pos/sessions/{id}[/...] requests.
func (h *Handlers) RoutePOSSession(w http.ResponseWriter, r *http.Request) {
	rest := extractPathParam(r.URL.Path, "/pos/sessions/")
	parts := strings.SplitN(rest, "/", 3)
	id := parts[0]
	if id == "" {
		respondJSONError(w, "session id required", http.StatusBadRequest)
		return
	}

	sub := ""
	if len(parts) > 1 {
		sub = parts[1]
	}

	switch {
	case sub == "" && r.Method == http.MethodGet:
		h.GetCart(w, r, id)
	case sub == "" && r.Method == http.MethodDelete:
		h.CloseSession(w, r, id)
	case sub == "items" && len(parts) == 2 && r.Method == http.MethodPost:
		h.AddItem(w, r, id)
	case sub == "items" && len(parts) == 3 && r.Method == http.MethodDelete:
		h.RemoveItem(w, r, id, parts[2])
	case sub == "member" && r.Method == http.MethodPost:
		h.AttachMember(w, r, id)
	case sub == "member" && r.Method == http.MethodDelete:
		h.DetachMember(w, r, id)
	case sub == "totals" && r.Method == http.MethodGet:
		h.GetTotals(w, r, id)
	case sub == "clear" && r.Method == http.MethodPost:
		h.ClearCart(w, r, id)
	case sub == "checkout" && r.Method == http.MethodPost:
		h.Checkout(w, r, id)
	default:
		respondJSONError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
