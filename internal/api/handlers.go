package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/example/pos-terminal/internal/catalog"
	"github.com/example/pos-terminal/internal/infrastructure/store"
	"github.com/example/pos-terminal/internal/member"
	"github.com/example/pos-terminal/internal/pos"
	"github.com/example/pos-terminal/internal/receipt"
)

// BillReader answers bill queries for the orders and reports screens.
type BillReader interface {
	Get(ctx context.Context, id string) (store.Bill, error)
	Recent(ctx context.Context, limit int) ([]store.Bill, error)
}

// StatsReader answers the dashboard summary query.
type StatsReader interface {
	Summary(ctx context.Context) (store.Summary, error)
}

type Handlers struct {
	catalog  *catalog.Service
	members  member.Directory
	registry *pos.Registry
	bills    BillReader
	stats    StatsReader
}

func NewHandlers(cat *catalog.Service, members member.Directory, registry *pos.Registry, bills BillReader, stats StatsReader) *Handlers {
	return &Handlers{
		catalog:  cat,
		members:  members,
		registry: registry,
		bills:    bills,
		stats:    stats,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	summary, err := h.stats.Summary(r.Context())
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// Bill handlers

func (h *Handlers) ListBills(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}
	bills, err := h.bills.Recent(r.Context(), limit)
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, bills)
}

func (h *Handlers) GetBill(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/bills/")
	b, err := h.bills.Get(r.Context(), id)
	if err == store.ErrBillNotFound {
		respondJSONError(w, "bill not found", http.StatusNotFound)
		return
	}
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

// GetReceipt renders the printable text receipt for a bill.
func (h *Handlers) GetReceipt(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(extractPathParam(r.URL.Path, "/bills/"), "/receipt")
	b, err := h.bills.Get(r.Context(), id)
	if err == store.ErrBillNotFound {
		respondJSONError(w, "bill not found", http.StatusNotFound)
		return
	}
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(receipt.Render(b)))
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func extractPathParam(path, prefix string) string {
	return strings.TrimPrefix(path, prefix)
}
