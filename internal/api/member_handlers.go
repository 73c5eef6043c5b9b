package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/pos-terminal/internal/member"
)

// SearchMembers finds a single member by phone or id fragment when a query
// is given, otherwise lists everyone.
func (h *Handlers) SearchMembers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		members, err := h.members.List(r.Context())
		if err != nil {
			respondJSONError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if members == nil {
			members = []member.Member{}
		}
		respondJSON(w, http.StatusOK, members)
		return
	}

	m, err := h.members.Find(r.Context(), query)
	if errors.Is(err, member.ErrNotFound) {
		respondJSONError(w, "member not found", http.StatusNotFound)
		return
	}
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, m)
}

func (h *Handlers) CreateMember(w http.ResponseWriter, r *http.Request) {
	var m member.Member
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.members.Create(r.Context(), m)
	switch {
	case errors.Is(err, member.ErrInvalidPhone):
		respondJSONError(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, member.ErrDuplicate):
		respondJSONError(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}
