package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

type dismissalReq struct {
	RuleID     string `json:"rule_id,omitempty"`
	Clause     string `json:"clause,omitempty"`
	PatternSub string `json:"pattern_sub,omitempty"`
	Reason     string `json:"reason"`
	ExpiresAt  string `json:"expires_at"` // RFC3339
}

// GET /api/v1/dismissals?active=true
func (s *Server) handleListDismissals(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	items, err := s.DB.ListDismissals(activeOnly)
	if err != nil {
		s.err(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

// POST /api/v1/dismissals
func (s *Server) handleCreateDismissal(w http.ResponseWriter, r *http.Request) {
	u, _ := userFromCtx(r.Context())

	var in dismissalReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.err(w, http.StatusBadRequest, "invalid json")
		return
	}
	expires, err := time.Parse(time.RFC3339, in.ExpiresAt)
	if err != nil {
		s.err(w, http.StatusBadRequest, "expires_at must be RFC3339")
		return
	}
	if !expires.After(time.Now()) {
		s.err(w, http.StatusBadRequest, "expires_at must be in the future")
		return
	}

	id, err := s.DB.CreateDismissal(in.RuleID, in.Clause, in.PatternSub, in.Reason, u.Username, expires)
	if err != nil {
		s.err(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

// POST /api/v1/dismissals/{id}/revoke
func (s *Server) handleRevokeDismissal(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.err(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.DB.RevokeDismissal(id); err != nil {
		s.err(w, http.StatusNotFound, "dismissal not found or already revoked")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
