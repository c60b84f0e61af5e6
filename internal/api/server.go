package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/lexkit/clauseguard/internal/analyzer"
	"github.com/lexkit/clauseguard/internal/contract"
	"github.com/lexkit/clauseguard/internal/quota"
	"github.com/lexkit/clauseguard/internal/storage"
)

// Store is the minimal persistence contract the API needs.
type Store interface {
	SaveAnalysis(res *contract.Result, contractText string) error
	LoadAnalysis(id string) (contract.Result, string, error)
	ListAnalyses(limit, offset int) ([]storage.AnalysisRow, error)

	ListDismissals(activeOnly bool) ([]storage.Dismissal, error)
	CreateDismissal(ruleID, clause, pattern, reason, createdBy string, expires time.Time) (int64, error)
	RevokeDismissal(id int64) error
}

// UserStore is the auth/audit contract the API uses.
type UserStore interface {
	GetUserByUsername(string) (storage.User, string, error)
	CreateSession(int64, string, time.Time) error
	GetSession(string) (storage.User, error)
	DeleteSession(string) error
	LogAudit(username, action, resource string, meta map[string]any) error
}

type Server struct {
	DB              Store
	UserStore       UserStore
	Analyzer        *analyzer.Analyzer
	Gate            *quota.Gatekeeper
	Logger          *slog.Logger
	SessionDuration time.Duration
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	withCORS := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS, POST")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			h(w, r)
		}
	}

	// Health
	mux.HandleFunc("GET /api/v1/health", withCORS(s.handleHealth))

	// Auth
	mux.HandleFunc("POST /api/v1/auth/login", withCORS(s.handleLogin))
	mux.HandleFunc("POST /api/v1/auth/logout", withCORS(withAuth(s, s.handleLogout, "auth:logout")))
	mux.HandleFunc("GET /api/v1/me", withCORS(withAuth(s, s.handleMe, "me")))

	// Analyses
	mux.HandleFunc("POST /api/v1/analyses", withCORS(withAuth(s, s.handleCreateAnalysis, "analyses:create")))
	mux.HandleFunc("GET /api/v1/analyses", withCORS(withAuth(s, s.handleListAnalyses, "analyses:list")))
	mux.HandleFunc("GET /api/v1/analyses/{id}", withCORS(withAuth(s, s.handleGetAnalysis, "analyses:get")))
	mux.HandleFunc("GET /api/v1/analyses/{id}/export", withCORS(withAuth(s, s.handleExportAnalysis, "analyses:export")))

	// Rules inventory (read-only, no auth needed)
	mux.HandleFunc("GET /api/v1/rules", withCORS(s.handleRules))

	// Usage
	mux.HandleFunc("GET /api/v1/usage", withCORS(withAuth(s, s.handleUsage, "usage")))

	// Dismissals
	mux.HandleFunc("GET /api/v1/dismissals", withCORS(withAuth(s, s.handleListDismissals, "dismissals:list")))
	mux.HandleFunc("POST /api/v1/dismissals", withCORS(withAdmin(s, s.handleCreateDismissal, "dismissals:create")))
	mux.HandleFunc("POST /api/v1/dismissals/{id}/revoke", withCORS(withAdmin(s, s.handleRevokeDismissal, "dismissals:revoke")))

	// Fallback 404
	mux.HandleFunc("/", withCORS(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	type R struct {
		ID       string `json:"id"`
		Clause   string `json:"clause"`
		Section  string `json:"section,omitempty"`
		Severity string `json:"severity"`
		Weight   int    `json:"weight"`
	}
	reg := s.Analyzer.Registry()
	var out []R
	for _, rr := range reg.List() {
		out = append(out, R{
			ID: rr.ID, Clause: rr.Clause, Section: rr.Section,
			Severity: string(rr.Severity), Weight: reg.WeightFor(rr),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out, "count": len(out)})
}

func (s *Server) handleUsage(w http.ResponseWriter, r *http.Request) {
	u, _ := userFromCtx(r.Context())
	d, err := s.Gate.Usage(r.Context(), u.Username, quota.Tier(u.Tier))
	if err != nil {
		s.err(w, http.StatusInternalServerError, "usage error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) err(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
