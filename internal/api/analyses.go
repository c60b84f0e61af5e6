package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/lexkit/clauseguard/internal/analyzer"
	"github.com/lexkit/clauseguard/internal/contract"
	"github.com/lexkit/clauseguard/internal/quota"
	"github.com/lexkit/clauseguard/internal/reporting"
	"github.com/lexkit/clauseguard/internal/rules"
)

type analyzeReq struct {
	ContractText string `json:"contract_text"`
	ContractType string `json:"contract_type,omitempty"`
}

// paywallPlans is the upsell payload attached to every 429.
var paywallPlans = []map[string]any{
	{"tier": "free", "price_usd_month": 0, "daily_limit": 5},
	{"tier": "pro", "price_usd_month": 49, "daily_limit": nil},
	{"tier": "enterprise", "price_usd_month": 199, "daily_limit": nil},
}

func (s *Server) paywall(w http.ResponseWriter, d quota.Decision) {
	writeJSON(w, http.StatusTooManyRequests, map[string]any{
		"error":   "quota_exceeded",
		"message": "Daily analysis limit reached. Upgrade for unlimited analyses.",
		"quota":   d,
		"plans":   paywallPlans,
	})
}

// POST /api/v1/analyses
func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	u, _ := userFromCtx(r.Context())

	var in analyzeReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.err(w, http.StatusBadRequest, "invalid json")
		return
	}
	// Validate before charging quota: a rejected request costs nothing.
	if len(in.ContractText) < contract.MinTextLen {
		s.err(w, http.StatusBadRequest,
			fmt.Sprintf("contract text must be at least %d characters", contract.MinTextLen))
		return
	}

	dec, err := s.Gate.Authorize(r.Context(), u.Username, quota.Tier(u.Tier))
	if errors.Is(err, quota.ErrQuotaExceeded) {
		s.paywall(w, dec)
		return
	}
	if err != nil {
		s.err(w, http.StatusInternalServerError, "quota error: "+err.Error())
		return
	}

	res, err := s.Analyzer.Analyze(in.ContractText, in.ContractType)
	if errors.Is(err, analyzer.ErrTextTooShort) {
		s.err(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.err(w, http.StatusInternalServerError, "analysis error: "+err.Error())
		return
	}

	// Active dismissals suppress accepted clauses from the stored report.
	ds, err := s.DB.ListDismissals(true)
	if err == nil && len(ds) > 0 {
		var nRed, nWarn int
		res.RedFlags, nRed = rules.ApplyDismissals(res.RedFlags, ds)
		res.Warnings, nWarn = rules.ApplyDismissals(res.Warnings, ds)
		if n := nRed + nWarn; n > 0 {
			s.Logger.Info("findings dismissed", "analysis_user", u.Username, "dismissed", n)
		}
	}

	res.ID = uuid.NewString()
	res.CreatedAt = time.Now().UTC()
	if err := s.DB.SaveAnalysis(&res, in.ContractText); err != nil {
		s.err(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"analysis": res, "quota": dec})
}

// GET /api/v1/analyses
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := clamp(parseInt(q.Get("limit"), 20), 1, 200)
	offset := parseInt(q.Get("offset"), 0)

	rows, err := s.DB.ListAnalyses(limit, offset)
	if err != nil {
		s.err(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": rows, "limit": limit, "offset": offset,
	})
}

// GET /api/v1/analyses/{id}
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	res, _, err := s.DB.LoadAnalysis(r.PathValue("id"))
	if err != nil {
		s.err(w, http.StatusNotFound, "analysis not found")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GET /api/v1/analyses/{id}/export
// Export is quota-gated like scoring, and free-tier artifacts carry the
// watermark plus truncated features.
func (s *Server) handleExportAnalysis(w http.ResponseWriter, r *http.Request) {
	u, _ := userFromCtx(r.Context())

	res, text, err := s.DB.LoadAnalysis(r.PathValue("id"))
	if err != nil {
		s.err(w, http.StatusNotFound, "analysis not found")
		return
	}

	dec, err := s.Gate.Authorize(r.Context(), u.Username, quota.Tier(u.Tier))
	if errors.Is(err, quota.ErrQuotaExceeded) {
		s.paywall(w, dec)
		return
	}
	if err != nil {
		s.err(w, http.StatusInternalServerError, "quota error: "+err.Error())
		return
	}

	now := time.Now().UTC()
	doc := reporting.BuildDocument(&res, now)
	freeUser := quota.Tier(u.Tier) == quota.TierFree
	pdf, err := reporting.WritePDF(doc, text, freeUser)
	if errors.Is(err, reporting.ErrRender) {
		// Retryable; the stored analysis is untouched.
		s.err(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		s.err(w, http.StatusInternalServerError, "render error: "+err.Error())
		return
	}

	name := reporting.Filename(res.ContractType, now)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
