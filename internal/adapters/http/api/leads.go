// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/leadscore/internal/domain/model"
)

// LeadsDependencies defines the interface for lead score operations.
type LeadsDependencies interface {
	ListScores(ctx context.Context) []model.LeadScore
	GetScore(ctx context.Context, leadID string) (model.LeadScore, error)
	RefreshNow(ctx context.Context) (model.RefreshSummary, error)
}

// LeadsHandler handles lead score requests.
type LeadsHandler struct {
	deps LeadsDependencies
}

// NewLeadsHandler creates a new leads handler.
func NewLeadsHandler(deps LeadsDependencies) *LeadsHandler {
	return &LeadsHandler{deps: deps}
}

// HandleList handles GET /api/leads requests. Scores come back ranked,
// highest first.
func (h *LeadsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.ListScores(r.Context()))
}

// HandleLeadPath dispatches requests under /api/leads/: the refresh
// action, a single lead lookup, or the bare list.
func (h *LeadsHandler) HandleLeadPath(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/leads/")
	switch {
	case path == "":
		h.HandleList(w, r)
	case path == "refresh":
		h.handleRefresh(w, r)
	case strings.Contains(path, "/"):
		http.NotFound(w, r)
	default:
		h.handleGet(w, r, path)
	}
}

func (h *LeadsHandler) handleGet(w http.ResponseWriter, r *http.Request, leadID string) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	score, err := h.deps.GetScore(r.Context(), leadID)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, score)
}

type refreshResponse struct {
	Status     string `json:"status"`
	TotalLeads int    `json:"total_leads"`
	HotLeads   int    `json:"hot_leads"`
	WarmLeads  int    `json:"warm_leads"`
	ColdLeads  int    `json:"cold_leads"`
}

// handleRefresh handles POST /api/leads/refresh requests.
func (h *LeadsHandler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	summary, err := h.deps.RefreshNow(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, refreshResponse{
		Status:     "success",
		TotalLeads: summary.Total,
		HotLeads:   summary.Hot,
		WarmLeads:  summary.Warm,
		ColdLeads:  summary.Cold,
	})
}
